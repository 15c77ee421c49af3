// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/pborman/uuid"
	"github.com/vechain/nftstaking/log"
)

const (
	maxLoggedBody   = 4096
	requestIDHeader = "X-Request-Id"
)

// RequestLoggerHandler returns a http handler that logs every request with its body and outcome.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		// the body can only be read once, so it is buffered and handed back to the request
		var bodyBytes []byte
		if r.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				http.Error(w, "unable to read body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New()
		}
		w.Header().Set(requestIDHeader, reqID)

		start := time.Now()
		mrw := newMetricsResponseWriter(w)
		handler.ServeHTTP(mrw, r)

		logged := bodyBytes
		if len(logged) > maxLoggedBody {
			logged = logged[:maxLoggedBody]
		}
		logger.Info("API Request",
			"RequestID", reqID,
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(logged),
			"Status", mrw.statusCode,
			"Elapsed", time.Since(start),
		)
	}

	return http.HandlerFunc(fn)
}

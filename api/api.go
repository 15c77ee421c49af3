// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/vechain/nftstaking/api/admin"
	healthAPI "github.com/vechain/nftstaking/api/admin/health"
	"github.com/vechain/nftstaking/api/custody"
	"github.com/vechain/nftstaking/api/points"
	"github.com/vechain/nftstaking/api/staking"
	"github.com/vechain/nftstaking/health"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	// Timeout bounds the handling of one request, zero means no limit.
	Timeout  time.Duration
	LogLevel *slog.LevelVar
}

// New return api router
func New(
	ledger *ledger.Ledger,
	health *health.Health,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(ledger).
		Mount(router, "/staking")
	points.New(ledger).
		Mount(router, "/points")
	custody.New(ledger).
		Mount(router, "/custody")
	admin.New(ledger, opts.LogLevel).
		Mount(router, "/admin")
	healthAPI.New(health, func() error {
		_, err := ledger.TotalStaked()
		return err
	}).Mount(router, "/health")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	var handler http.Handler = router
	if opts.Timeout > 0 {
		handler = http.TimeoutHandler(handler, opts.Timeout, "request timeout")
	}
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}

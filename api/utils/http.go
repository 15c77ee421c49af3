// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vechain/nftstaking/builtin/reverts"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// Conflict convenience method to create http conflict error.
func Conflict(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusConflict,
	}
}

// StatusOf returns the http status a revert kind is responded with.
func StatusOf(kind reverts.Kind) int {
	switch kind {
	case reverts.Unauthorized, reverts.NotApproved:
		return http.StatusForbidden
	case reverts.InvalidInput:
		return http.StatusBadRequest
	case reverts.NotFound:
		return http.StatusNotFound
	case reverts.TransferDisabled:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Revert converts a ledger error into an http error. Errors that are not
// reverts are returned untouched and end up as internal server errors.
func Revert(err error) error {
	if err == nil {
		return nil
	}
	if re, ok := reverts.As(err); ok {
		return &revertError{httpError{cause: re, status: StatusOf(re.Kind())}, re}
	}
	return err
}

type revertError struct {
	httpError
	revert *reverts.Error
}

// ErrorBody is the response body of a reverted operation.
// Data carries the message ABI encoded as Error(string), hex with 0x prefix.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// HandlerFunc like http.HandlerFunc, bu it returns an error.
// If the returned error is httpError type, httpError.status will be responded,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err != nil {
			switch e := err.(type) {
			case *revertError:
				w.Header().Set("Content-Type", JSONContentType)
				w.WriteHeader(e.status)
				_ = json.NewEncoder(w).Encode(ErrorBody{
					Kind:    e.revert.Kind().String(),
					Message: e.revert.Error(),
					Data:    hexutil.Encode(e.revert.Bytes()),
				})
			case *httpError:
				if e.cause != nil {
					http.Error(w, e.cause.Error(), e.status)
				} else {
					w.WriteHeader(e.status)
				}
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any

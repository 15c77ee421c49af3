// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/nftstaking/builtin/reverts"
)

func serve(f HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	WrapHandlerFunc(f)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(reverts.Unauthorized))
	assert.Equal(t, http.StatusBadRequest, StatusOf(reverts.InvalidInput))
	assert.Equal(t, http.StatusForbidden, StatusOf(reverts.NotApproved))
	assert.Equal(t, http.StatusNotFound, StatusOf(reverts.NotFound))
	assert.Equal(t, http.StatusMethodNotAllowed, StatusOf(reverts.TransferDisabled))
}

func TestWrapHandlerFuncRevert(t *testing.T) {
	rec := serve(func(http.ResponseWriter, *http.Request) error {
		return Revert(errors.WithMessage(reverts.New(reverts.NotFound, "invalid token id provided"), "unstake"))
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, reverts.NotFound.String(), body.Kind)
	assert.Equal(t, "invalid token id provided", body.Message)

	data, err := hexutil.Decode(body.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0xc3, 0x79, 0xa0}, data[:4])
	assert.Equal(t, reverts.New(reverts.NotFound, body.Message).Bytes(), data)
}

func TestWrapHandlerFuncHTTPErrors(t *testing.T) {
	rec := serve(func(http.ResponseWriter, *http.Request) error {
		return BadRequest(errors.New("bad body"))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad body", strings.TrimSpace(rec.Body.String()))

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return HTTPError(nil, http.StatusTeapot)
	})
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return Revert(errors.New("disk gone"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(func(w http.ResponseWriter, _ *http.Request) error {
		return WriteJSON(w, M{"ok": true})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}

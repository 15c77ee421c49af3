// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/health"
)

type API struct {
	healthStatus *health.Health
	probe        func() error
}

// New returns the health API. The probe is run on every request to check
// the storage is still readable.
func New(healthStatus *health.Health, probe func() error) *API {
	return &API{
		healthStatus: healthStatus,
		probe:        probe,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status := h.healthStatus.Status(h.probe)
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}

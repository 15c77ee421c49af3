// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"

	"github.com/gorilla/mux"
	"github.com/vechain/nftstaking/api/admin/classification"
	"github.com/vechain/nftstaking/api/admin/loglevel"
	"github.com/vechain/nftstaking/ledger"
)

type Admin struct {
	ledger   *ledger.Ledger
	logLevel *slog.LevelVar
}

func New(ledger *ledger.Ledger, logLevel *slog.LevelVar) *Admin {
	return &Admin{ledger: ledger, logLevel: logLevel}
}

// Mount registers the classification table endpoints and, when a level
// var is present, the log level endpoint.
func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	classification.New(a.ledger).Mount(root, pathPrefix)
	if a.logLevel != nil {
		loglevel.New(a.logLevel).Mount(root, pathPrefix+"/loglevel")
	}
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package points

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/thor"
)

type Points struct {
	ledger *ledger.Ledger
}

type BalanceResponse struct {
	Balance *genesis.HexOrDecimal256 `json:"balance"`
}

type SupplyResponse struct {
	Name        string                   `json:"name"`
	Symbol      string                   `json:"symbol"`
	TotalSupply *genesis.HexOrDecimal256 `json:"totalSupply"`
}

// TransferRequest is accepted for completeness; points are not transferable.
type TransferRequest struct {
	Caller thor.Address             `json:"caller"`
	To     thor.Address             `json:"to"`
	Amount *genesis.HexOrDecimal256 `json:"amount"`
}

func New(ledger *ledger.Ledger) *Points {
	return &Points{ledger}
}

func (p *Points) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	supply, err := p.ledger.PointsTotalSupply()
	if err != nil {
		return utils.Revert(err)
	}
	name, symbol := p.ledger.PointsMetadata()
	return utils.WriteJSON(w, &SupplyResponse{
		Name:        name,
		Symbol:      symbol,
		TotalSupply: (*genesis.HexOrDecimal256)(supply),
	})
}

func (p *Points) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	balance, err := p.ledger.PointsBalance(addr)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &BalanceResponse{(*genesis.HexOrDecimal256)(balance)})
}

func (p *Points) handleTransfer(_ http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Revert(p.ledger.TransferPoints(body.Caller, body.To, body.Amount.Int()))
}

func (p *Points) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /points").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetSupply))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("POST /points/transfer").
		HandlerFunc(utils.WrapHandlerFunc(p.handleTransfer))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /points/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetBalance))
}

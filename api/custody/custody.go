// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/thor"
)

type Custody struct {
	ledger *ledger.Ledger
}

type Token struct {
	TokenID  uint64       `json:"tokenId"`
	Owner    thor.Address `json:"owner"`
	Approved thor.Address `json:"approved"`
}

type SupplyResponse struct {
	TotalMinted uint64 `json:"totalMinted"`
}

type MintRequest struct {
	Caller thor.Address `json:"caller"`
	To     thor.Address `json:"to"`
}

type ApproveRequest struct {
	Caller   thor.Address `json:"caller"`
	Operator thor.Address `json:"operator"`
	TokenID  uint64       `json:"tokenId"`
}

type ApproveAllRequest struct {
	Caller   thor.Address `json:"caller"`
	Operator thor.Address `json:"operator"`
	Approved bool         `json:"approved"`
}

func New(ledger *ledger.Ledger) *Custody {
	return &Custody{ledger}
}

func (c *Custody) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	n, err := c.ledger.TotalMinted()
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &SupplyResponse{TotalMinted: n})
}

func (c *Custody) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["tokenId"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "tokenId"))
	}
	tok, err := c.ledger.Token(id)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &Token{TokenID: tok.ID, Owner: tok.Owner, Approved: tok.Approved})
}

func (c *Custody) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	id, err := c.ledger.MintToken(body.Caller, body.To)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{"tokenId": id})
}

func (c *Custody) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := c.ledger.ApproveToken(body.Caller, body.Operator, body.TokenID); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{"tokenId": body.TokenID, "approved": body.Operator})
}

func (c *Custody) handleApproveAll(w http.ResponseWriter, req *http.Request) error {
	var body ApproveAllRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := c.ledger.SetApprovalForAll(body.Caller, body.Operator, body.Approved); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{"operator": body.Operator, "approved": body.Approved})
}

func (c *Custody) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /custody").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetSupply))
	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("POST /custody/mint").
		HandlerFunc(utils.WrapHandlerFunc(c.handleMint))
	sub.Path("/approve").
		Methods(http.MethodPost).
		Name("POST /custody/approve").
		HandlerFunc(utils.WrapHandlerFunc(c.handleApprove))
	sub.Path("/approve-all").
		Methods(http.MethodPost).
		Name("POST /custody/approve-all").
		HandlerFunc(utils.WrapHandlerFunc(c.handleApproveAll))
	sub.Path("/{tokenId}").
		Methods(http.MethodGet).
		Name("GET /custody/{tokenId}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetToken))
}

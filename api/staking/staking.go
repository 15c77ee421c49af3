// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/thor"
)

type Staking struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Staking {
	return &Staking{ledger}
}

func parseTokenRequest(r *http.Request) (*TokenRequest, error) {
	var req TokenRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.TokenID == nil {
		return nil, utils.BadRequest(errors.New("body: tokenId is required"))
	}
	return &req, nil
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	body, err := parseTokenRequest(req)
	if err != nil {
		return err
	}
	if err := s.ledger.Stake(body.Caller, *body.TokenID); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{"tokenId": *body.TokenID})
}

func (s *Staking) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	minted, err := s.ledger.ClaimPoints(body.Caller)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &MintedResponse{amount(minted)})
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	body, err := parseTokenRequest(req)
	if err != nil {
		return err
	}
	minted, err := s.ledger.UnstakeByID(body.Caller, *body.TokenID)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &MintedResponse{amount(minted)})
}

func (s *Staking) handleUnstakeAll(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	minted, err := s.ledger.UnstakeAll(body.Caller)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &MintedResponse{amount(minted)})
}

func (s *Staking) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	views, err := s.ledger.Stakes(addr)
	if err != nil {
		return utils.Revert(err)
	}
	stakes := make([]*Stake, 0, len(views))
	for _, v := range views {
		stakes = append(stakes, convertStake(v))
	}
	return utils.WriteJSON(w, stakes)
}

func (s *Staking) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	view, err := s.ledger.StakeAt(addr, index)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, convertStake(view))
}

func (s *Staking) handleGetEarning(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	rate, err := s.ledger.PointsEarningPerDay(addr)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &EarningResponse{amount(rate)})
}

func (s *Staking) handleGetTotal(w http.ResponseWriter, _ *http.Request) error {
	n, err := s.ledger.TotalStaked()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"totalStaked": n})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /staking/stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /staking/claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /staking/unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/unstake-all").
		Methods(http.MethodPost).
		Name("POST /staking/unstake-all").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstakeAll))
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTotal))
	sub.Path("/{address}/stakes").
		Methods(http.MethodGet).
		Name("GET /staking/{address}/stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakes))
	sub.Path("/{address}/stakes/{index}").
		Methods(http.MethodGet).
		Name("GET /staking/{address}/stakes/{index}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/{address}/earning").
		Methods(http.MethodGet).
		Name("GET /staking/{address}/earning").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetEarning))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package classification

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/thor"
)

var logger = log.WithContext("pkg", "admin")

type Classification struct {
	ledger *ledger.Ledger
}

// ClassesRequest carries either parallel tokenIds/classes arrays or pairs.
type ClassesRequest struct {
	Caller thor.Address `json:"caller"`
	genesis.ClassesDoc
}

// RatesRequest carries either parallel classes/rates arrays or pairs.
type RatesRequest struct {
	Caller thor.Address `json:"caller"`
	genesis.RatesDoc
}

type AdminRequest struct {
	Caller   thor.Address `json:"caller"`
	NewAdmin thor.Address `json:"newAdmin"`
}

type ClassResponse struct {
	TokenID    uint64                   `json:"tokenId"`
	Class      uint64                   `json:"class"`
	RatePerDay *genesis.HexOrDecimal256 `json:"ratePerDay"`
}

type RateResponse struct {
	Class      uint64                   `json:"class"`
	RatePerDay *genesis.HexOrDecimal256 `json:"ratePerDay"`
}

func New(ledger *ledger.Ledger) *Classification {
	return &Classification{ledger}
}

func (c *Classification) handleSetClasses(w http.ResponseWriter, req *http.Request) error {
	var body ClassesRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	var err error
	switch {
	case len(body.Pairs) > 0:
		pairs, nerr := body.Normalize()
		if nerr != nil {
			return utils.BadRequest(nerr)
		}
		err = c.ledger.PopulateClassOf(body.Caller, pairs)
	default:
		err = c.ledger.SetClassOf(body.Caller, body.TokenIDs, body.Classes)
	}
	if err != nil {
		return utils.Revert(err)
	}
	logger.Debug("classes updated", "caller", body.Caller, "count", max(len(body.Pairs), len(body.TokenIDs)))
	return utils.WriteJSON(w, utils.M{"updated": max(len(body.Pairs), len(body.TokenIDs))})
}

func (c *Classification) handleSetRates(w http.ResponseWriter, req *http.Request) error {
	var body RatesRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	var err error
	switch {
	case len(body.Pairs) > 0:
		pairs, nerr := body.Normalize()
		if nerr != nil {
			return utils.BadRequest(nerr)
		}
		err = c.ledger.PopulateRatePerDay(body.Caller, pairs)
	default:
		rates := make([]*big.Int, 0, len(body.Rates))
		for _, r := range body.Rates {
			if r == nil {
				return utils.BadRequest(errors.New("body: rate must not be null"))
			}
			rates = append(rates, r.Int())
		}
		err = c.ledger.SetRatePerDay(body.Caller, body.Classes, rates)
	}
	if err != nil {
		return utils.Revert(err)
	}
	logger.Debug("rates updated", "caller", body.Caller, "count", max(len(body.Pairs), len(body.Classes)))
	return utils.WriteJSON(w, utils.M{"updated": max(len(body.Pairs), len(body.Classes))})
}

func (c *Classification) handleGetClass(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["tokenId"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "tokenId"))
	}
	class, rate, err := c.ledger.ClassOf(id)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &ClassResponse{
		TokenID:    id,
		Class:      class,
		RatePerDay: (*genesis.HexOrDecimal256)(rate),
	})
}

func (c *Classification) handleGetRate(w http.ResponseWriter, req *http.Request) error {
	class, err := strconv.ParseUint(mux.Vars(req)["class"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "class"))
	}
	rate, err := c.ledger.RatePerDay(class)
	if err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, &RateResponse{Class: class, RatePerDay: (*genesis.HexOrDecimal256)(rate)})
}

func (c *Classification) handleGetAdmin(w http.ResponseWriter, _ *http.Request) error {
	admin, err := c.ledger.ClassificationAdmin()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"admin": admin})
}

func (c *Classification) handleSetAdmin(w http.ResponseWriter, req *http.Request) error {
	var body AdminRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := c.ledger.SetClassificationAdmin(body.Caller, body.NewAdmin); err != nil {
		return utils.Revert(err)
	}
	logger.Info("classification admin changed", "admin", body.NewAdmin)
	return utils.WriteJSON(w, utils.M{"admin": body.NewAdmin})
}

func (c *Classification) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/classes").
		Methods(http.MethodPost).
		Name("POST /admin/classes").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetClasses))
	sub.Path("/classes/{tokenId}").
		Methods(http.MethodGet).
		Name("GET /admin/classes/{tokenId}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetClass))
	sub.Path("/rates").
		Methods(http.MethodPost).
		Name("POST /admin/rates").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetRates))
	sub.Path("/rates/{class}").
		Methods(http.MethodGet).
		Name("GET /admin/rates/{class}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetRate))
	sub.Path("/owner").
		Methods(http.MethodGet).
		Name("GET /admin/owner").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetAdmin))
	sub.Path("/owner").
		Methods(http.MethodPost).
		Name("POST /admin/owner").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetAdmin))
}

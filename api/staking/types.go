// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/thor"
)

type CallerRequest struct {
	Caller thor.Address `json:"caller"`
}

type TokenRequest struct {
	Caller  thor.Address `json:"caller"`
	TokenID *uint64      `json:"tokenId"`
}

type MintedResponse struct {
	Minted *genesis.HexOrDecimal256 `json:"minted"`
}

type Stake struct {
	TokenID       uint64                   `json:"tokenId"`
	LastSettledAt uint64                   `json:"lastSettledAt"`
	Owed          *genesis.HexOrDecimal256 `json:"owed"`
}

type EarningResponse struct {
	PointsPerDay *genesis.HexOrDecimal256 `json:"pointsPerDay"`
}

func amount(v *big.Int) *genesis.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*genesis.HexOrDecimal256)(v)
}

func convertStake(v ledger.StakeView) *Stake {
	return &Stake{
		TokenID:       v.TokenID,
		LastSettledAt: v.LastSettledAt,
		Owed:          amount(v.Owed),
	}
}

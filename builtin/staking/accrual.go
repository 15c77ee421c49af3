// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/nftstaking/thor"
)

// Stake records a token held in custody for its depositor.
type Stake struct {
	TokenID       uint64
	LastSettledAt uint64 // unix seconds of the last settlement or the deposit
}

// ElapsedDays returns the whole days between from and now.
// A clock that went backwards yields zero.
func ElapsedDays(from, now uint64) uint64 {
	if now <= from {
		return 0
	}
	return (now - from) / thor.SecondsPerDay
}

// RewardOwed returns the points accrued by the stake since its last settlement
// at the given daily rate. Partial days earn nothing.
func RewardOwed(stake Stake, now uint64, rate *big.Int) *big.Int {
	days := ElapsedDays(stake.LastSettledAt, now)
	if days == 0 || rate == nil || rate.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Mul(rate, new(big.Int).SetUint64(days))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/builtin/solidity"
	"github.com/vechain/nftstaking/thor"
)

var stakesSlot = thor.Blake2b([]byte("stakesByUser"))

// RateSource resolves the daily rate of a token.
type RateSource interface {
	RateOf(tokenID uint64) (*big.Int, error)
}

// Registry holds the ordered stake list of every user.
type Registry struct {
	ctx   *solidity.Context
	rates RateSource
}

func NewRegistry(ctx *solidity.Context, rates RateSource) *Registry {
	return &Registry{ctx: ctx, rates: rates}
}

func (r *Registry) list(user thor.Address) *solidity.Array[Stake] {
	return solidity.NewArray[Stake](r.ctx, thor.Blake2b(user.Bytes(), stakesSlot.Bytes()))
}

// Add appends a record settled at now. Duplicates are not checked.
func (r *Registry) Add(user thor.Address, tokenID, now uint64) error {
	_, err := r.list(user).Push(Stake{TokenID: tokenID, LastSettledAt: now})
	return err
}

// FindIndex returns the index of the first record of the token.
func (r *Registry) FindIndex(user thor.Address, tokenID uint64) (uint64, bool, error) {
	stakes, err := r.list(user).All()
	if err != nil {
		return 0, false, err
	}
	for i, s := range stakes {
		if s.TokenID == tokenID {
			return uint64(i), true, nil
		}
	}
	return 0, false, nil
}

func (r *Registry) Len(user thor.Address) (uint64, error) {
	return r.list(user).Len()
}

func (r *Registry) At(user thor.Address, index uint64) (Stake, error) {
	return r.list(user).Get(index)
}

// All returns the records in their current order.
func (r *Registry) All(user thor.Address) ([]Stake, error) {
	return r.list(user).All()
}

// Owed returns what the record would settle for at now, without writing.
func (r *Registry) Owed(stake Stake, now uint64) (*big.Int, error) {
	rate, err := r.rates.RateOf(stake.TokenID)
	if err != nil {
		return nil, err
	}
	return RewardOwed(stake, now, rate), nil
}

// SettleAndTouch returns the reward owed by the record and restarts its accrual at now.
func (r *Registry) SettleAndTouch(user thor.Address, index, now uint64) (*big.Int, error) {
	list := r.list(user)
	stake, err := list.Get(index)
	if err != nil {
		return nil, err
	}
	owed, err := r.Owed(stake, now)
	if err != nil {
		return nil, err
	}
	if now > stake.LastSettledAt {
		stake.LastSettledAt = now
	}
	if err := list.Set(index, stake); err != nil {
		return nil, errors.WithMessage(err, "touch stake")
	}
	return owed, nil
}

// RemoveAt moves the last record into index and shrinks the list by one.
func (r *Registry) RemoveAt(user thor.Address, index uint64) error {
	list := r.list(user)
	n, err := list.Len()
	if err != nil {
		return err
	}
	if index >= n {
		return solidity.ErrIndexOutOfRange
	}
	last, err := list.Pop()
	if err != nil {
		return err
	}
	if index == n-1 {
		return nil
	}
	return list.Set(index, last)
}

// Clear truncates the list to zero length.
func (r *Registry) Clear(user thor.Address) error {
	return r.list(user).Clear()
}

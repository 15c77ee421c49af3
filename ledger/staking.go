// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

// Stake deposits the token of the caller.
func (l *Ledger) Stake(caller thor.Address, tokenID uint64) error {
	return l.mutate("stake", func(st *state.State, now uint64) error {
		return builtin.Staking.WithState(st).Stake(caller, tokenID, now)
	})
}

// ClaimPoints mints every point owed to the caller.
func (l *Ledger) ClaimPoints(caller thor.Address) (minted *big.Int, err error) {
	err = l.mutate("claim", func(st *state.State, now uint64) error {
		minted, err = builtin.Staking.WithState(st).ClaimPoints(caller, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	recordMinted(minted)
	return minted, nil
}

// UnstakeByID withdraws one token of the caller.
func (l *Ledger) UnstakeByID(caller thor.Address, tokenID uint64) (minted *big.Int, err error) {
	err = l.mutate("unstake", func(st *state.State, now uint64) error {
		minted, err = builtin.Staking.WithState(st).UnstakeByID(caller, tokenID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	recordMinted(minted)
	return minted, nil
}

// UnstakeAll withdraws every token of the caller.
func (l *Ledger) UnstakeAll(caller thor.Address) (minted *big.Int, err error) {
	err = l.mutate("unstake_all", func(st *state.State, now uint64) error {
		minted, err = builtin.Staking.WithState(st).UnstakeAll(caller, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	recordMinted(minted)
	return minted, nil
}

// PointsEarningPerDay returns the daily accrual of the user.
func (l *Ledger) PointsEarningPerDay(user thor.Address) (rate *big.Int, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		rate, err = builtin.Staking.WithState(st).PointsEarningPerDay(user)
		return err
	})
	return
}

// Stakes lists the user's records with what each would settle for now.
func (l *Ledger) Stakes(user thor.Address) (views []StakeView, err error) {
	err = l.view(func(st *state.State, now uint64) error {
		s := builtin.Staking.WithState(st)
		stakes, err := s.StakesOf(user)
		if err != nil {
			return err
		}
		views = make([]StakeView, 0, len(stakes))
		for _, stake := range stakes {
			owed, err := s.Registry().Owed(stake, now)
			if err != nil {
				return err
			}
			views = append(views, StakeView{Stake: stake, Owed: owed})
		}
		return nil
	})
	return
}

// StakeAt returns the user's record at index.
func (l *Ledger) StakeAt(user thor.Address, index uint64) (view StakeView, err error) {
	err = l.view(func(st *state.State, now uint64) error {
		s := builtin.Staking.WithState(st)
		stake, err := s.StakeAt(user, index)
		if err != nil {
			return err
		}
		owed, err := s.Registry().Owed(stake, now)
		if err != nil {
			return err
		}
		view = StakeView{Stake: stake, Owed: owed}
		return nil
	})
	return
}

// TotalStaked returns the count of tokens in custody of the ledger.
func (l *Ledger) TotalStaked() (n uint64, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		n, err = builtin.Staking.WithState(st).TotalStaked()
		return err
	})
	return
}

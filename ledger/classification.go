// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/builtin/classification"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

func (l *Ledger) SetClassOf(caller thor.Address, tokenIDs, classes []uint64) error {
	return l.mutate("set_class", func(st *state.State, _ uint64) error {
		return builtin.Classification.WithState(st).SetClassOf(caller, tokenIDs, classes)
	})
}

func (l *Ledger) PopulateClassOf(caller thor.Address, pairs []classification.TokenClass) error {
	return l.mutate("set_class", func(st *state.State, _ uint64) error {
		return builtin.Classification.WithState(st).PopulateClassOf(caller, pairs)
	})
}

func (l *Ledger) SetRatePerDay(caller thor.Address, classes []uint64, rates []*big.Int) error {
	return l.mutate("set_rate", func(st *state.State, _ uint64) error {
		return builtin.Classification.WithState(st).SetRatePerDay(caller, classes, rates)
	})
}

func (l *Ledger) PopulateRatePerDay(caller thor.Address, pairs []classification.ClassRate) error {
	return l.mutate("set_rate", func(st *state.State, _ uint64) error {
		return builtin.Classification.WithState(st).PopulateRatePerDay(caller, pairs)
	})
}

func (l *Ledger) SetClassificationAdmin(caller, newAdmin thor.Address) error {
	return l.mutate("set_admin", func(st *state.State, _ uint64) error {
		return builtin.Classification.WithState(st).SetAdmin(caller, newAdmin)
	})
}

// ClassOf returns the class of the token and the daily rate of that class.
func (l *Ledger) ClassOf(tokenID uint64) (class uint64, rate *big.Int, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		c := builtin.Classification.WithState(st)
		if class, err = c.ClassOf(tokenID); err != nil {
			return err
		}
		rate, err = c.RatePerDay(class)
		return err
	})
	return
}

func (l *Ledger) RatePerDay(class uint64) (rate *big.Int, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		rate, err = builtin.Classification.WithState(st).RatePerDay(class)
		return err
	})
	return
}

func (l *Ledger) ClassificationAdmin() (admin thor.Address, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		admin, err = builtin.Classification.WithState(st).Admin()
		return err
	})
	return
}

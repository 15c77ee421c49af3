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

func (l *Ledger) PointsBalance(addr thor.Address) (balance *big.Int, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		balance, err = builtin.Points.WithState(st).BalanceOf(addr)
		return err
	})
	return
}

func (l *Ledger) PointsTotalSupply() (supply *big.Int, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		supply, err = builtin.Points.WithState(st).TotalSupply()
		return err
	})
	return
}

// TransferPoints always fails, points are bound to the account they were minted to.
func (l *Ledger) TransferPoints(caller, to thor.Address, amount *big.Int) error {
	return l.mutate("points_transfer", func(st *state.State, _ uint64) error {
		return builtin.Points.WithState(st).Transfer(caller, to, amount)
	})
}

// PointsMetadata returns the display name and symbol of the points currency.
func (l *Ledger) PointsMetadata() (name, symbol string) {
	_ = l.view(func(st *state.State, _ uint64) error {
		p := builtin.Points.WithState(st)
		name, symbol = p.Name(), p.Symbol()
		return nil
	})
	return
}

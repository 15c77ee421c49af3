// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package points implements the reward currency. Points are minted by the
// staking ledger only and can never change hands.
package points

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/builtin/solidity"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

var (
	minterSlot      = thor.Blake2b([]byte("staking"))
	totalSupplySlot = thor.Blake2b([]byte("totalSupply"))
	balancesSlot    = thor.Blake2b([]byte("balances"))
)

var (
	errOnlyMinter = reverts.New(reverts.Unauthorized, "only staking contract can mint")
	errNotAllowed = reverts.New(reverts.TransferDisabled, "not allowed")
)

// Points implements the non-transferable points currency.
type Points struct {
	addr        thor.Address
	minter      *solidity.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[thor.Address, *big.Int]
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Points {
	ctx := solidity.NewContext(addr, state)
	return &Points{
		addr:        addr,
		minter:      solidity.NewAddress(ctx, minterSlot),
		totalSupply: solidity.NewUint256(ctx, totalSupplySlot),
		balances:    solidity.NewMapping[thor.Address, *big.Int](ctx, balancesSlot),
	}
}

// InitMinter binds the only identity allowed to mint. Used at genesis.
func (p *Points) InitMinter(minter thor.Address) {
	p.minter.Set(minter)
}

// Minter returns the staking identity.
func (p *Points) Minter() (thor.Address, error) {
	return p.minter.Get()
}

func (p *Points) Name() string   { return "Point" }
func (p *Points) Symbol() string { return "POINT" }

// Mint credits amount to the account. Zero amount is a no-op.
func (p *Points) Mint(caller, to thor.Address, amount *big.Int) error {
	ok, err := p.minter.Is(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errOnlyMinter
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid mint amount")
	}
	if amount.Sign() == 0 {
		return nil
	}

	balance, err := p.balances.Get(to)
	if err != nil {
		return err
	}
	if err := p.balances.Set(to, balance.Add(balance, amount)); err != nil {
		return errors.WithMessage(err, "set balance")
	}
	return p.totalSupply.Add(amount)
}

func (p *Points) BalanceOf(addr thor.Address) (*big.Int, error) {
	return p.balances.Get(addr)
}

func (p *Points) TotalSupply() (*big.Int, error) {
	return p.totalSupply.Get()
}

// Transfer always fails.
func (p *Points) Transfer(_, _ thor.Address, _ *big.Int) error {
	return errNotAllowed
}

// TransferFrom always fails.
func (p *Points) TransferFrom(_, _, _ thor.Address, _ *big.Int) error {
	return errNotAllowed
}

// Approve always fails.
func (p *Points) Approve(_, _ thor.Address, _ *big.Int) error {
	return errNotAllowed
}

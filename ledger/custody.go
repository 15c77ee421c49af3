// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

// Token describes the custody of one token.
type Token struct {
	ID       uint64
	Owner    thor.Address
	Approved thor.Address
}

func (l *Ledger) Token(tokenID uint64) (tok Token, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		c := builtin.Custody.WithState(st)
		owner, err := c.OwnerOf(tokenID)
		if err != nil {
			return err
		}
		approved, err := c.GetApproved(tokenID)
		if err != nil {
			return err
		}
		tok = Token{ID: tokenID, Owner: owner, Approved: approved}
		return nil
	})
	return
}

// TotalMinted returns the count of tokens ever minted, which is also the next token id.
func (l *Ledger) TotalMinted() (n uint64, err error) {
	err = l.view(func(st *state.State, _ uint64) error {
		n, err = builtin.Custody.WithState(st).TotalMinted()
		return err
	})
	return
}

// MintToken creates a token for the receiver. Only the custody admin may mint.
func (l *Ledger) MintToken(caller, to thor.Address) (id uint64, err error) {
	err = l.mutate("token_mint", func(st *state.State, _ uint64) error {
		id, err = builtin.Custody.WithState(st).Mint(caller, to)
		return err
	})
	return
}

func (l *Ledger) ApproveToken(caller, operator thor.Address, tokenID uint64) error {
	return l.mutate("token_approve", func(st *state.State, _ uint64) error {
		return builtin.Custody.WithState(st).Approve(caller, operator, tokenID)
	})
}

func (l *Ledger) SetApprovalForAll(caller, operator thor.Address, approved bool) error {
	return l.mutate("token_approve_all", func(st *state.State, _ uint64) error {
		return builtin.Custody.WithState(st).SetApprovalForAll(caller, operator, approved)
	})
}

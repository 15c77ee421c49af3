// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/nftstaking/thor"
)

// Address is an address held in a single slot. The zero address means unset.
type Address struct {
	context *Context
	pos     thor.Bytes32
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (thor.Address, error) {
	word, err := a.context.load(a.pos)
	if err != nil {
		return thor.Address{}, err
	}
	return thor.BytesToAddress(word.Bytes()), nil
}

// Set stores addr. Setting the zero address clears the slot.
func (a *Address) Set(addr thor.Address) {
	a.context.store(a.pos, thor.BytesToBytes32(addr.Bytes()))
}

// Is reports whether the slot is set and holds addr.
func (a *Address) Is(addr thor.Address) (bool, error) {
	stored, err := a.Get()
	if err != nil {
		return false, err
	}
	return !stored.IsZero() && stored == addr, nil
}

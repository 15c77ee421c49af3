// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

// Context is the storage of one builtin account within a state.
type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{address: address, state: state}
}

func (c *Context) Address() thor.Address { return c.address }

func (c *Context) load(pos thor.Bytes32) (thor.Bytes32, error) {
	return c.state.GetStorage(c.address, pos)
}

func (c *Context) store(pos thor.Bytes32, word thor.Bytes32) {
	c.state.SetStorage(c.address, pos, word)
}

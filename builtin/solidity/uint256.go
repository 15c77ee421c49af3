// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/thor"
)

var errUnderflow = errors.New("uint256 underflow")

// Uint256 is a wrapper for storage and retrieval of an uint256.
// Values wider than 256 bits are truncated to fit into thor.Bytes32.
type Uint256 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	word, err := u.context.load(u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(word.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.store(u.pos, thor.BytesToBytes32(value.Bytes()))
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	u.Set(storage.Add(storage, value))
	return nil
}

// Sub fails without writing if the result would be negative.
func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Cmp(value) < 0 {
		return errUnderflow
	}
	u.Set(storage.Sub(storage, value))
	return nil
}

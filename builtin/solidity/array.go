// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/thor"
)

// ErrIndexOutOfRange is returned on access beyond the array length.
var ErrIndexOutOfRange = errors.New("array index out of range")

// Array is a dynamic array, like a storage array in Solidity.
// The length lives at the base position, elements at hashed positions derived from it.
type Array[V any] struct {
	length   *Uint256
	elements *Mapping[Uint64Key, V]
}

func NewArray[V any](context *Context, pos thor.Bytes32) *Array[V] {
	return &Array[V]{
		length:   NewUint256(context, pos),
		elements: NewMapping[Uint64Key, V](context, pos),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (a *Array[V]) setLen(n uint64) {
	a.length.Set(new(big.Int).SetUint64(n))
}

func (a *Array[V]) Get(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return
	}
	if i >= n {
		err = ErrIndexOutOfRange
		return
	}
	return a.elements.Get(Uint64Key(i))
}

func (a *Array[V]) Set(i uint64, value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if i >= n {
		return ErrIndexOutOfRange
	}
	return a.elements.Set(Uint64Key(i), value)
}

// Push appends value and returns its index.
func (a *Array[V]) Push(value V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.elements.Set(Uint64Key(n), value); err != nil {
		return 0, err
	}
	a.setLen(n + 1)
	return n, nil
}

// Pop removes the last element and returns it.
func (a *Array[V]) Pop() (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return
	}
	if n == 0 {
		err = ErrIndexOutOfRange
		return
	}
	if value, err = a.elements.Get(Uint64Key(n - 1)); err != nil {
		return
	}
	a.elements.Delete(Uint64Key(n - 1))
	a.setLen(n - 1)
	return
}

// All returns the elements in index order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	all := make([]V, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := a.elements.Get(Uint64Key(i))
		if err != nil {
			return nil, err
		}
		all = append(all, v)
	}
	return all, nil
}

// Clear removes every element.
func (a *Array[V]) Clear() error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		a.elements.Delete(Uint64Key(i))
	}
	a.setLen(0)
	return nil
}

// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/stackedmap"
	"github.com/vechain/nftstaking/thor"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return "state: " + e.cause.Error()
}

// Cause returns the underlying error.
func (e *Error) Cause() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, 20+32)
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// State manages contract storage slots.
// Writes are journaled in memory and only reach the store through Stage.Commit.
type State struct {
	store kv.Store
	cache *slotCache
	sm    *stackedmap.StackedMap[storageKey, []byte]
}

// New create a state object over the store. The cache is shared between
// states created from the same store and may be nil.
func New(store kv.Store, lru *slotCache) *State {
	s := &State{
		store: store,
		cache: lru,
	}
	s.sm = stackedmap.New(func(key storageKey) ([]byte, bool, error) {
		v, err := s.load(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

func (s *State) load(key storageKey) ([]byte, error) {
	if s.cache == nil {
		return s.loadFromStore(key)
	}
	return s.cache.GetOrLoad(key, s.loadFromStore)
}

func (s *State) loadFromStore(key storageKey) ([]byte, error) {
	data, err := s.store.Get(key.bytes())
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// GetRawStorage returns the raw bytes stored in the slot, nil if absent.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw bytes of the slot. Empty value deletes the slot.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw []byte) {
	cpy := append([]byte(nil), raw...)
	s.sm.Put(storageKey{addr, key}, cpy)
}

// GetStorage returns the slot value as a word.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if len(raw) == 0 {
		return thor.Bytes32{}, nil
	}
	var content []byte
	if err := rlp.DecodeBytes(raw, &content); err != nil {
		return thor.Bytes32{}, &Error{errors.Wrap(err, "decode storage")}
	}
	return thor.BytesToBytes32(content), nil
}

// SetStorage sets the slot to a word. A zero word deletes the slot.
func (s *State) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	raw, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, raw)
}

// EncodeStorage sets the slot to the bytes produced by enc.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage passes the raw slot bytes to dec.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the cumulative changes since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		changes[k] = v
		return true
	})
	return &Stage{
		store:   s.store,
		cache:   s.cache,
		changes: changes,
	}
}

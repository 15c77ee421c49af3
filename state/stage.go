// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/nftstaking/kv"
)

// Stage holds the pending slot changes of a state.
type Stage struct {
	store   kv.Store
	cache   *slotCache
	changes map[storageKey][]byte
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in a single batch.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	err := s.store.Batch(func(p kv.Putter) error {
		for k, v := range s.changes {
			if len(v) == 0 {
				if err := p.Delete(k.bytes()); err != nil {
					return err
				}
				continue
			}
			if err := p.Put(k.bytes(), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if s.cache != nil {
			for k := range s.changes {
				s.cache.Remove(k)
			}
		}
		return &Error{err}
	}
	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	metricSlotWrites().Add(int64(len(s.changes)))
	return nil
}

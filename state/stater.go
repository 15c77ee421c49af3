// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/nftstaking/cache"
	"github.com/vechain/nftstaking/kv"
)

const slotCacheSize = 16384

// storageBucket prefixes every slot key in the backing store.
const storageBucket = kv.Bucket("s")

type slotCache = cache.LRU[storageKey, []byte]

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *slotCache
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	lru, _ := cache.NewLRU[storageKey, []byte](slotCacheSize)
	return &Stater{
		store: storageBucket.NewStore(store),
		cache: lru,
	}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return New(s.store, s.cache)
}

// CacheStats returns the slot cache lookup counters.
func (s *Stater) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a typed, size-bounded cache that counts lookups.
type LRU[K comparable, V any] struct {
	c         *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU creates a cache holding at most size entries. size must be positive.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c: c}, nil
}

func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.c.Get(key); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

func (l *LRU[K, V]) Add(key K, value V) { l.c.Add(key, value) }

func (l *LRU[K, V]) Remove(key K) { l.c.Remove(key) }

func (l *LRU[K, V]) Contains(key K) bool { return l.c.Contains(key) }

func (l *LRU[K, V]) Len() int { return l.c.Len() }

// GetOrLoad returns the cached value, or calls load and caches its result.
// Failed loads are not cached.
func (l *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, nil
	}
	l.miss.Add(1)
	v, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	l.c.Add(key, v)
	return v, nil
}

// Stats is a snapshot of the lookup counters of GetOrLoad.
type Stats struct {
	Hit, Miss int64
}

// HitRate returns hits over lookups, 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	if total := s.Hit + s.Miss; total > 0 {
		return float64(s.Hit) / float64(total)
	}
	return 0
}

func (l *LRU[K, V]) Stats() Stats {
	return Stats{Hit: l.hit.Load(), Miss: l.miss.Load()}
}

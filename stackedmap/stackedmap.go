// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

// Source loads a value missing from every level.
type Source[K comparable, V any] func(key K) (value V, exist bool, err error)

// StackedMap is a stack of write layers over a read-only source.
// Reads see the newest layer holding the key. Popping a layer reverts
// every Put made since the matching Push.
type StackedMap[K comparable, V any] struct {
	src    Source[K, V]
	layers []map[K]V
	// journal length when each layer was pushed
	marks   []int
	journal []entry[K, V]
	// layer indexes holding each key, innermost last
	owners map[K][]int
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a map with one empty layer over src.
func New[K comparable, V any](src Source[K, V]) *StackedMap[K, V] {
	sm := &StackedMap[K, V]{
		src:    src,
		owners: make(map[K][]int),
	}
	sm.Push()
	return sm
}

// Depth returns the number of layers.
func (sm *StackedMap[K, V]) Depth() int {
	return len(sm.layers)
}

// Push adds a layer and returns the depth before it.
func (sm *StackedMap[K, V]) Push() int {
	sm.layers = append(sm.layers, make(map[K]V))
	sm.marks = append(sm.marks, len(sm.journal))
	return len(sm.layers) - 1
}

// Pop drops the top layer with all its writes.
func (sm *StackedMap[K, V]) Pop() {
	top := len(sm.layers) - 1
	for key := range sm.layers[top] {
		owners := sm.owners[key]
		if owners = owners[:len(owners)-1]; len(owners) == 0 {
			delete(sm.owners, key)
		} else {
			sm.owners[key] = owners
		}
	}
	sm.journal = sm.journal[:sm.marks[top]]
	sm.layers = sm.layers[:top]
	sm.marks = sm.marks[:top]
}

// PopTo pops layers until depth remain.
func (sm *StackedMap[K, V]) PopTo(depth int) {
	for len(sm.layers) > depth {
		sm.Pop()
	}
}

// Get returns the newest value of key, falling back to the source.
func (sm *StackedMap[K, V]) Get(key K) (V, bool, error) {
	if owners, ok := sm.owners[key]; ok {
		return sm.layers[owners[len(owners)-1]][key], true, nil
	}
	return sm.src(key)
}

// Put writes into the top layer. It panics when no layer is left.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	top := len(sm.layers) - 1
	if _, ok := sm.layers[top][key]; !ok {
		sm.owners[key] = append(sm.owners[key], top)
	}
	sm.layers[top][key] = value
	sm.journal = append(sm.journal, entry[K, V]{key, value})
}

// Journal visits every live Put, oldest first, until cb returns false.
func (sm *StackedMap[K, V]) Journal(cb func(key K, value V) bool) {
	for _, e := range sm.journal {
		if !cb(e.key, e.value) {
			return
		}
	}
}

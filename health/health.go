// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Commit struct {
	Op string    `json:"op"`
	At time.Time `json:"at"`
}

type Status struct {
	Healthy     bool    `json:"healthy"`
	Initialized bool    `json:"initialized"`
	LastCommit  *Commit `json:"lastCommit"`
	Error       string  `json:"error,omitempty"`
}

type Health struct {
	lock        sync.RWMutex
	initialized bool
	lastCommit  *Commit
}

func New() *Health {
	return &Health{}
}

// Committed records the latest successful ledger operation.
func (h *Health) Committed(op string, at time.Time) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = &Commit{Op: op, At: at}
}

func (h *Health) Initialized(initialized bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.initialized = initialized
}

// Status reports healthy once the ledger is initialized and the storage probe passes.
func (h *Health) Status(probe func() error) *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{
		Initialized: h.initialized,
		LastCommit:  h.lastCommit,
	}
	if probe != nil {
		if err := probe(); err != nil {
			status.Error = err.Error()
			return status
		}
	}
	status.Healthy = h.initialized
	return status
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger serializes staking operations and commits each one atomically.
package ledger

import (
	"math/big"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/builtin/staking"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
)

var logger = log.WithContext("pkg", "ledger")

// Ledger runs every operation under one lock, on a fresh state, inside a checkpoint.
// A failed operation leaves no trace; a successful one is written in a single batch.
type Ledger struct {
	mu     sync.Mutex
	stater *state.Stater
	clock  clockwork.Clock

	onCommit func(op string, at time.Time)
}

// New creates a ledger over the stater, reading time from clock.
func New(stater *state.Stater, clock clockwork.Clock) *Ledger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ledger{
		stater: stater,
		clock:  clock,
	}
}

// OnCommit registers fn to be called after every committed operation.
// It must be set before the ledger is shared.
func (l *Ledger) OnCommit(fn func(op string, at time.Time)) {
	l.onCommit = fn
}

// Now returns the ledger time in unix seconds.
func (l *Ledger) Now() uint64 {
	t := l.clock.Now().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}

func (l *Ledger) mutate(op string, fn func(st *state.State, now uint64) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	defer func() {
		metricOpsDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	st := l.stater.NewState()
	now := l.Now()
	rev := st.NewCheckpoint()

	if err := fn(st, now); err != nil {
		st.RevertTo(rev)
		status := "error"
		if reverts.IsRevertErr(err) {
			status = "reverted"
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			logger.Warn("operation failed", "op", op, "err", err)
		}
		metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
		return err
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": "error"})
		logger.Error("failed to commit", "op", op, "err", err)
		return errors.Wrap(err, "commit")
	}
	metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": "success"})
	l.updateStakedGauge(st)
	logger.Trace("operation committed", "op", op, "slots", stage.Len())
	if l.onCommit != nil {
		l.onCommit(op, l.clock.Now())
	}
	return nil
}

func (l *Ledger) view(fn func(st *state.State, now uint64) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.stater.NewState(), l.Now())
}

// Init applies fn to an empty ledger state and commits it. Used at genesis.
func (l *Ledger) Init(fn func(st *state.State) error) error {
	return l.Update("init", fn)
}

// Update runs fn as one atomic operation labelled op. It serves offline
// tooling such as bulk imports that work on the contracts directly.
func (l *Ledger) Update(op string, fn func(st *state.State) error) error {
	return l.mutate(op, func(st *state.State, _ uint64) error {
		return fn(st)
	})
}

// Inspect runs fn against a read-only view of the current state.
func (l *Ledger) Inspect(fn func(st *state.State) error) error {
	return l.view(func(st *state.State, _ uint64) error {
		return fn(st)
	})
}

func (l *Ledger) updateStakedGauge(st *state.State) {
	if n, err := builtin.Staking.WithState(st).TotalStaked(); err == nil {
		metricStakedTokens().Set(int64(n))
	}
}

func recordMinted(amount *big.Int) {
	if amount.IsInt64() && amount.Sign() > 0 {
		metricPointsMinted().Add(amount.Int64())
	}
}

// StakeView is a stake record with the points it would settle for now.
type StakeView struct {
	staking.Stake
	Owed *big.Int
}

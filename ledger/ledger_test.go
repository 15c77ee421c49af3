// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/builtin/classification"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var (
	admin = thor.BytesToAddress([]byte("admin"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	start = time.Unix(1_700_000_000, 0)
	day   = 24 * time.Hour
)

func newLedger(t *testing.T) (*Ledger, clockwork.FakeClock, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(start)
	l := New(state.NewStater(db), clock)
	require.NoError(t, l.Init(func(st *state.State) error {
		builtin.Classification.WithState(st).InitAdmin(admin)
		builtin.Custody.WithState(st).InitAdmin(admin)
		builtin.Points.WithState(st).InitMinter(builtin.Staking.Address)
		return nil
	}))
	return l, clock, db
}

func mintApproved(t *testing.T, l *Ledger, owner thor.Address, class uint64) uint64 {
	id, err := l.MintToken(admin, owner)
	require.NoError(t, err)
	require.NoError(t, l.SetClassOf(admin, []uint64{id}, []uint64{class}))
	require.NoError(t, l.ApproveToken(owner, builtin.Staking.Address, id))
	return id
}

func TestClaimScenario(t *testing.T) {
	l, clock, _ := newLedger(t)
	require.NoError(t, l.PopulateRatePerDay(admin, []classification.ClassRate{{Class: 1, Rate: big.NewInt(200)}}))
	id := mintApproved(t, l, alice, 1)

	require.NoError(t, l.Stake(alice, id))
	clock.Advance(day - time.Second)

	minted, err := l.ClaimPoints(alice)
	require.NoError(t, err)
	assert.Equal(t, 0, minted.Sign())

	clock.Advance(time.Second)
	views, err := l.Stakes(alice)
	require.NoError(t, err)
	require.Len(t, views, 1)
	// the early claim restarted accrual
	assert.Equal(t, 0, views[0].Owed.Sign())

	clock.Advance(day)
	minted, err = l.ClaimPoints(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), minted)

	balance, err := l.PointsBalance(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), balance)
}

func TestUnstakeAllScenario(t *testing.T) {
	l, clock, _ := newLedger(t)
	require.NoError(t, l.SetRatePerDay(admin, []uint64{1, 2}, []*big.Int{big.NewInt(200), big.NewInt(400)}))
	a := mintApproved(t, l, alice, 1)
	b := mintApproved(t, l, alice, 2)
	require.NoError(t, l.Stake(alice, a))
	require.NoError(t, l.Stake(alice, b))

	perDay, err := l.PointsEarningPerDay(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), perDay)

	clock.Advance(day)
	minted, err := l.UnstakeAll(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), minted)

	supply, err := l.PointsTotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), supply)

	tok, err := l.Token(b)
	require.NoError(t, err)
	assert.Equal(t, alice, tok.Owner)

	n, err := l.TotalStaked()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnstakeUnknownLeavesStateUntouched(t *testing.T) {
	l, clock, _ := newLedger(t)
	require.NoError(t, l.SetRatePerDay(admin, []uint64{1}, []*big.Int{big.NewInt(200)}))
	id := mintApproved(t, l, alice, 1)
	require.NoError(t, l.Stake(alice, id))
	clock.Advance(day)

	_, err := l.UnstakeByID(alice, 1)
	assert.True(t, reverts.Is(err, reverts.NotFound))

	view, err := l.StakeAt(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, id, view.TokenID)
	assert.Equal(t, uint64(start.Unix()), view.LastSettledAt)
	assert.Equal(t, big.NewInt(200), view.Owed)

	balance, _ := l.PointsBalance(alice)
	assert.Equal(t, 0, balance.Sign())
}

func TestFailedPopulateWritesNothing(t *testing.T) {
	l, _, _ := newLedger(t)

	err := l.PopulateClassOf(bob, []classification.TokenClass{{TokenID: 1, Class: 1}})
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	err = l.SetRatePerDay(admin, []uint64{1, 2}, []*big.Int{big.NewInt(1)})
	assert.True(t, reverts.Is(err, reverts.InvalidInput))

	class, rate, err := l.ClassOf(1)
	require.NoError(t, err)
	assert.Zero(t, class)
	assert.Equal(t, 0, rate.Sign())

	rate, err = l.RatePerDay(1)
	require.NoError(t, err)
	assert.Equal(t, 0, rate.Sign())
}

func TestCommitPersists(t *testing.T) {
	l, clock, db := newLedger(t)
	require.NoError(t, l.SetRatePerDay(admin, []uint64{1}, []*big.Int{big.NewInt(50)}))
	id := mintApproved(t, l, alice, 1)
	require.NoError(t, l.Stake(alice, id))

	// a second ledger over the same store sees the committed state
	reopened := New(state.NewStater(db), clock)
	clock.Advance(2 * day)
	minted, err := reopened.UnstakeByID(alice, id)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), minted)
}

func TestPointsTransferDisabled(t *testing.T) {
	l, _, _ := newLedger(t)
	err := l.TransferPoints(alice, bob, big.NewInt(1))
	assert.True(t, reverts.Is(err, reverts.TransferDisabled))
}

func TestAdminHandover(t *testing.T) {
	l, _, _ := newLedger(t)
	require.NoError(t, l.SetClassificationAdmin(admin, bob))

	got, err := l.ClassificationAdmin()
	require.NoError(t, err)
	assert.Equal(t, bob, got)
	assert.True(t, reverts.Is(l.SetClassOf(admin, []uint64{1}, []uint64{1}), reverts.Unauthorized))
}

func TestConcurrentClaims(t *testing.T) {
	l, clock, _ := newLedger(t)
	require.NoError(t, l.SetRatePerDay(admin, []uint64{1}, []*big.Int{big.NewInt(10)}))
	id := mintApproved(t, l, alice, 1)
	require.NoError(t, l.Stake(alice, id))
	clock.Advance(3 * day)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.ClaimPoints(alice)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// exactly one claim settled the three days
	balance, err := l.PointsBalance(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), balance)
}

func TestSetApprovalForAll(t *testing.T) {
	l, _, _ := newLedger(t)
	id, err := l.MintToken(admin, alice)
	require.NoError(t, err)

	require.NoError(t, l.SetApprovalForAll(alice, builtin.Staking.Address, true))
	require.NoError(t, l.Stake(alice, id))

	tok, err := l.Token(id)
	require.NoError(t, err)
	assert.Equal(t, builtin.Staking.Address, tok.Owner)
}

func TestOnCommitSkipsReverts(t *testing.T) {
	l, clock, _ := newLedger(t)

	var ops []string
	var last time.Time
	l.OnCommit(func(op string, at time.Time) {
		ops = append(ops, op)
		last = at
	})

	clock.Advance(time.Hour)
	_, err := l.MintToken(admin, alice)
	require.NoError(t, err)
	_, err = l.MintToken(alice, alice)
	require.Error(t, err)

	assert.Equal(t, []string{"token_mint"}, ops)
	assert.Equal(t, start.Add(time.Hour), last)
	name, symbol := l.PointsMetadata()
	assert.Equal(t, "Point", name)
	assert.Equal(t, "POINT", symbol)
}

func TestUpdateAndInspect(t *testing.T) {
	l, _, _ := newLedger(t)

	err := l.Update("import", func(st *state.State) error {
		return builtin.Classification.WithState(st).PopulateClassOf(admin, []classification.TokenClass{{TokenID: 7, Class: 2}})
	})
	require.NoError(t, err)

	err = l.Update("import", func(st *state.State) error {
		c := builtin.Classification.WithState(st)
		if err := c.PopulateClassOf(admin, []classification.TokenClass{{TokenID: 8, Class: 2}}); err != nil {
			return err
		}
		return c.PopulateClassOf(alice, []classification.TokenClass{{TokenID: 9, Class: 2}})
	})
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	var seven, eight uint64
	require.NoError(t, l.Inspect(func(st *state.State) error {
		c := builtin.Classification.WithState(st)
		seven, _ = c.ClassOf(7)
		eight, _ = c.ClassOf(8)
		return nil
	}))
	assert.Equal(t, uint64(2), seven)
	assert.Equal(t, uint64(0), eight)
}

// flakyStore fails every batch while down is set.
type flakyStore struct {
	kv.Store
	down bool
}

func (s *flakyStore) Batch(fn func(kv.Putter) error) error {
	if s.down {
		return errors.New("disk full")
	}
	return s.Store.Batch(fn)
}

func stakedGauge(t *testing.T) float64 {
	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	family, ok := families["nftstaking_metrics_ledger_staked_tokens"]
	require.True(t, ok)
	return family.GetMetric()[0].GetGauge().GetValue()
}

func TestStakedGaugeFollowsCommits(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := &flakyStore{Store: db}
	l := New(state.NewStater(store), clockwork.NewFakeClockAt(start))
	require.NoError(t, l.Init(func(st *state.State) error {
		builtin.Custody.WithState(st).InitAdmin(admin)
		builtin.Classification.WithState(st).InitAdmin(admin)
		builtin.Points.WithState(st).InitMinter(builtin.Staking.Address)
		return nil
	}))

	first := mintApproved(t, l, alice, 1)
	second := mintApproved(t, l, alice, 1)
	require.NoError(t, l.Stake(alice, first))
	assert.Equal(t, float64(1), stakedGauge(t))

	store.down = true
	assert.Error(t, l.Stake(alice, second))
	assert.Equal(t, float64(1), stakedGauge(t))

	total, err := l.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	store.down = false
	require.NoError(t, l.Stake(alice, second))
	assert.Equal(t, float64(2), stakedGauge(t))
}

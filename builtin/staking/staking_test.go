// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/nftstaking/builtin/classification"
	"github.com/vechain/nftstaking/builtin/custody"
	"github.com/vechain/nftstaking/builtin/points"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

const (
	day = thor.SecondsPerDay
	t0  = uint64(1_700_000_000)
)

var (
	admin = thor.BytesToAddress([]byte("admin"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

type testEnv struct {
	state   *state.State
	classes *classification.Classification
	nft     *custody.Custody
	points  *points.Points
	staking *Staking
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	env := &testEnv{
		state:   st,
		classes: classification.New(thor.ClassificationAddress, st),
		nft:     custody.New(thor.CustodyAddress, st),
		points:  points.New(thor.PointsAddress, st),
	}
	env.classes.InitAdmin(admin)
	env.nft.InitAdmin(admin)
	env.points.InitMinter(thor.StakingAddress)
	env.staking = New(thor.StakingAddress, st, env.nft, env.points, env.classes)
	return env
}

// mint gives a new token of the class to owner and approves the ledger for it.
func (e *testEnv) mint(t *testing.T, owner thor.Address, class uint64) uint64 {
	id, err := e.nft.Mint(admin, owner)
	require.NoError(t, err)
	require.NoError(t, e.classes.SetClassOf(admin, []uint64{id}, []uint64{class}))
	require.NoError(t, e.nft.Approve(owner, thor.StakingAddress, id))
	return id
}

func (e *testEnv) setRate(t *testing.T, class uint64, rate int64) {
	require.NoError(t, e.classes.SetRatePerDay(admin, []uint64{class}, []*big.Int{big.NewInt(rate)}))
}

func (e *testEnv) balance(t *testing.T, addr thor.Address) *big.Int {
	b, err := e.points.BalanceOf(addr)
	require.NoError(t, err)
	return b
}

func (e *testEnv) owner(t *testing.T, id uint64) thor.Address {
	o, err := e.nft.OwnerOf(id)
	require.NoError(t, err)
	return o
}

func tokenIDs(stakes []Stake) []uint64 {
	ids := make([]uint64, 0, len(stakes))
	for _, s := range stakes {
		ids = append(ids, s.TokenID)
	}
	return ids
}

func TestRewardOwed(t *testing.T) {
	rate := big.NewInt(200)
	stake := Stake{TokenID: 0, LastSettledAt: t0}

	assert.Equal(t, int64(0), RewardOwed(stake, t0, rate).Int64())
	assert.Equal(t, int64(0), RewardOwed(stake, t0+day-1, rate).Int64())
	assert.Equal(t, int64(200), RewardOwed(stake, t0+day, rate).Int64())
	assert.Equal(t, int64(400), RewardOwed(stake, t0+3*day-1, rate).Int64())
	// backward clock
	assert.Equal(t, int64(0), RewardOwed(stake, t0-5*day, rate).Int64())
	assert.Equal(t, int64(0), RewardOwed(stake, t0+10*day, nil).Int64())
	assert.Equal(t, uint64(2), ElapsedDays(t0, t0+2*day+7))
}

func TestClaimAfterOneDay(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	id := env.mint(t, alice, 1)
	require.Equal(t, uint64(0), id)

	require.NoError(t, env.staking.Stake(alice, id, t0))
	assert.Equal(t, thor.StakingAddress, env.owner(t, id))

	minted, err := env.staking.ClaimPoints(alice, t0+day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), minted)
	assert.Equal(t, big.NewInt(200), env.balance(t, alice))

	stake, err := env.staking.StakeAt(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, t0+day, stake.LastSettledAt)

	// nothing more owed within the same day
	minted, err = env.staking.ClaimPoints(alice, t0+2*day-1)
	require.NoError(t, err)
	assert.Equal(t, 0, minted.Sign())
}

func TestUnstakeAllTwoClasses(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	env.setRate(t, 2, 400)
	a := env.mint(t, alice, 1)
	b := env.mint(t, alice, 2)

	require.NoError(t, env.staking.Stake(alice, a, t0))
	require.NoError(t, env.staking.Stake(alice, b, t0))

	perDay, err := env.staking.PointsEarningPerDay(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), perDay)

	total, err := env.staking.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	minted, err := env.staking.UnstakeAll(alice, t0+day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), minted)
	assert.Equal(t, big.NewInt(600), env.balance(t, alice))
	assert.Equal(t, alice, env.owner(t, a))
	assert.Equal(t, alice, env.owner(t, b))

	stakes, err := env.staking.StakesOf(alice)
	require.NoError(t, err)
	assert.Empty(t, stakes)
	total, _ = env.staking.TotalStaked()
	assert.Zero(t, total)

	// empty list is a valid terminal state
	minted, err = env.staking.UnstakeAll(alice, t0+2*day)
	require.NoError(t, err)
	assert.Equal(t, 0, minted.Sign())
}

func TestUnstakeUnknownToken(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	id := env.mint(t, alice, 1)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	_, err := env.staking.UnstakeByID(alice, 1, t0+day)
	assert.True(t, reverts.Is(err, reverts.NotFound))
	assert.EqualError(t, err, "invalid token id provided")

	// another user's token is not found either
	_, err = env.staking.UnstakeByID(bob, id, t0+day)
	assert.True(t, reverts.Is(err, reverts.NotFound))

	stake, err := env.staking.StakeAt(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, Stake{TokenID: id, LastSettledAt: t0}, stake)
	assert.Equal(t, 0, env.balance(t, alice).Sign())
}

func TestUnstakeByID(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 10)
	ids := []uint64{env.mint(t, alice, 1), env.mint(t, alice, 1), env.mint(t, alice, 1)}
	for _, id := range ids {
		require.NoError(t, env.staking.Stake(alice, id, t0))
	}

	minted, err := env.staking.UnstakeByID(alice, ids[0], t0+3*day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), minted)
	assert.Equal(t, alice, env.owner(t, ids[0]))

	// last record moved into the hole
	stakes, err := env.staking.StakesOf(alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{ids[2], ids[1]}, tokenIDs(stakes))

	minted, err = env.staking.UnstakeByID(alice, ids[1], t0+3*day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), minted)
	stakes, _ = env.staking.StakesOf(alice)
	assert.Equal(t, []uint64{ids[2]}, tokenIDs(stakes))

	_, err = env.staking.StakeAt(alice, 1)
	assert.True(t, reverts.Is(err, reverts.NotFound))
}

func TestStakeRequiresApproval(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.nft.Mint(admin, alice)
	require.NoError(t, err)

	err = env.staking.Stake(alice, id, t0)
	assert.True(t, reverts.Is(err, reverts.NotApproved))
	assert.EqualError(t, err, "staking contract is not approved for the given token id")
	assert.Equal(t, alice, env.owner(t, id))

	require.NoError(t, env.nft.SetApprovalForAll(alice, thor.StakingAddress, true))
	require.NoError(t, env.staking.Stake(alice, id, t0))
}

func TestStakeByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	id := env.mint(t, alice, 1)

	err := env.staking.Stake(bob, id, t0)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	stakes, _ := env.staking.StakesOf(bob)
	assert.Empty(t, stakes)
}

func TestStakeTwice(t *testing.T) {
	env := newTestEnv(t)
	id := env.mint(t, alice, 1)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	err := env.staking.Stake(alice, id, t0+day)
	assert.True(t, reverts.Is(err, reverts.InvalidInput))
	n, _ := env.staking.Registry().Len(alice)
	assert.Equal(t, uint64(1), n)
}

func TestLedgerIdentityCannotStake(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	id := env.mint(t, alice, 1)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	// the ledger owns the staked token, so it would pass the approval check
	err := env.staking.Stake(thor.StakingAddress, id, t0)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	err = env.staking.Stake(thor.Address{}, id, t0)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	for _, caller := range []thor.Address{thor.StakingAddress, {}} {
		_, err = env.staking.ClaimPoints(caller, t0+day)
		assert.True(t, reverts.Is(err, reverts.Unauthorized))
		_, err = env.staking.UnstakeByID(caller, id, t0+day)
		assert.True(t, reverts.Is(err, reverts.Unauthorized))
		_, err = env.staking.UnstakeAll(caller, t0+day)
		assert.True(t, reverts.Is(err, reverts.Unauthorized))
	}

	n, err := env.staking.Registry().Len(thor.StakingAddress)
	require.NoError(t, err)
	assert.Zero(t, n)
	total, err := env.staking.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	minted, err := env.staking.ClaimPoints(alice, t0+day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), minted)
	supply, err := env.points.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), supply)
}

func TestUnclassifiedEarnsNothing(t *testing.T) {
	env := newTestEnv(t)
	id := env.mint(t, alice, 0)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	minted, err := env.staking.UnstakeByID(alice, id, t0+100*day)
	require.NoError(t, err)
	assert.Equal(t, 0, minted.Sign())
	assert.Equal(t, alice, env.owner(t, id))
}

func TestRateChangeAppliesToUnsettledDays(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 100)
	id := env.mint(t, alice, 1)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	env.setRate(t, 1, 300)
	pending, err := env.staking.PendingPoints(alice, t0+2*day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), pending)
}

type failingCustody struct {
	Custody
	failReturn bool
}

func (c *failingCustody) Transfer(operator, from, to thor.Address, tokenID uint64) error {
	if c.failReturn && from == thor.StakingAddress {
		return errors.New("custody unavailable")
	}
	return c.Custody.Transfer(operator, from, to, tokenID)
}

func TestRevertOnCustodyFailure(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	id := env.mint(t, alice, 1)

	fc := &failingCustody{Custody: env.nft}
	s := New(thor.StakingAddress, env.state, fc, env.points, env.classes)
	require.NoError(t, s.Stake(alice, id, t0))

	fc.failReturn = true
	rev := env.state.NewCheckpoint()
	_, err := s.UnstakeByID(alice, id, t0+day)
	require.Error(t, err)
	env.state.RevertTo(rev)

	// the mint performed before the failing transfer is gone
	assert.Equal(t, 0, env.balance(t, alice).Sign())
	assert.Equal(t, thor.StakingAddress, env.owner(t, id))
	stake, err := s.StakeAt(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, t0, stake.LastSettledAt)
}

type failingMinter struct{}

func (failingMinter) Mint(_, _ thor.Address, _ *big.Int) error {
	return reverts.New(reverts.Unauthorized, "only staking contract can mint")
}

func TestRevertOnMintFailure(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, 1, 200)
	id := env.mint(t, alice, 1)
	require.NoError(t, env.staking.Stake(alice, id, t0))

	s := New(thor.StakingAddress, env.state, env.nft, failingMinter{}, env.classes)
	rev := env.state.NewCheckpoint()
	_, err := s.ClaimPoints(alice, t0+day)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	env.state.RevertTo(rev)

	stake, err := s.StakeAt(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, t0, stake.LastSettledAt)
}

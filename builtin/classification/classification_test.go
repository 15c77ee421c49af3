// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package classification

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

var (
	admin    = thor.BytesToAddress([]byte("admin"))
	stranger = thor.BytesToAddress([]byte("stranger"))
)

func newClassification(t *testing.T) *Classification {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := New(thor.ClassificationAddress, state.NewStater(db).NewState())
	c.InitAdmin(admin)
	return c
}

func TestDefaults(t *testing.T) {
	c := newClassification(t)

	class, err := c.ClassOf(42)
	require.NoError(t, err)
	assert.Zero(t, class)

	rate, err := c.RateOf(42)
	require.NoError(t, err)
	assert.Equal(t, 0, rate.Sign())
}

func TestSetClassAndRate(t *testing.T) {
	c := newClassification(t)

	require.NoError(t, c.SetClassOf(admin, []uint64{0, 1, 0}, []uint64{1, 2, 3}))
	require.NoError(t, c.SetRatePerDay(admin, []uint64{1, 2, 3}, []*big.Int{big.NewInt(100), big.NewInt(200), big.NewInt(300)}))

	// last write wins for token 0
	class, err := c.ClassOf(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), class)

	rate, err := c.RateOf(1)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), rate)

	// overwrite and clear
	require.NoError(t, c.PopulateClassOf(admin, []TokenClass{{TokenID: 1, Class: 0}}))
	rate, err = c.RateOf(1)
	require.NoError(t, err)
	assert.Equal(t, 0, rate.Sign())

	require.NoError(t, c.PopulateRatePerDay(admin, []ClassRate{{Class: 3, Rate: big.NewInt(7)}}))
	rate, err = c.RatePerDay(3)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), rate)
}

func TestAuthorization(t *testing.T) {
	c := newClassification(t)

	err := c.SetClassOf(stranger, []uint64{1}, []uint64{1})
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	assert.EqualError(t, err, "caller is not the owner")

	err = c.SetRatePerDay(stranger, []uint64{1}, []*big.Int{big.NewInt(1)})
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	class, _ := c.ClassOf(1)
	assert.Zero(t, class)
}

func TestMismatchedLengths(t *testing.T) {
	c := newClassification(t)
	require.NoError(t, c.SetClassOf(admin, []uint64{1, 2}, []uint64{3, 4}))
	require.NoError(t, c.SetRatePerDay(admin, []uint64{3}, []*big.Int{big.NewInt(1000)}))

	err := c.SetClassOf(admin, []uint64{1, 2}, []uint64{9})
	assert.True(t, reverts.Is(err, reverts.InvalidInput))
	assert.EqualError(t, err, "mismatched array lengths")

	err = c.SetRatePerDay(admin, []uint64{3, 4}, []*big.Int{big.NewInt(1)})
	assert.True(t, reverts.Is(err, reverts.InvalidInput))
	err = c.SetRatePerDay(admin, []uint64{3}, nil)
	assert.True(t, reverts.Is(err, reverts.InvalidInput))

	// prior values survive
	class, err := c.ClassOf(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), class)
	class, err = c.ClassOf(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), class)

	rate, err := c.RatePerDay(3)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), rate)
	rate, err = c.RatePerDay(4)
	require.NoError(t, err)
	assert.Equal(t, 0, rate.Sign())
}

func TestInvalidRates(t *testing.T) {
	c := newClassification(t)

	err := c.SetRatePerDay(admin, []uint64{1, 2}, []*big.Int{big.NewInt(5), big.NewInt(-1)})
	assert.True(t, reverts.Is(err, reverts.InvalidInput))
	err = c.SetRatePerDay(admin, []uint64{1}, []*big.Int{nil})
	assert.True(t, reverts.Is(err, reverts.InvalidInput))

	rate, _ := c.RatePerDay(1)
	assert.Equal(t, 0, rate.Sign())
}

func TestSetAdmin(t *testing.T) {
	c := newClassification(t)

	assert.True(t, reverts.Is(c.SetAdmin(stranger, stranger), reverts.Unauthorized))
	assert.True(t, reverts.Is(c.SetAdmin(admin, thor.Address{}), reverts.InvalidInput))

	require.NoError(t, c.SetAdmin(admin, stranger))
	got, err := c.Admin()
	require.NoError(t, err)
	assert.Equal(t, stranger, got)

	assert.True(t, reverts.Is(c.SetClassOf(admin, []uint64{1}, []uint64{1}), reverts.Unauthorized))
	assert.NoError(t, c.SetClassOf(stranger, []uint64{1}, []uint64{1}))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"flag"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return ledger.New(state.NewStater(db), clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0)))
}

func newContext(t *testing.T, values map[string]string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(genesisFlag.Name, "", "")
	set.String(dataDirFlag.Name, "", "")
	set.Bool(persistFlag.Name, false, "")
	set.Uint64(verbosityFlag.Name, log.LegacyLevelInfo, "")
	set.Bool(jsonLogsFlag.Name, false, "")
	for k, v := range values {
		require.NoError(t, set.Set(k, v))
	}
	return cli.NewContext(nil, set, nil)
}

func TestInitLedgerOnce(t *testing.T) {
	l := newTestLedger(t)
	cfg := genesis.NewDevnet()

	created, err := initLedger(l, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = initLedger(l, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	tok, err := l.Token(8)
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[3].Address, tok.Owner)
}

func TestImportBulk(t *testing.T) {
	l := newTestLedger(t)
	bulk, err := genesis.LoadBulk("testdata/classes.yaml")
	require.NoError(t, err)

	err = importBulk(l, bulk, nil)
	assert.ErrorContains(t, err, "not initialized")

	_, err = initLedger(l, genesis.NewDevnet())
	require.NoError(t, err)

	stranger := genesis.DevAccounts()[1].Address
	err = importBulk(l, bulk, &stranger)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	rate, err := l.RatePerDay(4)
	require.NoError(t, err)
	assert.Equal(t, 0, rate.Sign())

	require.NoError(t, importBulk(l, bulk, nil))

	class, rate, err := l.ClassOf(101)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), class)
	assert.Equal(t, int64(5000), rate.Int64())

	class, rate, err = l.ClassOf(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), class)
	assert.Equal(t, int64(1000), rate.Int64())
}

func TestSelectGenesis(t *testing.T) {
	cfg, err := selectGenesis(newContext(t, nil))
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, cfg.Admin)

	cfg, err = selectGenesis(newContext(t, map[string]string{"genesis": "../../genesis/testdata/parallel.yaml"}))
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", cfg.Admin.String())

	_, err = selectGenesis(newContext(t, map[string]string{"genesis": "testdata/missing.yaml"}))
	assert.Error(t, err)
}

func TestOpenDB(t *testing.T) {
	db, location, err := openDB(newContext(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "Memory", location)
	db.Close()

	dir := t.TempDir()
	db, location, err = openDB(newContext(t, map[string]string{"persist": "true", "data-dir": dir}))
	require.NoError(t, err)
	assert.Contains(t, location, dir)
	db.Close()
}

func TestInitLogger(t *testing.T) {
	level, err := initLogger(newContext(t, map[string]string{"verbosity": "4"}))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level.Level())

	_, err = initLogger(newContext(t, map[string]string{"verbosity": "12"}))
	assert.Error(t, err)
}

func TestJSONLogHandler(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := log.NewLogger(newLogHandler(&buf, level, true))

	logger.Info("hello", "tokenId", 7)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"tokenId":7`)

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.GreaterOrEqual(t, normalizeCacheSize(0), 1)
	assert.LessOrEqual(t, normalizeCacheSize(0), 128)
	assert.LessOrEqual(t, normalizeCacheSize(256), 256)
}

// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, false))

	l.Info("token staked", "token", 12, "rate", big.NewInt(1_000_000))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "INFO ["))
	assert.Contains(t, out, "token staked")
	assert.Contains(t, out, "token=12")
	assert.Contains(t, out, "rate=1,000,000")
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, &lvl, false))

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	lvl.Set(LevelTrace)
	l.Trace("trace shown")
	assert.Contains(t, buf.String(), "trace shown")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	l := NewLogger(JSONHandlerWithLevel(&buf, &lvl))

	l.Info("minted", "amount", uint256.NewInt(600), "total", big.NewInt(1200))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "minted", rec["msg"])
	assert.Equal(t, "600", rec["amount"])
	assert.Equal(t, "1200", rec["total"])
}

func TestLogfmtHandler(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	l := NewLogger(LogfmtHandlerWithLevel(&buf, &lvl))

	l.Info("burned", "amount", big.NewInt(50), "missing", (*big.Int)(nil))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "t="))
	assert.Contains(t, out, "lvl=info")
	assert.Contains(t, out, "msg=burned")
	assert.Contains(t, out, "amount=50")
	assert.Contains(t, out, "missing=<nil>")
}

func TestWithContextFollowsDefault(t *testing.T) {
	old := Root()
	defer SetDefault(old)

	pkgLogger := WithContext("pkg", "staking")

	var buf bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandler(&buf, false)))

	pkgLogger.Debug("settled", "token", 1)
	assert.Contains(t, buf.String(), "pkg=staking")
	assert.Contains(t, buf.String(), "settled")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, "INFO ", LevelAlignedString(slog.LevelInfo))
	assert.Equal(t, "warn", LevelString(slog.LevelWarn))
}

func TestAppendBigInt(t *testing.T) {
	v, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	assert.Equal(t, "-123,456,789,012,345,678,901,234,567,890", string(appendBigInt(nil, v)))
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "-100,000", string(appendInt64(nil, -100000)))
}

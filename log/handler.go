// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// levelFilter lets slog handlers follow a LevelVar changed at runtime.
type levelFilter struct{ min *slog.LevelVar }

func (l levelFilter) Level() slog.Level {
	return l.min.Level()
}

func allLevels() *slog.LevelVar {
	var level slog.LevelVar
	level.Set(levelMaxVerbosity)
	return &level
}

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }

// TerminalHandler formats records for a human reading a terminal:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
//
// e.g.
//
//	INFO [05-16|20:58:45.000] token staked  pkg=staking staker=0x... token=12
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	// longest value seen per key, used to align columns
	fieldPadding map[string]int

	buf []byte
}

// NewTerminalHandler returns a terminal handler printing every level.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, allLevels(), useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler printing records at or above lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup is a no-op: terminal output is flat key=value pairs.
func (h *TerminalHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(append([]slog.Attr{}, h.attrs...), attrs...),
		fieldPadding: make(map[string]int),
	}
}

// JSONHandlerWithLevel returns a handler printing one JSON object per record at or above level.
func JSONHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(false),
		Level:       levelFilter{level},
	})
}

// LogfmtHandlerWithLevel returns a handler printing logfmt lines at or above level.
func LogfmtHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(true),
		Level:       levelFilter{level},
	})
}

// replaceAttr shortens the time and level keys and renders amounts as
// decimal strings so they survive JSON number precision.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				if logfmt {
					return slog.String("t", attr.Value.Time().Format(timeFormat))
				}
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}

		switch v := attr.Value.Any().(type) {
		case time.Time:
			if logfmt {
				return slog.String(attr.Key, v.Format(timeFormat))
			}
		case *big.Int:
			return slog.String(attr.Key, nilOr(v == nil, func() string { return v.String() }))
		case *uint256.Int:
			return slog.String(attr.Key, nilOr(v == nil, func() string { return v.Dec() }))
		case fmt.Stringer:
			isNil := v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil())
			return slog.String(attr.Key, nilOr(isNil, func() string { return v.String() }))
		}
		return attr
	}
}

func nilOr(isNil bool, str func() string) string {
	if isNil {
		return "<nil>"
	}
	return str()
}

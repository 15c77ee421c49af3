// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/log"
)

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

// Request sets the level by name or by legacy verbosity (0-5).
type Request struct {
	Level string `json:"level"`
}

type Response struct {
	CurrentLevel string `json:"currentLevel"`
}

type LogLevel struct {
	logLevel *slog.LevelVar
}

func New(logLevel *slog.LevelVar) *LogLevel {
	return &LogLevel{
		logLevel: logLevel,
	}
}

func parseLevel(s string) (slog.Level, error) {
	if lvl, ok := levels[s]; ok {
		return lvl, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 5 {
		return log.FromLegacyLevel(n), nil
	}
	return 0, errors.New("Invalid verbosity level")
}

func (l *LogLevel) current() Response {
	return Response{CurrentLevel: log.LevelString(l.logLevel.Level())}
}

func (l *LogLevel) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) handlePostLogLevel(w http.ResponseWriter, r *http.Request) error {
	var req Request
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "Invalid request body"))
	}
	lvl, err := parseLevel(req.Level)
	if err != nil {
		return utils.BadRequest(err)
	}
	l.logLevel.Set(lvl)
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin/loglevel").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLogLevel))

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /admin/loglevel").
		HandlerFunc(utils.WrapHandlerFunc(l.handlePostLogLevel))
}

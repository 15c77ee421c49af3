// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
)

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	verbosity := ctx.Uint64(verbosityFlag.Name)
	if verbosity > 9 {
		return nil, errors.Errorf("invalid verbosity %d, expected 0-9", verbosity)
	}
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(int(verbosity)))

	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name))))
	return level, nil
}

func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs bool) slog.Handler {
	if jsonLogs {
		return log.JSONHandlerWithLevel(w, level)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) &&
			os.Getenv("TERM") != "dumb"
	}
	return log.NewTerminalHandlerWithLevel(w, level, useColor)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nftstaking")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nftstaking")
		default:
			return filepath.Join(home, ".org.vechain.nftstaking")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openPersistentDB(ctx *cli.Context) (*lvldb.LevelDB, string, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, "", err
	}
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open ledger database [%v]", dir)
	}
	return db, dir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// openDB opens the ledger database in data-dir when --persist is set, in memory otherwise.
func openDB(ctx *cli.Context) (*lvldb.LevelDB, string, error) {
	if ctx.Bool(persistFlag.Name) {
		return openPersistentDB(ctx)
	}
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, "", errors.Wrap(err, "open in-memory database")
	}
	return db, "Memory", nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Config, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	cfg, err := genesis.Load(path)
	if err != nil {
		return nil, errors.WithMessage(err, "load genesis")
	}
	return cfg, nil
}

// initLedger builds the genesis into an empty ledger. A ledger that was
// initialized earlier is left as it is.
func initLedger(l *ledger.Ledger, cfg *genesis.Config) (created bool, err error) {
	var initialized bool
	if err := l.Inspect(func(st *state.State) (err error) {
		initialized, err = genesis.Initialized(st)
		return
	}); err != nil {
		return false, err
	}
	if initialized {
		logger.Info("ledger already initialized, genesis skipped")
		return false, nil
	}
	if err := l.Init(cfg.Build); err != nil {
		return false, errors.WithMessage(err, "build genesis")
	}
	return true, nil
}

// maxClockOffset is the drift tolerated before warning. Stakes are settled
// against the local clock.
const maxClockOffset = 30 * time.Second

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

type server struct {
	addr     string
	srv      *http.Server
	listener net.Listener
}

func startServer(addr string, handler http.Handler) (*server, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", errors.Wrapf(err, "listen addr [%v]", addr)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
	}
	s := &server{addr: listener.Addr().String(), srv: srv, listener: listener}
	return s, "http://" + s.addr + "/", nil
}

func (s *server) serve() error {
	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "serve [%v]", s.addr)
	}
	return nil
}

func (s *server) shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *server) close() {
	s.srv.Close()
	s.listener.Close()
}

func printStartupMessage(cfg *genesis.Config, created bool, location, apiURL, metricsURL string) {
	genesisState := "Loaded"
	if created {
		genesisState = "Created"
	}
	fmt.Printf(`Starting %v
    Admin        [ %v ]
    Genesis      [ %v ]
    Staking      [ %v ]
    Points       [ %v ]
    Custody      [ %v ]
    Data         [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		cfg.Admin,
		genesisState,
		builtin.Staking.Address,
		builtin.Points.Address,
		builtin.Custody.Address,
		location,
		apiURL,
		metricsURL,
	)
}

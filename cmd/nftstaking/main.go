// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/health"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nftstaking",
		Usage:     "NFT staking ledger: stake tokens, accrue and claim points",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			cacheFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			skipNTPCheckFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "import",
				Usage: "import token classes and daily rates into a persisted ledger",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					importFileFlag,
					importCallerFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: importAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	if !ctx.Bool(skipNTPCheckFlag.Name) {
		go checkClockOffset()
	}

	db, location, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing ledger database..."); db.Close() }()

	cfg, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	healthStatus := health.New()
	stater := state.NewStater(db)
	defer func() {
		stats := stater.CacheStats()
		logger.Info("slot cache", "hit", stats.Hit, "miss", stats.Miss, "rate", fmt.Sprintf("%.2f%%", stats.HitRate()*100))
	}()
	l := ledger.New(stater, nil)
	l.OnCommit(healthStatus.Committed)

	created, err := initLedger(l, cfg)
	if err != nil {
		return err
	}
	healthStatus.Initialized(true)

	handler := api.New(l, healthStatus, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		Timeout:         time.Duration(ctx.Uint64(apiTimeoutFlag.Name)) * time.Millisecond,
		LogLevel:        logLevel,
	})

	apiSrv, apiURL, err := startServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return errors.WithMessage(err, "api server")
	}
	servers := []*server{apiSrv}

	metricsURL := "Disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		metricsSrv, url, err := startServer(ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler())
		if err != nil {
			apiSrv.close()
			return errors.WithMessage(err, "metrics server")
		}
		servers = append(servers, metricsSrv)
		metricsURL = url + "metrics"
	}

	printStartupMessage(cfg, created, location, apiURL, metricsURL)

	group, groupCtx := errgroup.WithContext(exitSignal)
	for _, srv := range servers {
		group.Go(srv.serve)
	}
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			if err := srv.shutdown(shutdownCtx); err != nil {
				logger.Warn("failed to stop server", "addr", srv.addr, "err", err)
			}
		}
		return nil
	})
	return group.Wait()
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "store the ledger on disk in data-dir (in-memory otherwise)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 128,
		Usage: "megabytes of ram allocated to the ledger database cache",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a YAML or JSON genesis file (dev genesis if not set)",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	skipNTPCheckFlag = cli.BoolFlag{
		Name:  "skip-ntp-check",
		Usage: "do not compare the local clock with pool.ntp.org at startup",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}

	// import command
	importFileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "path to a YAML or JSON classification document",
	}
	importCallerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address the import is applied as (stored classification admin if not set)",
	}
)

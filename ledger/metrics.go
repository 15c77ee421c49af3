// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/vechain/nftstaking/metrics"

var (
	metricOpsCount     = metrics.LazyLoadCounterVec("ledger_operations_count", []string{"op", "status"})
	metricOpsDuration  = metrics.LazyLoadHistogramVec("ledger_operation_duration_ms", []string{"op"}, metrics.BucketLedgerOps)
	metricPointsMinted = metrics.LazyLoadCounter("ledger_points_minted_count")
	metricStakedTokens = metrics.LazyLoadGauge("ledger_staked_tokens")
)

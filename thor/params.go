// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Constants of the staking ledger.
const (
	SecondsPerDay uint64 = 24 * 60 * 60 // accrual granularity, partial days earn nothing.

	MaxPopulateBatch = 10_000 // max entries accepted by one classification populate call.
)

// Well known identities of builtin contracts.
var (
	StakingAddress        = BytesToAddress([]byte("NFTStaking"))
	PointsAddress         = BytesToAddress([]byte("Point"))
	CustodyAddress        = BytesToAddress([]byte("NFT"))
	ClassificationAddress = BytesToAddress([]byte("Classification"))
)

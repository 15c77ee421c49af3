// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/nftstaking/builtin/classification"
	"github.com/vechain/nftstaking/builtin/custody"
	"github.com/vechain/nftstaking/builtin/points"
	"github.com/vechain/nftstaking/builtin/staking"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

// Builtin contracts binding.
var (
	Classification = &classificationContract{&contract{"Classification", thor.ClassificationAddress}}
	Custody        = &custodyContract{&contract{"NFT", thor.CustodyAddress}}
	Points         = &pointsContract{&contract{"Point", thor.PointsAddress}}
	Staking        = &stakingContract{&contract{"NFTStaking", thor.StakingAddress}}
)

type contract struct {
	Name    string
	Address thor.Address
}

type (
	classificationContract struct{ *contract }
	custodyContract        struct{ *contract }
	pointsContract         struct{ *contract }
	stakingContract        struct{ *contract }
)

func (c *classificationContract) WithState(state *state.State) *classification.Classification {
	return classification.New(c.Address, state)
}

func (c *custodyContract) WithState(state *state.State) *custody.Custody {
	return custody.New(c.Address, state)
}

func (p *pointsContract) WithState(state *state.State) *points.Points {
	return points.New(p.Address, state)
}

// WithState binds the ledger to the other builtin contracts within the same state.
func (s *stakingContract) WithState(state *state.State) *staking.Staking {
	return staking.New(
		s.Address,
		state,
		Custody.WithState(state),
		Points.WithState(state),
		Classification.WithState(state),
	)
}

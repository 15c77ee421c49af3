// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/builtin/solidity"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

var logger = log.WithContext("pkg", "staking")

var totalStakedSlot = thor.Blake2b([]byte("totalStaked"))

var (
	errNotApproved   = reverts.New(reverts.NotApproved, "staking contract is not approved for the given token id")
	errInvalidToken  = reverts.New(reverts.NotFound, "invalid token id provided")
	errAlreadyStaked = reverts.New(reverts.InvalidInput, "token already staked")
	errInvalidCaller = reverts.New(reverts.Unauthorized, "caller cannot hold stakes")
)

// Custody is the token registry the ledger takes custody through.
type Custody interface {
	IsApprovedForTransfer(tokenID uint64, operator thor.Address) (bool, error)
	Transfer(operator, from, to thor.Address, tokenID uint64) error
}

// Minter credits settled rewards.
type Minter interface {
	Mint(caller, to thor.Address, amount *big.Int) error
}

// Staking implements the staking ledger. Every mutation settles the owed
// rewards of the affected records before custody or membership changes.
type Staking struct {
	addr        thor.Address
	registry    *Registry
	totalStaked *solidity.Uint256
	custody     Custody
	points      Minter
	rates       RateSource
}

// New create a new instance.
func New(addr thor.Address, state *state.State, custody Custody, points Minter, rates RateSource) *Staking {
	ctx := solidity.NewContext(addr, state)
	return &Staking{
		addr:        addr,
		registry:    NewRegistry(ctx, rates),
		totalStaked: solidity.NewUint256(ctx, totalStakedSlot),
		custody:     custody,
		points:      points,
		rates:       rates,
	}
}

// Address returns the custody identity of the ledger.
func (s *Staking) Address() thor.Address {
	return s.addr
}

func (s *Staking) Registry() *Registry {
	return s.registry
}

func (s *Staking) addTotal(delta int64) error {
	if delta >= 0 {
		return s.totalStaked.Add(big.NewInt(delta))
	}
	return s.totalStaked.Sub(big.NewInt(-delta))
}

// checkCaller rejects identities that cannot own a stake list: the zero
// address and the ledger itself, which already owns every staked token.
func (s *Staking) checkCaller(caller thor.Address) error {
	if caller.IsZero() || caller == s.addr {
		return errInvalidCaller
	}
	return nil
}

// TotalStaked returns the count of tokens held by the ledger.
func (s *Staking) TotalStaked() (uint64, error) {
	n, err := s.totalStaked.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Stake takes custody of the token and starts its accrual at now.
func (s *Staking) Stake(caller thor.Address, tokenID, now uint64) error {
	if err := s.checkCaller(caller); err != nil {
		return err
	}
	approved, err := s.custody.IsApprovedForTransfer(tokenID, s.addr)
	if err != nil {
		return err
	}
	if !approved {
		return errNotApproved
	}
	if _, found, err := s.registry.FindIndex(caller, tokenID); err != nil {
		return err
	} else if found {
		return errAlreadyStaked
	}

	if err := s.custody.Transfer(s.addr, caller, s.addr, tokenID); err != nil {
		return err
	}
	if err := s.registry.Add(caller, tokenID, now); err != nil {
		return err
	}
	if err := s.addTotal(1); err != nil {
		return err
	}
	logger.Debug("token staked", "staker", caller, "token", tokenID)
	return nil
}

// ClaimPoints settles every record of the caller and mints the sum.
func (s *Staking) ClaimPoints(caller thor.Address, now uint64) (*big.Int, error) {
	if err := s.checkCaller(caller); err != nil {
		return nil, err
	}
	n, err := s.registry.Len(caller)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for i := uint64(0); i < n; i++ {
		owed, err := s.registry.SettleAndTouch(caller, i, now)
		if err != nil {
			return nil, err
		}
		total.Add(total, owed)
	}
	if err := s.points.Mint(s.addr, caller, total); err != nil {
		return nil, errors.WithMessage(err, "mint")
	}
	logger.Debug("points claimed", "staker", caller, "stakes", n, "amount", total)
	return total, nil
}

// UnstakeByID settles the token, mints its reward and returns it to the caller.
func (s *Staking) UnstakeByID(caller thor.Address, tokenID, now uint64) (*big.Int, error) {
	if err := s.checkCaller(caller); err != nil {
		return nil, err
	}
	index, found, err := s.registry.FindIndex(caller, tokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errInvalidToken
	}

	owed, err := s.registry.SettleAndTouch(caller, index, now)
	if err != nil {
		return nil, err
	}
	if err := s.points.Mint(s.addr, caller, owed); err != nil {
		return nil, errors.WithMessage(err, "mint")
	}
	if err := s.custody.Transfer(s.addr, s.addr, caller, tokenID); err != nil {
		return nil, err
	}
	if err := s.registry.RemoveAt(caller, index); err != nil {
		return nil, err
	}
	if err := s.addTotal(-1); err != nil {
		return nil, err
	}
	logger.Debug("token unstaked", "staker", caller, "token", tokenID, "amount", owed)
	return owed, nil
}

// UnstakeAll settles every record, mints the sum once and returns every token.
func (s *Staking) UnstakeAll(caller thor.Address, now uint64) (*big.Int, error) {
	if err := s.checkCaller(caller); err != nil {
		return nil, err
	}
	stakes, err := s.registry.All(caller)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	for i := range stakes {
		owed, err := s.registry.SettleAndTouch(caller, uint64(i), now)
		if err != nil {
			return nil, err
		}
		total.Add(total, owed)
	}
	if err := s.points.Mint(s.addr, caller, total); err != nil {
		return nil, errors.WithMessage(err, "mint")
	}
	for _, stake := range stakes {
		if err := s.custody.Transfer(s.addr, s.addr, caller, stake.TokenID); err != nil {
			return nil, err
		}
	}
	if err := s.registry.Clear(caller); err != nil {
		return nil, err
	}
	if err := s.addTotal(-int64(len(stakes))); err != nil {
		return nil, err
	}
	logger.Debug("all tokens unstaked", "staker", caller, "stakes", len(stakes), "amount", total)
	return total, nil
}

// PointsEarningPerDay returns the summed daily rate of the user's records.
func (s *Staking) PointsEarningPerDay(user thor.Address) (*big.Int, error) {
	stakes, err := s.registry.All(user)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, stake := range stakes {
		rate, err := s.rates.RateOf(stake.TokenID)
		if err != nil {
			return nil, err
		}
		total.Add(total, rate)
	}
	return total, nil
}

// PendingPoints returns what ClaimPoints would mint at now.
func (s *Staking) PendingPoints(user thor.Address, now uint64) (*big.Int, error) {
	stakes, err := s.registry.All(user)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, stake := range stakes {
		owed, err := s.registry.Owed(stake, now)
		if err != nil {
			return nil, err
		}
		total.Add(total, owed)
	}
	return total, nil
}

// StakesOf returns the user's records in their current order.
func (s *Staking) StakesOf(user thor.Address) ([]Stake, error) {
	return s.registry.All(user)
}

// StakeAt returns the user's record at index.
func (s *Staking) StakeAt(user thor.Address, index uint64) (Stake, error) {
	stake, err := s.registry.At(user, index)
	if errors.Is(err, solidity.ErrIndexOutOfRange) {
		return Stake{}, reverts.New(reverts.NotFound, "stake index out of range")
	}
	return stake, err
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package classification

import (
	"math/big"

	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/builtin/solidity"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

var logger = log.WithContext("pkg", "classification")

var (
	adminSlot   = thor.Blake2b([]byte("admin"))
	classOfSlot = thor.Blake2b([]byte("classOf"))
	rateSlot    = thor.Blake2b([]byte("ratePerDay"))
)

var (
	errNotOwner  = reverts.New(reverts.Unauthorized, "caller is not the owner")
	errMismatch  = reverts.New(reverts.InvalidInput, "mismatched array lengths")
	errBadRate   = reverts.New(reverts.InvalidInput, "rate must be a non-negative integer")
	errTooLarge  = reverts.New(reverts.InvalidInput, "too many entries in one call")
	errZeroAdmin = reverts.New(reverts.InvalidInput, "zero address is not a valid owner")
)

// TokenClass pairs a token with its class.
type TokenClass struct {
	TokenID uint64
	Class   uint64
}

// ClassRate pairs a class with its daily rate.
type ClassRate struct {
	Class uint64
	Rate  *big.Int
}

// Classification stores the class of every token and the points-per-day rate of every class.
// Absent entries read as zero.
type Classification struct {
	addr    thor.Address
	admin   *solidity.Address
	classOf *solidity.Mapping[solidity.Uint64Key, uint64]
	rates   *solidity.Mapping[solidity.Uint64Key, *big.Int]
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Classification {
	ctx := solidity.NewContext(addr, state)
	return &Classification{
		addr:    addr,
		admin:   solidity.NewAddress(ctx, adminSlot),
		classOf: solidity.NewMapping[solidity.Uint64Key, uint64](ctx, classOfSlot),
		rates:   solidity.NewMapping[solidity.Uint64Key, *big.Int](ctx, rateSlot),
	}
}

// Admin returns the identity allowed to write the table.
func (c *Classification) Admin() (thor.Address, error) {
	return c.admin.Get()
}

// InitAdmin sets the administrator unconditionally. Used at genesis.
func (c *Classification) InitAdmin(admin thor.Address) {
	c.admin.Set(admin)
}

// SetAdmin hands the table over to a new administrator.
func (c *Classification) SetAdmin(caller, newAdmin thor.Address) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if newAdmin.IsZero() {
		return errZeroAdmin
	}
	c.admin.Set(newAdmin)
	logger.Info("admin changed", "from", caller, "to", newAdmin)
	return nil
}

func (c *Classification) requireAdmin(caller thor.Address) error {
	ok, err := c.admin.Is(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errNotOwner
	}
	return nil
}

// ClassOf returns the class of the token, 0 if unclassified.
func (c *Classification) ClassOf(tokenID uint64) (uint64, error) {
	return c.classOf.Get(solidity.Uint64Key(tokenID))
}

// RatePerDay returns the daily rate of the class, 0 if unset.
func (c *Classification) RatePerDay(class uint64) (*big.Int, error) {
	return c.rates.Get(solidity.Uint64Key(class))
}

// RateOf returns the daily rate of the token's class.
func (c *Classification) RateOf(tokenID uint64) (*big.Int, error) {
	class, err := c.ClassOf(tokenID)
	if err != nil {
		return nil, err
	}
	return c.RatePerDay(class)
}

// SetClassOf assigns classes[i] to tokenIDs[i]. Later duplicates win.
func (c *Classification) SetClassOf(caller thor.Address, tokenIDs []uint64, classes []uint64) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if len(tokenIDs) != len(classes) {
		return errMismatch
	}
	if len(tokenIDs) > thor.MaxPopulateBatch {
		return errTooLarge
	}
	for i, id := range tokenIDs {
		if err := c.setClass(id, classes[i]); err != nil {
			return err
		}
	}
	logger.Debug("classes populated", "count", len(tokenIDs))
	return nil
}

// PopulateClassOf is SetClassOf taking paired entries.
func (c *Classification) PopulateClassOf(caller thor.Address, pairs []TokenClass) error {
	ids := make([]uint64, len(pairs))
	classes := make([]uint64, len(pairs))
	for i, p := range pairs {
		ids[i], classes[i] = p.TokenID, p.Class
	}
	return c.SetClassOf(caller, ids, classes)
}

// SetRatePerDay assigns rates[i] to classes[i]. Later duplicates win.
func (c *Classification) SetRatePerDay(caller thor.Address, classes []uint64, rates []*big.Int) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if len(classes) != len(rates) {
		return errMismatch
	}
	if len(classes) > thor.MaxPopulateBatch {
		return errTooLarge
	}
	for _, r := range rates {
		if r == nil || r.Sign() < 0 {
			return errBadRate
		}
	}
	for i, class := range classes {
		if err := c.setRate(class, rates[i]); err != nil {
			return err
		}
	}
	logger.Debug("rates populated", "count", len(classes))
	return nil
}

// PopulateRatePerDay is SetRatePerDay taking paired entries.
func (c *Classification) PopulateRatePerDay(caller thor.Address, pairs []ClassRate) error {
	classes := make([]uint64, len(pairs))
	rates := make([]*big.Int, len(pairs))
	for i, p := range pairs {
		classes[i], rates[i] = p.Class, p.Rate
	}
	return c.SetRatePerDay(caller, classes, rates)
}

func (c *Classification) setClass(tokenID, class uint64) error {
	if class == 0 {
		c.classOf.Delete(solidity.Uint64Key(tokenID))
		return nil
	}
	return c.classOf.Set(solidity.Uint64Key(tokenID), class)
}

func (c *Classification) setRate(class uint64, rate *big.Int) error {
	if rate.Sign() == 0 {
		c.rates.Delete(solidity.Uint64Key(class))
		return nil
	}
	return c.rates.Set(solidity.Uint64Key(class), rate)
}

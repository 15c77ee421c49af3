// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/builtin/classification"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
	"gopkg.in/yaml.v3"
)

var logger = log.WithContext("pkg", "genesis")

// TokenClass is one entry of the paired classification shape.
type TokenClass struct {
	TokenID uint64 `yaml:"tokenId" json:"tokenId"`
	Class   uint64 `yaml:"class" json:"class"`
}

// ClassRate is one entry of the paired rate shape.
type ClassRate struct {
	Class uint64           `yaml:"class" json:"class"`
	Rate  *HexOrDecimal256 `yaml:"rate" json:"rate"`
}

// ClassesDoc holds token classes either as parallel arrays or as pairs.
type ClassesDoc struct {
	TokenIDs []uint64     `yaml:"tokenIds,omitempty" json:"tokenIds,omitempty"`
	Classes  []uint64     `yaml:"classes,omitempty" json:"classes,omitempty"`
	Pairs    []TokenClass `yaml:"pairs,omitempty" json:"pairs,omitempty"`
}

// RatesDoc holds class rates either as parallel arrays or as pairs.
type RatesDoc struct {
	Classes []uint64           `yaml:"classes,omitempty" json:"classes,omitempty"`
	Rates   []*HexOrDecimal256 `yaml:"rates,omitempty" json:"rates,omitempty"`
	Pairs   []ClassRate        `yaml:"pairs,omitempty" json:"pairs,omitempty"`
}

// Mint creates Count tokens of a class for the owner.
type Mint struct {
	Owner thor.Address `yaml:"owner" json:"owner"`
	Class uint64       `yaml:"class" json:"class"`
	Count uint64       `yaml:"count" json:"count"`
}

// Config describes the initial ledger state.
type Config struct {
	Admin   thor.Address `yaml:"admin" json:"admin"`
	Classes ClassesDoc   `yaml:"classes" json:"classes"`
	Rates   RatesDoc     `yaml:"rates" json:"rates"`
	Mints   []Mint       `yaml:"mints" json:"mints"`
}

// Bulk is a classification import document.
type Bulk struct {
	Classes ClassesDoc `yaml:"classes" json:"classes"`
	Rates   RatesDoc   `yaml:"rates" json:"rates"`
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read file")
	}
	// JSON documents are valid YAML
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Load reads a genesis config from a YAML or JSON file.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Admin.IsZero() {
		return nil, errors.New("genesis: admin is required")
	}
	return &cfg, nil
}

// LoadBulk reads a classification import document.
func LoadBulk(path string) (*Bulk, error) {
	var b Bulk
	if err := decodeFile(path, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *ClassesDoc) IsEmpty() bool {
	return len(d.TokenIDs) == 0 && len(d.Classes) == 0 && len(d.Pairs) == 0
}

// Normalize returns the entries in paired form.
func (d *ClassesDoc) Normalize() ([]classification.TokenClass, error) {
	if len(d.Pairs) > 0 {
		if len(d.TokenIDs) > 0 || len(d.Classes) > 0 {
			return nil, errors.New("classes: use either pairs or tokenIds/classes")
		}
		pairs := make([]classification.TokenClass, 0, len(d.Pairs))
		for _, p := range d.Pairs {
			pairs = append(pairs, classification.TokenClass{TokenID: p.TokenID, Class: p.Class})
		}
		return pairs, nil
	}
	if len(d.TokenIDs) != len(d.Classes) {
		return nil, errors.New("classes: mismatched array lengths")
	}
	pairs := make([]classification.TokenClass, 0, len(d.TokenIDs))
	for i, id := range d.TokenIDs {
		pairs = append(pairs, classification.TokenClass{TokenID: id, Class: d.Classes[i]})
	}
	return pairs, nil
}

func (d *RatesDoc) IsEmpty() bool {
	return len(d.Classes) == 0 && len(d.Rates) == 0 && len(d.Pairs) == 0
}

// Normalize returns the entries in paired form.
func (d *RatesDoc) Normalize() ([]classification.ClassRate, error) {
	if len(d.Pairs) > 0 {
		if len(d.Classes) > 0 || len(d.Rates) > 0 {
			return nil, errors.New("rates: use either pairs or classes/rates")
		}
		pairs := make([]classification.ClassRate, 0, len(d.Pairs))
		for _, p := range d.Pairs {
			if p.Rate == nil {
				return nil, errors.Errorf("rates: class %d has no rate", p.Class)
			}
			pairs = append(pairs, classification.ClassRate{Class: p.Class, Rate: p.Rate.Int()})
		}
		return pairs, nil
	}
	if len(d.Classes) != len(d.Rates) {
		return nil, errors.New("rates: mismatched array lengths")
	}
	pairs := make([]classification.ClassRate, 0, len(d.Classes))
	for i, class := range d.Classes {
		if d.Rates[i] == nil {
			return nil, errors.Errorf("rates: class %d has no rate", class)
		}
		pairs = append(pairs, classification.ClassRate{Class: class, Rate: d.Rates[i].Int()})
	}
	return pairs, nil
}

// Apply writes the document to the classification table as caller.
func (b *Bulk) Apply(c *classification.Classification, caller thor.Address) error {
	if !b.Rates.IsEmpty() {
		rates, err := b.Rates.Normalize()
		if err != nil {
			return err
		}
		if err := c.PopulateRatePerDay(caller, rates); err != nil {
			return errors.WithMessage(err, "populate rates")
		}
	}
	if !b.Classes.IsEmpty() {
		classes, err := b.Classes.Normalize()
		if err != nil {
			return err
		}
		if err := c.PopulateClassOf(caller, classes); err != nil {
			return errors.WithMessage(err, "populate classes")
		}
	}
	return nil
}

// Initialized reports whether a genesis was already applied to the state.
func Initialized(st *state.State) (bool, error) {
	minter, err := builtin.Points.WithState(st).Minter()
	if err != nil {
		return false, err
	}
	return !minter.IsZero(), nil
}

// Build applies the config to an empty state.
func (c *Config) Build(st *state.State) error {
	if ok, err := Initialized(st); err != nil {
		return err
	} else if ok {
		return errors.New("genesis: state already initialized")
	}

	classes := builtin.Classification.WithState(st)
	nft := builtin.Custody.WithState(st)

	classes.InitAdmin(c.Admin)
	nft.InitAdmin(c.Admin)
	builtin.Points.WithState(st).InitMinter(builtin.Staking.Address)

	bulk := Bulk{Classes: c.Classes, Rates: c.Rates}
	if err := bulk.Apply(classes, c.Admin); err != nil {
		return err
	}

	var minted uint64
	for _, m := range c.Mints {
		for i := uint64(0); i < m.Count; i++ {
			id, err := nft.Mint(c.Admin, m.Owner)
			if err != nil {
				return errors.WithMessage(err, "genesis mint")
			}
			if m.Class != 0 {
				if err := classes.SetClassOf(c.Admin, []uint64{id}, []uint64{m.Class}); err != nil {
					return err
				}
			}
			minted++
		}
	}
	logger.Info("genesis built", "admin", c.Admin, "tokens", minted)
	return nil
}

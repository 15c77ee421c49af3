// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vechain/nftstaking/thor"
)

// DevAccount account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns well known accounts for the dev genesis.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{thor.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet returns the dev genesis: the first dev account administers
// classification and custody, three classes earn 200, 400 and 1000 points a
// day, and every other dev account owns one token of each class.
func NewDevnet() *Config {
	accs := DevAccounts()
	cfg := &Config{
		Admin: accs[0].Address,
		Rates: RatesDoc{
			Pairs: []ClassRate{
				{Class: 1, Rate: NewHexOrDecimal256(200)},
				{Class: 2, Rate: NewHexOrDecimal256(400)},
				{Class: 3, Rate: NewHexOrDecimal256(1000)},
			},
		},
	}
	for _, acc := range accs[1:] {
		for class := uint64(1); class <= 3; class++ {
			cfg.Mints = append(cfg.Mints, Mint{Owner: acc.Address, Class: class, Count: 1})
		}
	}
	return cfg
}

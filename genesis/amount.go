// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"gopkg.in/yaml.v3"
)

// HexOrDecimal256 is a 256-bit unsigned amount written as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

func NewHexOrDecimal256(i int64) *HexOrDecimal256 {
	return (*HexOrDecimal256)(big.NewInt(i))
}

func (i *HexOrDecimal256) parse(s string) error {
	bigint, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", s)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// UnmarshalJSON accepts quoted hex or decimal strings and bare numbers.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return i.parse(string(input))
	}
	return i.parse(str)
}

// MarshalJSON renders the amount as a decimal string.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Int().String())
}

// UnmarshalYAML accepts any scalar node.
func (i *HexOrDecimal256) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	return i.parse(node.Value)
}

// Int returns the amount as a big integer, zero for nil.
func (i *HexOrDecimal256) Int() *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(i))
}

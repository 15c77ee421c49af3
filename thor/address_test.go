// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := BytesToAddress([]byte("acc1"))

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	parsed, err = ParseAddress(addr.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x" + addr.String()[2:])
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0x" + "zz" + addr.String()[4:])
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("acc1"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x01"`), &decoded))
	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("foo"), []byte("bar"))
	b := Blake2b([]byte("foobar"))
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())

	// pooled hashers are reset between uses
	assert.Equal(t, a, Blake2b([]byte("foo"), []byte("bar")))
	assert.NotEqual(t, a, Blake2b([]byte("foo"), []byte("baz")))
}

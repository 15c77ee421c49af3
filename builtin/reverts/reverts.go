// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Kind classifies a revert.
type Kind int

const (
	Unauthorized Kind = iota + 1
	InvalidInput
	NotApproved
	NotFound
	TransferDisabled
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case InvalidInput:
		return "invalid input"
	case NotApproved:
		return "not approved"
	case NotFound:
		return "not found"
	case TransferDisabled:
		return "transfer disabled"
	default:
		return "unknown"
	}
}

// Error is a terminal, caller-visible failure of a contract operation.
type Error struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *Error {
	return &Error{
		kind:    kind,
		message: message,
	}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Bytes returns the message ABI encoded as Error(string).
func (e *Error) Bytes() []byte {
	if e == nil {
		return nil
	}

	// 4-byte selector for Error(string)
	selector, _ := hex.DecodeString("08c379a0")
	msgBytes := []byte(e.message)
	msgLen := uint64(len(msgBytes))

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 0, 4+32+32+((len(msgBytes)+31)/32)*32)
	encoded = append(encoded, selector...)

	offset := make([]byte, 32)
	binary.BigEndian.PutUint64(offset[24:], 32)
	encoded = append(encoded, offset...)

	length := make([]byte, 32)
	binary.BigEndian.PutUint64(length[24:], msgLen)
	encoded = append(encoded, length...)

	data := make([]byte, ((len(msgBytes)+31)/32)*32)
	copy(data, msgBytes)
	encoded = append(encoded, data...)

	return encoded
}

// As extracts the revert error from the chain of err.
func As(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) && re != nil {
		return re, true
	}
	return nil, false
}

// Is reports whether err is a revert of the given kind.
func Is(err error, kind Kind) bool {
	re, ok := As(err)
	return ok && re.kind == kind
}

func IsRevertErr(err error) bool {
	_, ok := As(err)
	return ok
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address is the public identifier of an account owner.
type Address [AddressSize]byte

// Hash is a 32 byte cryptographic digest, used as the root commitment of the account tree.
type Hash [32]byte

// AccountId is the dense identifier of an account, equal to its slot in the account tree.
type AccountId uint32

// TokenId identifies the token a balance is denominated in.
type TokenId uint16

// Nonce counts the transactions originated by an account.
type Nonce uint32

// BlockNumber is the number of a rollup block.
type BlockNumber uint32

func (a Address) String() string {
	return hexutil.Encode(a[:])
}

func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// MarshalText encodes the address as 0x prefixed hex.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText decodes a 0x prefixed hex address.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// MarshalText encodes the hash as 0x prefixed hex.
func (h Hash) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

// UnmarshalText decodes a 0x prefixed hex hash.
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Hash", input, h[:])
}

// Compare orders addresses lexicographically.
func (a *Address) Compare(b *Address) int {
	return bytes.Compare(a[:], b[:])
}

// BytesToHash copies the given bytes into a hash. Longer inputs are truncated
// from the left, shorter inputs are left-padded with zeros.
func BytesToHash(b []byte) (h Hash) {
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return
}

// AddressFromNumber creates an address with the big endian encoding of the given number
// as its prefix. It is intended for tests.
func AddressFromNumber(num int) (address Address) {
	binary.BigEndian.PutUint32(address[:], uint32(num))
	return
}

// ParseAddress decodes a 0x prefixed hex string into an address.
func ParseAddress(s string) (Address, error) {
	var res Address
	if err := res.UnmarshalText([]byte(s)); err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return res, nil
}

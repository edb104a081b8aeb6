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
	"encoding/binary"
	"fmt"

	"github.com/rollupstate/restore/common/amount"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Account is the record held in a live slot of the account tree. The
// account's identifier is its slot position and not part of the record.
type Account struct {
	Address  Address
	Nonce    Nonce
	Balances map[TokenId]amount.Amount // zero balances are never stored
}

// NewAccount creates an account with zero nonce and no balances.
func NewAccount(address Address) Account {
	return Account{Address: address}
}

// GetBalance returns the balance of the given token.
func (a Account) GetBalance(token TokenId) amount.Amount {
	return a.Balances[token]
}

// SetBalance updates the balance of the given token, dropping zero entries.
func (a *Account) SetBalance(token TokenId, value amount.Amount) {
	if value.IsZero() {
		delete(a.Balances, token)
		return
	}
	if a.Balances == nil {
		a.Balances = map[TokenId]amount.Amount{}
	}
	a.Balances[token] = value
}

// HasZeroBalances is true if no token balance of the account is positive.
func (a Account) HasZeroBalances() bool {
	for _, balance := range a.Balances {
		if !balance.IsZero() {
			return false
		}
	}
	return true
}

// Tokens lists the tokens with a positive balance in ascending order.
func (a Account) Tokens() []TokenId {
	tokens := maps.Keys(a.Balances)
	slices.Sort(tokens)
	return tokens
}

// Copy creates a deep copy, the balance map is not shared.
func (a Account) Copy() Account {
	res := a
	if a.Balances != nil {
		res.Balances = maps.Clone(a.Balances)
	}
	return res
}

// Equal compares two accounts, treating nil and empty balance maps alike.
func (a *Account) Equal(b *Account) bool {
	if a.Address != b.Address || a.Nonce != b.Nonce {
		return false
	}
	aTokens, bTokens := a.Tokens(), b.Tokens()
	if !slices.Equal(aTokens, bTokens) {
		return false
	}
	for _, token := range aTokens {
		if a.Balances[token] != b.Balances[token] {
			return false
		}
	}
	return true
}

func (a Account) String() string {
	return fmt.Sprintf("Account{address: %v, nonce: %d, balances: %v}", a.Address, a.Nonce, a.Balances)
}

const (
	accountHeaderSize = AddressSize + 4 + 4
	balanceEntrySize  = 2 + amount.BytesLength
	maxBalanceEntries = 1 << 16 // one entry per token id
)

// Encode produces the canonical encoding of the account, which is the preimage
// of its leaf hash:
//
//	address (20) | nonce (4, BE) | #balances (4, BE) | { token (2, BE) | balance (32, BE) }*
//
// Balances are ordered by token and zero balances are omitted.
func (a Account) Encode() []byte {
	tokens := a.Tokens()
	res := make([]byte, 0, accountHeaderSize+len(tokens)*balanceEntrySize)
	res = append(res, a.Address[:]...)
	res = binary.BigEndian.AppendUint32(res, uint32(a.Nonce))
	res = binary.BigEndian.AppendUint32(res, uint32(len(tokens)))
	for _, token := range tokens {
		res = binary.BigEndian.AppendUint16(res, uint16(token))
		balance := a.Balances[token].Bytes32()
		res = append(res, balance[:]...)
	}
	return res
}

// DecodeAccount parses the output of Encode.
func DecodeAccount(data []byte) (Account, error) {
	if len(data) < accountHeaderSize {
		return Account{}, fmt.Errorf("invalid account encoding, too few bytes: %d", len(data))
	}
	res := Account{}
	copy(res.Address[:], data)
	res.Nonce = Nonce(binary.BigEndian.Uint32(data[AddressSize:]))
	count := int(binary.BigEndian.Uint32(data[AddressSize+4:]))
	data = data[accountHeaderSize:]
	if count > maxBalanceEntries || len(data) != count*balanceEntrySize {
		return Account{}, fmt.Errorf("invalid account encoding, expected %d balances in %d bytes", count, len(data))
	}
	for i := 0; i < count; i++ {
		token := TokenId(binary.BigEndian.Uint16(data))
		balance := amount.NewFromBytes(data[2:balanceEntrySize]...)
		if _, found := res.Balances[token]; found {
			return Account{}, fmt.Errorf("invalid account encoding, duplicate token %d", token)
		}
		res.SetBalance(token, balance)
		data = data[balanceEntrySize:]
	}
	return res, nil
}

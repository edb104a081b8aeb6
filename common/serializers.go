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

import "encoding/binary"

// Serializer allows to convert the type to a slice of bytes and back
type Serializer[T any] interface {
	// ToBytes serialize the type to bytes
	ToBytes(T) []byte
	// FromBytes deserialize the type from bytes
	FromBytes([]byte) T
	// Size provides the size of the type when serialized (bytes)
	Size() int
}

// AddressSerializer is a Serializer of the Address type
type AddressSerializer struct{}

func (a AddressSerializer) ToBytes(address Address) []byte {
	return address[:]
}
func (a AddressSerializer) FromBytes(bytes []byte) Address {
	var address Address
	copy(address[:], bytes)
	return address
}
func (a AddressSerializer) Size() int {
	return AddressSize
}

// HashSerializer is a Serializer of the Hash type
type HashSerializer struct{}

func (a HashSerializer) ToBytes(hash Hash) []byte {
	return hash[:]
}
func (a HashSerializer) FromBytes(bytes []byte) Hash {
	var hash Hash
	copy(hash[:], bytes)
	return hash
}
func (a HashSerializer) Size() int {
	return 32
}

// AccountIdSerializer is a Serializer of the AccountId type. It uses big endian
// encoding so that the byte order of keys matches the numeric order of ids.
type AccountIdSerializer struct{}

func (a AccountIdSerializer) ToBytes(id AccountId) []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, 4), uint32(id))
}
func (a AccountIdSerializer) FromBytes(bytes []byte) AccountId {
	return AccountId(binary.BigEndian.Uint32(bytes))
}
func (a AccountIdSerializer) Size() int {
	return 4
}

// BlockNumberSerializer is a Serializer of the BlockNumber type
type BlockNumberSerializer struct{}

func (a BlockNumberSerializer) ToBytes(block BlockNumber) []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, 4), uint32(block))
}
func (a BlockNumberSerializer) FromBytes(bytes []byte) BlockNumber {
	return BlockNumber(binary.BigEndian.Uint32(bytes))
}
func (a BlockNumberSerializer) Size() int {
	return 4
}

// AccountSerializer is a Serializer of the Account type. Accounts have a
// variable length encoding, Size reports the size without balances.
type AccountSerializer struct{}

func (a AccountSerializer) ToBytes(account Account) []byte {
	return account.Encode()
}
func (a AccountSerializer) FromBytes(bytes []byte) Account {
	res, err := DecodeAccount(bytes)
	if err != nil {
		panic(err)
	}
	return res
}
func (a AccountSerializer) Size() int {
	return accountHeaderSize
}

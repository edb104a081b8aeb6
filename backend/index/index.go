// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package index

//go:generate mockgen -source index.go -destination index_mocks.go -package index

import "github.com/rollupstate/restore/common"

const (
	// ErrDuplicateAddress is returned when binding would map an address or an
	// id to a second partner.
	ErrDuplicateAddress = common.ConstError("address already bound to a different account")

	// ErrUnknownAddress is returned when unbinding an address that is not bound.
	ErrUnknownAddress = common.ConstError("address not bound to any account")
)

// AddressIndex maps the addresses of live accounts to their account ids. The
// mapping is a bijection: no address resolves to two ids and no id is bound
// to two addresses.
type AddressIndex interface {
	// Resolve returns the id bound to the address, false if it is unbound.
	Resolve(address common.Address) (common.AccountId, bool)

	// AddressOf returns the address bound to the id, false if it is unbound.
	AddressOf(id common.AccountId) (common.Address, bool)

	// Bind maps the address to the id. Binding an already bound pair is a no-op.
	Bind(address common.Address, id common.AccountId) error

	// Unbind removes the mapping of the address.
	Unbind(address common.Address) error

	// Size returns the number of bound addresses.
	Size() int

	// GetMemoryFootprint provides the size of the index in memory in bytes.
	GetMemoryFootprint() *common.MemoryFootprint
}

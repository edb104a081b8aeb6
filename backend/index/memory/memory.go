// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"fmt"
	"unsafe"

	"github.com/rollupstate/restore/backend/index"
	"github.com/rollupstate/restore/common"
)

// Index is an in-memory index.AddressIndex backed by two hash maps, one per
// direction, so both lookups are O(1).
type Index struct {
	ids       map[common.Address]common.AccountId
	addresses map[common.AccountId]common.Address
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		ids:       map[common.Address]common.AccountId{},
		addresses: map[common.AccountId]common.Address{},
	}
}

func (m *Index) Resolve(address common.Address) (common.AccountId, bool) {
	id, exists := m.ids[address]
	return id, exists
}

func (m *Index) AddressOf(id common.AccountId) (common.Address, bool) {
	address, exists := m.addresses[id]
	return address, exists
}

func (m *Index) Bind(address common.Address, id common.AccountId) error {
	if cur, exists := m.ids[address]; exists {
		if cur == id {
			return nil
		}
		return fmt.Errorf("%w: %v is bound to account %d, not %d", index.ErrDuplicateAddress, address, cur, id)
	}
	if cur, exists := m.addresses[id]; exists {
		return fmt.Errorf("%w: account %d is bound to %v, not %v", index.ErrDuplicateAddress, id, cur, address)
	}
	m.ids[address] = id
	m.addresses[id] = address
	return nil
}

func (m *Index) Unbind(address common.Address) error {
	id, exists := m.ids[address]
	if !exists {
		return fmt.Errorf("%w: %v", index.ErrUnknownAddress, address)
	}
	delete(m.ids, address)
	delete(m.addresses, id)
	return nil
}

func (m *Index) Size() int {
	return len(m.ids)
}

func (m *Index) GetMemoryFootprint() *common.MemoryFootprint {
	entrySize := unsafe.Sizeof(common.Address{}) + unsafe.Sizeof(common.AccountId(0))
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("ids", common.NewMemoryFootprint(uintptr(len(m.ids))*entrySize))
	mf.AddChild("addresses", common.NewMemoryFootprint(uintptr(len(m.addresses))*entrySize))
	return mf
}

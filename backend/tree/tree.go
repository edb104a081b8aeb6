// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tree

//go:generate mockgen -source tree.go -destination tree_mocks.go -package tree

import (
	"github.com/rollupstate/restore/common"
)

const (
	// MaxDepth is the deepest supported tree, bounded by the width of AccountId.
	MaxDepth = 32

	// ErrCapacityExceeded is returned for ids outside of the tree's address space.
	ErrCapacityExceeded = common.ConstError("account id exceeds tree capacity")

	// ErrInvalidDepth is returned when creating a tree with an unsupported depth.
	ErrInvalidDepth = common.ConstError("tree depth must be in the range [1, 32]")
)

// AccountTree is a fixed depth sparse Merkle tree mapping account ids to
// account records. Every slot holds either a live account or the empty
// placeholder. The root hash is a pure function of the set of live
// (id, account) pairs and does not depend on the order of updates.
type AccountTree interface {
	// Get returns a copy of the account stored in the given slot, false if the slot is empty.
	Get(id common.AccountId) (common.Account, bool)

	// Set stores the account in the given slot and updates the hashes on the path to the root.
	Set(id common.AccountId, account common.Account) error

	// Remove resets the given slot to empty.
	Remove(id common.AccountId) error

	// RootHash returns the root commitment of the current content.
	RootHash() common.Hash

	// Proof returns the sibling hashes on the path from the given slot to the root.
	Proof(id common.AccountId) (Proof, error)

	// ForEach visits all live slots in ascending id order.
	ForEach(callback func(common.AccountId, common.Account))

	// Size returns the number of live slots.
	Size() int

	// Depth returns the number of levels below the root.
	Depth() int

	// Capacity returns the number of slots, i.e. 2^Depth.
	Capacity() uint64

	// GetMemoryFootprint provides the size of the tree in memory in bytes.
	GetMemoryFootprint() *common.MemoryFootprint
}

// Proof is a Merkle inclusion proof for a single slot. Siblings are ordered
// from the leaf level up to the level just below the root.
type Proof struct {
	Siblings []common.Hash
}

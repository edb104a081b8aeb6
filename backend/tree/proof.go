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

import (
	"fmt"

	"github.com/rollupstate/restore/common"
)

// EmptyLeafHash is the hash of an empty slot.
var EmptyLeafHash = common.Hash{}

// LeafHash computes the hash of a live slot holding the given account.
func LeafHash(hasher common.Hasher, account *common.Account) common.Hash {
	return hasher.Hash(account.Encode())
}

// NodeHash combines the hashes of two sibling nodes.
func NodeHash(hasher common.Hasher, left, right common.Hash) common.Hash {
	return hasher.Hash(left[:], right[:])
}

// EmptyHashes returns the hashes of empty subtrees for all heights from 0
// (a single empty leaf) up to depth (an entirely empty tree).
func EmptyHashes(hasher common.Hasher, depth int) []common.Hash {
	res := make([]common.Hash, depth+1)
	res[0] = EmptyLeafHash
	for i := 1; i <= depth; i++ {
		res[i] = NodeHash(hasher, res[i-1], res[i-1])
	}
	return res
}

// CheckDepth verifies that the depth is within the supported range.
func CheckDepth(depth int) error {
	if depth < 1 || depth > MaxDepth {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	return nil
}

// ComputeRoot folds a leaf hash with the proof's siblings into the root hash.
func ComputeRoot(hasher common.Hasher, id common.AccountId, leaf common.Hash, proof Proof) common.Hash {
	hash := leaf
	index := uint64(id)
	for _, sibling := range proof.Siblings {
		if index&1 == 0 {
			hash = NodeHash(hasher, hash, sibling)
		} else {
			hash = NodeHash(hasher, sibling, hash)
		}
		index >>= 1
	}
	return hash
}

// VerifyProof checks that the given slot holds the account under the given
// root. A nil account asserts that the slot is empty.
func VerifyProof(hasher common.Hasher, root common.Hash, id common.AccountId, account *common.Account, proof Proof) bool {
	if len(proof.Siblings) < MaxDepth && uint64(id)>>len(proof.Siblings) != 0 {
		return false
	}
	leaf := EmptyLeafHash
	if account != nil {
		leaf = LeafHash(hasher, account)
	}
	return ComputeRoot(hasher, id, leaf, proof) == root
}

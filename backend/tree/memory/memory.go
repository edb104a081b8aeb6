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

	"github.com/rollupstate/restore/backend/tree"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/common/amount"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Tree is an in-memory tree.AccountTree. Only live leaves and inner nodes
// differing from the empty subtree hash of their height are materialized, so
// memory is proportional to the number of accounts times the depth.
type Tree struct {
	hasher common.Hasher
	depth  int
	leaves map[common.AccountId]common.Account
	nodes  []map[uint64]common.Hash // height - node index - hash; height 0 are leaf hashes
	empty  []common.Hash            // hash of an empty subtree per height
	root   common.Hash
}

// NewTree creates an empty tree of the given depth using the given hasher.
func NewTree(hasher common.Hasher, depth int) (*Tree, error) {
	if err := tree.CheckDepth(depth); err != nil {
		return nil, err
	}
	nodes := make([]map[uint64]common.Hash, depth)
	for i := range nodes {
		nodes[i] = map[uint64]common.Hash{}
	}
	empty := tree.EmptyHashes(hasher, depth)
	return &Tree{
		hasher: hasher,
		depth:  depth,
		leaves: map[common.AccountId]common.Account{},
		nodes:  nodes,
		empty:  empty,
		root:   empty[depth],
	}, nil
}

func (t *Tree) checkId(id common.AccountId) error {
	if uint64(id) >= t.Capacity() {
		return fmt.Errorf("%w: id %d, capacity %d", tree.ErrCapacityExceeded, id, t.Capacity())
	}
	return nil
}

func (t *Tree) Get(id common.AccountId) (common.Account, bool) {
	account, found := t.leaves[id]
	if !found {
		return common.Account{}, false
	}
	return account.Copy(), true
}

func (t *Tree) Set(id common.AccountId, account common.Account) error {
	if err := t.checkId(id); err != nil {
		return err
	}
	account = account.Copy()
	t.leaves[id] = account
	t.updatePath(uint64(id), tree.LeafHash(t.hasher, &account))
	return nil
}

func (t *Tree) Remove(id common.AccountId) error {
	if err := t.checkId(id); err != nil {
		return err
	}
	if _, found := t.leaves[id]; !found {
		return nil
	}
	delete(t.leaves, id)
	t.updatePath(uint64(id), tree.EmptyLeafHash)
	return nil
}

// updatePath writes the new leaf hash and recomputes all hashes up to the root.
func (t *Tree) updatePath(index uint64, hash common.Hash) {
	for height := 0; height < t.depth; height++ {
		t.setNode(height, index, hash)
		sibling := t.getNode(height, index^1)
		if index&1 == 0 {
			hash = tree.NodeHash(t.hasher, hash, sibling)
		} else {
			hash = tree.NodeHash(t.hasher, sibling, hash)
		}
		index >>= 1
	}
	t.root = hash
}

func (t *Tree) getNode(height int, index uint64) common.Hash {
	if hash, found := t.nodes[height][index]; found {
		return hash
	}
	return t.empty[height]
}

func (t *Tree) setNode(height int, index uint64, hash common.Hash) {
	if hash == t.empty[height] {
		delete(t.nodes[height], index)
	} else {
		t.nodes[height][index] = hash
	}
}

func (t *Tree) RootHash() common.Hash {
	return t.root
}

func (t *Tree) Proof(id common.AccountId) (tree.Proof, error) {
	if err := t.checkId(id); err != nil {
		return tree.Proof{}, err
	}
	siblings := make([]common.Hash, t.depth)
	index := uint64(id)
	for height := 0; height < t.depth; height++ {
		siblings[height] = t.getNode(height, index^1)
		index >>= 1
	}
	return tree.Proof{Siblings: siblings}, nil
}

func (t *Tree) ForEach(callback func(common.AccountId, common.Account)) {
	ids := maps.Keys(t.leaves)
	slices.Sort(ids)
	for _, id := range ids {
		callback(id, t.leaves[id].Copy())
	}
}

func (t *Tree) Size() int {
	return len(t.leaves)
}

func (t *Tree) Depth() int {
	return t.depth
}

func (t *Tree) Capacity() uint64 {
	return uint64(1) << t.depth
}

func (t *Tree) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*t))
	var leaves uintptr
	for _, account := range t.leaves {
		leaves += unsafe.Sizeof(common.AccountId(0)) + unsafe.Sizeof(account)
		leaves += uintptr(len(account.Balances)) * (unsafe.Sizeof(common.TokenId(0)) + unsafe.Sizeof(amount.Amount{}))
	}
	mf.AddChild("leaves", common.NewMemoryFootprint(leaves))
	var nodes int
	for _, level := range t.nodes {
		nodes += len(level)
	}
	mf.AddChild("nodes", common.NewMemoryFootprint(uintptr(nodes)*(unsafe.Sizeof(uint64(0))+unsafe.Sizeof(common.Hash{}))))
	mf.AddChild("emptyHashes", common.NewMemoryFootprint(uintptr(len(t.empty))*unsafe.Sizeof(common.Hash{})))
	return mf
}

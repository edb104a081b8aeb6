// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"fmt"
	"unsafe"

	"github.com/rollupstate/restore/backend/index"
	"github.com/rollupstate/restore/backend/tree"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/ops"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AccountEntry pairs an account with its id.
type AccountEntry struct {
	Id      common.AccountId
	Account common.Account
}

// LedgerState is the account ledger reconstructed by replaying operations.
// It exclusively owns its account tree and address index; all mutations go
// through Apply, one operation at a time in chain order.
//
// A LedgerState is not safe for concurrent use.
type LedgerState struct {
	params     Parameters
	tree       tree.AccountTree
	index      index.AddressIndex
	ids        *idPool
	block      common.BlockNumber
	feeAccount *common.AccountId // nil if fees are collected outside the ledger
}

// New creates the ledger of the genesis state. Replay starts with block 1.
func New(params Parameters) (*LedgerState, error) {
	return Load(params, nil, 0)
}

// Load creates a ledger from a snapshot of the accounts after the given
// block. Replay resumes with the next block.
func Load(params Parameters, accounts map[common.AccountId]common.Account, block common.BlockNumber) (*LedgerState, error) {
	params = params.withDefaults()
	t, idx, err := createBackends(params)
	if err != nil {
		return nil, err
	}
	res := newLedgerState(t, idx, block+1)
	res.params = params

	ids := maps.Keys(accounts)
	slices.Sort(ids)
	for _, id := range ids {
		account := accounts[id]
		if err := res.index.Bind(account.Address, id); err != nil {
			return nil, fmt.Errorf("invalid snapshot, account %d: %w", id, err)
		}
		if err := res.tree.Set(id, account); err != nil {
			return nil, fmt.Errorf("invalid snapshot, account %d: %w", id, err)
		}
		res.ids.take(id)
	}
	return res, nil
}

func newLedgerState(t tree.AccountTree, idx index.AddressIndex, block common.BlockNumber) *LedgerState {
	return &LedgerState{
		tree:  t,
		index: idx,
		ids:   newIdPool(),
		block: block,
	}
}

// Apply executes a single operation. On error, the ledger is unchanged,
// unless the error is an ErrInconsistentState.
func (s *LedgerState) Apply(op ops.Operation) error {
	change, err := s.dispatch(op)
	if err != nil {
		return fmt.Errorf("failed to apply %v: %w", op, err)
	}
	if err := change.commit(); err != nil {
		return fmt.Errorf("%w: failed to commit %v: %v", ErrInconsistentState, op, err)
	}
	return nil
}

// Parameters returns the configuration the ledger was created with.
func (s *LedgerState) Parameters() Parameters {
	return s.params
}

// RootHash returns the root commitment of the account tree.
func (s *LedgerState) RootHash() common.Hash {
	return s.tree.RootHash()
}

// GetAccounts lists all live accounts ordered by id.
func (s *LedgerState) GetAccounts() []AccountEntry {
	res := make([]AccountEntry, 0, s.tree.Size())
	s.tree.ForEach(func(id common.AccountId, account common.Account) {
		res = append(res, AccountEntry{Id: id, Account: account})
	})
	return res
}

// GetAccountMap returns all live accounts in the format accepted by Load.
func (s *LedgerState) GetAccountMap() map[common.AccountId]common.Account {
	res := make(map[common.AccountId]common.Account, s.tree.Size())
	s.tree.ForEach(func(id common.AccountId, account common.Account) {
		res[id] = account
	})
	return res
}

// GetAccountByAddress looks up the account bound to the given address.
func (s *LedgerState) GetAccountByAddress(address common.Address) (AccountEntry, bool) {
	id, found := s.index.Resolve(address)
	if !found {
		return AccountEntry{}, false
	}
	account, found := s.tree.Get(id)
	if !found {
		return AccountEntry{}, false
	}
	return AccountEntry{Id: id, Account: account}, true
}

// GetAccount looks up the account stored under the given id.
func (s *LedgerState) GetAccount(id common.AccountId) (common.Account, bool) {
	return s.tree.Get(id)
}

// Proof returns the account of the given address along with a Merkle proof
// of its inclusion under the current root.
func (s *LedgerState) Proof(address common.Address) (AccountEntry, tree.Proof, error) {
	entry, found := s.GetAccountByAddress(address)
	if !found {
		return AccountEntry{}, tree.Proof{}, fmt.Errorf("%w: %v", ErrUnknownAddress, address)
	}
	proof, err := s.tree.Proof(entry.Id)
	if err != nil {
		return AccountEntry{}, tree.Proof{}, err
	}
	return entry, proof, nil
}

// GetMemoryFootprint provides the size of the ledger in memory in bytes.
func (s *LedgerState) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("tree", s.tree.GetMemoryFootprint())
	mf.AddChild("index", s.index.GetMemoryFootprint())
	mf.AddChild("freeIds", common.NewMemoryFootprint(uintptr(s.ids.numRanges())*unsafe.Sizeof(idRange{})))
	return mf
}

// NumAccounts returns the number of live accounts.
func (s *LedgerState) NumAccounts() int {
	return s.tree.Size()
}

// BlockNumber returns the number of the block currently being replayed.
func (s *LedgerState) BlockNumber() common.BlockNumber {
	return s.block
}

// AdvanceBlock signals the end of the current block.
func (s *LedgerState) AdvanceBlock() {
	s.block++
}

// FeeAccount returns the account credited with the fees of the current
// block, if there is one.
func (s *LedgerState) FeeAccount() (common.AccountId, bool) {
	if s.feeAccount == nil {
		return 0, false
	}
	return *s.feeAccount, true
}

// SetFeeAccount sets the account credited with fees, as published in the
// metadata of the current block.
func (s *LedgerState) SetFeeAccount(id common.AccountId) {
	s.feeAccount = &id
}

// ClearFeeAccount makes fees leave the ledger, as withdrawn funds do.
func (s *LedgerState) ClearFeeAccount() {
	s.feeAccount = nil
}

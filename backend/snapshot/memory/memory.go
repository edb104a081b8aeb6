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
	"github.com/rollupstate/restore/backend/snapshot"
	"github.com/rollupstate/restore/common"
)

// Store is an in-memory snapshot.Store, retaining the snapshot until it is closed.
type Store struct {
	snapshot *snapshot.Snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(snap snapshot.Snapshot) error {
	s.snapshot = &snapshot.Snapshot{Block: snap.Block, Accounts: copyAccounts(snap.Accounts)}
	return nil
}

func (s *Store) Load() (snapshot.Snapshot, error) {
	if s.snapshot == nil {
		return snapshot.Snapshot{}, snapshot.ErrNoSnapshot
	}
	return snapshot.Snapshot{Block: s.snapshot.Block, Accounts: copyAccounts(s.snapshot.Accounts)}, nil
}

func (s *Store) Close() error {
	s.snapshot = nil
	return nil
}

func copyAccounts(accounts map[common.AccountId]common.Account) map[common.AccountId]common.Account {
	res := make(map[common.AccountId]common.Account, len(accounts))
	for id, account := range accounts {
		res[id] = account.Copy()
	}
	return res
}

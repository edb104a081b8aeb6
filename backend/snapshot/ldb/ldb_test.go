// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"errors"
	"testing"

	"github.com/rollupstate/restore/backend"
	"github.com/rollupstate/restore/backend/snapshot"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/common/amount"
	"github.com/syndtr/goleveldb/leveldb"
)

func TestStore_SnapshotSurvivesReopening(t *testing.T) {
	dir := t.TempDir()
	account := common.NewAccount(common.AddressFromNumber(1))
	account.SetBalance(3, amount.New(42))

	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Save(snapshot.Snapshot{Block: 5, Accounts: map[common.AccountId]common.Account{7: account}}); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	store, err = OpenStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()
	got, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if got.Block != 5 {
		t.Errorf("unexpected block, got %d, want 5", got.Block)
	}
	if stored, found := got.Accounts[7]; !found || !stored.Equal(&account) {
		t.Errorf("unexpected account, got %v, want %v", stored, account)
	}
}

func TestStore_SharedDatabaseIsNotClosed(t *testing.T) {
	db, err := backend.OpenLevelDb(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	store := NewStore(db)
	if err := store.Save(snapshot.Snapshot{Block: 1}); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	if _, err := db.Get(blockKey, nil); err != nil {
		t.Errorf("database is no longer usable: %v", err)
	}
}

func TestStore_CorruptedAccountIsReported(t *testing.T) {
	db, err := backend.OpenLevelDb(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	store := NewStore(db)
	if err := store.Save(snapshot.Snapshot{Block: 1}); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if err := db.Put(store.accountKey(1), []byte{1, 2, 3}, nil); err != nil {
		t.Fatalf("failed to write corrupted account: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Errorf("loading a corrupted account should fail")
	}
}

func TestStore_MalformedAccountKeyIsReported(t *testing.T) {
	db, err := backend.OpenLevelDb(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	store := NewStore(db)
	if err := db.Put(backend.AccountStoreKey.ToDBKey([]byte{1, 2}), []byte{}, nil); err != nil {
		t.Fatalf("failed to write malformed key: %v", err)
	}
	if err := store.Save(snapshot.Snapshot{Block: 1}); err == nil {
		t.Errorf("saving over a malformed key should fail")
	}
	if _, err := db.Get(blockKey, nil); !errors.Is(err, leveldb.ErrNotFound) {
		t.Errorf("failed save must not write the block number, got %v", err)
	}
}

func TestStore_ClosedDatabaseErrorsArePropagated(t *testing.T) {
	db, err := backend.OpenLevelDb(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	store := NewStore(db)
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, leveldb.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

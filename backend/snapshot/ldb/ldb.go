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
	"fmt"

	"github.com/rollupstate/restore/backend"
	"github.com/rollupstate/restore/backend/snapshot"
	"github.com/rollupstate/restore/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

var blockKey = backend.MetadataKey.ToDBKey([]byte("block"))

// Store is a snapshot.Store keeping accounts in a leveldb instance. Accounts
// are stored under their big endian id so that iteration follows id order.
type Store struct {
	db              backend.LevelDB
	ownsDb          bool
	idSerializer    common.AccountIdSerializer
	blockSerializer common.BlockNumberSerializer
}

// OpenStore opens the store located in the given directory, creating it if needed.
func OpenStore(path string) (*Store, error) {
	db, err := backend.OpenLevelDb(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store in %s: %w", path, err)
	}
	res := NewStore(db)
	res.ownsDb = true
	return res, nil
}

// NewStore creates a store on top of the given database. The database is not
// closed by the store.
func NewStore(db backend.LevelDB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(snap snapshot.Snapshot) error {
	batch := new(leveldb.Batch)

	iter := s.db.NewIterator(backend.AccountStoreKey.Range(), nil)
	for iter.Next() {
		key := iter.Key()[1:] // strip table space
		if len(key) != s.idSerializer.Size() {
			iter.Release()
			return fmt.Errorf("invalid account key %x", iter.Key())
		}
		if _, keep := snap.Accounts[s.idSerializer.FromBytes(key)]; !keep {
			batch.Delete(append([]byte(nil), iter.Key()...))
		}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}

	for id, account := range snap.Accounts {
		batch.Put(s.accountKey(id), account.Encode())
	}
	batch.Put(blockKey, s.blockSerializer.ToBytes(snap.Block))
	return s.db.Write(batch, nil)
}

func (s *Store) Load() (snapshot.Snapshot, error) {
	data, err := s.db.Get(blockKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return snapshot.Snapshot{}, snapshot.ErrNoSnapshot
	}
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	if len(data) != s.blockSerializer.Size() {
		return snapshot.Snapshot{}, fmt.Errorf("invalid block number encoding of length %d", len(data))
	}
	res := snapshot.Snapshot{
		Block:    s.blockSerializer.FromBytes(data),
		Accounts: map[common.AccountId]common.Account{},
	}

	iter := s.db.NewIterator(backend.AccountStoreKey.Range(), nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()[1:] // strip table space
		if len(key) != s.idSerializer.Size() {
			return snapshot.Snapshot{}, fmt.Errorf("invalid account key %x", iter.Key())
		}
		id := s.idSerializer.FromBytes(key)
		account, err := common.DecodeAccount(iter.Value())
		if err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("invalid account %d: %w", id, err)
		}
		res.Accounts[id] = account
	}
	return res, iter.Error()
}

func (s *Store) Close() error {
	if !s.ownsDb {
		return nil
	}
	return s.db.Close()
}

func (s *Store) accountKey(id common.AccountId) []byte {
	return backend.AccountStoreKey.ToDBKey(s.idSerializer.ToBytes(id))
}

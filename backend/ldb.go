// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// TableSpace divide key-value storage into spaces by adding a prefix to the key.
type TableSpace byte

const (
	// AccountStoreKey is a tablespace for account records keyed by id
	AccountStoreKey TableSpace = 'a'
	// MetadataKey is a tablespace for snapshot metadata like the block number
	MetadataKey TableSpace = 'm'
)

// ToDBKey converts the input key to its respective table space key
func (t TableSpace) ToDBKey(key []byte) []byte {
	dbKey := make([]byte, 0, len(key)+1)
	dbKey = append(dbKey, byte(t))
	return append(dbKey, key...)
}

// Range returns the key range covering the whole table space.
func (t TableSpace) Range() *util.Range {
	return &util.Range{Start: []byte{byte(t)}, Limit: []byte{byte(t) + 1}}
}

// LevelDB is the subset of the leveldb API used by the snapshot store. It is
// implemented by *leveldb.DB.
type LevelDB interface {
	// Get gets the value for the given key. It returns ErrNotFound if the
	// DB does not contains the key.
	Get(key []byte, ro *opt.ReadOptions) (value []byte, err error)

	// Has returns true if the DB does contains the given key.
	Has(key []byte, ro *opt.ReadOptions) (bool, error)

	// NewIterator returns an iterator for the latest snapshot of the
	// underlying DB, restricted to the given key range.
	//
	// The iterator must be released after use, by calling Release method.
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator

	// Write apply the given batch to the DB. The batch records will be applied
	// sequentially and atomically.
	Write(batch *leveldb.Batch, wo *opt.WriteOptions) error

	// Close closes the DB.
	Close() error
}

// OpenLevelDb opens (or creates) a leveldb instance in the given directory.
// Nil options select the library defaults.
func OpenLevelDb(path string, options *opt.Options) (*leveldb.DB, error) {
	return leveldb.OpenFile(path, options)
}

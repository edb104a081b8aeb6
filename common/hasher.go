// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Hasher computes the digests committing the account tree. Implementations
// must be deterministic and safe for concurrent use.
type Hasher interface {
	// Hash computes the digest of the concatenation of the given byte slices.
	Hash(data ...[]byte) Hash
	// Name is the identifier used to select the hasher in configurations.
	Name() string
}

// HasherKind names a supported hash function.
type HasherKind string

const (
	Keccak256 HasherKind = "keccak256"
	Sha256    HasherKind = "sha256"
	Blake3    HasherKind = "blake3"
)

// GetHasher returns the hasher for the given kind.
func GetHasher(kind HasherKind) (Hasher, error) {
	switch kind {
	case Keccak256, "":
		return KeccakHasher, nil
	case Sha256:
		return Sha256Hasher, nil
	case Blake3:
		return Blake3Hasher, nil
	}
	return nil, fmt.Errorf("unknown hasher: %q", kind)
}

var (
	KeccakHasher Hasher = &pooledHasher{kind: Keccak256, pool: sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}}
	Sha256Hasher Hasher = &pooledHasher{kind: Sha256, pool: sync.Pool{New: func() any { return sha256.New() }}}
	Blake3Hasher Hasher = &pooledHasher{kind: Blake3, pool: sync.Pool{New: func() any { return blake3.New() }}}
)

// pooledHasher recycles hash.Hash instances between calls.
type pooledHasher struct {
	kind HasherKind
	pool sync.Pool
}

func (p *pooledHasher) Hash(data ...[]byte) Hash {
	h := p.pool.Get().(hash.Hash)
	h.Reset()
	for _, d := range data {
		h.Write(d)
	}
	var res Hash
	h.Sum(res[:0])
	p.pool.Put(h)
	return res
}

func (p *pooledHasher) Name() string {
	return string(p.kind)
}

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

	"github.com/rollupstate/restore/backend/index"
	indexmem "github.com/rollupstate/restore/backend/index/memory"
	"github.com/rollupstate/restore/backend/tree"
	treemem "github.com/rollupstate/restore/backend/tree/memory"
	"github.com/rollupstate/restore/common"
)

// Parameters struct defining configuration parameters for ledger instances.
type Parameters struct {
	Variant Variant           // backend implementation, "memory" if empty
	Depth   int               // depth of the account tree, DefaultDepth if zero
	Hasher  common.HasherKind // hash function of the account tree, keccak256 if empty
}

// Variant names a combination of tree and index implementations.
type Variant string

const (
	// MemoryVariant keeps the tree and the index in memory.
	MemoryVariant Variant = "memory"

	// DefaultDepth supports 2^24 accounts.
	DefaultDepth = 24
)

// UnsupportedConfiguration is the error returned if unsupported configuration
// parameters have been specified. The text may contain further details regarding the
// unsupported feature.
const UnsupportedConfiguration = common.ConstError("unsupported configuration")

// DefaultParameters returns the parameters used by the restore tool unless overridden.
func DefaultParameters() Parameters {
	return Parameters{
		Variant: MemoryVariant,
		Depth:   DefaultDepth,
		Hasher:  common.Keccak256,
	}
}

func (p Parameters) withDefaults() Parameters {
	if p.Variant == "" {
		p.Variant = MemoryVariant
	}
	if p.Depth == 0 {
		p.Depth = DefaultDepth
	}
	if p.Hasher == "" {
		p.Hasher = common.Keccak256
	}
	return p
}

func (p Parameters) String() string {
	return fmt.Sprintf("%s_d%d_%s", p.Variant, p.Depth, p.Hasher)
}

type backendFactory func(hasher common.Hasher, depth int) (tree.AccountTree, index.AddressIndex, error)

var backendRegistry = map[Variant]backendFactory{
	MemoryVariant: func(hasher common.Hasher, depth int) (tree.AccountTree, index.AddressIndex, error) {
		t, err := treemem.NewTree(hasher, depth)
		if err != nil {
			return nil, nil, err
		}
		return t, indexmem.NewIndex(), nil
	},
}

func createBackends(params Parameters) (tree.AccountTree, index.AddressIndex, error) {
	factory, found := backendRegistry[params.Variant]
	if !found {
		return nil, nil, fmt.Errorf("%w: no registered implementation for %v", UnsupportedConfiguration, params.Variant)
	}
	hasher, err := common.GetHasher(params.Hasher)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", UnsupportedConfiguration, err)
	}
	t, idx, err := factory(hasher, params.Depth)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", UnsupportedConfiguration, err)
	}
	return t, idx, nil
}

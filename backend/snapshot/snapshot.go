// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package snapshot

import (
	"github.com/rollupstate/restore/common"
)

// ErrNoSnapshot is returned when loading from a store that was never saved to.
const ErrNoSnapshot = common.ConstError("no snapshot stored")

// Snapshot is the set of live accounts after a finalized block.
type Snapshot struct {
	Block    common.BlockNumber
	Accounts map[common.AccountId]common.Account
}

// Store persists the latest snapshot of a ledger. Every Save replaces the
// previously stored snapshot as a whole.
type Store interface {
	// Save replaces the stored snapshot by the given one.
	Save(snapshot Snapshot) error

	// Load returns the stored snapshot, or ErrNoSnapshot if there is none.
	Load() (Snapshot, error)

	// Close releases the resources of the store.
	Close() error
}

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
	"github.com/rollupstate/restore/backend/index"
	"github.com/rollupstate/restore/backend/tree"
	"github.com/rollupstate/restore/common"
)

// Errors reported by Apply. Each of them means that the replayed operation
// is not valid on top of the current ledger, which indicates a decoding bug
// or tampered input. The ledger is left unmodified.
const (
	// ErrUnknownAddress is reported if an operation references an address without an account.
	ErrUnknownAddress = index.ErrUnknownAddress

	// ErrDuplicateAddress is reported if an operation would create a second account for an address.
	ErrDuplicateAddress = index.ErrDuplicateAddress

	// ErrCapacityExceeded is reported if no free account id is left in the tree.
	ErrCapacityExceeded = tree.ErrCapacityExceeded

	// ErrNonceMismatch is reported if a transaction's nonce differs from the account's nonce.
	ErrNonceMismatch = common.ConstError("nonce mismatch")

	// ErrInsufficientBalance is reported if a debit would make a balance negative.
	ErrInsufficientBalance = common.ConstError("insufficient balance")

	// ErrNonZeroBalanceOnClose is reported if an account to be closed still holds funds.
	ErrNonZeroBalanceOnClose = common.ConstError("closing account with non-zero balance")

	// ErrUnknownAccount is reported if a fee is charged while the fee account does not exist.
	ErrUnknownAccount = common.ConstError("unknown account")

	// ErrBalanceOverflow is reported if a credit exceeds the 256-bit balance range.
	ErrBalanceOverflow = common.ConstError("balance overflow")

	// ErrNonceOverflow is reported if a transaction would wrap the account's nonce.
	ErrNonceOverflow = common.ConstError("nonce overflow")

	// ErrInconsistentState is reported if committing a validated operation
	// failed in the backends. The ledger must not be used afterwards.
	ErrInconsistentState = common.ConstError("ledger state inconsistent")
)

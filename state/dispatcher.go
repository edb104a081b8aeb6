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

	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/ops"
)

// dispatch validates the operation against the current ledger and returns
// its effects. Priority operations are applied as requested; transactions
// are first checked to originate from an existing account with exactly the
// operation's nonce.
func (s *LedgerState) dispatch(op ops.Operation) (*transition, error) {
	t := newTransition(s)
	if op.Kind().IsPriority() {
		return t, s.executePriorityOp(t, op)
	}
	return t, s.executeTx(t, op)
}

func (s *LedgerState) executePriorityOp(t *transition, op ops.Operation) error {
	switch o := op.(type) {
	case ops.Deposit:
		return t.deposit(o)
	case ops.FullExit:
		return t.fullExit(o)
	}
	return fmt.Errorf("%w: %T", ops.ErrUnknownOperation, op)
}

func (s *LedgerState) executeTx(t *transition, op ops.Operation) error {
	var from common.Address
	var nonce common.Nonce
	switch o := op.(type) {
	case ops.Transfer:
		from, nonce = o.From, o.Nonce
	case ops.TransferToNew:
		from, nonce = o.From, o.Nonce
	case ops.Withdraw:
		from, nonce = o.From, o.Nonce
	case ops.Close:
		from, nonce = o.From, o.Nonce
	default:
		return fmt.Errorf("%w: %T", ops.ErrUnknownOperation, op)
	}

	id, err := t.resolve(from)
	if err != nil {
		return err
	}
	account, err := t.get(id)
	if err != nil {
		return err
	}
	if account.Nonce != nonce {
		return fmt.Errorf("%w: account %d has nonce %d, transaction has %d", ErrNonceMismatch, id, account.Nonce, nonce)
	}

	switch o := op.(type) {
	case ops.Transfer:
		return t.transfer(id, o)
	case ops.TransferToNew:
		return t.transferToNew(id, o)
	case ops.Withdraw:
		return t.withdraw(id, o)
	case ops.Close:
		return t.close(id, o)
	}
	return nil
}

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
	"github.com/rollupstate/restore/common/amount"
	"github.com/rollupstate/restore/ops"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// transition collects the effects of a single operation on working copies
// of the touched accounts. Nothing is written to the ledger before commit,
// so a failed precondition leaves the ledger untouched.
type transition struct {
	ledger   *LedgerState
	accounts map[common.AccountId]common.Account // updated live accounts
	created  *AccountEntry                       // account to be bound to a fresh id
	closed   *AccountEntry                       // account to be deleted
}

func newTransition(ledger *LedgerState) *transition {
	return &transition{
		ledger:   ledger,
		accounts: map[common.AccountId]common.Account{},
	}
}

// resolve returns the id of an existing account.
func (t *transition) resolve(address common.Address) (common.AccountId, error) {
	id, found := t.ledger.index.Resolve(address)
	if !found {
		return 0, fmt.Errorf("%w: %v", ErrUnknownAddress, address)
	}
	return id, nil
}

// get returns the working copy of the account with the given id.
func (t *transition) get(id common.AccountId) (common.Account, error) {
	if account, found := t.accounts[id]; found {
		return account, nil
	}
	account, found := t.ledger.tree.Get(id)
	if !found {
		return common.Account{}, fmt.Errorf("%w: %d", ErrUnknownAccount, id)
	}
	t.accounts[id] = account
	return account, nil
}

// create allocates the smallest unused id for a new account with the given address.
func (t *transition) create(address common.Address) (common.AccountId, error) {
	if cur, found := t.ledger.index.Resolve(address); found {
		return 0, fmt.Errorf("%w: %v is bound to account %d", ErrDuplicateAddress, address, cur)
	}
	if t.created != nil {
		panic("at most one account can be created per operation")
	}
	next := t.ledger.ids.peek()
	if next >= t.ledger.tree.Capacity() {
		return 0, fmt.Errorf("%w: all %d account ids are in use", ErrCapacityExceeded, t.ledger.tree.Capacity())
	}
	id := common.AccountId(next)
	t.created = &AccountEntry{Id: id, Account: common.NewAccount(address)}
	t.accounts[id] = t.created.Account
	return id, nil
}

func (t *transition) credit(id common.AccountId, token common.TokenId, value amount.Amount) error {
	if value.IsZero() {
		return nil
	}
	account, err := t.get(id)
	if err != nil {
		return err
	}
	sum, overflow := amount.AddOverflow(account.GetBalance(token), value)
	if overflow {
		return fmt.Errorf("%w: account %d, token %d", ErrBalanceOverflow, id, token)
	}
	account = account.Copy()
	account.SetBalance(token, sum)
	t.accounts[id] = account
	return nil
}

func (t *transition) debit(id common.AccountId, token common.TokenId, value amount.Amount) error {
	account, err := t.get(id)
	if err != nil {
		return err
	}
	balance := account.GetBalance(token)
	diff, underflow := amount.SubUnderflow(balance, value)
	if underflow {
		return fmt.Errorf("%w: account %d holds %v of token %d, needs %v", ErrInsufficientBalance, id, balance, token, value)
	}
	account = account.Copy()
	account.SetBalance(token, diff)
	t.accounts[id] = account
	return nil
}

func (t *transition) incrementNonce(id common.AccountId) error {
	account, err := t.get(id)
	if err != nil {
		return err
	}
	if account.Nonce+1 == 0 {
		return fmt.Errorf("%w: account %d", ErrNonceOverflow, id)
	}
	account.Nonce++
	t.accounts[id] = account
	return nil
}

// chargeFee moves the fee from the payer to the fee account of the current
// block. Without a fee account, the fee is only debited.
func (t *transition) chargeFee(payer common.AccountId, token common.TokenId, fee amount.Amount) error {
	if fee.IsZero() {
		return nil
	}
	if err := t.debit(payer, token, fee); err != nil {
		return err
	}
	if t.ledger.feeAccount == nil {
		return nil
	}
	return t.credit(*t.ledger.feeAccount, token, fee)
}

// commit writes all collected effects to the ledger.
func (t *transition) commit() error {
	l := t.ledger
	if t.created != nil {
		if err := l.index.Bind(t.created.Account.Address, t.created.Id); err != nil {
			return err
		}
		l.ids.take(t.created.Id)
	}
	ids := maps.Keys(t.accounts)
	slices.Sort(ids)
	for _, id := range ids {
		if t.closed != nil && t.closed.Id == id {
			continue
		}
		if err := l.tree.Set(id, t.accounts[id]); err != nil {
			return err
		}
	}
	if t.closed != nil {
		if err := l.index.Unbind(t.closed.Account.Address); err != nil {
			return err
		}
		if err := l.tree.Remove(t.closed.Id); err != nil {
			return err
		}
		l.ids.release(t.closed.Id)
	}
	return nil
}

// -- per operation effects --

func (t *transition) deposit(op ops.Deposit) error {
	id, found := t.ledger.index.Resolve(op.Address)
	if !found {
		var err error
		if id, err = t.create(op.Address); err != nil {
			return err
		}
	}
	return t.credit(id, op.Token, op.Amount)
}

func (t *transition) fullExit(op ops.FullExit) error {
	id, err := t.resolve(op.Address)
	if err != nil {
		return err
	}
	account, err := t.get(id)
	if err != nil {
		return err
	}
	account = account.Copy()
	account.Balances = nil
	t.accounts[id] = account
	return nil
}

func (t *transition) transfer(from common.AccountId, op ops.Transfer) error {
	to, err := t.resolve(op.To)
	if err != nil {
		return err
	}
	return t.move(from, to, op.Token, op.Amount, op.Fee)
}

func (t *transition) transferToNew(from common.AccountId, op ops.TransferToNew) error {
	to, err := t.create(op.To)
	if err != nil {
		return err
	}
	return t.move(from, to, op.Token, op.Amount, op.Fee)
}

// move debits amount and fee from the sender and credits the amount to the receiver.
func (t *transition) move(from, to common.AccountId, token common.TokenId, value, fee amount.Amount) error {
	total, overflow := amount.AddOverflow(value, fee)
	if overflow {
		return fmt.Errorf("%w: amount %v plus fee %v exceeds any balance", ErrInsufficientBalance, value, fee)
	}
	sender, err := t.get(from)
	if err != nil {
		return err
	}
	if sender.GetBalance(token).Cmp(total) < 0 {
		return fmt.Errorf("%w: account %d holds %v of token %d, needs %v", ErrInsufficientBalance, from, sender.GetBalance(token), token, total)
	}
	if err := t.debit(from, token, value); err != nil {
		return err
	}
	if err := t.credit(to, token, value); err != nil {
		return err
	}
	if err := t.chargeFee(from, token, fee); err != nil {
		return err
	}
	return t.incrementNonce(from)
}

func (t *transition) withdraw(from common.AccountId, op ops.Withdraw) error {
	total, overflow := amount.AddOverflow(op.Amount, op.Fee)
	if overflow {
		return fmt.Errorf("%w: amount %v plus fee %v exceeds any balance", ErrInsufficientBalance, op.Amount, op.Fee)
	}
	sender, err := t.get(from)
	if err != nil {
		return err
	}
	if sender.GetBalance(op.Token).Cmp(total) < 0 {
		return fmt.Errorf("%w: account %d holds %v of token %d, needs %v", ErrInsufficientBalance, from, sender.GetBalance(op.Token), op.Token, total)
	}
	if err := t.debit(from, op.Token, op.Amount); err != nil {
		return err
	}
	if err := t.chargeFee(from, op.Token, op.Fee); err != nil {
		return err
	}
	return t.incrementNonce(from)
}

func (t *transition) close(from common.AccountId, op ops.Close) error {
	account, err := t.get(from)
	if err != nil {
		return err
	}
	if !account.HasZeroBalances() {
		return fmt.Errorf("%w: account %d holds tokens %v", ErrNonZeroBalanceOnClose, from, account.Tokens())
	}
	t.closed = &AccountEntry{Id: from, Account: account}
	return nil
}

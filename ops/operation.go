// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ops

import (
	"fmt"

	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/common/amount"
)

// Kind enumerates the operation types recorded on chain.
type Kind byte

const (
	KindDeposit Kind = iota
	KindTransfer
	KindTransferToNew
	KindWithdraw
	KindClose
	KindFullExit
)

var kindNames = map[Kind]string{
	KindDeposit:       "deposit",
	KindTransfer:      "transfer",
	KindTransferToNew: "transfer_to_new",
	KindWithdraw:      "withdraw",
	KindClose:         "close",
	KindFullExit:      "full_exit",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("unknown(%d)", byte(k))
}

// IsPriority is true for operations originating outside of the rollup. They
// are not signed by the account owner and carry no nonce.
func (k Kind) IsPriority() bool {
	return k == KindDeposit || k == KindFullExit
}

// ParseKind resolves the name of an operation kind.
func ParseKind(name string) (Kind, error) {
	for kind, cur := range kindNames {
		if cur == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Operation is one of Deposit, FullExit, Transfer, TransferToNew, Withdraw
// and Close. The set of implementations is closed.
type Operation interface {
	Kind() Kind
	isOperation()
}

// Deposit credits funds moved into the rollup, creating the account if needed.
type Deposit struct {
	Address common.Address
	Token   common.TokenId
	Amount  amount.Amount
}

// FullExit is a forced exit requested outside of the rollup. It sweeps all
// balances of the account but keeps the account itself.
type FullExit struct {
	Address common.Address
}

// Transfer moves funds between two existing accounts.
type Transfer struct {
	From   common.Address
	To     common.Address
	Token  common.TokenId
	Amount amount.Amount
	Fee    amount.Amount
	Nonce  common.Nonce
}

// TransferToNew moves funds to an address without an account, creating it.
type TransferToNew struct {
	From   common.Address
	To     common.Address
	Token  common.TokenId
	Amount amount.Amount
	Fee    amount.Amount
	Nonce  common.Nonce
}

// Withdraw moves funds out of the rollup.
type Withdraw struct {
	From   common.Address
	Token  common.TokenId
	Amount amount.Amount
	Fee    amount.Amount
	Nonce  common.Nonce
}

// Close deletes an account without balances.
type Close struct {
	From  common.Address
	Nonce common.Nonce
}

func (Deposit) Kind() Kind       { return KindDeposit }
func (FullExit) Kind() Kind      { return KindFullExit }
func (Transfer) Kind() Kind      { return KindTransfer }
func (TransferToNew) Kind() Kind { return KindTransferToNew }
func (Withdraw) Kind() Kind      { return KindWithdraw }
func (Close) Kind() Kind         { return KindClose }

func (Deposit) isOperation()       {}
func (FullExit) isOperation()      {}
func (Transfer) isOperation()      {}
func (TransferToNew) isOperation() {}
func (Withdraw) isOperation()      {}
func (Close) isOperation()         {}

func (o Deposit) String() string {
	return fmt.Sprintf("Deposit{address: %v, token: %d, amount: %v}", o.Address, o.Token, o.Amount)
}

func (o FullExit) String() string {
	return fmt.Sprintf("FullExit{address: %v}", o.Address)
}

func (o Transfer) String() string {
	return fmt.Sprintf("Transfer{from: %v, to: %v, token: %d, amount: %v, fee: %v, nonce: %d}", o.From, o.To, o.Token, o.Amount, o.Fee, o.Nonce)
}

func (o TransferToNew) String() string {
	return fmt.Sprintf("TransferToNew{from: %v, to: %v, token: %d, amount: %v, fee: %v, nonce: %d}", o.From, o.To, o.Token, o.Amount, o.Fee, o.Nonce)
}

func (o Withdraw) String() string {
	return fmt.Sprintf("Withdraw{from: %v, token: %d, amount: %v, fee: %v, nonce: %d}", o.From, o.Token, o.Amount, o.Fee, o.Nonce)
}

func (o Close) String() string {
	return fmt.Sprintf("Close{from: %v, nonce: %d}", o.From, o.Nonce)
}

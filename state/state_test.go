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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rollupstate/restore/backend/tree"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/common/amount"
	"github.com/rollupstate/restore/ops"
)

var (
	X = common.AddressFromNumber(1)
	Y = common.AddressFromNumber(2)
	Z = common.AddressFromNumber(3)
)

var cmpAmounts = cmp.AllowUnexported(amount.Amount{})

func newTestLedger(t *testing.T) *LedgerState {
	t.Helper()
	ledger, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return ledger
}

func mustApply(t *testing.T, ledger *LedgerState, operations ...ops.Operation) {
	t.Helper()
	for _, op := range operations {
		if err := ledger.Apply(op); err != nil {
			t.Fatalf("failed to apply %v: %v", op, err)
		}
	}
}

func getAccount(t *testing.T, ledger *LedgerState, address common.Address) AccountEntry {
	t.Helper()
	entry, found := ledger.GetAccountByAddress(address)
	if !found {
		t.Fatalf("no account for %v", address)
	}
	return entry
}

// checkUnchanged runs the operation and verifies that it fails with the given
// error without modifying the ledger.
func checkUnchanged(t *testing.T, ledger *LedgerState, op ops.Operation, want error) {
	t.Helper()
	rootBefore := ledger.RootHash()
	accountsBefore := ledger.GetAccounts()
	nextIdBefore := ledger.ids.peek()
	if err := ledger.Apply(op); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	if ledger.RootHash() != rootBefore {
		t.Errorf("root hash changed by failed operation")
	}
	if diff := cmp.Diff(accountsBefore, ledger.GetAccounts(), cmpAmounts); diff != "" {
		t.Errorf("accounts changed by failed operation (-before +after):\n%s", diff)
	}
	if ledger.ids.peek() != nextIdBefore {
		t.Errorf("id allocation changed by failed operation")
	}
}

// prepareScenario runs the deposit of scenario A and the transfer of scenario B.
func prepareScenario(t *testing.T) *LedgerState {
	ledger := newTestLedger(t)
	mustApply(t, ledger,
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(100)},
		ops.TransferToNew{From: X, To: Y, Token: 0, Amount: amount.New(30), Fee: amount.New(1), Nonce: 0},
	)
	return ledger
}

func TestLedger_ScenarioA_DepositCreatesAccount(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(100)})

	entry := getAccount(t, ledger, X)
	if entry.Id != 0 {
		t.Errorf("unexpected id, got %d, want 0", entry.Id)
	}
	if got := entry.Account.GetBalance(0); got != amount.New(100) {
		t.Errorf("unexpected balance, got %v, want 100", got)
	}
	if entry.Account.Nonce != 0 {
		t.Errorf("unexpected nonce, got %d, want 0", entry.Account.Nonce)
	}
}

func TestLedger_ScenarioB_TransferToNewAllocatesNextId(t *testing.T) {
	ledger := prepareScenario(t)

	x := getAccount(t, ledger, X)
	if got := x.Account.GetBalance(0); got != amount.New(69) {
		t.Errorf("unexpected balance of X, got %v, want 69", got)
	}
	if x.Account.Nonce != 1 {
		t.Errorf("unexpected nonce of X, got %d, want 1", x.Account.Nonce)
	}

	y := getAccount(t, ledger, Y)
	if y.Id != 1 {
		t.Errorf("unexpected id of Y, got %d, want 1", y.Id)
	}
	if got := y.Account.GetBalance(0); got != amount.New(30) {
		t.Errorf("unexpected balance of Y, got %v, want 30", got)
	}
	if y.Account.Nonce != 0 {
		t.Errorf("unexpected nonce of Y, got %d, want 0", y.Account.Nonce)
	}
}

func TestLedger_ScenarioC_WithdrawBeyondBalanceFails(t *testing.T) {
	ledger := prepareScenario(t)
	op := ops.Withdraw{From: X, Token: 0, Amount: amount.New(1000), Fee: amount.New(0), Nonce: 1}
	checkUnchanged(t, ledger, op, ErrInsufficientBalance)
}

func TestLedger_ScenarioD_CloseWithBalanceFails(t *testing.T) {
	ledger := prepareScenario(t)
	checkUnchanged(t, ledger, ops.Close{From: Y, Nonce: 0}, ErrNonZeroBalanceOnClose)
}

func TestLedger_ScenarioE_TransferWithWrongNonceFails(t *testing.T) {
	ledger := prepareScenario(t)
	op := ops.Transfer{From: Y, To: X, Token: 0, Amount: amount.New(1), Nonce: 5}
	checkUnchanged(t, ledger, op, ErrNonceMismatch)
}

func TestLedger_FeesAreCreditedToFeeAccount(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger,
		ops.Deposit{Address: Z, Token: 0, Amount: amount.New(0)}, // the operator, id 0
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(100)},
	)
	ledger.SetFeeAccount(0)
	mustApply(t, ledger,
		ops.TransferToNew{From: X, To: Y, Token: 0, Amount: amount.New(30), Fee: amount.New(2), Nonce: 0},
		ops.Withdraw{From: X, Token: 0, Amount: amount.New(10), Fee: amount.New(3), Nonce: 1},
	)
	if got := getAccount(t, ledger, Z).Account.GetBalance(0); got != amount.New(5) {
		t.Errorf("unexpected fee account balance, got %v, want 5", got)
	}
	if got := getAccount(t, ledger, X).Account.GetBalance(0); got != amount.New(55) {
		t.Errorf("unexpected balance of X, got %v, want 55", got)
	}
}

func TestLedger_FeeWithoutFeeAccountFails(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(100)})
	ledger.SetFeeAccount(7)
	op := ops.Withdraw{From: X, Token: 0, Amount: amount.New(10), Fee: amount.New(1), Nonce: 0}
	checkUnchanged(t, ledger, op, ErrUnknownAccount)

	// without a fee, no fee account is needed
	mustApply(t, ledger, ops.Withdraw{From: X, Token: 0, Amount: amount.New(10), Nonce: 0})
}

func TestLedger_FeesLeaveLedgerWithoutFeeAccount(t *testing.T) {
	ledger := newTestLedger(t)
	if _, found := ledger.FeeAccount(); found {
		t.Fatalf("new ledger should have no fee account")
	}
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(10)})
	ledger.SetFeeAccount(0)
	if id, found := ledger.FeeAccount(); !found || id != 0 {
		t.Errorf("unexpected fee account, got %d/%t", id, found)
	}
	ledger.ClearFeeAccount()
	mustApply(t, ledger, ops.Withdraw{From: X, Token: 0, Amount: amount.New(1), Fee: amount.New(2), Nonce: 0})
	if got := getAccount(t, ledger, X).Account.GetBalance(0); got != amount.New(7) {
		t.Errorf("unexpected balance, got %v, want 7", got)
	}
}

func TestLedger_FeeAccountMayPayItself(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(10)})
	ledger.SetFeeAccount(0)
	mustApply(t, ledger, ops.Withdraw{From: X, Token: 0, Amount: amount.New(4), Fee: amount.New(6), Nonce: 0})
	if got := getAccount(t, ledger, X).Account.GetBalance(0); got != amount.New(6) {
		t.Errorf("unexpected balance, got %v, want 6", got)
	}
}

func TestLedger_AmountPlusFeeMustBeCovered(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger,
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(10)},
		ops.Deposit{Address: Y, Token: 0, Amount: amount.New(0)},
	)
	checkUnchanged(t, ledger, ops.Transfer{From: X, To: Y, Token: 0, Amount: amount.New(10), Fee: amount.New(1), Nonce: 0}, ErrInsufficientBalance)
	checkUnchanged(t, ledger, ops.Transfer{From: X, To: Y, Token: 1, Amount: amount.New(1), Nonce: 0}, ErrInsufficientBalance)
	mustApply(t, ledger, ops.Transfer{From: X, To: Y, Token: 0, Amount: amount.New(9), Fee: amount.New(1), Nonce: 0})
	if got := getAccount(t, ledger, X).Account.GetBalance(0); !got.IsZero() {
		t.Errorf("unexpected balance of X, got %v, want 0", got)
	}
	if got := getAccount(t, ledger, Y).Account.GetBalance(0); got != amount.New(9) {
		t.Errorf("unexpected balance of Y, got %v, want 9", got)
	}
}

func TestLedger_TransferPreconditions(t *testing.T) {
	ledger := prepareScenario(t)
	checkUnchanged(t, ledger, ops.Transfer{From: Z, To: X, Token: 0, Amount: amount.New(1), Nonce: 0}, ErrUnknownAddress)
	checkUnchanged(t, ledger, ops.Transfer{From: X, To: Z, Token: 0, Amount: amount.New(1), Nonce: 1}, ErrUnknownAddress)
	checkUnchanged(t, ledger, ops.Transfer{From: X, To: Y, Token: 0, Amount: amount.New(1), Nonce: 0}, ErrNonceMismatch)
	checkUnchanged(t, ledger, ops.TransferToNew{From: X, To: Y, Token: 0, Amount: amount.New(1), Nonce: 1}, ErrDuplicateAddress)
	checkUnchanged(t, ledger, ops.TransferToNew{From: Z, To: Y, Token: 0, Amount: amount.New(1), Nonce: 0}, ErrUnknownAddress)
}

func TestLedger_TransferToSelfOnlyChargesFee(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger,
		ops.Deposit{Address: Z, Token: 0, Amount: amount.New(0)},
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(10)},
		ops.Transfer{From: X, To: X, Token: 0, Amount: amount.New(10), Fee: amount.New(0), Nonce: 0},
	)
	x := getAccount(t, ledger, X)
	if got := x.Account.GetBalance(0); got != amount.New(10) {
		t.Errorf("unexpected balance, got %v, want 10", got)
	}
	if x.Account.Nonce != 1 {
		t.Errorf("unexpected nonce, got %d, want 1", x.Account.Nonce)
	}
}

func TestLedger_DepositToExistingAccountCredits(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger,
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(100)},
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(5)},
		ops.Deposit{Address: X, Token: 3, Amount: amount.New(7)},
	)
	x := getAccount(t, ledger, X)
	if x.Id != 0 || ledger.NumAccounts() != 1 {
		t.Errorf("deposits to an existing address must not create accounts")
	}
	if got := x.Account.GetBalance(0); got != amount.New(105) {
		t.Errorf("unexpected balance, got %v, want 105", got)
	}
	if got := x.Account.GetBalance(3); got != amount.New(7) {
		t.Errorf("unexpected balance, got %v, want 7", got)
	}
}

func TestLedger_DepositOverflowFails(t *testing.T) {
	ledger := newTestLedger(t)
	maxAmount := amount.New(^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0))
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: maxAmount})
	checkUnchanged(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(1)}, ErrBalanceOverflow)
}

func TestLedger_FullExitSweepsBalancesButKeepsAccount(t *testing.T) {
	ledger := prepareScenario(t)
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 4, Amount: amount.New(8)})
	before := getAccount(t, ledger, X)

	mustApply(t, ledger, ops.FullExit{Address: X})
	after := getAccount(t, ledger, X)
	if after.Id != before.Id {
		t.Errorf("full exit changed the account id")
	}
	if !after.Account.HasZeroBalances() {
		t.Errorf("full exit left balances %v", after.Account.Balances)
	}
	if after.Account.Nonce != before.Account.Nonce {
		t.Errorf("full exit changed the nonce")
	}
	checkUnchanged(t, ledger, ops.FullExit{Address: Z}, ErrUnknownAddress)
}

func TestLedger_CloseDeletesAccountAndFreesId(t *testing.T) {
	ledger := prepareScenario(t)
	mustApply(t, ledger,
		ops.Transfer{From: Y, To: X, Token: 0, Amount: amount.New(30), Nonce: 0},
		ops.Close{From: Y, Nonce: 1},
	)
	if _, found := ledger.GetAccountByAddress(Y); found {
		t.Errorf("closed account is still reachable")
	}
	if _, found := ledger.GetAccount(1); found {
		t.Errorf("slot of closed account is not empty")
	}
	checkUnchanged(t, ledger, ops.Close{From: Y, Nonce: 2}, ErrUnknownAddress)

	// the freed id is the smallest unused one and gets reused
	mustApply(t, ledger, ops.Deposit{Address: Z, Token: 0, Amount: amount.New(1)})
	if got := getAccount(t, ledger, Z).Id; got != 1 {
		t.Errorf("unexpected id for new account, got %d, want 1", got)
	}
	// the closed address may come back
	mustApply(t, ledger, ops.Deposit{Address: Y, Token: 0, Amount: amount.New(1)})
	if got := getAccount(t, ledger, Y); got.Id != 2 || got.Account.Nonce != 0 {
		t.Errorf("unexpected account for returning address: %v", got)
	}
}

func TestLedger_CloseRestoresRootOfStateWithoutAccount(t *testing.T) {
	ledger := newTestLedger(t)
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(1)})
	before := ledger.RootHash()
	mustApply(t, ledger,
		ops.Deposit{Address: Y, Token: 0, Amount: amount.New(0)},
		ops.Close{From: Y, Nonce: 0},
	)
	if ledger.RootHash() != before {
		t.Errorf("root differs after closing the only new account")
	}
}

func TestLedger_CapacityExceeded(t *testing.T) {
	params := DefaultParameters()
	params.Depth = 1
	ledger, err := New(params)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	mustApply(t, ledger,
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(10)},
		ops.Deposit{Address: Y, Token: 0, Amount: amount.New(10)},
	)
	checkUnchanged(t, ledger, ops.Deposit{Address: Z, Token: 0, Amount: amount.New(10)}, ErrCapacityExceeded)
	checkUnchanged(t, ledger, ops.TransferToNew{From: X, To: Z, Token: 0, Amount: amount.New(1), Nonce: 0}, ErrCapacityExceeded)
}

func TestLedger_LoadResumesAtNextBlock(t *testing.T) {
	original := prepareScenario(t)
	loaded, err := Load(DefaultParameters(), original.GetAccountMap(), 41)
	if err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	if got := loaded.BlockNumber(); got != 42 {
		t.Errorf("unexpected block number, got %d, want 42", got)
	}
	if loaded.RootHash() != original.RootHash() {
		t.Errorf("loaded ledger has a different root")
	}
	if diff := cmp.Diff(original.GetAccounts(), loaded.GetAccounts(), cmpAmounts); diff != "" {
		t.Errorf("loaded accounts differ (-want +got):\n%s", diff)
	}
	mustApply(t, loaded, ops.Deposit{Address: Z, Token: 0, Amount: amount.New(1)})
	if got := getAccount(t, loaded, Z).Id; got != 2 {
		t.Errorf("unexpected id after load, got %d, want 2", got)
	}
}

func TestLedger_LoadFillsGapsFirst(t *testing.T) {
	accounts := map[common.AccountId]common.Account{
		0: common.NewAccount(X),
		2: common.NewAccount(Y),
	}
	ledger, err := Load(DefaultParameters(), accounts, 0)
	if err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	mustApply(t, ledger, ops.Deposit{Address: Z, Token: 0, Amount: amount.New(1)})
	if got := getAccount(t, ledger, Z).Id; got != 1 {
		t.Errorf("unexpected id, got %d, want 1", got)
	}
}

func TestLedger_LoadHandlesSparseSnapshots(t *testing.T) {
	params := DefaultParameters()
	params.Depth = 32
	accounts := map[common.AccountId]common.Account{
		math.MaxUint32: common.NewAccount(X),
	}
	ledger, err := Load(params, accounts, 0)
	if err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	mustApply(t, ledger, ops.Deposit{Address: Y, Token: 0, Amount: amount.New(1)})
	if got := getAccount(t, ledger, Y).Id; got != 0 {
		t.Errorf("unexpected id, got %d, want 0", got)
	}
}

func TestLedger_LoadRejectsInvalidSnapshots(t *testing.T) {
	duplicate := map[common.AccountId]common.Account{
		0: common.NewAccount(X),
		1: common.NewAccount(X),
	}
	if _, err := Load(DefaultParameters(), duplicate, 0); !errors.Is(err, ErrDuplicateAddress) {
		t.Errorf("expected ErrDuplicateAddress, got %v", err)
	}
	params := DefaultParameters()
	params.Depth = 2
	outOfRange := map[common.AccountId]common.Account{4: common.NewAccount(X)}
	if _, err := Load(params, outOfRange, 0); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestLedger_GenesisStartsAtBlockOne(t *testing.T) {
	ledger := newTestLedger(t)
	if got := ledger.BlockNumber(); got != 1 {
		t.Errorf("unexpected block number, got %d, want 1", got)
	}
	mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(1)})
	if got := ledger.BlockNumber(); got != 1 {
		t.Errorf("applying operations must not advance the block")
	}
	ledger.AdvanceBlock()
	if got := ledger.BlockNumber(); got != 2 {
		t.Errorf("unexpected block number, got %d, want 2", got)
	}
}

func TestLedger_UnsupportedConfigurationsAreRejected(t *testing.T) {
	tests := map[string]Parameters{
		"variant": {Variant: "file"},
		"hasher":  {Hasher: "md5"},
		"depth":   {Depth: 33},
	}
	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := New(params); !errors.Is(err, UnsupportedConfiguration) {
				t.Errorf("expected UnsupportedConfiguration, got %v", err)
			}
		})
	}
}

func TestLedger_HasherAffectsRoot(t *testing.T) {
	roots := map[common.Hash]common.HasherKind{}
	for _, kind := range []common.HasherKind{common.Keccak256, common.Sha256, common.Blake3} {
		params := DefaultParameters()
		params.Hasher = kind
		ledger, err := New(params)
		if err != nil {
			t.Fatalf("failed to create ledger: %v", err)
		}
		mustApply(t, ledger, ops.Deposit{Address: X, Token: 0, Amount: amount.New(1)})
		if other, found := roots[ledger.RootHash()]; found {
			t.Errorf("%v and %v produce the same root", kind, other)
		}
		roots[ledger.RootHash()] = kind
	}
}

func TestLedger_ProofVerifiesAgainstRoot(t *testing.T) {
	ledger := prepareScenario(t)
	entry, proof, err := ledger.Proof(Y)
	if err != nil {
		t.Fatalf("failed to get proof: %v", err)
	}
	if !tree.VerifyProof(common.KeccakHasher, ledger.RootHash(), entry.Id, &entry.Account, proof) {
		t.Errorf("proof does not verify")
	}
	if _, _, err := ledger.Proof(Z); !errors.Is(err, ErrUnknownAddress) {
		t.Errorf("expected ErrUnknownAddress, got %v", err)
	}
}

func TestLedger_RootHashIsIdempotent(t *testing.T) {
	ledger := prepareScenario(t)
	if ledger.RootHash() != ledger.RootHash() {
		t.Errorf("root hash changed between reads")
	}
}

func TestLedger_MemoryFootprintGrowsWithAccounts(t *testing.T) {
	ledger := newTestLedger(t)
	empty := ledger.GetMemoryFootprint().Total()
	mustApply(t, ledger,
		ops.Deposit{Address: X, Token: 0, Amount: amount.New(1)},
		ops.Deposit{Address: Y, Token: 0, Amount: amount.New(1)},
	)
	footprint := ledger.GetMemoryFootprint()
	if footprint.Total() <= empty {
		t.Errorf("footprint did not grow, got %d, empty ledger %d", footprint.Total(), empty)
	}
	for _, component := range []string{"./tree/leaves", "./tree/nodes", "./index/ids"} {
		if !strings.Contains(footprint.String(), component) {
			t.Errorf("footprint lacks component %s:\n%v", component, footprint)
		}
	}
}

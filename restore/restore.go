// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package restore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/rollupstate/restore/backend/snapshot"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/ops"
	"github.com/rollupstate/restore/state"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ErrRootMismatch    = common.ConstError("root hash mismatch")
	ErrUnexpectedBlock = common.ConstError("unexpected block number")
)

// decodeWindow is the number of blocks decoded ahead of the ledger.
const decodeWindow = 64

// Config controls a restore run.
type Config struct {
	VerifyRoots      bool // compare the ledger root with the root published for a block
	DecodeWorkers    int  // parallel block decoders, number of CPUs if zero
	SnapshotInterval int  // blocks between snapshots, only the final snapshot is written if zero
}

// OpError reports the operation a restore run failed on.
type OpError struct {
	Block common.BlockNumber
	Index int
	Kind  ops.Kind
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("block %d, operation %d (%v): %v", e.Block, e.Index, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Summary describes the outcome of a restore run.
type Summary struct {
	Blocks     int
	Operations int
	Skipped    int // blocks already covered by the ledger
	Root       common.Hash
}

// LoadLedger creates a ledger from the snapshot in the given store, or the
// genesis ledger if the store holds none.
func LoadLedger(params state.Parameters, store snapshot.Store) (*state.LedgerState, error) {
	snap, err := store.Load()
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return state.New(params)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return state.Load(params, snap.Accounts, snap.Block)
}

// Restorer replays a block feed on a ledger. Blocks are decoded
// concurrently but applied strictly in feed order.
type Restorer struct {
	ledger *state.LedgerState
	store  snapshot.Store
	config Config
	logger *zap.Logger
}

// New creates a restorer for the given ledger. The store may be nil, in which
// case no snapshots are written.
func New(ledger *state.LedgerState, store snapshot.Store, config Config, logger *zap.Logger) *Restorer {
	if config.DecodeWorkers <= 0 {
		config.DecodeWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Restorer{
		ledger: ledger,
		store:  store,
		config: config,
		logger: logger,
	}
}

// Run replays all blocks of the feed. It stops at the first failing
// operation, leaving the ledger at the state before that operation.
// Cancellation is checked between blocks.
func (r *Restorer) Run(ctx context.Context, feed ops.Feed) (Summary, error) {
	var summary Summary
	for start := 0; start < len(feed.Blocks); start += decodeWindow {
		end := min(start+decodeWindow, len(feed.Blocks))
		blocks, err := r.decode(ctx, feed.Blocks[start:end], start)
		if err != nil {
			return summary, err
		}
		for _, block := range blocks {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if block.Number < r.ledger.BlockNumber() {
				summary.Skipped++
				continue
			}
			if err := r.applyBlock(block); err != nil {
				r.logger.Error("restore failed", zap.Uint32("block", uint32(block.Number)), zap.Error(err))
				return summary, err
			}
			summary.Blocks++
			summary.Operations += len(block.Operations)
			if r.config.SnapshotInterval > 0 && summary.Blocks%r.config.SnapshotInterval == 0 {
				if err := r.saveSnapshot(); err != nil {
					return summary, err
				}
			}
		}
	}
	if err := r.saveSnapshot(); err != nil {
		return summary, err
	}
	summary.Root = r.ledger.RootHash()
	r.logger.Info("restore completed",
		zap.Int("blocks", summary.Blocks),
		zap.Int("operations", summary.Operations),
		zap.Int("skipped", summary.Skipped),
		zap.Stringer("root", summary.Root),
	)
	return summary, nil
}

func (r *Restorer) decode(ctx context.Context, raw []json.RawMessage, offset int) ([]ops.Block, error) {
	res := make([]ops.Block, len(raw))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.config.DecodeWorkers)
	for i := range raw {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			block, err := ops.DecodeBlock(raw[i])
			if err != nil {
				return fmt.Errorf("failed to decode block at position %d: %w", offset+i, err)
			}
			res[i] = block
			return nil
		})
	}
	return res, eg.Wait()
}

func (r *Restorer) applyBlock(block ops.Block) error {
	if want := r.ledger.BlockNumber(); block.Number != want {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedBlock, block.Number, want)
	}
	if block.FeeAccount != nil {
		r.ledger.SetFeeAccount(*block.FeeAccount)
	} else {
		r.ledger.ClearFeeAccount()
	}
	for i, op := range block.Operations {
		if err := r.ledger.Apply(op); err != nil {
			return &OpError{Block: block.Number, Index: i, Kind: op.Kind(), Err: err}
		}
	}
	if r.config.VerifyRoots && block.Root != nil {
		if got := r.ledger.RootHash(); got != *block.Root {
			return fmt.Errorf("%w: block %d, got %v, want %v", ErrRootMismatch, block.Number, got, *block.Root)
		}
	}
	r.logger.Debug("block applied",
		zap.Uint32("block", uint32(block.Number)),
		zap.Int("operations", len(block.Operations)),
		zap.Int("accounts", r.ledger.NumAccounts()),
	)
	r.ledger.AdvanceBlock()
	return nil
}

// saveSnapshot stores the ledger as of the last finalized block.
func (r *Restorer) saveSnapshot() error {
	if r.store == nil {
		return nil
	}
	last := r.ledger.BlockNumber() - 1
	if err := r.store.Save(snapshot.Snapshot{Block: last, Accounts: r.ledger.GetAccountMap()}); err != nil {
		return fmt.Errorf("failed to save snapshot of block %d: %w", last, err)
	}
	r.logger.Debug("snapshot saved", zap.Uint32("block", uint32(last)))
	return nil
}

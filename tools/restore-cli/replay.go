package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rollupstate/restore/common/interrupt"
	"github.com/rollupstate/restore/ops"
	"github.com/rollupstate/restore/restore"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	feedFlag = cli.StringFlag{
		Name:     "feed",
		Usage:    "the JSON file listing the blocks to replay",
		Required: true,
	}
	verifyRootsFlag = cli.BoolFlag{
		Name:  "verify-roots",
		Usage: "abort if a published block root does not match the restored ledger",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "the number of parallel block decoders, number of CPUs if zero",
	}
	snapshotIntervalFlag = cli.IntFlag{
		Name:  "snapshot-interval",
		Usage: "the number of blocks between snapshots, only the final one is written if zero",
	}
	cpuProfilingFlag = cli.StringFlag{
		Name:  "cpu-profile",
		Usage: "enable the recording of a CPU profile",
	}
)

var replayCommand = cli.Command{
	Action: replay,
	Name:   "replay",
	Usage:  "replays a block feed on the ledger stored in a snapshot database",
	Flags: []cli.Flag{
		&feedFlag,
		&dbDirectoryFlag,
		&depthFlag,
		&hasherFlag,
		&verifyRootsFlag,
		&workersFlag,
		&snapshotIntervalFlag,
		&cpuProfilingFlag,
	},
}

func replay(ctx *cli.Context) (err error) {
	profileTarget := ctx.String(cpuProfilingFlag.Name)
	if len(profileTarget) != 0 {
		if err := StartCPUProfile(profileTarget); err != nil {
			return err
		}
		defer StopCPUProfile()
	}

	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	feedFile := ctx.String(feedFlag.Name)
	in, err := os.Open(feedFile)
	if err != nil {
		return err
	}
	defer in.Close()
	feed, err := ops.ReadFeed(in)
	if err != nil {
		return err
	}
	logger.Info("feed loaded", zap.String("file", feedFile), zap.Int("blocks", len(feed.Blocks)))

	ledger, store, err := open(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	logger.Info("ledger loaded",
		zap.Uint32("next_block", uint32(ledger.BlockNumber())),
		zap.Int("accounts", ledger.NumAccounts()),
	)

	config := restore.Config{
		VerifyRoots:      ctx.Bool(verifyRootsFlag.Name),
		DecodeWorkers:    ctx.Int(workersFlag.Name),
		SnapshotInterval: ctx.Int(snapshotIntervalFlag.Name),
	}
	runCtx, stop := interrupt.Register(ctx.Context, logger)
	defer stop()

	start := time.Now()
	summary, err := restore.New(ledger, store, config, logger).Run(runCtx, feed)
	if err != nil {
		return err
	}
	logger.Info("replay took", zap.Duration("duration", time.Since(start)))
	fmt.Printf("Root hash: %v\n", summary.Root)
	return nil
}

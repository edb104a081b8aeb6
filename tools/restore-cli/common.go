package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/rollupstate/restore/backend/snapshot/ldb"
	"github.com/rollupstate/restore/backend/utils"
	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/restore"
	"github.com/rollupstate/restore/state"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "the minimum level of log messages (debug, info, warn, error)",
		Value: "info",
	}
	dbDirectoryFlag = cli.StringFlag{
		Name:     "db",
		Usage:    "the directory of the snapshot database",
		Required: true,
	}
	depthFlag = cli.IntFlag{
		Name:  "depth",
		Usage: "the depth of the account tree",
		Value: state.DefaultDepth,
	}
	hasherFlag = cli.StringFlag{
		Name:  "hasher",
		Usage: "the hash function of the account tree (keccak256, sha256, blake3)",
		Value: string(common.Keccak256),
	}
)

func newLogger(ctx *cli.Context) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(ctx.String(logLevelFlag.Name))
	if err != nil {
		return nil, err
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}

// parametersFile records the tree parameters of a snapshot database.
const parametersFile = "parameters.json"

// parameters returns the parameters recorded for the database directory,
// recording the ones requested by flags for new directories.
func parameters(ctx *cli.Context) (state.Parameters, error) {
	requested := state.Parameters{
		Variant: state.MemoryVariant,
		Depth:   ctx.Int(depthFlag.Name),
		Hasher:  common.HasherKind(ctx.String(hasherFlag.Name)),
	}
	dir := ctx.String(dbDirectoryFlag.Name)
	file := filepath.Join(dir, parametersFile)
	stored, err := utils.ReadJsonFile[state.Parameters](file)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return state.Parameters{}, err
		}
		return requested, utils.WriteJsonFile(file, requested)
	}
	if err != nil {
		return state.Parameters{}, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if ctx.IsSet(depthFlag.Name) && requested.Depth != stored.Depth {
		return state.Parameters{}, fmt.Errorf("database in %s uses tree depth %d, not %d", dir, stored.Depth, requested.Depth)
	}
	if ctx.IsSet(hasherFlag.Name) && requested.Hasher != stored.Hasher {
		return state.Parameters{}, fmt.Errorf("database in %s uses hasher %s, not %s", dir, stored.Hasher, requested.Hasher)
	}
	return stored, nil
}

// open loads the ledger stored in the given directory. The returned store
// must be closed by the caller.
func open(ctx *cli.Context, logger *zap.Logger) (*state.LedgerState, *ldb.Store, error) {
	params, err := parameters(ctx)
	if err != nil {
		return nil, nil, err
	}
	dir := ctx.String(dbDirectoryFlag.Name)
	logger.Info("opening snapshot database", zap.String("dir", dir), zap.Stringer("parameters", params))
	store, err := ldb.OpenStore(dir)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := restore.LoadLedger(params, store)
	if err != nil {
		return nil, nil, errors.Join(err, store.Close())
	}
	return ledger, store, nil
}

func StartCPUProfile(profileName string) error {
	f, err := os.Create(profileName)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %s", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("could not start CPU profile: %s", err)
	}
	return nil
}

func StopCPUProfile() {
	pprof.StopCPUProfile()
}

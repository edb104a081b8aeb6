package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	listAccountsFlag = cli.BoolFlag{
		Name:  "accounts",
		Usage: "list all accounts",
	}
	memoryFlag = cli.BoolFlag{
		Name:  "memory",
		Usage: "print the memory usage of the loaded ledger",
	}
)

var getInfoCommand = cli.Command{
	Action: getInfo,
	Name:   "info",
	Usage:  "prints summary information about a snapshot database",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&depthFlag,
		&hasherFlag,
		&listAccountsFlag,
		&memoryFlag,
	},
}

func getInfo(ctx *cli.Context) (err error) {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ledger, store, err := open(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	fmt.Printf("Next block: %d\n", ledger.BlockNumber())
	fmt.Printf("Accounts:   %d\n", ledger.NumAccounts())
	fmt.Printf("Root hash:  %v\n", ledger.RootHash())
	if ctx.Bool(memoryFlag.Name) {
		fmt.Printf("Memory usage:\n%v", ledger.GetMemoryFootprint())
	}
	if ctx.Bool(listAccountsFlag.Name) {
		for _, entry := range ledger.GetAccounts() {
			fmt.Printf("%8d %v\n", entry.Id, entry.Account)
		}
	}
	return nil
}

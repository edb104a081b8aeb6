package main

import (
	"errors"
	"fmt"

	"github.com/rollupstate/restore/backend/tree"
	"github.com/rollupstate/restore/common"
	"github.com/urfave/cli/v2"
)

var addressFlag = cli.StringFlag{
	Name:     "address",
	Usage:    "the hex encoded address of the account to prove",
	Required: true,
}

var verifyProofCommand = cli.Command{
	Action: verifyProof,
	Name:   "verify-proof",
	Usage:  "prints and checks the Merkle proof of an account in a snapshot database",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&depthFlag,
		&hasherFlag,
		&addressFlag,
	},
}

func verifyProof(ctx *cli.Context) (err error) {
	address, err := common.ParseAddress(ctx.String(addressFlag.Name))
	if err != nil {
		return err
	}
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

	entry, proof, err := ledger.Proof(address)
	if err != nil {
		return err
	}
	hasher, err := common.GetHasher(ledger.Parameters().Hasher)
	if err != nil {
		return err
	}
	root := ledger.RootHash()
	fmt.Printf("Account %d: %v\n", entry.Id, entry.Account)
	for i, sibling := range proof.Siblings {
		fmt.Printf("  sibling %2d: %v\n", i, sibling)
	}
	fmt.Printf("Root hash: %v\n", root)
	if !tree.VerifyProof(hasher, root, entry.Id, &entry.Account, proof) {
		return fmt.Errorf("proof of account %d does not match the root", entry.Id)
	}
	fmt.Println("Proof is valid")
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Run with `go run ./tools/restore-cli`

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "Rollup Ledger Restore",
		HelpName:  "restore",
		Usage:     "Rebuilds and inspects rollup account ledgers from block feeds",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			&logLevelFlag,
		},
		Commands: []*cli.Command{
			&replayCommand,
			&getInfoCommand,
			&verifyProofCommand,
		},
	}
}

// Package main is the entry point for the Skibidi Cash CLI.
package main

import (
	"os"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

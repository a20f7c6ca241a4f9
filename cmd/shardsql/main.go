// Package main is the entry point for the shardsql CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/shardsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

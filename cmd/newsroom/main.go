// Package main provides the CLI for the Newsroom release notes manager.
package main

import (
	"os"

	"github.com/leapstack-labs/newsroom/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

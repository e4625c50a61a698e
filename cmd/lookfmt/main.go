// Package main provides the lookfmt CLI, a formatter and linter for LookML.
package main

import (
	"os"

	"github.com/lookstack-labs/lookfmt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

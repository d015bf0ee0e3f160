// Package main is the entry point for the tariff-engine CLI.
package main

import (
	"os"

	"tariff-engine/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the restyle CLI.
package main

import (
	"os"

	"github.com/zjrosen/restyle/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
)

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

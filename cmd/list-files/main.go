// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the list-files CLI: it lists files
// under flattened unique names and publishes flat directories of symlinks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the list-files CLI.
var rootCmd = &cobra.Command{
	Use:   "list-files",
	Short: "List and symlink files under flattened, unique names",
	Long: `list-files walks directory trees and derives a flat, unique name for every
file by replacing path separators in its relative path with underscores.
The listing subcommand prints those names; create-symlinks materializes
them as a flat directory of symbolic links back to the originals.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

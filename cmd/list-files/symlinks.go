// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-tools/internal/flatten"
)

var createSymlinksCmd = &cobra.Command{
	Use:   "create-symlinks <src-dir> <link-dir>",
	Short: "Create flat symlinks for every file under a source directory",
	Long: `Create-symlinks recursively explores files in the source directory and
creates symbolic links in the link directory with unique names based on
relative paths. Existing link names are skipped with a diagnostic on
stderr; individual failures never abort the run.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreateSymlinks,
}

func runCreateSymlinks(cmd *cobra.Command, args []string) error {
	_, err := flatten.Publish(args[0], args[1], os.Stderr)
	return err
}

func init() {
	rootCmd.AddCommand(createSymlinksCmd)
}

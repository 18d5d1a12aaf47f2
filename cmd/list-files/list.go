// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-tools/internal/flatten"
)

var listCmd = &cobra.Command{
	Use:   "list-files <dir>...",
	Short: "List all files in directories under flattened names",
	Long: `List-files prints the flattened relative-path name of every file under
every given directory, one per line. Order follows filesystem enumeration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	for _, dir := range args {
		err := flatten.Walk(dir, func(rec flatten.FileRecord) error {
			fmt.Println(rec.Flattened())
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-tools/internal/dify"
)

var getDatasetIDCmd = &cobra.Command{
	Use:   "get-dataset-id",
	Short: "Look up and print the ID of a dataset by its name",
	Long: `Get-dataset-id scans the paginated dataset listing for the first dataset
whose name matches exactly and prints its opaque ID. Later pages are not
requested once a match is found.`,
	RunE: runGetDatasetID,
}

func runGetDatasetID(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("dataset-name")

	id, err := client.FindDatasetID(cmd.Context(), name)
	if errors.Is(err, dify.ErrDatasetNotFound) {
		fmt.Fprintf(os.Stderr, "No dataset found with the name: %s\n", name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}

func init() {
	getDatasetIDCmd.Flags().String("dataset-name", "proceedings", "name of the dataset to look up")

	rootCmd.AddCommand(getDatasetIDCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-tools/internal/dify"
	"github.com/pdiddy/knowledge-tools/internal/flatten"
	"github.com/pdiddy/knowledge-tools/internal/ledger"
	"github.com/pdiddy/knowledge-tools/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add <src>...",
	Short: "Add files from source paths to a dataset, skipping already uploaded files",
	Long: `Add uploads files from the source paths (files or directories) into the
named dataset. Directories are walked recursively; only files with an
accepted extension qualify. Paths already recorded in the ledger file are
skipped, and every successful upload is appended to the ledger immediately,
so interrupted runs can be resumed safely. A failed upload is reported and
the batch continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	cfg := uploadConfigFromFlags(cmd)
	ctx := cmd.Context()

	datasetID, err := client.FindDatasetID(ctx, cfg.DatasetName)
	if errors.Is(err, dify.ErrDatasetNotFound) {
		fmt.Fprintf(os.Stderr, "No dataset found with the name: %s\n", cfg.DatasetName)
		return nil
	}
	if err != nil {
		return err
	}

	led, err := ledger.Open(cfg.DatabaseFile)
	if err != nil {
		return err
	}
	defer led.Close()

	exts := flatten.ExtensionSet(cfg.Extensions)
	result, err := dify.Upload(ctx, client, datasetID, args, exts, led, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("\nUpload summary: %d uploaded, %d skipped, %d failed (total: %d)\n",
		result.Uploaded, result.Skipped, result.Failed, result.Total())
	return nil
}

func uploadConfigFromFlags(cmd *cobra.Command) types.UploadConfig {
	datasetName, _ := cmd.Flags().GetString("dataset-name")
	extensions, _ := cmd.Flags().GetString("extensions")
	databaseFile, _ := cmd.Flags().GetString("database-file")

	return types.UploadConfig{
		DatasetName:  datasetName,
		Extensions:   extensions,
		DatabaseFile: databaseFile,
	}
}

func init() {
	addCmd.Flags().String("dataset-name", "proceedings", "name of the dataset to add the files to")
	addCmd.Flags().String("extensions", "txt,md,pdf", "comma-separated list of file extensions to include")
	addCmd.Flags().String("database-file", "uploaded_files.txt", "path to the text file that stores the list of uploaded files")

	rootCmd.AddCommand(addCmd)
}

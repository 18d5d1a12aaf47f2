// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-tools/internal/dify"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for documents in a dataset using an optional keyword",
	Long: `Search lists every document in the named dataset matching the keyword,
walking all pages of the listing. The default output is one "id: ..., name:
..." line per document; --json and --format yaml emit structured output.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("dataset-name")
	keyword, _ := cmd.Flags().GetString("keyword")
	format, _ := cmd.Flags().GetString("format")
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		format = "json"
	}
	ctx := cmd.Context()

	datasetID, err := client.FindDatasetID(ctx, name)
	if errors.Is(err, dify.ErrDatasetNotFound) {
		fmt.Fprintf(os.Stderr, "No dataset found with the name: %s\n", name)
		return nil
	}
	if err != nil {
		return err
	}

	switch format {
	case "", "text":
		err = client.EachDocument(ctx, datasetID, keyword, func(d dify.Document) error {
			fmt.Printf("id: %s, name: %s\n", d.ID, d.Name)
			return nil
		})
	case "json", "yaml":
		var docs []dify.Document
		err = client.EachDocument(ctx, datasetID, keyword, func(d dify.Document) error {
			docs = append(docs, d)
			return nil
		})
		if err == nil {
			return formatDocuments(docs, format)
		}
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	var statusErr *dify.StatusError
	if errors.As(err, &statusErr) {
		fmt.Fprintf(os.Stderr, "Failed to retrieve documents. Status code: %d\n", statusErr.Code)
		return nil
	}
	return err
}

func formatDocuments(docs []dify.Document, format string) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}
	data, err := yaml.Marshal(docs)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func init() {
	searchCmd.Flags().String("dataset-name", "", "name of the dataset to search in")
	searchCmd.Flags().String("keyword", "", "keyword to search for in the documents")
	searchCmd.Flags().Bool("json", false, "output documents as JSON")
	searchCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	searchCmd.MarkFlagRequired("dataset-name")

	rootCmd.AddCommand(searchCmd)
}

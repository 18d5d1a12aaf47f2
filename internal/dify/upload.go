// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/knowledge-tools/internal/flatten"
	"github.com/pdiddy/knowledge-tools/internal/ledger"
)

// UploadResult holds the outcome of a batch upload run.
type UploadResult struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Total returns the total number of candidate files processed.
func (r UploadResult) Total() int {
	return r.Uploaded + r.Skipped + r.Failed
}

// HasFailures reports whether any uploads failed.
func (r UploadResult) HasFailures() bool {
	return r.Failed > 0
}

// Upload submits every candidate file under sources with an accepted suffix
// to dataset datasetID, skipping paths already in the ledger. Each successful
// upload is recorded in the ledger immediately, so an interrupted run leaves
// the ledger consistent with exactly the files uploaded before the
// interruption and a re-run skips them. Skips are reported on out; a
// non-success upload status is reported on diag and the batch continues.
// Transport errors and ledger write failures abort the batch.
func Upload(ctx context.Context, client *Client, datasetID string, sources []string, exts map[string]bool, led *ledger.Ledger, out, diag io.Writer) (UploadResult, error) {
	var result UploadResult

	err := flatten.Candidates(sources, exts, func(rec flatten.FileRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		fullPath := rec.Path
		if resolved, resolveErr := filepath.EvalSymlinks(fullPath); resolveErr == nil {
			fullPath = resolved
		}

		if led.Contains(fullPath) {
			fmt.Fprintf(out, "File already uploaded, skipping: %s\n", fullPath)
			result.Skipped++
			return nil
		}

		if err := client.CreateDocumentByFile(ctx, datasetID, fullPath); err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				fmt.Fprintf(diag, "Failed to add file '%s'. Status code: %d\n", fullPath, statusErr.Code)
				result.Failed++
				return nil
			}
			return err
		}

		if err := led.Record(fullPath); err != nil {
			return err
		}
		result.Uploaded++
		return nil
	})
	return result, err
}

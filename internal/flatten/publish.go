// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// PublishResult holds the outcome of a symlink publishing run.
type PublishResult struct {
	Linked  int
	Skipped int
	Failed  int
}

// Total returns the total number of files processed.
func (r PublishResult) Total() int {
	return r.Linked + r.Skipped + r.Failed
}

// HasFailures reports whether any link creation failed.
func (r PublishResult) HasFailures() bool {
	return r.Failed > 0
}

// Publish populates linkDir with one symlink per file under srcRoot, named by
// the flattened relative path and pointing at the resolved source file. The
// target directory is created if missing. A link name that already exists is
// skipped with a diagnostic on diag; any other link error is reported the
// same way. Per-file failures never abort the run, so a flattened-name
// collision surfaces as an "already exists" skip rather than an overwrite.
func Publish(srcRoot, linkDir string, diag io.Writer) (PublishResult, error) {
	var result PublishResult

	if err := os.MkdirAll(linkDir, 0o755); err != nil {
		return result, fmt.Errorf("creating link directory %s: %w", linkDir, err)
	}

	err := Walk(srcRoot, func(rec FileRecord) error {
		target := rec.Path
		if resolved, resolveErr := filepath.EvalSymlinks(target); resolveErr == nil {
			target = resolved
		}

		linkPath := filepath.Join(linkDir, rec.Flattened())
		switch err := os.Symlink(target, linkPath); {
		case err == nil:
			result.Linked++
		case errors.Is(err, fs.ErrExist):
			fmt.Fprintf(diag, "Skipped (already exists): %s\n", linkPath)
			result.Skipped++
		default:
			fmt.Fprintf(diag, "Error creating symlink %s: %v\n", linkPath, err)
			result.Failed++
		}
		return nil
	})
	return result, err
}

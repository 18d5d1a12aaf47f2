// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flatten walks directory trees and maps each file's root-relative
// path to a single flat name, with separators replaced by underscores.
package flatten

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileRecord is one regular file found during a traversal: its absolute path
// and its path relative to the traversal root. Records are produced lazily
// during a single pass and not retained.
type FileRecord struct {
	// Path is the absolute path of the file.
	Path string

	// Rel is the path relative to the traversal root.
	Rel string
}

// Flattened returns the file's root-relative path with every path separator
// replaced by an underscore, producing a single path segment. Underscores
// already present in names are not escaped, so "a/b.txt" and "a_b.txt"
// flatten to the same string.
func (r FileRecord) Flattened() string {
	return strings.ReplaceAll(r.Rel, string(filepath.Separator), "_")
}

// Walk descends root depth-first in directory-entry order (not sorted) and
// calls fn for every non-directory entry. Entries are classified with Stat,
// so directory symlinks are followed; a symlink cycle makes the walk
// non-terminating. Broken symlinks and special files are yielded as files.
// An error from fn stops the walk and is returned.
func Walk(root string, fn func(FileRecord) error) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}
	return walk(abs, "", fn)
}

func walk(dir, rel string, fn func(FileRecord) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		entryRel := filepath.Join(rel, entry.Name())

		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			if err := walk(path, entryRel, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(FileRecord{Path: path, Rel: entryRel}); err != nil {
			return err
		}
	}
	return nil
}

// Candidates yields every regular file under the source paths whose suffix
// is in exts. A source that is a directory is walked recursively; a source
// that is itself a file with an accepted suffix is yielded directly; other
// sources are ignored. Broken symlinks and special files found during the
// walk are skipped silently. Yielded paths are absolute. Ordering follows
// filesystem enumeration and is unspecified.
func Candidates(paths []string, exts map[string]bool, fn func(FileRecord) error) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		if info.IsDir() {
			err := Walk(abs, func(rec FileRecord) error {
				if !exts[filepath.Ext(rec.Path)] {
					return nil
				}
				info, statErr := os.Stat(rec.Path)
				if statErr != nil || !info.Mode().IsRegular() {
					return nil
				}
				return fn(rec)
			})
			if err != nil {
				return err
			}
			continue
		}
		if info.Mode().IsRegular() && exts[filepath.Ext(abs)] {
			if err := fn(FileRecord{Path: abs, Rel: filepath.Base(abs)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExtensionSet converts a comma-separated extension list ("txt,md,pdf") into
// the suffix set Candidates expects, adding the leading dots.
func ExtensionSet(csv string) map[string]bool {
	exts := make(map[string]bool)
	for _, ext := range strings.Split(csv, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		exts["."+strings.TrimPrefix(ext, ".")] = true
	}
	return exts
}

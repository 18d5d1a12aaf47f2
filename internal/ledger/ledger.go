// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists the set of files already uploaded to the knowledge
// base, making repeated upload runs idempotent.
package ledger

import (
	"fmt"
	"os"
	"strings"
)

// Ledger is a durable, append-only record of absolute file paths. The backing
// file holds one path per line, UTF-8, and is only ever grown. A single
// command invocation owns the ledger for its duration; concurrent writers are
// not supported.
type Ledger struct {
	file  *os.File
	paths map[string]struct{}
}

// Open loads the ledger at path into memory (a missing file yields an empty
// ledger) and opens the backing file for append.
func Open(path string) (*Ledger, error) {
	paths := make(map[string]struct{})

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths[line] = struct{}{}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	return &Ledger{file: f, paths: paths}, nil
}

// Contains reports whether path has already been recorded.
func (l *Ledger) Contains(path string) bool {
	_, ok := l.paths[path]
	return ok
}

// Record appends path to the backing file, then adds it to the in-memory set.
// The write happens before the set update so an interrupted run leaves the
// file consistent with exactly the paths recorded so far.
func (l *Ledger) Record(path string) error {
	if _, err := fmt.Fprintln(l.file, path); err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}
	l.paths[path] = struct{}{}
	return nil
}

// Len returns the number of recorded paths.
func (l *Ledger) Len() int {
	return len(l.paths)
}

// Close closes the backing file.
func (l *Ledger) Close() error {
	return l.file.Close()
}

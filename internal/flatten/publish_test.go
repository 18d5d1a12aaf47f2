// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPublish(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "c.txt", "a/b.txt")
	linkDir := filepath.Join(t.TempDir(), "links")

	var diag bytes.Buffer
	result, err := Publish(src, linkDir, &diag)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Linked != 2 {
		t.Errorf("Linked = %d, want 2", result.Linked)
	}
	if result.Skipped != 0 || result.Failed != 0 {
		t.Errorf("Skipped = %d, Failed = %d, want 0, 0", result.Skipped, result.Failed)
	}
	if diag.Len() != 0 {
		t.Errorf("expected silent success, got diagnostics: %q", diag.String())
	}

	// Each link resolves to the original file's content.
	for link, want := range map[string]string{
		"c.txt":   "content of c.txt",
		"a_b.txt": "content of a/b.txt",
	} {
		path := filepath.Join(linkDir, link)
		if info, err := os.Lstat(path); err != nil || info.Mode()&os.ModeSymlink == 0 {
			t.Fatalf("%s is not a symlink (err=%v)", link, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading through %s: %v", link, err)
		}
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", link, data, want)
		}
	}
}

func TestPublishCreatesLinkDir(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "x.txt")
	linkDir := filepath.Join(t.TempDir(), "deep", "nested", "links")

	var diag bytes.Buffer
	if _, err := Publish(src, linkDir, &diag); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := os.Stat(linkDir); err != nil {
		t.Fatalf("link directory not created: %v", err)
	}
}

func TestPublishNameCollisionSkips(t *testing.T) {
	// a/b.txt and a_b.txt flatten to the same name; the second one
	// must be skipped, not overwritten.
	src := t.TempDir()
	writeTree(t, src, "a/b.txt", "a_b.txt")
	linkDir := filepath.Join(t.TempDir(), "links")

	var diag bytes.Buffer
	result, err := Publish(src, linkDir, &diag)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Linked != 1 {
		t.Errorf("Linked = %d, want 1", result.Linked)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if !strings.Contains(diag.String(), "Skipped (already exists):") {
		t.Errorf("diagnostics = %q, want 'Skipped (already exists):'", diag.String())
	}

	// Exactly one link exists and it still points at whichever file won.
	entries, err := os.ReadDir(linkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a_b.txt" {
		t.Fatalf("link dir entries = %v, want exactly a_b.txt", entries)
	}
}

func TestPublishRerunSkipsEverything(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "c.txt", "a/b.txt")
	linkDir := filepath.Join(t.TempDir(), "links")

	var diag bytes.Buffer
	if _, err := Publish(src, linkDir, &diag); err != nil {
		t.Fatalf("first Publish: %v", err)
	}

	diag.Reset()
	result, err := Publish(src, linkDir, &diag)
	if err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if result.Linked != 0 {
		t.Errorf("Linked = %d, want 0 on re-run", result.Linked)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2 on re-run", result.Skipped)
	}
	if result.HasFailures() {
		t.Error("re-run should not report failures")
	}
}

func TestPublishLinksResolveSymlinkedSources(t *testing.T) {
	// A source file that is itself a symlink gets a link pointing at the
	// resolved target, not at the intermediate link.
	src := t.TempDir()
	writeTree(t, src, "real.txt")
	if err := os.Symlink(filepath.Join(src, "real.txt"), filepath.Join(src, "alias.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	linkDir := filepath.Join(t.TempDir(), "links")

	var diag bytes.Buffer
	if _, err := Publish(src, linkDir, &diag); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	target, err := os.Readlink(filepath.Join(linkDir, "alias.txt"))
	if err != nil {
		t.Fatalf("Readlink: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(filepath.Join(src, "real.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if target != resolved {
		t.Errorf("alias.txt points at %q, want %q", target, resolved)
	}
}

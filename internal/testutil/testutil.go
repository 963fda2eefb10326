package testutil

import (
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// TempDir creates a temporary directory for testing
// It returns the directory path and a cleanup function
func TempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "fdname-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// Resolve symlinked temp roots (macOS /var -> /private/var) so paths compare equal
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// CreateTestFile creates a test file with the given content
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	return path
}

// CreateTree creates files and directories below root.
// Paths are slash separated; a trailing slash makes a directory.
func CreateTree(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			dir := filepath.Join(root, filepath.FromSlash(p))
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}
			continue
		}
		CreateTestFile(t, root, p, []byte(p))
	}
}

// CreateMemTree is CreateTree for an afero filesystem
func CreateMemTree(t *testing.T, fsys afero.Fs, root string, paths ...string) {
	t.Helper()

	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := fsys.MkdirAll(full, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create parent dir: %v", err)
		}
		if err := afero.WriteFile(fsys, full, []byte(p), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}
}

// ListTree returns every path below root, slash separated and sorted.
// Directories carry a trailing slash.
func ListTree(t *testing.T, root string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to list tree: %v", err)
	}

	sort.Strings(paths)
	return paths
}

// RandomString generates a random string of the given length
func RandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

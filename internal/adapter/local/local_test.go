package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"

	"github.com/Ning0612/fdname/internal/domain"
	"github.com/Ning0612/fdname/internal/testutil"
)

func TestClassify(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "file.txt", "sub/")
	a := NewOS()
	ctx := context.Background()

	tests := []struct {
		path string
		want domain.EntryType
	}{
		{filepath.Join(dir, "file.txt"), domain.EntryFile},
		{filepath.Join(dir, "sub"), domain.EntryDirectory},
		{filepath.Join(dir, "missing"), domain.EntryOther},
	}

	for _, tt := range tests {
		got, err := a.Classify(ctx, tt.path)
		if err != nil {
			t.Fatalf("Classify(%s) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Classify(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassify_FollowsSymlinks(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "target/")
	link := filepath.Join(dir, "link")
	if err := os.Symlink(filepath.Join(dir, "target"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), dangling); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	a := NewOS()
	ctx := context.Background()

	if got, _ := a.Classify(ctx, link); got != domain.EntryDirectory {
		t.Errorf("symlink to directory classified as %v", got)
	}
	if got, err := a.Classify(ctx, dangling); err != nil || got != domain.EntryOther {
		t.Errorf("dangling symlink = (%v, %v), want (other, nil)", got, err)
	}

	entries, err := a.List(ctx, dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, e := range entries {
		if e.Name == "link" && e.IsDir {
			t.Error("List should not report a symlink as a directory")
		}
	}
}

func TestList_Sorted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.CreateMemTree(t, fsys, "/root", "c.txt", "a.txt", "b/")
	a := New(fsys)

	entries, err := a.List(context.Background(), "/root")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"a.txt", "b", "c.txt"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Name, want[i])
		}
	}
	if !entries[1].IsDir {
		t.Error("b should be a directory")
	}
}

func TestList_NotFound(t *testing.T) {
	a := New(afero.NewMemMapFs())

	_, err := a.List(context.Background(), "/missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.CreateMemTree(t, fsys, "/root", "a.txt")
	a := New(fsys)
	ctx := context.Background()

	if ok, err := a.Exists(ctx, "/root/a.txt"); err != nil || !ok {
		t.Errorf("Exists(a.txt) = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := a.Exists(ctx, "/root/b.txt"); err != nil || ok {
		t.Errorf("Exists(b.txt) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestSameFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "a.txt", "b.txt")
	a := NewOS()
	ctx := context.Background()

	same, err := a.SameFile(ctx, filepath.Join(dir, "a.txt"), filepath.Join(dir, "a.txt"))
	if err != nil || !same {
		t.Errorf("SameFile(a, a) = (%v, %v), want (true, nil)", same, err)
	}

	same, err = a.SameFile(ctx, filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	if err != nil || same {
		t.Errorf("SameFile(a, b) = (%v, %v), want (false, nil)", same, err)
	}
}

func TestRename(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "old.txt")
	a := NewOS()

	err := a.Rename(context.Background(), filepath.Join(dir, "old.txt"), filepath.Join(dir, "new.txt"))
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	got := testutil.ListTree(t, dir)
	if len(got) != 1 || got[0] != "new.txt" {
		t.Errorf("tree after rename = %v", got)
	}
}

func TestRename_PermissionDenied(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "old.txt")
	a := New(afero.NewReadOnlyFs(afero.NewOsFs()))

	err := a.Rename(context.Background(), filepath.Join(dir, "old.txt"), filepath.Join(dir, "new.txt"))
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestRename_MissingSourceKeepsOSError(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	a := NewOS()
	err := a.Rename(context.Background(), filepath.Join(dir, "ghost"), filepath.Join(dir, "new"))

	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		t.Errorf("expected the *os.LinkError to stay reachable, got %T", err)
	}
}

func TestRename_NonEmptyDirectoryDestination(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows reports access denied for this case")
	}
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, "src/", "dst/keep.txt")
	a := NewOS()

	err := a.Rename(context.Background(), filepath.Join(dir, "src"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected rename onto a non-empty directory to fail")
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

package adapter

import (
	"context"

	"github.com/Ning0612/fdname/internal/domain"
)

// DirEntry is a child of a listed directory
type DirEntry struct {
	// Name is the final path segment
	Name string

	// IsDir is true for real directories; symlinks to directories are not
	IsDir bool
}

// Adapter defines the filesystem port used by the rename engine
// Implementations return errors that match domain sentinels with errors.Is
// while keeping the underlying error message intact
type Adapter interface {
	// Classify reports the type of path, following symlinks
	// A path that does not resolve (e.g. a dangling symlink) is domain.EntryOther
	Classify(ctx context.Context, path string) (domain.EntryType, error)

	// List returns the children of a directory sorted by name
	// Returns domain.ErrNotFound if path doesn't exist
	List(ctx context.Context, path string) ([]DirEntry, error)

	// Exists checks if a path exists without following a final symlink
	Exists(ctx context.Context, path string) (bool, error)

	// SameFile reports whether two existing paths name the same filesystem object
	SameFile(ctx context.Context, a, b string) (bool, error)

	// Rename atomically renames oldPath to newPath
	Rename(ctx context.Context, oldPath, newPath string) error
}

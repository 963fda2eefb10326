package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Ning0612/fdname/internal/adapter"
	"github.com/Ning0612/fdname/internal/domain"
)

// Adapter implements the adapter.Adapter interface on top of an afero filesystem
type Adapter struct {
	fs afero.Fs
}

// New creates an adapter over the given filesystem
func New(fsys afero.Fs) *Adapter {
	return &Adapter{fs: fsys}
}

// NewOS creates an adapter over the operating system filesystem
func NewOS() *Adapter {
	return New(afero.NewOsFs())
}

// Classify reports the type of path, following symlinks
func (a *Adapter) Classify(ctx context.Context, path string) (domain.EntryType, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.EntryOther, nil
		}
		return domain.EntryOther, a.mapError(err)
	}
	return entryType(info), nil
}

// List returns the children of a directory sorted by name
func (a *Adapter) List(ctx context.Context, path string) ([]adapter.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, a.mapError(err)
	}

	result := make([]adapter.DirEntry, 0, len(infos))
	for _, info := range infos {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result = append(result, adapter.DirEntry{
			Name:  info.Name(),
			IsDir: info.IsDir(),
		})
	}
	return result, nil
}

// Exists checks if a path exists without following a final symlink
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	_, err := a.lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, a.mapError(err)
}

// SameFile reports whether two existing paths name the same filesystem object
func (a *Adapter) SameFile(ctx context.Context, p1, p2 string) (bool, error) {
	if filepath.Clean(p1) == filepath.Clean(p2) {
		return true, nil
	}

	fi1, err := a.lstat(p1)
	if err != nil {
		return false, a.mapError(err)
	}
	fi2, err := a.lstat(p2)
	if err != nil {
		return false, a.mapError(err)
	}
	return os.SameFile(fi1, fi2), nil
}

// Rename atomically renames oldPath to newPath
func (a *Adapter) Rename(ctx context.Context, oldPath, newPath string) error {
	return a.mapError(a.fs.Rename(oldPath, newPath))
}

// lstat uses Lstat where the filesystem supports it
func (a *Adapter) lstat(path string) (os.FileInfo, error) {
	if lst, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return a.fs.Stat(path)
}

// entryType converts os.FileInfo to domain.EntryType
func entryType(info os.FileInfo) domain.EntryType {
	switch {
	case info.IsDir():
		return domain.EntryDirectory
	case info.Mode().IsRegular():
		return domain.EntryFile
	default:
		return domain.EntryOther
	}
}

// fsError tags an OS error with a domain sentinel without changing its message
type fsError struct {
	kind error
	err  error
}

func (e *fsError) Error() string   { return e.err.Error() }
func (e *fsError) Unwrap() []error { return []error{e.kind, e.err} }

// mapError classifies OS errors with domain errors
func (a *Adapter) mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &fsError{kind: domain.ErrNotFound, err: err}
	case errors.Is(err, fs.ErrPermission):
		return &fsError{kind: domain.ErrPermissionDenied, err: err}
	case errors.Is(err, fs.ErrExist):
		return &fsError{kind: domain.ErrAlreadyExists, err: err}
	}

	// ENOTDIR and "directory not empty" style failures surface from rename
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && isNotDir(pathErr.Err) {
		return &fsError{kind: domain.ErrNotDirectory, err: err}
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && isNotEmpty(linkErr.Err) {
		return &fsError{kind: domain.ErrAlreadyExists, err: err}
	}

	return err
}

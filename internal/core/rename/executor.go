// Package rename performs the in-place sibling renames planned for each entry.
package rename

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Ning0612/fdname/internal/adapter"
	"github.com/Ning0612/fdname/internal/core/split"
	"github.com/Ning0612/fdname/internal/domain"
)

// Executor applies renames through an adapter
type Executor interface {
	// Rename moves path to a sibling named stem.ext
	Rename(ctx context.Context, path, stem, ext string) error

	// Execute carries out a planned action
	Execute(ctx context.Context, action domain.RenameAction) error
}

// DefaultExecutor implements Executor.
// Errors from the adapter are returned as is; there is no retry.
type DefaultExecutor struct {
	Adapter adapter.Adapter
}

// NewDefaultExecutor creates a new executor
func NewDefaultExecutor(adp adapter.Adapter) *DefaultExecutor {
	return &DefaultExecutor{Adapter: adp}
}

// Rename implements the Executor interface
func (e *DefaultExecutor) Rename(ctx context.Context, path, stem, ext string) error {
	target := filepath.Join(filepath.Dir(path), split.Join(stem, ext))
	return e.move(ctx, path, target)
}

// Execute implements the Executor interface
func (e *DefaultExecutor) Execute(ctx context.Context, action domain.RenameAction) error {
	switch action.Type {
	case domain.ActionRename:
		return e.move(ctx, action.Source, action.Target)
	case domain.ActionConflict:
		return fmt.Errorf("%w: %s", domain.ErrDestinationExists, action.Target)
	case domain.ActionUnchanged, domain.ActionSkip:
		return nil
	default:
		return fmt.Errorf("unsupported action type: %s", action.Type)
	}
}

func (e *DefaultExecutor) move(ctx context.Context, source, target string) error {
	if filepath.Clean(source) == filepath.Clean(target) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.Adapter.Rename(ctx, source, target)
}

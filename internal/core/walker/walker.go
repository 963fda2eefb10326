// Package walker yields the entries below a root in contents-first order.
//
// A directory is only yielded after every descendant inside the depth bound
// has been yielded, so callers may rename each entry as soon as they receive
// it: paths still pending on the stack only ever point below directories
// that have not been renamed yet.
package walker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Ning0612/fdname/internal/adapter"
	"github.com/Ning0612/fdname/internal/domain"
)

// Options configures a walk
type Options struct {
	// MaxDepth bounds the walk; 1 yields direct children only, 0 is unbounded
	MaxDepth int
}

// OptionsFor returns the walk options for the recursive flag
func OptionsFor(recursive bool) Options {
	if recursive {
		return Options{MaxDepth: 0}
	}
	return Options{MaxDepth: 1}
}

// Scanner is an iterator over the entries of a walk.
// Check Err() after Next() returns false to distinguish the end of the walk from a failure.
type Scanner interface {
	Next() (domain.Entry, bool)
	Err() error
}

// frame is a directory whose children are being yielded
type frame struct {
	dir      string
	children []adapter.DirEntry

	// self is yielded once children is drained; nil for the root
	self *domain.Entry
}

// Walker implements Scanner over an adapter
type Walker struct {
	ctx     context.Context
	adp     adapter.Adapter
	root    string
	opts    Options
	stack   []*frame
	started bool
	err     error
}

// New creates a walker rooted at root. Nothing is read until the first Next.
func New(ctx context.Context, adp adapter.Adapter, root string, opts Options) *Walker {
	return &Walker{
		ctx:  ctx,
		adp:  adp,
		root: root,
		opts: opts,
	}
}

// Next advances to the next entry
func (w *Walker) Next() (domain.Entry, bool) {
	if w.err != nil {
		return domain.Entry{}, false
	}

	if !w.started {
		w.started = true
		if !w.push(w.root, nil) {
			return domain.Entry{}, false
		}
	}

	for len(w.stack) > 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return domain.Entry{}, false
		}

		top := w.stack[len(w.stack)-1]

		if len(top.children) == 0 {
			w.stack = w.stack[:len(w.stack)-1]
			if top.self != nil {
				return *top.self, true
			}
			continue
		}

		child := top.children[0]
		top.children = top.children[1:]

		entry := domain.Entry{
			Path:  filepath.Join(top.dir, child.Name),
			Depth: len(w.stack),
		}

		if child.IsDir && w.descends(entry.Depth) {
			if !w.push(entry.Path, &entry) {
				return domain.Entry{}, false
			}
			continue
		}

		return entry, true
	}

	return domain.Entry{}, false
}

// Err returns the error that stopped the walk, if any
func (w *Walker) Err() error {
	return w.err
}

// descends reports whether children of a directory at depth are inside the bound
func (w *Walker) descends(depth int) bool {
	return w.opts.MaxDepth <= 0 || depth < w.opts.MaxDepth
}

// push lists dir and places it on the stack
func (w *Walker) push(dir string, self *domain.Entry) bool {
	children, err := w.adp.List(w.ctx, dir)
	if err != nil {
		w.err = fmt.Errorf("reading directory %s: %w", dir, err)
		return false
	}

	w.stack = append(w.stack, &frame{
		dir:      dir,
		children: children,
		self:     self,
	})
	return true
}

// Collect drains a scanner into a slice
func Collect(s Scanner) ([]domain.Entry, error) {
	var entries []domain.Entry
	for {
		entry, ok := s.Next()
		if !ok {
			break
		}
		entries = append(entries, entry)
	}
	return entries, s.Err()
}

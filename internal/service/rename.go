// Package service runs a complete rename pass over one root directory.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ning0612/fdname/internal/adapter"
	"github.com/Ning0612/fdname/internal/adapter/local"
	"github.com/Ning0612/fdname/internal/config"
	"github.com/Ning0612/fdname/internal/core/namehash"
	"github.com/Ning0612/fdname/internal/core/planner"
	"github.com/Ning0612/fdname/internal/core/rename"
	"github.com/Ning0612/fdname/internal/core/transform"
	"github.com/Ning0612/fdname/internal/core/walker"
	"github.com/Ning0612/fdname/internal/domain"
	"github.com/Ning0612/fdname/internal/lock"
	"github.com/Ning0612/fdname/internal/logger"
	"github.com/Ning0612/fdname/internal/progress"
)

// RenameService orchestrates a rename run
type RenameService struct {
	config   *config.Config
	adapter  adapter.Adapter
	reporter progress.Reporter
}

// NewRenameService creates a service over the local filesystem.
// cfg must already be normalized and validated.
func NewRenameService(cfg *config.Config) (*RenameService, error) {
	return NewRenameServiceWithAdapter(cfg, local.NewOS())
}

// NewRenameServiceWithAdapter creates a service over adp
func NewRenameServiceWithAdapter(cfg *config.Config, adp adapter.Adapter) (*RenameService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if adp == nil {
		return nil, fmt.Errorf("adapter cannot be nil")
	}

	return &RenameService{
		config:  cfg,
		adapter: adp,
	}, nil
}

// SetProgressReporter sets the reporter notified of each outcome
func (s *RenameService) SetProgressReporter(reporter progress.Reporter) {
	s.reporter = reporter
}

func (s *RenameService) getReporter() progress.Reporter {
	if s.reporter != nil {
		return s.reporter
	}
	return progress.NullReporter{}
}

// Run renames every selected entry below the configured root.
// The first error aborts the run and is returned as a *domain.RunError;
// the stats count what happened up to that point.
func (s *RenameService) Run(ctx context.Context) (domain.RunStats, error) {
	var stats domain.RunStats
	reporter := s.getReporter()

	calc, err := namehash.NewCalculator(s.config.HashAlgorithm)
	if err != nil {
		return stats, &domain.RunError{Stage: domain.StageConfig, Err: err}
	}
	rule, err := transform.New(s.config.Transform, calc)
	if err != nil {
		return stats, &domain.RunError{Stage: domain.StageConfig, Err: err}
	}

	root, err := s.resolveRoot(ctx)
	if err != nil {
		return stats, err
	}

	log := logger.With("root", root, "transform", rule.Kind())

	if !s.config.NoLock {
		rootLock, err := lock.NewRootLock(s.config.LockDir, root)
		if err != nil {
			return stats, &domain.RunError{Stage: domain.StageConfig, Path: root, Err: err}
		}
		if err := rootLock.Acquire(); err != nil {
			return stats, &domain.RunError{Stage: domain.StageConfig, Path: root, Err: err}
		}
		defer func() {
			if err := rootLock.Release(); err != nil {
				log.Error("failed to release root lock", "error", err)
			}
		}()
	}

	selection := s.config.Selection
	plan := planner.NewDefaultPlanner(s.adapter, rule, s.config.OnConflict)
	exec := rename.NewDefaultExecutor(s.adapter)
	walk := walker.New(ctx, s.adapter, root, walker.OptionsFor(s.config.Recursive))

	log.Debug("starting rename",
		"recursive", s.config.Recursive,
		"files", selection.Files,
		"dirs", selection.Dirs,
		"on_conflict", s.config.OnConflict,
	)

	for {
		entry, ok := walk.Next()
		if !ok {
			break
		}
		stats.Visited++

		// Re-queried now; an earlier rename may have changed what is here
		typ, err := s.adapter.Classify(ctx, entry.Path)
		if err != nil {
			reporter.Failed(entry.Path, err)
			return stats, &domain.RunError{Stage: domain.StageTraverse, Path: entry.Path, Err: err}
		}
		if !selection.Matches(typ) {
			stats.Filtered++
			log.Debug("entry filtered", "path", entry.Path, "type", typ)
			continue
		}

		action, err := plan.Plan(ctx, entry)
		if err != nil {
			reporter.Failed(entry.Path, err)
			return stats, &domain.RunError{Stage: domain.StageRename, Path: entry.Path, Err: err}
		}

		if err := exec.Execute(ctx, action); err != nil {
			reporter.Failed(entry.Path, err)
			return stats, &domain.RunError{Stage: domain.StageRename, Path: entry.Path, Err: err}
		}

		switch action.Type {
		case domain.ActionRename:
			stats.Renamed++
			reporter.Renamed(action.Source, action.Target)
			log.Debug("renamed", "from", action.Source, "to", action.Target)
		case domain.ActionUnchanged:
			stats.Unchanged++
		case domain.ActionSkip:
			stats.Skipped++
			reporter.Skipped(action.Source, action.Reason)
			log.Info("skipped", "path", action.Source, "reason", action.Reason)
		}
	}

	if err := walk.Err(); err != nil {
		reporter.Failed(root, err)
		return stats, &domain.RunError{Stage: domain.StageTraverse, Err: err}
	}

	reporter.Finished(stats)
	log.Info("rename completed",
		"visited", stats.Visited,
		"renamed", stats.Renamed,
		"unchanged", stats.Unchanged,
		"skipped", stats.Skipped,
		"filtered", stats.Filtered,
	)

	return stats, nil
}

// resolveRoot makes the root absolute and checks it is an existing directory
func (s *RenameService) resolveRoot(ctx context.Context) (string, error) {
	root := s.config.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &domain.RunError{Stage: domain.StageConfig, Err: err}
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &domain.RunError{Stage: domain.StageConfig, Path: root, Err: err}
	}

	typ, err := s.adapter.Classify(ctx, abs)
	if err != nil {
		return "", &domain.RunError{Stage: domain.StageConfig, Path: abs, Err: err}
	}
	switch typ {
	case domain.EntryDirectory:
		return abs, nil
	case domain.EntryFile:
		return "", &domain.RunError{Stage: domain.StageConfig, Path: abs, Err: domain.ErrNotDirectory}
	}

	// Other covers missing paths, dangling links and special files
	exists, err := s.adapter.Exists(ctx, abs)
	if err != nil {
		return "", &domain.RunError{Stage: domain.StageConfig, Path: abs, Err: err}
	}
	if exists {
		return "", &domain.RunError{Stage: domain.StageConfig, Path: abs, Err: domain.ErrNotDirectory}
	}
	return "", &domain.RunError{Stage: domain.StageConfig, Path: abs, Err: domain.ErrRootNotFound}
}

package planner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ning0612/fdname/internal/adapter"
	"github.com/Ning0612/fdname/internal/core/conflict"
	"github.com/Ning0612/fdname/internal/core/split"
	"github.com/Ning0612/fdname/internal/core/transform"
	"github.com/Ning0612/fdname/internal/domain"
)

// Skip reasons
const (
	ReasonNoStem      = "name has no stem"
	ReasonIllegalName = "transformed name is not a legal name"
)

// Planner decides what to do with a single entry
type Planner interface {
	Plan(ctx context.Context, entry domain.Entry) (domain.RenameAction, error)
}

// DefaultPlanner runs Split -> Transform -> destination check
type DefaultPlanner struct {
	Adapter     adapter.Adapter
	Transformer transform.Transformer
	Resolver    conflict.Resolver
	Policy      domain.ConflictPolicy
}

// NewDefaultPlanner creates a planner with the default conflict resolver
func NewDefaultPlanner(adp adapter.Adapter, t transform.Transformer, policy domain.ConflictPolicy) *DefaultPlanner {
	return &DefaultPlanner{
		Adapter:     adp,
		Transformer: t,
		Resolver:    conflict.NewDefaultResolver(),
		Policy:      policy,
	}
}

// Plan implements the Planner interface.
// Only filesystem read failures are returned as errors; everything else is
// encoded in the action.
func (p *DefaultPlanner) Plan(ctx context.Context, entry domain.Entry) (domain.RenameAction, error) {
	source := entry.Path

	stem, ext, ok := split.Split(filepath.Base(source))
	if !ok {
		return skip(source, ReasonNoStem), nil
	}

	newStem, ok := p.Transformer.Apply(stem)
	if !ok {
		return skip(source, ReasonIllegalName), nil
	}

	newName := split.Join(newStem, ext)
	if newName == "." || newName == ".." {
		return skip(source, ReasonIllegalName), nil
	}

	action := domain.RenameAction{
		Type:   domain.ActionRename,
		Source: source,
		Target: filepath.Join(filepath.Dir(source), newName),
		Stem:   newStem,
		Ext:    ext,
	}

	if action.Target == source {
		action.Type = domain.ActionUnchanged
		return action, nil
	}

	exists, err := p.Adapter.Exists(ctx, action.Target)
	if err != nil {
		return domain.RenameAction{}, fmt.Errorf("checking destination %s: %w", action.Target, err)
	}
	if !exists {
		return action, nil
	}

	caseOnly, err := p.isCaseOnly(ctx, source, action.Target)
	if err != nil {
		return domain.RenameAction{}, fmt.Errorf("checking destination %s: %w", action.Target, err)
	}
	if caseOnly {
		return action, nil
	}

	return p.Resolver.Resolve(p.Policy, action), nil
}

// isCaseOnly reports whether target is source seen through a case-insensitive
// filesystem. A hard link to source is still a conflict: renaming onto it
// leaves both names in place.
func (p *DefaultPlanner) isCaseOnly(ctx context.Context, source, target string) (bool, error) {
	if !strings.EqualFold(filepath.Base(source), filepath.Base(target)) {
		return false, nil
	}
	return p.Adapter.SameFile(ctx, source, target)
}

func skip(source, reason string) domain.RenameAction {
	return domain.RenameAction{
		Type:   domain.ActionSkip,
		Source: source,
		Reason: reason,
	}
}

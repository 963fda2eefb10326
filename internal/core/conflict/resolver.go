package conflict

import "github.com/Ning0612/fdname/internal/domain"

// Resolver decides what happens to a planned rename whose target is taken
type Resolver interface {
	// Resolve returns the action to carry out instead of the planned one
	Resolve(policy domain.ConflictPolicy, planned domain.RenameAction) domain.RenameAction
}

// DefaultResolver implements the error, skip and overwrite policies
type DefaultResolver struct{}

// NewDefaultResolver creates a new DefaultResolver
func NewDefaultResolver() *DefaultResolver {
	return &DefaultResolver{}
}

// Resolve implements the Resolver interface
func (r *DefaultResolver) Resolve(policy domain.ConflictPolicy, planned domain.RenameAction) domain.RenameAction {
	resolved := planned

	switch policy {
	case domain.ConflictOverwrite:
		// Hand the collision to the filesystem rename
		resolved.Type = domain.ActionRename
		resolved.Reason = "destination exists, overwriting"

	case domain.ConflictSkip:
		resolved.Type = domain.ActionSkip
		resolved.Reason = "destination exists: " + planned.Target

	default: // ConflictError or unknown
		resolved.Type = domain.ActionConflict
		resolved.Reason = "destination exists: " + planned.Target
	}

	return resolved
}

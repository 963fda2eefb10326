package domain

// ActionType represents the planned outcome for one entry
type ActionType string

const (
	ActionRename    ActionType = "rename"
	ActionUnchanged ActionType = "unchanged"
	ActionSkip      ActionType = "skip"
	ActionConflict  ActionType = "conflict"
)

// RenameAction is the plan for a single entry
type RenameAction struct {
	// Type of action to perform
	Type ActionType

	// Source is the current path of the entry
	Source string

	// Target is the sibling path the entry is renamed to (empty for skip)
	Target string

	// Stem and Ext are the components the target was assembled from
	Stem string
	Ext  string

	// Reason explains skips and conflicts
	Reason string
}

// ConflictPolicy defines what happens when a computed name is already taken
type ConflictPolicy string

const (
	// ConflictError aborts the run
	ConflictError ConflictPolicy = "error"

	// ConflictSkip leaves the entry untouched and continues
	ConflictSkip ConflictPolicy = "skip"

	// ConflictOverwrite renames anyway and lets the filesystem decide
	ConflictOverwrite ConflictPolicy = "overwrite"
)

// IsValid checks if the conflict policy is a known value
func (p ConflictPolicy) IsValid() bool {
	switch p {
	case ConflictError, ConflictSkip, ConflictOverwrite:
		return true
	}
	return false
}

// RunStats summarizes a completed run
type RunStats struct {
	Visited   int
	Filtered  int
	Renamed   int
	Unchanged int
	Skipped   int
}

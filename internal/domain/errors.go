package domain

import (
	"errors"
	"fmt"
)

// Adapter errors - filesystem port errors
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrAlreadyExists indicates the destination already exists
	ErrAlreadyExists = errors.New("path already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDirectory indicates expected a directory but got something else
	ErrNotDirectory = errors.New("not a directory")
)

// Run errors - rename run errors
var (
	// ErrRootNotFound indicates the resolved root directory does not exist
	ErrRootNotFound = errors.New("path does not exist")

	// ErrDestinationExists indicates a computed name collides with an unrelated entry
	ErrDestinationExists = errors.New("destination already exists")

	// ErrRenameInProgress indicates another fdname process holds the root lock
	ErrRenameInProgress = errors.New("rename already in progress")
)

// Config errors
var (
	// ErrConfigNotFound indicates the config file given with --config is missing
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates a malformed configuration
	ErrConfigInvalid = errors.New("invalid config")

	// ErrInvalidTransform indicates a transform kind or argument is not usable
	ErrInvalidTransform = errors.New("invalid transform")
)

// Stage identifies the part of a run that failed
type Stage string

const (
	StageConfig   Stage = "config"
	StageTraverse Stage = "traverse"
	StageRename   Stage = "rename"
)

// RunError is the terminal error of an aborted run
type RunError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *RunError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// IsStage reports whether err is a RunError raised in the given stage
func IsStage(err error, stage Stage) bool {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Stage == stage
	}
	return false
}

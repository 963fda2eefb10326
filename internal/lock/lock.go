// Package lock keeps two fdname runs from renaming the same tree at once.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/Ning0612/fdname/internal/domain"
)

const (
	// DirName is the directory created under the user config dir
	DirName = "fdname"
	// DefaultStaleTimeout is the age after which a lock from another host is considered stale
	DefaultStaleTimeout = 30 * time.Minute
)

// LockInfo contains metadata about the lock holder
type LockInfo struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	StartTime time.Time `json:"start_time"`
	Root      string    `json:"root"`
}

// RootLock is a file lock keyed by the absolute root directory of a run
type RootLock struct {
	root         string
	lockPath     string
	staleTimeout time.Duration
	info         *LockInfo
}

// FileName returns the lock file name for root
func FileName(root string) string {
	return fmt.Sprintf("fdname-%016x.lock", xxhash.Sum64String(filepath.Clean(root)))
}

// DefaultDir returns the lock directory used when none is configured
func DefaultDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, DirName)
	}
	return filepath.Join(os.TempDir(), DirName)
}

// NewRootLock creates a lock for root inside lockDir (DefaultDir when empty)
func NewRootLock(lockDir, root string) (*RootLock, error) {
	if lockDir == "" {
		lockDir = DefaultDir()
	}

	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	return &RootLock{
		root:         filepath.Clean(root),
		lockPath:     filepath.Join(lockDir, FileName(root)),
		staleTimeout: DefaultStaleTimeout,
	}, nil
}

// Path returns the lock file path
func (l *RootLock) Path() string {
	return l.lockPath
}

// SetStaleTimeout sets the duration after which a foreign-host lock is considered stale
func (l *RootLock) SetStaleTimeout(d time.Duration) {
	l.staleTimeout = d
}

// Acquire takes the lock. A live holder yields a *LockError matching
// domain.ErrRenameInProgress.
func (l *RootLock) Acquire() error {
	if l.info != nil {
		if existing, err := l.readLockInfo(); err == nil && l.isHeldByThisInstance(existing) {
			return nil
		}
		l.info = nil
	}

	existing, err := l.readLockInfo()
	if err == nil {
		if !l.isStale(existing) {
			return &LockError{
				Holder: existing,
				Reason: "lock is held by another process",
			}
		}
		if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	// An unreadable lock file may be one being written right now; O_EXCL below decides

	hostname, _ := os.Hostname()
	info := &LockInfo{
		PID:       os.Getpid(),
		Hostname:  hostname,
		StartTime: time.Now(),
		Root:      l.root,
	}

	file, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			// Another process acquired the lock between our check and create
			existing, readErr := l.readLockInfo()
			if readErr != nil {
				return &LockError{Reason: "lock acquired by another process during acquisition"}
			}
			return &LockError{
				Holder: existing,
				Reason: "lock acquired by another process during acquisition",
			}
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(info); err != nil {
		os.Remove(l.lockPath)
		return fmt.Errorf("failed to write lock info: %w", err)
	}

	l.info = info
	return nil
}

// Release releases the lock if this instance holds it
func (l *RootLock) Release() error {
	if l.info == nil {
		return nil
	}

	existing, err := l.readLockInfo()
	if err != nil {
		l.info = nil
		return nil // already gone
	}

	if !l.isHeldByThisInstance(existing) {
		l.info = nil
		return fmt.Errorf("lock was stolen by another process")
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	l.info = nil
	return nil
}

// IsLocked checks if a live lock exists for the root
func (l *RootLock) IsLocked() bool {
	info, err := l.readLockInfo()
	if err != nil {
		return false
	}
	return !l.isStale(info)
}

// GetHolder returns information about the current lock holder
func (l *RootLock) GetHolder() (*LockInfo, error) {
	info, err := l.readLockInfo()
	if err != nil {
		return nil, err
	}
	if l.isStale(info) {
		return nil, fmt.Errorf("lock is stale")
	}
	return info, nil
}

// ForceRelease removes the lock file regardless of the holder
func (l *RootLock) ForceRelease() error {
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to force remove lock: %w", err)
	}
	l.info = nil
	return nil
}

func (l *RootLock) readLockInfo() (*LockInfo, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return nil, err
	}

	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("invalid lock file format: %w", err)
	}

	return &info, nil
}

// isStale reports whether the holder is gone.
// On the same host only a dead pid is stale; the timeout applies to other hosts.
func (l *RootLock) isStale(info *LockInfo) bool {
	hostname, _ := os.Hostname()

	if info.Hostname == hostname {
		return !processExists(info.PID)
	}

	return time.Since(info.StartTime) > l.staleTimeout
}

func (l *RootLock) isHeldByThisInstance(info *LockInfo) bool {
	if l.info == nil {
		return false
	}
	hostname, _ := os.Hostname()
	return info.PID == os.Getpid() &&
		info.Hostname == hostname &&
		l.info.StartTime.Equal(info.StartTime)
}

// LockError represents an error when the lock cannot be acquired
type LockError struct {
	Holder *LockInfo
	Reason string
}

func (e *LockError) Error() string {
	if e.Holder != nil {
		return fmt.Sprintf("%s: %s (held by PID %d on %s since %s)",
			domain.ErrRenameInProgress,
			e.Reason,
			e.Holder.PID,
			e.Holder.Hostname,
			e.Holder.StartTime.Format(time.RFC3339),
		)
	}
	return fmt.Sprintf("%s: %s", domain.ErrRenameInProgress, e.Reason)
}

// Unwrap lets errors.Is match domain.ErrRenameInProgress
func (e *LockError) Unwrap() error {
	return domain.ErrRenameInProgress
}

// IsLockError checks if an error is a LockError
func IsLockError(err error) bool {
	var lockErr *LockError
	return errors.As(err, &lockErr)
}

//go:build !windows

package lock

import (
	"errors"

	"golang.org/x/sys/unix"
)

// processExists checks if a process with the given PID exists
func processExists(pid int) bool {
	// 0 and negative pids address process groups
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to someone else
	return errors.Is(err, unix.EPERM)
}

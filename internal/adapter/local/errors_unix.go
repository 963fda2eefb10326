//go:build !windows

package local

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isNotDir(err error) bool {
	return errors.Is(err, unix.ENOTDIR)
}

func isNotEmpty(err error) bool {
	return errors.Is(err, unix.ENOTEMPTY)
}

package logger

import (
	"fmt"
	"sync"
)

// global holds the process logger. Before Init, and after Shutdown, it is nil
// and Get hands out a NullLogger so packages can log unconditionally.
var global struct {
	mu     sync.RWMutex
	logger Logger
}

// Init installs a logger built from config as the process logger.
// A logger installed by an earlier Init is shut down first, so one process
// can run the command tree more than once.
func Init(config Config) error {
	next, err := NewSlogLogger(config)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	global.mu.Lock()
	prev := global.logger
	global.logger = next
	global.mu.Unlock()

	if prev != nil {
		return prev.Shutdown()
	}
	return nil
}

// Get returns the process logger
func Get() Logger {
	global.mu.RLock()
	defer global.mu.RUnlock()

	if global.logger == nil {
		return NullLogger{}
	}
	return global.logger
}

// With returns a child of the process logger carrying args on every record
func With(args ...any) Logger {
	return Get().With(args...)
}

// Shutdown closes the process logger's files. Safe to call more than once.
func Shutdown() error {
	global.mu.Lock()
	prev := global.logger
	global.logger = nil
	global.mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.Shutdown()
}

// NullLogger discards everything
type NullLogger struct{}

func (NullLogger) Debug(msg string, args ...any) {}
func (NullLogger) Info(msg string, args ...any)  {}
func (NullLogger) Warn(msg string, args ...any)  {}
func (NullLogger) Error(msg string, args ...any) {}
func (n NullLogger) With(args ...any) Logger     { return n }
func (NullLogger) Sync() error                   { return nil }
func (NullLogger) Shutdown() error               { return nil }

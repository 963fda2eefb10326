// Package progress reports per-entry rename outcomes while a run is in flight.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/Ning0612/fdname/internal/domain"
)

// Reporter receives rename events
type Reporter interface {
	// Renamed reports a completed rename
	Renamed(from, to string)
	// Skipped reports an entry left untouched
	Skipped(path, reason string)
	// Failed reports the error that aborted the run
	Failed(path string, err error)
	// Finished reports the final counts of a successful run
	Finished(stats domain.RunStats)
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// Update represents a progress update
type Update struct {
	Type   UpdateType
	Path   string
	Target string
	Reason string
	Error  error

	// Renamed and Skipped are running totals
	Renamed int
	Skipped int

	// Stats is set on UpdateFinished
	Stats domain.RunStats
}

// UpdateType indicates the type of progress update
type UpdateType int

const (
	UpdateRenamed UpdateType = iota
	UpdateSkipped
	UpdateFailed
	UpdateFinished
)

// String returns the string representation of the update type
func (t UpdateType) String() string {
	switch t {
	case UpdateRenamed:
		return "renamed"
	case UpdateSkipped:
		return "skipped"
	case UpdateFailed:
		return "failed"
	case UpdateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CallbackReporter implements Reporter with a callback function
type CallbackReporter struct {
	callback Callback
	mu       sync.Mutex
	renamed  int
	skipped  int
}

// NewCallbackReporter creates a new CallbackReporter
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{
		callback: callback,
	}
}

// Renamed implements the Reporter interface
func (r *CallbackReporter) Renamed(from, to string) {
	r.mu.Lock()
	r.renamed++
	update := Update{
		Type:    UpdateRenamed,
		Path:    from,
		Target:  to,
		Renamed: r.renamed,
		Skipped: r.skipped,
	}
	r.mu.Unlock()

	r.emit(update)
}

// Skipped implements the Reporter interface
func (r *CallbackReporter) Skipped(path, reason string) {
	r.mu.Lock()
	r.skipped++
	update := Update{
		Type:    UpdateSkipped,
		Path:    path,
		Reason:  reason,
		Renamed: r.renamed,
		Skipped: r.skipped,
	}
	r.mu.Unlock()

	r.emit(update)
}

// Failed implements the Reporter interface
func (r *CallbackReporter) Failed(path string, err error) {
	r.mu.Lock()
	update := Update{
		Type:    UpdateFailed,
		Path:    path,
		Error:   err,
		Renamed: r.renamed,
		Skipped: r.skipped,
	}
	r.mu.Unlock()

	r.emit(update)
}

// Finished implements the Reporter interface
func (r *CallbackReporter) Finished(stats domain.RunStats) {
	r.mu.Lock()
	update := Update{
		Type:    UpdateFinished,
		Renamed: r.renamed,
		Skipped: r.skipped,
		Stats:   stats,
	}
	r.mu.Unlock()

	r.emit(update)
}

// emit calls the callback outside the lock to prevent deadlock
func (r *CallbackReporter) emit(update Update) {
	if r.callback != nil {
		r.callback(update)
	}
}

// WriterReporter prints one line per event
type WriterReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter creates a reporter writing to w
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Renamed(from, to string) {
	r.printf("renamed: %s -> %s\n", from, to)
}

func (r *WriterReporter) Skipped(path, reason string) {
	r.printf("skipped: %s (%s)\n", path, reason)
}

// Failed is silent; the caller prints the aborting error once
func (r *WriterReporter) Failed(path string, err error) {}

func (r *WriterReporter) Finished(stats domain.RunStats) {
	r.printf("%s\n", FormatStats(stats))
}

func (r *WriterReporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, args...)
}

// NullReporter is a no-op reporter
type NullReporter struct{}

func (NullReporter) Renamed(from, to string)        {}
func (NullReporter) Skipped(path, reason string)    {}
func (NullReporter) Failed(path string, err error)  {}
func (NullReporter) Finished(stats domain.RunStats) {}

// FormatStats formats run counts into a summary line
func FormatStats(stats domain.RunStats) string {
	return fmt.Sprintf("%d renamed, %d unchanged, %d skipped, %d filtered (%d visited)",
		stats.Renamed, stats.Unchanged, stats.Skipped, stats.Filtered, stats.Visited)
}

// Package batch implements the two batch execution strategies over the
// single-image pipeline: pool mode (one task per image) and pipeline mode
// (three specialized worker groups), plus the shared error collector and
// abort flag, grounded on the teacher's internal/processing batch loop and
// internal/encode.EncodeAll's goroutine/channel structure.
package batch

import (
	"sync"
	"sync/atomic"

	"github.com/five82/imgresize/internal/config"
	"github.com/five82/imgresize/internal/imgerrors"
)

// Item is one (input, output, options) tuple, the unit batch executors
// submit to the pipeline.
type Item struct {
	InputPath  string
	OutputPath string
	Options    config.ResizeOptions
}

// Result is the outcome of a batch run: spec.md §3's BatchResult.
type Result struct {
	Total   int
	Success int
	Failed  int
	Errors  []string
}

// AbortFlag is the shared stop_on_error signal: an atomic boolean checked
// at task entry and between pipeline stages, per spec.md §5.
type AbortFlag struct {
	v atomic.Bool
}

// Set raises the abort flag.
func (f *AbortFlag) Set() { f.v.Store(true) }

// IsSet reports whether the abort flag has been raised.
func (f *AbortFlag) IsSet() bool { return f.v.Load() }

// Collector is the mutex-guarded per-image outcome accumulator of
// spec.md §4.9.
type Collector struct {
	mu      sync.Mutex
	total   int
	success int
	failed  int
	errors  []string
}

// NewCollector creates a Collector expecting total items.
func NewCollector(total int) *Collector {
	return &Collector{total: total}
}

// RecordOK records one successful item.
func (c *Collector) RecordOK() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.success++
}

// RecordErr records one failed item, formatting "<input_path>: <message>"
// per spec.md §4.9. A *imgerrors.CoreError's own Report() is used when
// available so the phrase matches its error kind; its path is replaced by
// inputPath so output-side failures are also reported against the input.
func (c *Collector) RecordErr(inputPath string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++

	if ce, ok := err.(*imgerrors.CoreError); ok {
		report := *ce
		report.Path = inputPath
		c.errors = append(c.errors, report.Report())
		return
	}
	c.errors = append(c.errors, inputPath+": "+err.Error())
}

// Result yields the accumulated BatchResult.
func (c *Collector) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Result{
		Total:   c.total,
		Success: c.success,
		Failed:  c.failed,
		Errors:  append([]string(nil), c.errors...),
	}
}

// errSkippedDueToStop is recorded for items that never start because
// stop_on_error already raised the abort flag.
type errSkippedDueToStop struct{}

func (errSkippedDueToStop) Error() string { return "skipped-due-to-stop" }

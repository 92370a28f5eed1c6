// Package config provides configuration types and defaults for imgresize.
package config

import (
	"fmt"
	"runtime"

	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/kernel"
)

// Default constants.
const (
	// DefaultQuality is the lossy-encoder quality used when the caller
	// does not specify one.
	DefaultQuality int = 85

	// DefaultFilter is the polyphase filter used when the caller does not
	// specify one.
	DefaultFilter kernel.Filter = kernel.Mitchell

	// DefaultMode is the geometry mode used when the caller does not
	// specify one.
	DefaultMode geometry.Mode = geometry.ScalePercent

	// DefaultKeepAspectRatio is the aspect-ratio default for resize
	// options.
	DefaultKeepAspectRatio bool = true

	// DefaultPipelineThreshold is the minimum batch size at which pipeline
	// mode engages when max_speed is requested, a documented choice within
	// the [20, 50] range.
	DefaultPipelineThreshold int = 32

	// DefaultMaxRetainedBuffers is the buffer pool's retention cap.
	DefaultMaxRetainedBuffers int = 32
)

// ResizeOptions mirrors spec.md §3's ResizeOptions: per-image resize and
// encode parameters.
type ResizeOptions struct {
	Mode            geometry.Mode
	TargetWidth     int
	TargetHeight    int
	ScalePercent    float64
	KeepAspectRatio bool
	OverwriteInput  bool
	Quality         int
	Filter          kernel.Filter
}

// DefaultResizeOptions returns a ResizeOptions populated with this
// module's documented defaults.
func DefaultResizeOptions() ResizeOptions {
	return ResizeOptions{
		Mode:            DefaultMode,
		ScalePercent:    1.0,
		KeepAspectRatio: DefaultKeepAspectRatio,
		Quality:         DefaultQuality,
		Filter:          DefaultFilter,
	}
}

// Validate checks a ResizeOptions for the invalid-options conditions
// spec.md §7 and §4.1 name.
func (o ResizeOptions) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, o.Quality)
	}
	if o.Mode == geometry.ScalePercent && o.ScalePercent <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidScalePercent, o.ScalePercent)
	}
	if o.TargetWidth < 0 || o.TargetHeight < 0 {
		return ErrInvalidDimensions
	}
	return nil
}

// BatchOptions mirrors spec.md §3's BatchOptions.
type BatchOptions struct {
	NumThreads  int
	StopOnError bool
	MaxSpeed    bool
}

// DefaultBatchOptions returns a BatchOptions populated with this module's
// documented defaults. NumThreads is left at 0 ("auto") here; callers
// resolve it via ResolvedThreads.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{}
}

// ResolvedThreads returns num_threads resolved to hardware parallelism
// when 0 ("auto"), per spec.md §3.
func (o BatchOptions) ResolvedThreads() int {
	if o.NumThreads > 0 {
		return o.NumThreads
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// Config holds directory defaults and the default ResizeOptions/
// BatchOptions a CLI or library caller starts from, following the
// teacher's Config/NewConfig/Validate shape.
type Config struct {
	OutputDir string
	LogDir    string

	Resize ResizeOptions
	Batch  BatchOptions

	PipelineThreshold  int
	MaxRetainedBuffers int

	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig(outputDir, logDir string) *Config {
	return &Config{
		OutputDir:          outputDir,
		LogDir:             logDir,
		Resize:             DefaultResizeOptions(),
		Batch:              DefaultBatchOptions(),
		PipelineThreshold:  DefaultPipelineThreshold,
		MaxRetainedBuffers: DefaultMaxRetainedBuffers,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Resize.Validate(); err != nil {
		return err
	}
	if c.Batch.NumThreads < 0 {
		return fmt.Errorf("config: num_threads must be non-negative, got %d", c.Batch.NumThreads)
	}
	if c.PipelineThreshold < 1 {
		return fmt.Errorf("config: pipeline_threshold must be positive, got %d", c.PipelineThreshold)
	}
	if c.MaxRetainedBuffers < 0 {
		return fmt.Errorf("config: max_retained_buffers must be non-negative, got %d", c.MaxRetainedBuffers)
	}
	return nil
}

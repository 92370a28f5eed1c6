// Package imgresize provides a Go library for high-throughput batch image
// resizing: decode, polyphase resize, re-encode, with a worker pool and an
// optional three-stage pipeline for large batches.
//
// Basic usage:
//
//	resizer, err := imgresize.New(
//	    imgresize.WithQuality(90),
//	    imgresize.WithFilter(imgresize.FilterCatmullRom),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := resizer.Options() // quality 90, Catmull-Rom, from the options above
//	opts.Mode = imgresize.ScalePercent
//	opts.ScalePercent = 0.5
//	if err := resizer.Resize("input.jpg", "output.jpg", opts); err != nil {
//	    log.Fatal(err)
//	}
package imgresize

import (
	"fmt"
	"sync"

	"github.com/five82/imgresize/internal/batch"
	"github.com/five82/imgresize/internal/bufpool"
	"github.com/five82/imgresize/internal/codec"
	"github.com/five82/imgresize/internal/codecs"
	"github.com/five82/imgresize/internal/config"
	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/kernel"
	"github.com/five82/imgresize/internal/pipeline"
	"github.com/five82/imgresize/internal/util"
)

// Re-exported data model types (spec.md §3), so callers never import the
// internal packages directly.
type (
	ResizeOptions = config.ResizeOptions
	BatchOptions  = config.BatchOptions
	ImageInfo     = codec.Info
	BatchItem     = batch.Item
	BatchResult   = batch.Result
	Mode          = geometry.Mode
	Filter        = kernel.Filter
)

const (
	ScalePercent = geometry.ScalePercent
	FitWidth     = geometry.FitWidth
	FitHeight    = geometry.FitHeight
	ExactSize    = geometry.ExactSize

	FilterMitchell   = kernel.Mitchell
	FilterCatmullRom = kernel.CatmullRom
	FilterBox        = kernel.Box
	FilterTriangle   = kernel.Triangle
)

// DefaultResizeOptions returns the options that apply when a caller
// provides none: scale-percent 1.0, quality 85, Mitchell filter, aspect
// ratio kept.
func DefaultResizeOptions() ResizeOptions { return config.DefaultResizeOptions() }

// DefaultBatchOptions returns num_threads=0 (auto), stop_on_error=false,
// max_speed=false.
func DefaultBatchOptions() BatchOptions { return config.DefaultBatchOptions() }

// Resizer is the main entry point for image resizing, mirroring the
// teacher's Encoder: an immutable configuration plus the shared codec
// registry and scratch buffer pool used across every call.
type Resizer struct {
	cfg      *config.Config
	registry *codec.Registry
	buffers  *bufpool.Pool
	pipe     *pipeline.Pipeline
}

// Option configures a Resizer.
type Option func(*config.Config)

// New creates a Resizer with the given options applied over the defaults.
func New(opts ...Option) (*Resizer, error) {
	cfg := config.NewConfig(".", ".")
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	buffers := bufpool.NewWithLimit(cfg.MaxRetainedBuffers)
	registry := codecs.Default()

	return &Resizer{
		cfg:      cfg,
		registry: registry,
		buffers:  buffers,
		pipe:     pipeline.New(registry, buffers),
	}, nil
}

// WithQuality sets the default lossy-encode quality (1-100).
func WithQuality(q int) Option {
	return func(c *config.Config) { c.Resize.Quality = q }
}

// WithFilter sets the default resize filter.
func WithFilter(f Filter) Option {
	return func(c *config.Config) { c.Resize.Filter = f }
}

// WithOverwriteInput allows an output path to equal its input path.
func WithOverwriteInput() Option {
	return func(c *config.Config) { c.Resize.OverwriteInput = true }
}

// WithThreads sets the worker count used by batch operations. 0 means auto.
func WithThreads(n int) Option {
	return func(c *config.Config) { c.Batch.NumThreads = n }
}

// WithStopOnError makes batch operations abort remaining work after the
// first failure, per spec.md §7.
func WithStopOnError() Option {
	return func(c *config.Config) { c.Batch.StopOnError = true }
}

// WithMaxSpeed opts batch operations into the three-stage pipeline
// executor once the batch is large enough (spec.md §4.8).
func WithMaxSpeed() Option {
	return func(c *config.Config) { c.Batch.MaxSpeed = true }
}

// WithPipelineThreshold overrides the batch size at which max_speed
// engages pipeline mode instead of pool mode.
func WithPipelineThreshold(n int) Option {
	return func(c *config.Config) { c.PipelineThreshold = n }
}

// WithMaxRetainedBuffers overrides the scratch buffer pool's retention cap.
func WithMaxRetainedBuffers(n int) Option {
	return func(c *config.Config) { c.MaxRetainedBuffers = n }
}

// Resize performs the full decode → resize → encode pipeline on a single
// image, per spec.md §4.3. opts is used verbatim; callers that want the
// Resizer's configured defaults should start from r.Options() and
// override only the fields they need.
func (r *Resizer) Resize(input, output string, opts ResizeOptions) error {
	err := r.pipe.Process(input, output, opts)
	if err != nil {
		setLastError(err.Error())
	}
	return err
}

// Options returns the Resizer's configured default ResizeOptions, a copy
// safe for the caller to mutate before passing to Resize.
func (r *Resizer) Options() ResizeOptions { return r.cfg.Resize }

// Probe returns format metadata for an image without fully decoding it.
func (r *Resizer) Probe(path string) (ImageInfo, error) {
	c, err := r.registry.ForPath(path)
	if err != nil {
		return ImageInfo{}, err
	}
	return c.Probe(path)
}

// Batch resizes a set of items using the configured thread count and
// mode (pool mode by default, pipeline mode when max_speed is set and the
// batch clears the pipeline threshold), per spec.md §4.7/§4.8.
func (r *Resizer) Batch(items []BatchItem) BatchResult {
	threads := r.cfg.Batch.ResolvedThreads()
	result := batch.Run(r.pipe, items, threads, r.cfg.Batch.MaxSpeed, r.cfg.Batch.StopOnError, r.cfg.PipelineThreshold)
	if result.Failed > 0 && len(result.Errors) > 0 {
		setLastError(result.Errors[len(result.Errors)-1])
	}
	return result
}

// BatchWithOptions resizes every input path found under the same
// ResizeOptions, writing each output to outputDir using the input's
// basename (extension preserved), per spec.md §4.7's pool-mode output path
// rule. Output directory creation is the caller's responsibility.
func (r *Resizer) BatchWithOptions(inputs []string, outputDir string, opts ResizeOptions) BatchResult {
	items := make([]BatchItem, len(inputs))
	for i, in := range inputs {
		items[i] = BatchItem{
			InputPath:  in,
			OutputPath: util.ResolveOutputPath(in, outputDir),
			Options:    opts,
		}
	}
	return r.Batch(items)
}

var (
	lastErrMu  sync.Mutex
	lastErrMsg string
)

func setLastError(msg string) {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	lastErrMsg = msg
}

// LastError returns the most recent single-image failure message recorded
// by any Resize or Batch call across the process, per spec.md §4.10. Its
// only ordering guarantee is "last writer wins" among concurrent failures;
// structured BatchResult remains the preferred way to consume batch
// outcomes.
func LastError() string {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return lastErrMsg
}

// ClearLastError resets the last-error channel to empty.
func ClearLastError() {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	lastErrMsg = ""
}

// ResizeImage is a convenience function performing a single resize with a
// default Resizer, without requiring the caller to construct one. opts is
// used verbatim, as with Resizer.Resize; fields left at their zero value
// are not filled in from DefaultResizeOptions.
func ResizeImage(input, output string, opts ResizeOptions) error {
	r, err := New()
	if err != nil {
		return fmt.Errorf("imgresize: %w", err)
	}
	return r.Resize(input, output, opts)
}

// ProbeImage is a convenience function returning format metadata for a
// single image.
func ProbeImage(path string) (ImageInfo, error) {
	r, err := New()
	if err != nil {
		return ImageInfo{}, fmt.Errorf("imgresize: %w", err)
	}
	return r.Probe(path)
}

// BatchResize is a convenience function running a custom batch (BatchItem
// tuples, per spec.md §3) with the given BatchOptions, without requiring
// the caller to construct a Resizer.
func BatchResize(items []BatchItem, batchOpts BatchOptions) (BatchResult, error) {
	r, err := New(WithThreads(batchOpts.NumThreads))
	if err != nil {
		return BatchResult{}, fmt.Errorf("imgresize: %w", err)
	}
	if batchOpts.StopOnError {
		r.cfg.Batch.StopOnError = true
	}
	if batchOpts.MaxSpeed {
		r.cfg.Batch.MaxSpeed = true
	}
	return r.Batch(items), nil
}

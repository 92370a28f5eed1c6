// Package pipeline runs the decode → resize → encode sequence for a
// single image, the unit of work shared by both batch executors, in the
// same orchestration role the teacher's internal/processing.ProcessChunked
// plays for a single chunk. Pool-mode batch execution calls Process
// directly; pipeline-mode batch execution calls the three stages
// separately so each can run in its own worker group.
package pipeline

import (
	"os"

	"github.com/five82/imgresize/internal/bufpool"
	"github.com/five82/imgresize/internal/codec"
	"github.com/five82/imgresize/internal/config"
	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/imgerrors"
	"github.com/five82/imgresize/internal/kernel"
	"github.com/five82/imgresize/internal/pixelbuf"
)

// Pipeline holds the shared, read-only collaborators every single-image
// job needs: the codec registry and the scratch buffer pool.
type Pipeline struct {
	Registry *codec.Registry
	Buffers  *bufpool.Pool
}

// New constructs a Pipeline. buffers may be nil, in which case each job
// allocates its own scratch buffer instead of drawing from a pool.
func New(registry *codec.Registry, buffers *bufpool.Pool) *Pipeline {
	return &Pipeline{Registry: registry, Buffers: buffers}
}

// Process runs decode → resize → encode for one image, per spec.md §4.3.
// Any failure short-circuits the remaining steps and is returned as a
// *imgerrors.CoreError with a kind-specific message. Its Path is input for
// input-side failures and output for an unsupported output format or an
// encode/write failure.
func (p *Pipeline) Process(input, output string, opts config.ResizeOptions) error {
	src, err := p.Decode(input, output, opts)
	if err != nil {
		return err
	}
	dst, err := p.Resize(input, src, opts)
	if err != nil {
		return err
	}
	defer p.ReleaseResult(dst)
	return p.Encode(output, dst, opts.Quality)
}

// Decode validates input/output and decodes input into a pixel buffer,
// the first pipeline-mode stage.
func (p *Pipeline) Decode(input, output string, opts config.ResizeOptions) (*pixelbuf.Buffer, error) {
	if !opts.OverwriteInput && input == output {
		return nil, imgerrors.NewInvalidOptions(input, "output path equals input path and overwrite_input is false")
	}
	if _, err := os.Stat(input); err != nil {
		return nil, imgerrors.NewFileNotFound(input, err)
	}

	inCodec, err := p.Registry.ForPath(input)
	if err != nil {
		return nil, imgerrors.NewUnsupportedFormat(input, err.Error())
	}
	if _, err := p.Registry.ForExtension(output); err != nil {
		return nil, imgerrors.NewUnsupportedFormat(output, err.Error())
	}

	src, err := inCodec.Decode(input)
	if err != nil {
		return nil, imgerrors.NewDecodeError(input, err)
	}
	return src, nil
}

// Resize computes target geometry and scales src, the second pipeline-mode
// stage.
func (p *Pipeline) Resize(input string, src *pixelbuf.Buffer, opts config.ResizeOptions) (*pixelbuf.Buffer, error) {
	tw, th, err := geometry.Resolve(src.Width, src.Height, geometry.Options{
		Mode:            opts.Mode,
		TargetWidth:     opts.TargetWidth,
		TargetHeight:    opts.TargetHeight,
		ScalePercent:    opts.ScalePercent,
		KeepAspectRatio: opts.KeepAspectRatio,
	})
	if err != nil {
		return nil, imgerrors.NewInvalidOptions(input, err.Error())
	}

	filter := kernel.ResolveFilter(opts.Filter, src.Width, src.Height, tw, th)

	dst, scratch, err := p.acquireResult(tw, th, src.Channels)
	if err != nil {
		return nil, imgerrors.NewResizeError(input, err)
	}
	if err := kernel.ResizeInto(dst, src, filter); err != nil {
		p.release(scratch)
		return nil, imgerrors.NewResizeError(input, err)
	}
	return dst, nil
}

// Encode writes buf to output via the registry-resolved codec, the third
// pipeline-mode stage.
func (p *Pipeline) Encode(output string, buf *pixelbuf.Buffer, quality int) error {
	outCodec, err := p.Registry.ForExtension(output)
	if err != nil {
		return imgerrors.NewUnsupportedFormat(output, err.Error())
	}
	if err := outCodec.Encode(output, buf, quality); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return imgerrors.NewWriteError(output, err)
		}
		return imgerrors.NewEncodeError(output, err)
	}
	return nil
}

// ReleaseResult returns a buffer produced by Resize to the pool, when one
// is configured. Pipeline-mode callers invoke this after Encode whether
// or not it succeeded.
func (p *Pipeline) ReleaseResult(buf *pixelbuf.Buffer) {
	if p.Buffers == nil || buf == nil {
		return
	}
	p.Buffers.Release(&bufpool.Buffer{Bytes: buf.Pix})
}

// acquireResult allocates the resized buffer, drawing its backing bytes
// from the pool when one is configured. scratch is non-nil only when the
// bytes came from the pool and must be released after use.
func (p *Pipeline) acquireResult(w, h, channels int) (dst *pixelbuf.Buffer, scratch *bufpool.Buffer, err error) {
	n := w * h * channels
	if p.Buffers == nil {
		return pixelbuf.New(w, h, channels), nil, nil
	}
	scratch = p.Buffers.Acquire(n)
	dst, err = pixelbuf.FromBytes(w, h, channels, scratch.Bytes)
	if err != nil {
		p.Buffers.Release(scratch)
		return nil, nil, err
	}
	return dst, scratch, nil
}

func (p *Pipeline) release(scratch *bufpool.Buffer) {
	if p.Buffers != nil && scratch != nil {
		p.Buffers.Release(scratch)
	}
}

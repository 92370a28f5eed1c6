package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/imgresize/internal/bufpool"
	"github.com/five82/imgresize/internal/codecs"
	"github.com/five82/imgresize/internal/config"
	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/imgerrors"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: byte(x), G: byte(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestProcessScalePercent(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.png")
	writeTestPNG(t, input, 100, 200)

	p := New(codecs.Default(), bufpool.New())
	opts := config.DefaultResizeOptions()
	opts.Mode = geometry.ScalePercent
	opts.ScalePercent = 0.5

	if err := p.Process(input, output, opts); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	info, err := probeDims(output)
	if err != nil {
		t.Fatal(err)
	}
	if info.w != 50 || info.h != 100 {
		t.Errorf("expected 50x100, got %dx%d", info.w, info.h)
	}
}

func TestProcessMissingInput(t *testing.T) {
	dir := t.TempDir()
	p := New(codecs.Default(), bufpool.New())
	err := p.Process(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), config.DefaultResizeOptions())
	if !imgerrors.IsKind(err, imgerrors.KindFileNotFound) {
		t.Fatalf("expected file-not-found, got %v", err)
	}
}

func TestProcessRejectsOverwriteWithoutFlag(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestPNG(t, input, 10, 10)

	p := New(codecs.Default(), bufpool.New())
	opts := config.DefaultResizeOptions()
	opts.OverwriteInput = false

	err := p.Process(input, input, opts)
	if !imgerrors.IsKind(err, imgerrors.KindInvalidOptions) {
		t.Fatalf("expected invalid-options, got %v", err)
	}
}

func TestProcessUnsupportedOutputFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestPNG(t, input, 10, 10)

	p := New(codecs.Default(), bufpool.New())
	err := p.Process(input, filepath.Join(dir, "out.tiff"), config.DefaultResizeOptions())
	if !imgerrors.IsKind(err, imgerrors.KindUnsupportedFormat) {
		t.Fatalf("expected unsupported-format, got %v", err)
	}
}

type dims struct{ w, h int }

func probeDims(path string) (dims, error) {
	f, err := os.Open(path)
	if err != nil {
		return dims{}, err
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return dims{}, err
	}
	return dims{w: cfg.Width, h: cfg.Height}, nil
}

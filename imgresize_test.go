package imgresize

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: byte(x), G: byte(y), B: 5, A: 255})
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

func probeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestNewAppliesOptions(t *testing.T) {
	r, err := New(WithQuality(42), WithFilter(FilterBox), WithThreads(3))
	if err != nil {
		t.Fatal(err)
	}
	if r.Options().Quality != 42 {
		t.Errorf("Quality = %d, want 42", r.Options().Quality)
	}
	if r.Options().Filter != FilterBox {
		t.Errorf("Filter = %v, want Box", r.Options().Filter)
	}
	if r.cfg.Batch.NumThreads != 3 {
		t.Errorf("NumThreads = %d, want 3", r.cfg.Batch.NumThreads)
	}
}

func TestNewRejectsInvalidQuality(t *testing.T) {
	if _, err := New(WithQuality(0)); err == nil {
		t.Fatal("expected error for quality 0")
	}
}

func TestResizeScalePercent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, in, 100, 200)

	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultResizeOptions()
	opts.Mode = ScalePercent
	opts.ScalePercent = 0.5

	if err := r.Resize(in, out, opts); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	w, h := probeDims(t, out)
	if w != 50 || h != 100 {
		t.Fatalf("got %dx%d, want 50x100", w, h)
	}
}

func TestResizeSetsLastErrorOnFailure(t *testing.T) {
	ClearLastError()
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	err = r.Resize(filepath.Join(t.TempDir(), "missing.png"), filepath.Join(t.TempDir(), "out.png"), DefaultResizeOptions())
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if LastError() == "" {
		t.Fatal("expected LastError() to be populated after a failed Resize")
	}
}

func TestClearLastError(t *testing.T) {
	ClearLastError()
	if LastError() != "" {
		t.Fatalf("LastError() = %q after Clear, want empty", LastError())
	}
}

func TestBatchWithOptionsIsolatesOneFailure(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	var inputs []string
	for i := 0; i < 5; i++ {
		in := filepath.Join(dir, "img"+string(rune('0'+i))+".png")
		if i != 2 {
			writeTestPNG(t, in, 20, 20)
		}
		inputs = append(inputs, in)
	}

	r, err := New(WithThreads(2))
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultResizeOptions()
	opts.Mode = ScalePercent
	opts.ScalePercent = 1.0

	result := r.BatchWithOptions(inputs, outDir, opts)
	if result.Total != 5 || result.Success != 4 || result.Failed != 1 {
		t.Fatalf("expected 5/4/1, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
}

func TestBatchResizeConvenienceFunction(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultResizeOptions()
	opts.Mode = ScalePercent
	opts.ScalePercent = 1.0

	var items []BatchItem
	for i := 0; i < 3; i++ {
		in := filepath.Join(dir, "a"+string(rune('0'+i))+".png")
		out := filepath.Join(dir, "b"+string(rune('0'+i))+".png")
		writeTestPNG(t, in, 10, 10)
		items = append(items, BatchItem{InputPath: in, OutputPath: out, Options: opts})
	}

	result, err := BatchResize(items, DefaultBatchOptions())
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 3 || result.Success != 3 || result.Failed != 0 {
		t.Fatalf("expected 3/3/0, got %+v", result)
	}
}

func TestProbeImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeTestPNG(t, in, 33, 44)

	info, err := ProbeImage(in)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 33 || info.Height != 44 {
		t.Fatalf("got %dx%d, want 33x44", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Fatalf("Format = %q, want png", info.Format)
	}
}


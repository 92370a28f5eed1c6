package kernel

import (
	"testing"

	"github.com/five82/imgresize/internal/pixelbuf"
)

func TestParseFilterRecognizesAllNames(t *testing.T) {
	cases := map[string]Filter{
		"mitchell":   Mitchell,
		"catmull-rom": CatmullRom,
		"box":        Box,
		"triangle":   Triangle,
	}
	for name, want := range cases {
		got, err := ParseFilter(name)
		if err != nil {
			t.Fatalf("ParseFilter(%q) returned error: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseFilter(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseFilterRejectsUnknownName(t *testing.T) {
	if _, err := ParseFilter("bogus"); err == nil {
		t.Fatal("expected error for unknown filter name")
	}
}

func TestResolveFilterBelowThresholdPicksMitchell(t *testing.T) {
	f := ResolveFilter(Mitchell, 1000, 1000, 500, 500) // d = 2.0
	if f != Mitchell {
		t.Errorf("got %v, want Mitchell", f)
	}
}

func TestResolveFilterAboveThresholdPicksBox(t *testing.T) {
	f := ResolveFilter(Mitchell, 3000, 3000, 500, 500) // d = 6.0
	if f != Box {
		t.Errorf("got %v, want Box", f)
	}
}

func TestResolveFilterAtThresholdPicksBox(t *testing.T) {
	f := ResolveFilter(Mitchell, 3000, 1000, 1000, 1000) // d = 3.0 exactly
	if f != Box {
		t.Errorf("got %v, want Box at d=3.0", f)
	}
}

func TestResolveFilterExplicitChoiceNeverOverridden(t *testing.T) {
	f := ResolveFilter(CatmullRom, 3000, 3000, 500, 500)
	if f != CatmullRom {
		t.Errorf("got %v, want CatmullRom preserved", f)
	}

	f2 := ResolveFilter(Triangle, 10, 10, 5, 5)
	if f2 != Triangle {
		t.Errorf("got %v, want Triangle preserved even below threshold", f2)
	}
}

func TestResizePreservesChannelCount(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		src := pixelbuf.New(20, 10, channels)
		for i := range src.Pix {
			src.Pix[i] = byte(i % 256)
		}
		out, err := Resize(src, 10, 5, Box)
		if err != nil {
			t.Fatalf("channels=%d: unexpected error: %v", channels, err)
		}
		if out.Width != 10 || out.Height != 5 {
			t.Errorf("channels=%d: got %dx%d, want 10x5", channels, out.Width, out.Height)
		}
		if out.Channels != channels {
			t.Errorf("channels=%d: output channels = %d", channels, out.Channels)
		}
		if len(out.Pix) != 10*5*channels {
			t.Errorf("channels=%d: len(Pix) = %d, want %d", channels, len(out.Pix), 10*5*channels)
		}
	}
}

func TestResizeRejectsInvalidChannelCount(t *testing.T) {
	src := pixelbuf.New(4, 4, 2)
	if _, err := Resize(src, 2, 2, Mitchell); err == nil {
		t.Fatal("expected error for unsupported channel count")
	}
}

func TestResizeDeterministic(t *testing.T) {
	src := pixelbuf.New(40, 30, 3)
	for i := range src.Pix {
		src.Pix[i] = byte((i * 37) % 256)
	}
	a, err := Resize(src, 20, 15, Mitchell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Resize(src, 20, 15, Mitchell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("length mismatch")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("non-deterministic output at byte %d: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

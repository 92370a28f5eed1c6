// Package pixelbuf defines the raw raster buffer shared by codecs and the
// resize kernel driver.
package pixelbuf

import "fmt"

// Buffer is a row-major, top-left origin, tightly packed 8-bit raster.
// Stride is always Width*Channels; there is no padding between rows.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// New allocates a zeroed buffer of the given geometry.
func New(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// FromBytes wraps an existing byte slice as a buffer without copying.
// The caller must ensure len(pix) == width*height*channels.
func FromBytes(width, height, channels int, pix []byte) (*Buffer, error) {
	want := width * height * channels
	if len(pix) != want {
		return nil, fmt.Errorf("pixelbuf: want %d bytes for %dx%dx%d, got %d", want, width, height, channels, len(pix))
	}
	return &Buffer{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.Width * b.Channels
}

// Row returns the byte slice for row y, sharing the backing array.
func (b *Buffer) Row(y int) []byte {
	stride := b.Stride()
	start := y * stride
	return b.Pix[start : start+stride]
}

// Size returns the number of bytes the buffer occupies.
func (b *Buffer) Size() int {
	return b.Width * b.Height * b.Channels
}

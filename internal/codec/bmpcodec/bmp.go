// Package bmpcodec adapts golang.org/x/image/bmp for decoding and a small
// first-party writer for encoding, since x/image/bmp exposes Decode and
// DecodeConfig but no Encode (see DESIGN.md).
package bmpcodec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/image/bmp"

	"github.com/five82/imgresize/internal/codec"
	"github.com/five82/imgresize/internal/pixelbuf"
	"github.com/five82/imgresize/internal/rasterconv"
)

// Name is the canonical format tag for BMP images.
const Name = "bmp"

// New returns the BMP codec registry entry.
func New() *codec.Codec {
	return &codec.Codec{
		Name:       Name,
		Extensions: []string{".bmp"},
		Decode:     Decode,
		Encode:     Encode,
		Probe:      Probe,
		Sniff:      Sniff,
	}
}

// Sniff reports whether header starts with the "BM" BMP signature.
func Sniff(header []byte) bool {
	return len(header) >= 2 && header[0] == 'B' && header[1] == 'M'
}

// Decode reads a BMP file into a 3-channel pixel buffer. x/image/bmp
// always decodes to an opaque color model.
func Decode(path string) (*pixelbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, err
	}
	return rasterconv.FromImage(img, 3)
}

// Probe reads just enough of the file to report its dimensions.
func Probe(path string) (codec.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Info{}, err
	}
	defer f.Close()

	cfg, err := bmp.DecodeConfig(f)
	if err != nil {
		return codec.Info{}, err
	}
	return codec.Info{Width: cfg.Width, Height: cfg.Height, Channels: 3, Format: Name}, nil
}

// Encode writes buf as an uncompressed 24-bit BGR BMP (BITMAPINFOHEADER).
// Quality is ignored: BMP here is uncompressed.
func Encode(path string, buf *pixelbuf.Buffer, quality int) error {
	if buf.Channels != 3 && buf.Channels != 4 {
		return fmt.Errorf("bmpcodec: unsupported channel count %d", buf.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	rowSize := ((buf.Width*3 + 3) / 4) * 4 // rows are padded to a 4-byte boundary
	pixelDataSize := rowSize * buf.Height
	fileSize := 14 + 40 + pixelDataSize
	const pixelDataOffset = 14 + 40

	// BITMAPFILEHEADER
	writeU16(w, 0x4D42) // "BM"
	writeU32(w, uint32(fileSize))
	writeU32(w, 0) // reserved
	writeU32(w, pixelDataOffset)

	// BITMAPINFOHEADER
	writeU32(w, 40) // header size
	writeU32(w, uint32(buf.Width))
	writeU32(w, uint32(buf.Height))
	writeU16(w, 1)  // planes
	writeU16(w, 24) // bits per pixel
	writeU32(w, 0)  // no compression
	writeU32(w, uint32(pixelDataSize))
	writeU32(w, 2835) // ~72 DPI, horizontal
	writeU32(w, 2835) // ~72 DPI, vertical
	writeU32(w, 0)    // colors in palette
	writeU32(w, 0)    // important colors

	// Pixel data, bottom-up, BGR order, rows padded to 4 bytes.
	pad := make([]byte, rowSize-buf.Width*3)
	row := make([]byte, buf.Width*3)
	for y := buf.Height - 1; y >= 0; y-- {
		src := buf.Row(y)
		for x := 0; x < buf.Width; x++ {
			si := x * buf.Channels
			row[x*3+0] = src[si+2] // B
			row[x*3+1] = src[si+1] // G
			row[x*3+2] = src[si+0] // R
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
		if len(pad) > 0 {
			if _, err := w.Write(pad); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}

func writeU16(w *bufio.Writer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeU32(w *bufio.Writer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

// Package webpcodec adapts golang.org/x/image/webp for decoding. No
// pure-Go WEBP encoder exists anywhere in the retrieved example pack or
// its transitive dependencies, so encode is a minimal first-party lossless
// (VP8L) writer: no backward-reference matches, no color cache, no
// prediction transform — every symbol in every per-channel Huffman group
// uses a uniform 8-bit code, which keeps the writer simple at the cost of
// compression ratio (see DESIGN.md).
package webpcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/webp"

	"github.com/five82/imgresize/internal/codec"
	"github.com/five82/imgresize/internal/pixelbuf"
	"github.com/five82/imgresize/internal/rasterconv"
)

// Name is the canonical format tag for WEBP images.
const Name = "webp"

// New returns the WEBP codec registry entry.
func New() *codec.Codec {
	return &codec.Codec{
		Name:       Name,
		Extensions: []string{".webp"},
		Decode:     Decode,
		Encode:     Encode,
		Probe:      Probe,
		Sniff:      Sniff,
	}
}

// Sniff reports whether header matches the RIFF....WEBP container.
func Sniff(header []byte) bool {
	return len(header) >= 12 &&
		header[0] == 'R' && header[1] == 'I' && header[2] == 'F' && header[3] == 'F' &&
		header[8] == 'W' && header[9] == 'E' && header[10] == 'B' && header[11] == 'P'
}

// Decode reads a WEBP file into a pixel buffer, 4-channel if the source
// has alpha, 3-channel otherwise.
func Decode(path string) (*pixelbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return nil, err
	}
	channels := 3
	if imageHasAlpha(img) {
		channels = 4
	}
	return rasterconv.FromImage(img, channels)
}

// Probe reads just enough of the file to report its dimensions.
func Probe(path string) (codec.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Info{}, err
	}
	defer f.Close()

	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		return codec.Info{}, err
	}
	channels := 3
	if colorModelHasAlpha(cfg.ColorModel) {
		channels = 4
	}
	return codec.Info{Width: cfg.Width, Height: cfg.Height, Channels: channels, Format: Name}, nil
}

// Encode writes buf as a lossless WEBP (VP8L) file. Quality is ignored:
// this writer always produces lossless output.
func Encode(path string, buf *pixelbuf.Buffer, quality int) error {
	if buf.Channels != 3 && buf.Channels != 4 {
		return fmt.Errorf("webpcodec: unsupported channel count %d", buf.Channels)
	}

	payload := encodeVP8L(buf)
	riff := buildRIFF(payload)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(riff)
	return err
}

func buildRIFF(vp8l []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	chunkPadded := len(vp8l)
	if chunkPadded%2 != 0 {
		chunkPadded++
	}
	var sizeField [4]byte
	binary.LittleEndian.PutUint32(sizeField[:], uint32(4+8+chunkPadded)) // "WEBP" + chunk header + data
	buf.Write(sizeField[:])
	buf.WriteString("WEBP")
	buf.WriteString("VP8L")
	var chunkSize [4]byte
	binary.LittleEndian.PutUint32(chunkSize[:], uint32(len(vp8l)))
	buf.Write(chunkSize[:])
	buf.Write(vp8l)
	if len(vp8l)%2 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func colorModelHasAlpha(m color.Model) bool {
	switch m {
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model:
		return true
	default:
		return false
	}
}

// imageHasAlpha reports whether a decoded WEBP carries alpha. Lossy images
// with an alpha plane decode to *image.NYCbCrA; lossless images always
// decode to *image.NRGBA, so their alpha bytes are inspected.
func imageHasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NYCbCrA:
		return true
	case *image.NRGBA:
		for i := 3; i < len(m.Pix); i += 4 {
			if m.Pix[i] != 0xff {
				return true
			}
		}
		return false
	}
	return colorModelHasAlpha(img.ColorModel())
}

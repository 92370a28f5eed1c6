// Package codec defines the codec registry: a closed, enumerated mapping
// from canonical format name / file extension to a (decode, encode, probe)
// tuple. Per spec §4.2 and §9, the codec set is a tagged variant, not open
// polymorphism — each entry is a struct literal naming its format.
package codec

import (
	"fmt"
	"os"
	"strings"

	"github.com/five82/imgresize/internal/pixelbuf"
)

// Info describes a probed image without fully decoding it.
type Info struct {
	Width    int
	Height   int
	Channels int
	Format   string
}

// DecodeFunc reads an entire image file into a pixel buffer.
type DecodeFunc func(path string) (*pixelbuf.Buffer, error)

// EncodeFunc writes a pixel buffer to a file. Quality is 1-100 and is
// interpreted only by lossy encoders; others ignore it silently.
type EncodeFunc func(path string, buf *pixelbuf.Buffer, quality int) error

// ProbeFunc returns metadata about an image without decoding pixel data.
type ProbeFunc func(path string) (Info, error)

// SniffFunc reports whether a leading byte sequence matches this format's
// magic bytes.
type SniffFunc func(header []byte) bool

// Codec is one entry in the registry: a format's decode/encode/probe
// implementations plus its canonical name.
type Codec struct {
	Name       string
	Extensions []string
	Decode     DecodeFunc
	Encode     EncodeFunc
	Probe      ProbeFunc
	Sniff      SniffFunc
}

// Registry is an immutable-after-construction extension-to-codec table.
type Registry struct {
	byName    map[string]*Codec
	byExt     map[string]*Codec
	sniffList []*Codec
}

// NewRegistry builds the registry from a fixed set of codecs. The registry
// is never mutated after construction.
func NewRegistry(codecs ...*Codec) *Registry {
	r := &Registry{
		byName: make(map[string]*Codec, len(codecs)),
		byExt:  make(map[string]*Codec, len(codecs)*2),
	}
	for _, c := range codecs {
		r.byName[c.Name] = c
		for _, ext := range c.Extensions {
			r.byExt[strings.ToLower(ext)] = c
		}
		if c.Sniff != nil {
			r.sniffList = append(r.sniffList, c)
		}
	}
	return r
}

// ForPath resolves the codec for a file path by extension, with a
// magic-byte sniff that overrides a misleading extension only when the
// sniff actually succeeds (per spec §4.2); otherwise the extension
// governs. Returns an error if no codec is registered for the extension.
func (r *Registry) ForPath(path string) (*Codec, error) {
	ext := strings.ToLower(extOf(path))
	extCodec, extOK := r.byExt[ext]
	if !extOK {
		return nil, fmt.Errorf("codec: unsupported format for %q", path)
	}

	header, err := readHeader(path, 16)
	if err == nil {
		for _, c := range r.sniffList {
			if c.Sniff(header) {
				return c, nil
			}
		}
	}

	return extCodec, nil
}

// ForExtension resolves the codec purely by extension, used when choosing
// an output codec (the output format is inferred from the output path's
// extension without reading any bytes, since the file may not exist yet).
func (r *Registry) ForExtension(path string) (*Codec, error) {
	ext := strings.ToLower(extOf(path))
	c, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("codec: unsupported format for %q", path)
	}
	return c, nil
}

// ByName resolves a codec by its canonical format name (e.g. "jpg").
func (r *Registry) ByName(name string) (*Codec, bool) {
	c, ok := r.byName[strings.ToLower(name)]
	return c, ok
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

func readHeader(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	read, err := f.Read(buf)
	if err != nil && read == 0 {
		return nil, err
	}
	return buf[:read], nil
}

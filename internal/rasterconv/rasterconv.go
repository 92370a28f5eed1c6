// Package rasterconv converts between the core's pixelbuf.Buffer and the
// standard library's image.Image, the common currency codec adapters and
// the resize kernel driver exchange with third-party image libraries.
package rasterconv

import (
	"fmt"
	"image"

	"github.com/five82/imgresize/internal/pixelbuf"
)

// ToImage converts a Buffer into a concrete image.Image. Channel counts
// of 1, 3, and 4 are supported, matching the pixel layouts the resize
// kernel driver selects between.
func ToImage(buf *pixelbuf.Buffer) (image.Image, error) {
	rect := image.Rect(0, 0, buf.Width, buf.Height)
	switch buf.Channels {
	case 1:
		img := &image.Gray{Pix: buf.Pix, Stride: buf.Stride(), Rect: rect}
		return img, nil
	case 3:
		// Expand to NRGBA (opaque alpha) since the standard library has no
		// tightly-packed 3-channel image type; callers extract back to
		// 3-channel via FromImage.
		rgba := image.NewNRGBA(rect)
		src := buf.Pix
		dst := rgba.Pix
		n := buf.Width * buf.Height
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*3+0]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+2]
			dst[i*4+3] = 0xff
		}
		return rgba, nil
	case 4:
		img := &image.NRGBA{Pix: buf.Pix, Stride: buf.Stride(), Rect: rect}
		return img, nil
	default:
		return nil, fmt.Errorf("rasterconv: unsupported channel count %d", buf.Channels)
	}
}

// FromImage converts an image.Image back into a tightly packed Buffer
// with the requested channel count (1, 3, or 4).
func FromImage(img image.Image, channels int) (*pixelbuf.Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := pixelbuf.New(w, h, channels)

	// Fast path: already the exact concrete type we want.
	switch channels {
	case 1:
		if g, ok := img.(*image.Gray); ok && bounds.Min == (image.Point{}) {
			copyPlanar(out.Pix, g.Pix, g.Stride, w, h, 1)
			return out, nil
		}
	case 4:
		if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
			copyPlanar(out.Pix, n.Pix, n.Stride, w, h, 4)
			return out, nil
		}
	}

	// Generic path via At(), used when the concrete type doesn't match or
	// the source has a non-zero origin.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*w + x) * channels
			switch channels {
			case 1:
				out.Pix[y*out.Stride()+x] = byte(grayFromRGB(r, g, b) >> 8)
			case 3:
				out.Pix[off+0] = byte(r >> 8)
				out.Pix[off+1] = byte(g >> 8)
				out.Pix[off+2] = byte(b >> 8)
			case 4:
				out.Pix[off+0] = byte(r >> 8)
				out.Pix[off+1] = byte(g >> 8)
				out.Pix[off+2] = byte(b >> 8)
				out.Pix[off+3] = byte(a >> 8)
			}
		}
	}
	return out, nil
}

// FromImageInto fills a pre-allocated Buffer (sized to img's bounds and
// the buffer's own channel count) in place, letting callers supply a
// pooled buffer instead of allocating a fresh one.
func FromImageInto(dst *pixelbuf.Buffer, img image.Image) error {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if dst.Width != w || dst.Height != h {
		return fmt.Errorf("rasterconv: destination is %dx%d, image is %dx%d", dst.Width, dst.Height, w, h)
	}

	switch dst.Channels {
	case 1:
		if g, ok := img.(*image.Gray); ok && bounds.Min == (image.Point{}) {
			copyPlanar(dst.Pix, g.Pix, g.Stride, w, h, 1)
			return nil
		}
	case 4:
		if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
			copyPlanar(dst.Pix, n.Pix, n.Stride, w, h, 4)
			return nil
		}
	}

	channels := dst.Channels
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*w + x) * channels
			switch channels {
			case 1:
				dst.Pix[y*dst.Stride()+x] = byte(grayFromRGB(r, g, b) >> 8)
			case 3:
				dst.Pix[off+0] = byte(r >> 8)
				dst.Pix[off+1] = byte(g >> 8)
				dst.Pix[off+2] = byte(b >> 8)
			case 4:
				dst.Pix[off+0] = byte(r >> 8)
				dst.Pix[off+1] = byte(g >> 8)
				dst.Pix[off+2] = byte(b >> 8)
				dst.Pix[off+3] = byte(a >> 8)
			default:
				return fmt.Errorf("rasterconv: unsupported channel count %d", channels)
			}
		}
	}
	return nil
}

func copyPlanar(dst, src []byte, srcStride, w, h, channels int) {
	dstStride := w * channels
	rowBytes := dstStride
	for y := 0; y < h; y++ {
		copy(dst[y*dstStride:y*dstStride+rowBytes], src[y*srcStride:y*srcStride+rowBytes])
	}
}

// grayFromRGB applies the standard library's luma weighting (same as
// image/color.Gray16Model) so generic-path grayscale conversion matches
// what image.Gray would have stored natively.
func grayFromRGB(r, g, b uint32) uint32 {
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return y
}

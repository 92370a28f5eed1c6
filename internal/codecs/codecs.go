// Package codecs assembles the default codec.Registry from every codec
// adapter this module ships. It exists as a separate package from
// internal/codec because each adapter (jpegcodec, pngcodec, bmpcodec,
// webpcodec) imports internal/codec to build a *codec.Codec; a Default
// function living in package codec itself would import those adapters
// right back, an import cycle the compiler rejects.
package codecs

import (
	"github.com/five82/imgresize/internal/codec"
	"github.com/five82/imgresize/internal/codec/bmpcodec"
	"github.com/five82/imgresize/internal/codec/jpegcodec"
	"github.com/five82/imgresize/internal/codec/pngcodec"
	"github.com/five82/imgresize/internal/codec/webpcodec"
)

// Default builds the registry of every codec this module ships: jpeg,
// png, bmp, and webp.
func Default() *codec.Registry {
	return codec.NewRegistry(
		jpegcodec.New(),
		pngcodec.New(),
		bmpcodec.New(),
		webpcodec.New(),
	)
}

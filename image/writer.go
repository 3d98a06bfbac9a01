package image

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func paletted(m image.Image) *image.Paletted {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= 256 {
		return pm
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 256), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Encode writes m to w in the format matching the file extension format,
// given with or without the leading dot.
func Encode(w io.Writer, m image.Image, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return png.Encode(w, m)
	case "gif":
		return gif.Encode(w, paletted(m), nil)
	case "jpg", "jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		return bmp.Encode(w, m)
	case "tif", "tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	return errUnsupported
}

// Save writes m to file, the format is chosen by its extension.
func Save(m image.Image, file string) error {
	if !IsImage(file) {
		return errUnsupported
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := Encode(f, m, ext(file)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

/*
Package quant maps the pixels of a decoded image to palette indices.

At 1 bit per color pixels are reduced to on or off, optionally dithered. At 2
and 4 bits per color the nearest color of the palette is used and at 8 bits
per color the red, green and blue components are truncated into a single
GGGRRRBB byte. Index 0 is produced for the transparency color; at 1 and 8
bits per color it also stands for black.
*/
package quant

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bodgit/msximg/palette"
)

// Quantizer holds the parameters of a quantization. It holds no state
// between calls and is safe for concurrent use once built.
type Quantizer struct {
	BPC int
	// Palette is used at 2 and 4 bits per color
	Palette color.Palette
	// Transparent enables the transparency color Key
	Transparent bool
	Key         color.NRGBA
	// Dither is only honoured at 1 bit per color
	Dither Dither

	colors []colorful.Color
}

func toColorful(c color.Color) colorful.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255.0,
		G: float64(n.G) / 255.0,
		B: float64(n.B) / 255.0,
	}
}

// New returns a Quantizer for bpc bits per color.
func New(bpc int, p color.Palette, transparent bool, key color.NRGBA, dither Dither) *Quantizer {
	q := &Quantizer{
		BPC:         bpc,
		Palette:     p,
		Transparent: transparent,
		Key:         key,
		Dither:      dither,
	}
	for _, c := range p {
		q.colors = append(q.colors, toColorful(c))
	}
	return q
}

func (q *Quantizer) keyed(c color.NRGBA) bool {
	return q.Transparent && c.R == q.Key.R && c.G == q.Key.G && c.B == q.Key.B
}

func (q *Quantizer) nearest(c color.NRGBA) uint8 {
	if len(q.colors) < 2 {
		return 0
	}

	target := toColorful(c)
	best, bestDist := 1, target.DistanceRgb(q.colors[1])
	for i := 2; i < len(q.colors); i++ {
		if d := target.DistanceRgb(q.colors[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

func truncate(c color.NRGBA) uint8 {
	return c.G&0xe0 | c.R>>5<<2 | c.B>>6
}

func (q *Quantizer) mono(c color.NRGBA, x, y int) uint8 {
	if q.Dither.Ordered() {
		m := q.Dither.Matrix()
		n := len(m)
		if above(palette.Luminance(c), m[mod(y, n)][mod(x, n)], n) {
			return 1
		}
		return 0
	}
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return 0
	}
	return 1
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// Index returns the palette index of c found at (x, y). Coordinates only
// matter for ordered dithering. Floyd & Steinberg dithering depends on the
// neighbouring pixels so Index behaves as if no dithering was selected; use
// Quantize instead.
func (q *Quantizer) Index(c color.Color, x, y int) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if q.keyed(n) {
		return 0
	}

	switch q.BPC {
	case 1:
		return q.mono(n, x, y)
	case 2, 4:
		return q.nearest(n)
	}
	return truncate(n)
}

// ColorPalette returns the palette matching the indices returned by Index.
func (q *Quantizer) ColorPalette() color.Palette {
	switch q.BPC {
	case 1:
		return palette.BuiltIn(1)
	case 2, 4:
		return q.Palette
	}
	return palette.GRB332()
}

// Quantize converts every pixel of m and returns the result as an
// image.Paletted with the same bounds.
func (q *Quantizer) Quantize(m image.Image) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(b, q.ColorPalette())

	if q.BPC == 1 && q.Dither == Floyd {
		q.diffuse(m, pm)
		return pm
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pm.SetColorIndex(x, y, q.Index(m.At(x, y), x, y))
		}
	}
	return pm
}

func (q *Quantizer) diffuse(m image.Image, pm *image.Paletted) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	luma := make([]float64, w*h)
	skip := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			skip[y*w+x] = q.keyed(c)
			luma[y*w+x] = float64(palette.Luminance(c))
		}
	}

	for i, on := range diffuse(luma, skip, w, h) {
		if on {
			pm.SetColorIndex(b.Min.X+i%w, b.Min.Y+i/w, 1)
		}
	}
}

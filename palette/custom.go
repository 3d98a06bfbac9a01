package palette

import (
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
)

// Collect the pixels of r that aren't the transparency key into a single
// row so that they alone drive the color reduction
func opaquePixels(m image.Image, r image.Rectangle, key *color.NRGBA) *image.NRGBA {
	if r.Intersect(m.Bounds()).Empty() {
		return image.NewNRGBA(image.Rectangle{})
	}

	g := gift.New(gift.Crop(r))
	region := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(region, m)

	b := region.Bounds()
	pix := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := region.NRGBAAt(x, y)
			if key != nil && c.R == key.R && c.G == key.G && c.B == key.B {
				continue
			}
			pix = append(pix, c)
		}
	}

	row := image.NewNRGBA(image.Rect(0, 0, len(pix), 1))
	for x, c := range pix {
		row.SetNRGBA(x, 0, c)
	}
	return row
}

// Custom generates a palette of count colors plus the transparent entry 0
// from the area r of m. Pixels matching key, if given, are ignored. The
// result only depends on the pixels so the same region always yields the
// same palette in the same order.
func Custom(m image.Image, r image.Rectangle, count int, key *color.NRGBA) color.Palette {
	p := make(color.Palette, 0, count+1)
	p = append(p, MSX1[0])
	if count <= 0 {
		return p
	}

	colors := make([]color.NRGBA, 0, count)
	if row := opaquePixels(m, r, key); row.Bounds().Dx() > 0 {
		q := quantize.MedianCutQuantizer{}
		for _, c := range q.Quantize(make(color.Palette, 0, count), row) {
			colors = append(colors, Snap(c))
		}
	}

	// Median cut gathers colors through a map so impose an order
	sort.Slice(colors, func(i, j int) bool {
		li, lj := Luminance(colors[i]), Luminance(colors[j])
		if li != lj {
			return li < lj
		}
		ci, cj := colors[i], colors[j]
		if ci.R != cj.R {
			return ci.R < cj.R
		}
		if ci.G != cj.G {
			return ci.G < cj.G
		}
		return ci.B < cj.B
	})

	for _, c := range colors {
		if len(p) > count {
			break
		}
		p = append(p, c)
	}
	for len(p) <= count {
		p = append(p, color.NRGBA{0x00, 0x00, 0x00, 0xff})
	}
	return p
}

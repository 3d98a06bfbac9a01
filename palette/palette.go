/*
Package palette implements the color tables used when quantizing a sprite
sheet.

Entry 0 of every palette is reserved for transparency. Palettes are either
built in, matching the fixed colors of the target hardware, or generated
from the image itself and written out in the MSX2 palette register format
where each color is stored as a packed 9-bit value.
*/
package palette

import (
	"errors"
	"image/color"
	"strings"
)

// Source selects where the palette used at 2 and 4 bits per color comes
// from.
type Source int

const (
	// BuiltInSource uses the fixed MSX1 palette
	BuiltInSource Source = iota
	// CustomSource generates a palette from the image
	CustomSource
)

var errUnknownSource = errors.New("palette: unknown palette source")

// ParseSource returns the Source matching name.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(name) {
	case "msx1":
		return BuiltInSource, nil
	case "custom":
		return CustomSource, nil
	}
	return BuiltInSource, errUnknownSource
}

func (s Source) String() string {
	if s == CustomSource {
		return "custom"
	}
	return "msx1"
}

// MaxCount returns the maximum number of generated colors available at bpc
// bits per color. Entry 0 is always transparent so it is not counted.
func MaxCount(bpc int) int {
	switch bpc {
	case 2, 4:
		return 1<<uint(bpc) - 1
	}
	return 0
}

// DefaultCount returns the number of custom colors used when none is given.
func DefaultCount(bpc int) int {
	return MaxCount(bpc)
}

// MSX1 is the palette of the TMS9918 video display processor.
var MSX1 = color.Palette{
	color.NRGBA{0x00, 0x00, 0x00, 0x00}, // transparent
	color.NRGBA{0x00, 0x00, 0x00, 0xff}, // black
	color.NRGBA{0x21, 0xc8, 0x42, 0xff}, // medium green
	color.NRGBA{0x5e, 0xdc, 0x78, 0xff}, // light green
	color.NRGBA{0x54, 0x55, 0xed, 0xff}, // dark blue
	color.NRGBA{0x7d, 0x76, 0xfc, 0xff}, // light blue
	color.NRGBA{0xd4, 0x52, 0x4d, 0xff}, // dark red
	color.NRGBA{0x42, 0xeb, 0xf5, 0xff}, // cyan
	color.NRGBA{0xfc, 0x55, 0x54, 0xff}, // medium red
	color.NRGBA{0xff, 0x79, 0x78, 0xff}, // light red
	color.NRGBA{0xd4, 0xc1, 0x54, 0xff}, // dark yellow
	color.NRGBA{0xe6, 0xce, 0x80, 0xff}, // light yellow
	color.NRGBA{0x21, 0xb0, 0x3b, 0xff}, // dark green
	color.NRGBA{0xc9, 0x5b, 0xba, 0xff}, // magenta
	color.NRGBA{0xcc, 0xcc, 0xcc, 0xff}, // gray
	color.NRGBA{0xff, 0xff, 0xff, 0xff}, // white
}

var grb332 = makeGRB332()

// Packed as GGGRRRBB
func makeGRB332() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		g := i >> 5 & 0x07
		r := i >> 2 & 0x07
		b := i & 0x03
		p[i] = color.NRGBA{uint8(r * 0xff / 7), uint8(g * 0xff / 7), uint8(b * 0xff / 3), 0xff}
	}
	return p
}

// GRB332 returns the 256 colors addressable at 8 bits per color.
func GRB332() color.Palette {
	return grb332
}

// BuiltIn returns the fixed palette used at bpc bits per color.
func BuiltIn(bpc int) color.Palette {
	switch bpc {
	case 1:
		return color.Palette{MSX1[0], MSX1[15]}
	case 2, 4:
		return MSX1[:1<<uint(bpc)]
	}
	return GRB332()
}

// Encode9 returns the two bytes programmed into an MSX2 palette register
// for c, laid out as 0RRR0BBB and 00000GGG.
func Encode9(c color.Color) (byte, byte) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R>>5<<4 | n.B>>5, n.G >> 5
}

// Snap rounds c to the nearest color an MSX2 palette register can hold.
func Snap(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.NRGBA{snap(n.R), snap(n.G), snap(n.B), 0xff}
}

func snap(v uint8) uint8 {
	return uint8((uint32(v)*7 + 0x7f) / 0xff * 0xff / 7)
}

// Luminance returns the perceived brightness of c in the range 0-255.
func Luminance(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (299*int(n.R) + 587*int(n.G) + 114*int(n.B)) / 1000
}

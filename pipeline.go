package msximg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bodgit/msximg/compressor"
	"github.com/bodgit/msximg/palette"
	"github.com/bodgit/msximg/quant"
	"github.com/bodgit/msximg/sink"
	"github.com/bodgit/msximg/tile"
)

// Plan is a quantized image ready to be exported. It isn't modified by Run so
// a Plan can be exported several times concurrently.
type Plan struct {
	Params Parameters
	// Indexed holds the palette index of every pixel of the input image
	Indexed *image.Paletted
	// Rects are the areas of each block, row by row
	Rects     []image.Rectangle
	Copyright []string
}

func (p *Parameters) key() *color.NRGBA {
	if !p.Transparent {
		return nil
	}
	k := p.Key
	return &k
}

// custom reports whether a generated palette is written with the table.
func (p *Parameters) custom() bool {
	return p.Palette == palette.CustomSource && (p.BPC == 2 || p.BPC == 4)
}

// NewPlan quantizes m according to params, which must have been validated.
func NewPlan(params Parameters, m image.Image, copyright []string) *Plan {
	rects := tile.Layout(m.Bounds(), params.Pos, params.Size, params.Gap, params.Num)

	pal := palette.BuiltIn(params.BPC)
	if params.custom() {
		pal = palette.Custom(m, tile.Region(m.Bounds(), rects), params.PaletteCount, params.key())
	}

	q := quant.New(params.BPC, pal, params.Transparent, params.Key, params.Dither)

	return &Plan{
		Params:    params,
		Indexed:   q.Quantize(m),
		Rects:     rects,
		Copyright: copyright,
	}
}

// BlockSize returns the size of each block.
func (p *Plan) BlockSize() image.Point {
	if len(p.Rects) == 0 {
		return image.Point{}
	}
	return p.Rects[0].Size()
}

// Compatible checks whether c can encode the blocks of p.
func (p *Plan) Compatible(c compressor.Compressor) error {
	return compressor.Compatible(c, p.Params.BPC, p.Params.Transparent, p.BlockSize())
}

func (p *Plan) header(c compressor.Compressor) sink.Header {
	return sink.Header{
		Version:     Version,
		Input:       p.Params.Input,
		Title:       p.Params.Title,
		Copyright:   p.Copyright,
		Pos:         p.Params.Pos,
		Size:        p.BlockSize(),
		Gap:         p.Params.Gap,
		Num:         p.Params.Num,
		BPC:         p.Params.BPC,
		Transparent: p.Params.Transparent,
		Key:         p.Params.Key,
		Compressor:  c.String(),
		SkipEmpty:   p.Params.SkipEmpty,
	}
}

func (p *Plan) blocks() []*tile.Block {
	blocks := make([]*tile.Block, 0, len(p.Rects))
	for i, r := range p.Rects {
		b := tile.Extract(p.Indexed, r, i, p.Params.BPC, p.Params.Transparent)
		if p.Params.SkipEmpty && b.Empty() {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255.0,
		G: float64(n.G) / 255.0,
		B: float64(n.B) / 255.0,
	}.Hex()
}

func (p *Plan) writePalette(s sink.Sink) {
	pal := p.Indexed.Palette
	s.WriteTableBegin(p.Params.Name+"_palette", "Custom palette (MSX2 format)")
	for i := 1; i < len(pal); i++ {
		a, b := palette.Encode9(pal[i])
		s.Write2BytesLine(a, b, fmt.Sprintf("[%d] %s", i, hex(pal[i])))
	}
	s.WriteTableEnd("")
}

// Run writes the table of every block encoded with c to s.
func (p *Plan) Run(c compressor.Compressor, s sink.Sink) error {
	s.WriteHeader(p.header(c))

	if p.Params.custom() {
		p.writePalette(s)
	}

	blocks := p.blocks()

	start := s.TotalBytes()
	s.WriteTableBegin(p.Params.Name, "Data table")

	if p.Params.Head {
		size := p.BlockSize()
		s.Write2WordsLine(uint16(size.X), uint16(size.Y), "Block width and height")
		s.Write2BytesLine(byte(p.Params.BPC), byte(c), "Bits per color, compressor")
		s.Write1WordLine(uint16(len(blocks)), "Block count")
	}

	if f := p.Params.Font; f != nil {
		s.Write4BytesLine(byte(f.Size.X), byte(f.Size.Y), f.First, f.Last, "Font width, height, first and last character")
	}

	offsets := make([]int, 0, len(blocks))
	for _, b := range blocks {
		offsets = append(offsets, s.TotalBytes()-start)
		s.WriteSpriteHeader(b.Index)
		if _, err := compressor.Encode(c, b, s); err != nil {
			return fmt.Errorf("block %d: %w", b.Index, err)
		}
	}

	size := s.TotalBytes() - start
	s.WriteTableEnd(fmt.Sprintf("Total size: %d bytes", size))

	if p.Params.Index {
		s.WriteTableBegin(p.Params.Name+"_index", "Sprites index")
		for i, o := range offsets {
			s.Write1WordLine(uint16(o), fmt.Sprintf("Sprite[%d]", blocks[i].Index))
		}
		s.WriteTableEnd("")
	}

	if p.Params.Define {
		name := strings.ToUpper(p.Params.Name)
		s.WriteDefine(name+"_COUNT", len(blocks))
		s.WriteDefine(name+"_SIZE", size)
	}

	return nil
}

// Measure returns the number of bytes Run writes using c.
func (p *Plan) Measure(c compressor.Compressor) (int, error) {
	s := sink.NewCounter()
	if err := p.Run(c, s); err != nil {
		return 0, err
	}
	return s.TotalBytes(), nil
}

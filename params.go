package msximg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/msximg/compressor"
	msximage "github.com/bodgit/msximg/image"
	"github.com/bodgit/msximg/palette"
	"github.com/bodgit/msximg/quant"
	"github.com/bodgit/msximg/sink"
)

// Selection chooses how the compressor is picked.
type Selection int

const (
	// Explicit uses Parameters.Compressor, replaced by None if it
	// can't be used
	Explicit Selection = iota
	// Automatic picks a compressor from the block size, transparency
	// and number of bits per color
	Automatic
	// Exhaustive tries every compatible compressor and keeps the one
	// producing the least data
	Exhaustive
)

var (
	errNoInput   = errors.New("msximg: input file required")
	errNoOutput  = errors.New("msximg: output file required when the format is auto")
	errExtension = errors.New("msximg: unrecognised output file extension")
	errBPC       = errors.New("msximg: only 1, 2, 4 or 8 bits per color are supported")
	errCopyright = errors.New("msximg: copyright file not found")
	errNoBlocks  = errors.New("msximg: no block to export")
	errNoName    = errors.New("msximg: table name required")
)

// Font describes the glyphs of a font sheet.
type Font struct {
	Size        image.Point
	First, Last byte
}

// Parameters controls a conversion. They are validated once with Validate and
// not modified afterwards.
type Parameters struct {
	Input  string
	Output string
	Format sink.Format
	// Name is the name of the generated table
	Name string

	// Pos is where the first block is read from, each following block
	// is Size plus Gap further away. A zero Size component exports the
	// whole image instead
	Pos, Size, Gap image.Point
	// Num is the number of blocks in columns and rows
	Num image.Point

	BPC         int
	Transparent bool
	Key         color.NRGBA

	Palette palette.Source
	// PaletteCount is the number of colors of a custom palette, -1
	// selects the default for BPC
	PaletteCount int

	Selection  Selection
	Compressor compressor.Compressor
	Dither     quant.Dither
	Data       sink.DataFormat

	SkipEmpty bool
	// Index adds a table of offsets to each sprite
	Index bool
	// Copyright is a text file copied into the output, if set
	Copyright string
	// Head adds a record describing the table ahead of the sprites
	Head bool
	// Font adds a font description record, if set
	Font   *Font
	Define bool
	Title  bool
}

// DefaultParameters returns the default parameters for input.
func DefaultParameters(input string) Parameters {
	return Parameters{
		Input:        input,
		Name:         "table",
		Num:          image.Pt(1, 1),
		BPC:          8,
		Palette:      palette.BuiltInSource,
		PaletteCount: -1,
		Compressor:   compressor.None,
		Data:         sink.Hexa,
		Title:        true,
	}
}

// Passthrough reports whether the input image is converted to another
// image format instead of being exported as a table.
func (p *Parameters) Passthrough() bool {
	return p.Format == sink.Auto && msximage.IsImage(p.Output)
}

func warn(logger *log.Logger, format string, v ...interface{}) {
	logger.Printf("warning: "+format, v...)
}

// Validate checks p, resolving the output path and format, and corrects any
// setting that can't apply.
func (p *Parameters) Validate(logger *log.Logger) error {
	if p.Input == "" {
		return errNoInput
	}

	if p.Output == "" {
		if p.Format == sink.Auto {
			return errNoOutput
		}
		p.Output = strings.TrimSuffix(p.Input, filepath.Ext(p.Input)) + p.Format.Ext()
	}

	if p.Format == sink.Auto {
		if f, ok := sink.FormatFor(p.Output); ok {
			p.Format = f
		} else if !msximage.IsImage(p.Output) {
			return errExtension
		}
	}

	switch p.BPC {
	case 1, 2, 4, 8:
	default:
		return errBPC
	}

	if p.Copyright != "" {
		if _, err := os.Stat(p.Copyright); err != nil {
			return fmt.Errorf("%w: %s", errCopyright, p.Copyright)
		}
	}

	if p.Name == "" {
		return errNoName
	}

	if p.Num.X < 1 || p.Num.Y < 1 {
		return errNoBlocks
	}

	if p.Size.X == 0 || p.Size.Y == 0 {
		warn(logger, "block width or height is 0, the whole image will be exported")
	}

	if p.PaletteCount < 0 {
		p.PaletteCount = palette.DefaultCount(p.BPC)
	}
	if max := palette.MaxCount(p.BPC); p.PaletteCount > max {
		if max > 0 {
			warn(logger, "%d colors palette requested, clamped to %d at %d bits per color", p.PaletteCount, max, p.BPC)
		}
		p.PaletteCount = max
	}

	if p.Palette == palette.CustomSource && p.BPC != 2 && p.BPC != 4 {
		warn(logger, "custom palette only used at 2 or 4 bits per color")
	}

	if p.Dither != quant.None && p.BPC != 1 {
		warn(logger, "dithering only applies at 1 bit per color, %s ignored", p.Dither)
		p.Dither = quant.None
	}

	if p.SkipEmpty && !p.Transparent {
		warn(logger, "skipping empty blocks requires a transparency color")
		p.SkipEmpty = false
	}

	return nil
}

// fingerprint identifies the output produced from the same input image.
// The output path only decides where it is written.
func (p Parameters) fingerprint(copyright []string) string {
	font := ""
	if p.Font != nil {
		font = fmt.Sprintf("%+v", *p.Font)
	}
	p.Output, p.Font = "", nil
	return fmt.Sprintf("%+v|%s|%s", p, font, strings.Join(copyright, "\n"))
}

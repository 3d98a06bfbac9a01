package msximg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/msximg/compressor"
	msximage "github.com/bodgit/msximg/image"
	"github.com/bodgit/msximg/palette"
	"github.com/bodgit/msximg/quant"
	"github.com/bodgit/msximg/sink"
)

var magenta = color.NRGBA{0xff, 0x00, 0xff, 0xff}

// sheet returns 4 by 4 blocks of 16x16 pixels, each with an 8x8 square of
// one MSX1 color in the middle, except block 5 which is empty.
func sheet() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			m.SetNRGBA(x, y, magenta)
		}
	}

	for i := 0; i < 16; i++ {
		if i == 5 {
			continue
		}
		c := palette.MSX1[i%15+1]
		ox, oy := i%4*16+4, i/4*16+4
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				m.Set(ox+x, oy+y, c)
			}
		}
	}
	return m
}

func logger() (*log.Logger, *bytes.Buffer) {
	b := new(bytes.Buffer)
	return log.New(b, "", 0), b
}

func sheetParameters() Parameters {
	p := DefaultParameters("sheet.png")
	p.Output = "sheet.h"
	p.Size = image.Pt(16, 16)
	p.Num = image.Pt(4, 4)
	p.BPC = 4
	p.Transparent = true
	p.Key = magenta
	return p
}

func TestValidate(t *testing.T) {
	tables := []struct {
		name   string
		modify func(*Parameters)
		err    error
	}{
		{"no input", func(p *Parameters) { p.Input = "" }, errNoInput},
		{"no output", func(p *Parameters) { p.Output = "" }, errNoOutput},
		{"bad extension", func(p *Parameters) { p.Output = "sheet.pas" }, errExtension},
		{"bad bpc", func(p *Parameters) { p.BPC = 3 }, errBPC},
		{"no name", func(p *Parameters) { p.Name = "" }, errNoName},
		{"no blocks", func(p *Parameters) { p.Num = image.Pt(0, 4) }, errNoBlocks},
		{"valid", func(p *Parameters) {}, nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			l, _ := logger()
			p := sheetParameters()
			table.modify(&p)
			assert.Equal(t, table.err, p.Validate(l))
		})
	}
}

func TestValidateCopyright(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.Copyright = filepath.Join(os.TempDir(), "msximg-missing-copyright.txt")

	err := p.Validate(l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCopyright))
}

func TestValidateOutput(t *testing.T) {
	l, _ := logger()

	p := sheetParameters()
	p.Input = filepath.Join("sprites", "sheet.png")
	p.Output = ""
	p.Format = sink.Asm
	require.NoError(t, p.Validate(l))
	assert.Equal(t, filepath.Join("sprites", "sheet.asm"), p.Output)

	p = sheetParameters()
	p.Output = "sheet.raw"
	require.NoError(t, p.Validate(l))
	assert.Equal(t, sink.Bin, p.Format)
	assert.False(t, p.Passthrough())

	p = sheetParameters()
	p.Output = "sheet.bmp"
	require.NoError(t, p.Validate(l))
	assert.Equal(t, sink.Auto, p.Format)
	assert.True(t, p.Passthrough())
}

func TestValidatePaletteCount(t *testing.T) {
	l, b := logger()
	p := sheetParameters()
	p.PaletteCount = 20

	require.NoError(t, p.Validate(l))
	assert.Equal(t, 15, p.PaletteCount)
	assert.Contains(t, b.String(), "clamped to 15")

	p = sheetParameters()
	p.BPC = 2
	require.NoError(t, p.Validate(l))
	assert.Equal(t, 3, p.PaletteCount)
}

func TestValidateWarnings(t *testing.T) {
	l, b := logger()
	p := sheetParameters()
	p.Dither = quant.Floyd
	p.SkipEmpty = true
	p.Transparent = false
	p.Size = image.Pt(0, 16)

	require.NoError(t, p.Validate(l))
	assert.Equal(t, quant.None, p.Dither)
	assert.False(t, p.SkipEmpty)
	assert.Equal(t, 3, strings.Count(b.String(), "warning: "))
}

func TestPlanSkipEmpty(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.SkipEmpty = true
	require.NoError(t, p.Validate(l))

	plan := NewPlan(p, sheet(), nil)
	require.Len(t, plan.Rects, 16)

	s := sink.NewText(sink.CLang, sink.Hexa)
	require.NoError(t, plan.Run(compressor.Crop16, s))

	out := s.String()
	assert.Equal(t, 15, strings.Count(out, "// Sprite["))
	assert.NotContains(t, out, "Sprite[5]")
	assert.Contains(t, out, "// Sprite[4] (offset:136)\n")
	assert.Contains(t, out, "// Sprite[6] (offset:170)\n")

	// Each block is a 2 byte header plus 8x8 pixels at 4 bits per color
	assert.Equal(t, 15*34, s.TotalBytes())
	n, err := plan.Measure(compressor.Crop16)
	require.NoError(t, err)
	assert.Equal(t, s.TotalBytes(), n)
}

func TestPlanRecords(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.SkipEmpty = true
	p.Head = true
	p.Index = true
	p.Define = true
	p.Output = "sheet.bin"
	require.NoError(t, p.Validate(l))

	s := sink.NewBinary()
	require.NoError(t, NewPlan(p, sheet(), nil).Run(compressor.Crop16, s))

	data := s.Bytes()
	require.Len(t, data, 8+15*34+15*2)

	// Width, height, bits per color, compressor and count
	assert.Equal(t, []byte{16, 0, 16, 0, 4, byte(compressor.Crop16), 15, 0}, data[:8])
	// First sprite header, an 8x8 crop at (4, 4)
	assert.Equal(t, []byte{0x44, 0x77}, data[8:10])

	index := data[8+15*34:]
	for i := 0; i < 15; i++ {
		assert.Equal(t, uint16(8+i*34), binary.LittleEndian.Uint16(index[i*2:]))
	}
}

func TestPlanFont(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.Font = &Font{Size: image.Pt(8, 8), First: '!', Last: '_'}
	p.Output = "sheet.bin"
	require.NoError(t, p.Validate(l))

	s := sink.NewBinary()
	require.NoError(t, NewPlan(p, sheet(), nil).Run(compressor.None, s))
	assert.Equal(t, []byte{8, 8, '!', '_'}, s.Bytes()[:4])
	assert.Len(t, s.Bytes(), 4+16*16*16/2)
}

func TestPlanCustomPalette(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.Palette = palette.CustomSource
	p.Define = true
	require.NoError(t, p.Validate(l))

	plan := NewPlan(p, sheet(), nil)
	require.Len(t, plan.Indexed.Palette, 16)
	_, _, _, a := plan.Indexed.Palette[0].RGBA()
	assert.Equal(t, uint32(0), a)

	s := sink.NewText(sink.CLang, sink.Hexa)
	require.NoError(t, plan.Run(compressor.None, s))
	out := s.String()
	assert.Contains(t, out, "const unsigned char table_palette[] =\n")
	assert.Contains(t, out, "#define TABLE_COUNT 16\n")
	assert.Contains(t, out, "#define TABLE_SIZE 2048\n")
	// The palette comes ahead of the table
	assert.Equal(t, 15*2+16*16*16/2, s.TotalBytes())
}

func TestPlanWholeImage(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.Size = image.Point{}
	p.Pos = image.Pt(16, 0)
	require.NoError(t, p.Validate(l))

	plan := NewPlan(p, sheet(), nil)
	require.Len(t, plan.Rects, 1)
	assert.Equal(t, image.Pt(48, 64), plan.BlockSize())

	n, err := plan.Measure(compressor.None)
	require.NoError(t, err)
	assert.Equal(t, 48*64/2, n)
}

func TestBest(t *testing.T) {
	l, b := logger()
	p := sheetParameters()
	require.NoError(t, p.Validate(l))
	plan := NewPlan(p, sheet(), nil)

	results := plan.Benchmark(compressor.Candidates)
	require.Len(t, results, len(compressor.Candidates))

	best := plan.Best(l)
	bestSize, err := plan.Measure(best)
	require.NoError(t, err)

	for i, r := range results {
		assert.Equal(t, compressor.Candidates[i], r.Compressor)
		if r.Err != nil {
			continue
		}
		assert.True(t, bestSize <= r.Size, "%s: %d < %d", r.Compressor, r.Size, bestSize)
	}

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[8].Err)
	assert.Contains(t, b.String(), "Best compressor: "+best.String())
}

func TestBestFallback(t *testing.T) {
	l, _ := logger()
	p := sheetParameters()
	p.Size = image.Pt(300, 300)
	p.Num = image.Pt(1, 1)
	p.Transparent = false
	p.BPC = 1
	require.NoError(t, p.Validate(l))

	plan := NewPlan(p, sheet(), nil)
	for _, r := range plan.Benchmark(compressor.Candidates[1:]) {
		assert.Error(t, r.Err)
	}
	assert.Equal(t, compressor.None, plan.Best(l))
}

func TestChoose(t *testing.T) {
	tables := []struct {
		name      string
		modify    func(*Parameters)
		expected  compressor.Compressor
		warning   string
		selection Selection
	}{
		{"explicit", func(p *Parameters) { p.Compressor = compressor.CropLine16 }, compressor.CropLine16, "", Explicit},
		{"rle4 at 8 bpc", func(p *Parameters) {
			p.BPC = 8
			p.Compressor = compressor.RLE4
		}, compressor.RLE8, "warning: rle4 has no advantage at 8 bits per color, rle8 used instead", Explicit},
		{"crop without transparency", func(p *Parameters) {
			p.Transparent = false
			p.Compressor = compressor.Crop16
		}, compressor.None, "warning: crop16 can't be used", Explicit},
		{"crop too large", func(p *Parameters) {
			p.Size = image.Pt(32, 32)
			p.Num = image.Pt(2, 2)
			p.Compressor = compressor.Crop16
		}, compressor.None, "block too large", Explicit},
		{"auto", func(p *Parameters) {}, compressor.CropLine16, "Auto compressor: cropline16", Automatic},
		{"auto 1 bpc", func(p *Parameters) { p.BPC = 1 }, compressor.Crop16, "Auto compressor: crop16", Automatic},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			l, b := logger()
			p := sheetParameters()
			p.Selection = table.selection
			table.modify(&p)
			require.NoError(t, p.Validate(l))

			c := New(nil, l)
			assert.Equal(t, table.expected, c.choose(NewPlan(p, sheet(), nil)))
			assert.Contains(t, b.String(), table.warning)
		})
	}
}

func TestConvert(t *testing.T) {
	dir, err := ioutil.TempDir("", "msximg")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "sheet.png")
	require.NoError(t, msximage.Save(sheet(), input))

	copyright := filepath.Join(dir, "sheet.txt")
	require.NoError(t, ioutil.WriteFile(copyright, []byte("(c) 2020 Somebody\n"), 0644))

	l, _ := logger()
	c := New(nil, l)

	p := sheetParameters()
	p.Input = input
	p.Output = filepath.Join(dir, "sheet.h")
	p.Copyright = copyright
	p.Selection = Exhaustive
	require.NoError(t, c.Convert(p))

	b, err := ioutil.ReadFile(p.Output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "// (c) 2020 Somebody\n")
	assert.Contains(t, string(b), "const unsigned char table[] =\n")

	p.Output = filepath.Join(dir, "sheet.bmp")
	require.NoError(t, c.Convert(p))
	m, err := msximage.Load(p.Output)
	require.NoError(t, err)
	assert.Equal(t, sheet().Pix, m.Pix)

	p.Input = filepath.Join(dir, "missing.png")
	assert.Error(t, c.Convert(p))
}

func TestConvertCache(t *testing.T) {
	dir, err := ioutil.TempDir("", "msximg")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "sheet.png")
	require.NoError(t, msximage.Save(sheet(), input))

	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	l, b := logger()
	c := New(cache, l)

	p := sheetParameters()
	p.Input = input
	p.Output = filepath.Join(dir, "sheet.bin")
	p.Compressor = compressor.Crop16
	require.NoError(t, c.Convert(p))

	first, err := ioutil.ReadFile(p.Output)
	require.NoError(t, err)
	assert.NotContains(t, b.String(), "in cache")

	require.NoError(t, os.Remove(p.Output))
	require.NoError(t, c.Convert(p))
	assert.Contains(t, b.String(), "in cache, compressed with crop16")

	second, err := ioutil.ReadFile(p.Output)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Different parameters miss the cache
	p.Compressor = compressor.None
	require.NoError(t, c.Convert(p))
	third, err := ioutil.ReadFile(p.Output)
	require.NoError(t, err)
	assert.Len(t, third, 16*16*16/2)
}

func TestCache(t *testing.T) {
	dir, err := ioutil.TempDir("", "msximg")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	a, err := cache.Lookup("ABCD", "params")
	require.NoError(t, err)
	assert.Nil(t, a)

	require.NoError(t, cache.Store("ABCD", "params", &Artifact{Compressor: "rle8", Data: []byte{1, 2, 3}}))
	require.NoError(t, cache.Store("ABCD", "params", &Artifact{Compressor: "rle4", Data: []byte{4, 5}}))

	a, err = cache.Lookup("ABCD", "params")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "rle4", a.Compressor)
	assert.Equal(t, []byte{4, 5}, a.Data)

	a, err = cache.Lookup("ABCD", "other")
	require.NoError(t, err)
	assert.Nil(t, a)
}

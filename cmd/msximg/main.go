package main

import (
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/msximg"
	"github.com/bodgit/msximg/palette"
	"github.com/bodgit/msximg/quant"
	"github.com/bodgit/msximg/sink"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func parameters(c *cli.Context) (msximg.Parameters, error) {
	p := msximg.DefaultParameters(c.Args().First())
	p.Output = c.String("out")
	p.Name = c.String("name")
	p.BPC = c.Int("bpc")
	p.PaletteCount = c.Int("palcount")
	p.SkipEmpty = c.Bool("skip")
	p.Index = c.Bool("idx")
	p.Head = c.Bool("head")
	p.Define = c.Bool("def")
	p.Title = !c.Bool("notitle")

	var err error
	if p.Format, err = sink.ParseFormat(c.String("format")); err != nil {
		return p, err
	}

	for _, f := range []struct {
		name  string
		point *image.Point
	}{
		{"pos", &p.Pos},
		{"size", &p.Size},
		{"gap", &p.Gap},
		{"num", &p.Num},
	} {
		if *f.point, err = parsePoint(c.String(f.name)); err != nil {
			return p, err
		}
	}

	if c.IsSet("trans") {
		if p.Key, err = parseColor(c.String("trans")); err != nil {
			return p, err
		}
		p.Transparent = true
	}

	if p.Palette, err = palette.ParseSource(c.String("pal")); err != nil {
		return p, err
	}
	if p.Selection, p.Compressor, err = parseCompressor(c.String("compress")); err != nil {
		return p, err
	}
	if p.Dither, err = quant.ParseDither(c.String("dither")); err != nil {
		return p, err
	}
	if p.Data, err = sink.ParseDataFormat(c.String("data")); err != nil {
		return p, err
	}

	switch {
	case c.IsSet("copyfile"):
		p.Copyright = c.String("copyfile")
	case c.Bool("copy"):
		p.Copyright = strings.TrimSuffix(p.Input, filepath.Ext(p.Input)) + ".txt"
	}

	if c.IsSet("font") {
		if p.Font, err = parseFont(c.String("font")); err != nil {
			return p, err
		}
	}

	return p, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "msximg"
	app.Usage = "MSX sprite and tile table exporter"
	app.Version = msximg.Version
	app.ArgsUsage = "FILE"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "output file, derived from the input and format if unset",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: sink.Auto.String(),
			Usage: "output format: auto, c, asm or bin",
		},
		&cli.StringFlag{
			Name:  "name",
			Value: "table",
			Usage: "name of the generated table",
		},
		&cli.StringFlag{
			Name:  "pos",
			Value: "0,0",
			Usage: "position of the first block",
		},
		&cli.StringFlag{
			Name:  "size",
			Value: "0,0",
			Usage: "size of each block, 0 exports the whole image",
		},
		&cli.StringFlag{
			Name:  "gap",
			Value: "0,0",
			Usage: "gap between blocks",
		},
		&cli.StringFlag{
			Name:  "num",
			Value: "1,1",
			Usage: "number of blocks in columns and rows",
		},
		&cli.IntFlag{
			Name:  "bpc",
			Value: 8,
			Usage: "bits per color: 1, 2, 4 or 8",
		},
		&cli.StringFlag{
			Name:  "trans",
			Usage: "transparency color as 0xRRGGBB",
		},
		&cli.StringFlag{
			Name:  "pal",
			Value: palette.BuiltInSource.String(),
			Usage: "palette: msx1 or custom",
		},
		&cli.IntFlag{
			Name:  "palcount",
			Value: -1,
			Usage: "number of colors of a custom palette",
		},
		&cli.StringFlag{
			Name:  "compress",
			Value: "none",
			Usage: "compressor, auto or best",
		},
		&cli.StringFlag{
			Name:  "dither",
			Value: quant.None.String(),
			Usage: "dithering method at 1 bit per color",
		},
		&cli.StringFlag{
			Name:  "data",
			Value: sink.Hexa.String(),
			Usage: "number format of text output",
		},
		&cli.BoolFlag{
			Name:  "skip",
			Usage: "skip empty blocks",
		},
		&cli.BoolFlag{
			Name:  "idx",
			Usage: "add a table of sprite offsets",
		},
		&cli.BoolFlag{
			Name:  "copy",
			Usage: "copy the input's .txt file into the output",
		},
		&cli.StringFlag{
			Name:  "copyfile",
			Usage: "copy `FILE` into the output",
		},
		&cli.BoolFlag{
			Name:  "head",
			Usage: "add a table header record",
		},
		&cli.StringFlag{
			Name:  "font",
			Usage: "add a font record, X,Y,FIRST,LAST",
		},
		&cli.BoolFlag{
			Name:  "def",
			Usage: "add count and size defines",
		},
		&cli.BoolFlag{
			Name:  "notitle",
			Usage: "omit the title banner",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"MSXIMG_CACHE"},
			Usage:   "path to cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(ioutil.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		p, err := parameters(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		var cache *msximg.Cache
		if file := c.String("cache"); file != "" {
			if cache, err = msximg.OpenCache(file); err != nil {
				return cli.NewExitError(err, 1)
			}
			defer cache.Close()
		}

		if err := msximg.New(cache, logger).Convert(p); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

/*
Package msximg is a library for converting images into sprite and tile tables
for MSX computers.

Blocks are cut from the image on a regular grid, their colors reduced to 1, 2,
4 or 8 bits per color and each block is encoded with one of the compressors
of the compressor package. The resulting table is written as C or assembly
source, or as raw binary data.
*/
package msximg

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/msximg/compressor"
	msximage "github.com/bodgit/msximg/image"
	"github.com/bodgit/msximg/sink"
)

// Version is the version written in generated tables.
const Version = "1.0.0"

// Converter exports images as tables.
type Converter struct {
	cache  *Cache
	logger *log.Logger
}

// New returns a Converter. The cache is optional.
func New(cache *Cache, logger *log.Logger) *Converter {
	return &Converter{
		cache:  cache,
		logger: logger,
	}
}

func load(file string) (*image.NRGBA, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	r := io.TeeReader(f, h)
	m, err := msximage.Decode(r)
	if err != nil {
		return nil, "", err
	}
	// Hash whatever the decoder didn't need
	if _, err := io.Copy(ioutil.Discard, r); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func readLines(file string) ([]string, error) {
	if file == "" {
		return nil, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines, s.Err()
}

func (c *Converter) choose(plan *Plan) compressor.Compressor {
	p := plan.Params

	switch p.Selection {
	case Automatic:
		comp := compressor.Auto(p.Size, p.Transparent, p.BPC)
		c.logger.Printf("Auto compressor: %s selected\n", comp)
		return comp
	case Exhaustive:
		return plan.Best(c.logger)
	}

	switch err := plan.Compatible(p.Compressor); err {
	case nil:
		return p.Compressor
	case compressor.ErrPromoted:
		warn(c.logger, "%s has no advantage at %d bits per color, %s used instead", p.Compressor, p.BPC, compressor.RLE8)
		return compressor.RLE8
	default:
		warn(c.logger, "%s can't be used (%v), %s used instead", p.Compressor, err, compressor.None)
		return compressor.None
	}
}

func writeFile(file string, b []byte) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Convert runs the conversion described by p.
func (c *Converter) Convert(p Parameters) error {
	if err := p.Validate(c.logger); err != nil {
		return err
	}

	m, sha, err := load(p.Input)
	if err != nil {
		return err
	}

	if p.Passthrough() {
		c.logger.Printf("Converting \"%s\" to \"%s\"\n", p.Input, p.Output)
		return msximage.Save(m, p.Output)
	}

	copyright, err := readLines(p.Copyright)
	if err != nil {
		return err
	}

	key := p.fingerprint(copyright)
	if c.cache != nil {
		a, err := c.cache.Lookup(sha, key)
		if err != nil {
			return err
		}
		if a != nil {
			c.logger.Printf("Found \"%s\" in cache, compressed with %s\n", p.Input, a.Compressor)
			return writeFile(p.Output, a.Data)
		}
	}

	plan := NewPlan(p, m, copyright)
	comp := c.choose(plan)

	s, err := sink.New(p.Format, p.Data)
	if err != nil {
		return err
	}
	if err := plan.Run(comp, s); err != nil {
		return err
	}

	b := new(bytes.Buffer)
	if _, err := s.WriteTo(b); err != nil {
		return err
	}

	if err := writeFile(p.Output, b.Bytes()); err != nil {
		return err
	}
	c.logger.Printf("Wrote %d bytes of data to \"%s\" using %s\n", s.TotalBytes(), p.Output, comp)

	if c.cache != nil {
		return c.cache.Store(sha, key, &Artifact{
			Compressor: comp.String(),
			Data:       b.Bytes(),
		})
	}

	return nil
}

/*
Package compressor implements the encodings used to store sprite blocks.

None packs the indices of a block at the requested number of bits per color.
The Crop variants trim the transparent margin of a block behind a small
rectangle header, either for the whole block or line by line. The RLE
variants replace runs of indices with count and value tokens; RLE0 only
compresses runs of transparent pixels.
*/
package compressor

import (
	"errors"
	"image"
	"strings"
)

// Compressor identifies one encoding.
type Compressor int

// The order of the constants is the order candidates are tried in.
const (
	None Compressor = iota
	Crop16
	CropLine16
	Crop32
	CropLine32
	Crop256
	CropLine256
	RLE0
	RLE4
	RLE8
)

// Family groups the compressors sharing an encoding scheme.
type Family int

const (
	Plain Family = iota
	Crop
	RLE
)

var names = [...]string{
	None:        "none",
	Crop16:      "crop16",
	CropLine16:  "cropline16",
	Crop32:      "crop32",
	CropLine32:  "cropline32",
	Crop256:     "crop256",
	CropLine256: "cropline256",
	RLE0:        "rle0",
	RLE4:        "rle4",
	RLE8:        "rle8",
}

// Candidates lists every compressor in the order they are benchmarked.
var Candidates = []Compressor{
	None,
	Crop16,
	CropLine16,
	Crop32,
	CropLine32,
	Crop256,
	CropLine256,
	RLE0,
	RLE4,
	RLE8,
}

var (
	errUnknown = errors.New("compressor: unknown compressor")

	// ErrTransparency is returned when a compressor relies on a
	// transparency color and none is set
	ErrTransparency = errors.New("compressor: transparency color required")
	// ErrTooLarge is returned when the block exceeds the maximum size
	// of a crop compressor
	ErrTooLarge = errors.New("compressor: block too large")
	// ErrDepth is returned when a compressor can't be used at the
	// requested number of bits per color
	ErrDepth = errors.New("compressor: unsupported bits per color")
	// ErrPromoted is returned for RLE4 at 8 bits per color where RLE8
	// should be used instead
	ErrPromoted = errors.New("compressor: rle4 has no advantage at 8 bits per color")
)

func (c Compressor) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}
	return names[c]
}

// Parse returns the compressor called name.
func Parse(name string) (Compressor, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Compressor(i), nil
		}
	}
	return None, errUnknown
}

// Family returns the encoding scheme of c.
func (c Compressor) Family() Family {
	switch c {
	case Crop16, CropLine16, Crop32, CropLine32, Crop256, CropLine256:
		return Crop
	case RLE0, RLE4, RLE8:
		return RLE
	}
	return Plain
}

// PerLine reports whether c crops each line independently.
func (c Compressor) PerLine() bool {
	return c == CropLine16 || c == CropLine32 || c == CropLine256
}

// MaxSize returns the largest block width and height a crop compressor can
// describe, 0 for the other families.
func (c Compressor) MaxSize() int {
	switch c {
	case Crop16, CropLine16:
		return 16
	case Crop32, CropLine32:
		return 32
	case Crop256, CropLine256:
		return 256
	}
	return 0
}

// FieldBits returns the width of each field of a crop header.
func (c Compressor) FieldBits() uint {
	switch c.MaxSize() {
	case 16:
		return 4
	case 32:
		return 5
	case 256:
		return 8
	}
	return 0
}

// Compatible checks whether c can encode blocks of the given size at bpc
// bits per color.
func Compatible(c Compressor, bpc int, transparent bool, size image.Point) error {
	switch c.Family() {
	case Crop:
		if !transparent {
			return ErrTransparency
		}
		if size.X > c.MaxSize() || size.Y > c.MaxSize() {
			return ErrTooLarge
		}
	case RLE:
		if c == RLE0 && !transparent {
			return ErrTransparency
		}
		if bpc == 1 || bpc == 2 {
			return ErrDepth
		}
		if c == RLE4 && bpc == 8 {
			return ErrPromoted
		}
	}

	switch bpc {
	case 1, 2, 4, 8:
		return nil
	}
	return ErrDepth
}

func fit(size image.Point, choices ...Compressor) Compressor {
	for _, c := range choices {
		if size.X <= c.MaxSize() && size.Y <= c.MaxSize() {
			return c
		}
	}
	return None
}

// Auto picks a compressor suitable for blocks of the given size.
func Auto(size image.Point, transparent bool, bpc int) Compressor {
	if size.X == 0 || size.Y == 0 {
		return None
	}

	if transparent {
		if bpc == 1 || bpc == 2 {
			return fit(size, Crop16, Crop32, Crop256)
		}
		return fit(size, CropLine16, CropLine32, CropLine256)
	}

	if bpc == 4 {
		return RLE4
	}
	return None
}

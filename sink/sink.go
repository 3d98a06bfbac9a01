/*
Package sink implements the writers that receive the records of a sprite
table.

A Sink accumulates records; table and sprite framing, byte, word and streamed
data lines, and keeps count of the data bytes emitted. Text sinks render the
records as C or assembly source, the binary sink keeps only the raw bytes and
the counter discards everything but the byte count.
*/
package sink

import (
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
)

// Sink receives the records of a sprite table.
type Sink interface {
	io.WriterTo

	WriteHeader(Header)
	WriteTableBegin(name, comment string)
	WriteSpriteHeader(index int)
	Write1ByteLine(a byte, comment string)
	Write2BytesLine(a, b byte, comment string)
	Write4BytesLine(a, b, c, d byte, comment string)
	Write1WordLine(a uint16, comment string)
	Write2WordsLine(a, b uint16, comment string)
	WriteLineBegin()
	Write1ByteData(byte)
	// Write8BitsData writes a byte holding a row of 8 pixels
	Write8BitsData(byte)
	WriteLineEnd()
	WriteTableEnd(comment string)
	WriteDefine(name string, value int)

	// TotalBytes returns the number of data bytes written so far
	TotalBytes() int
}

// Header describes the parameters a table was generated with.
type Header struct {
	Version string
	Input   string
	// Title adds a banner at the top of text output
	Title     bool
	Copyright []string

	Pos, Size, Gap, Num image.Point
	BPC                 int
	Transparent         bool
	Key                 color.NRGBA
	Compressor          string
	SkipEmpty           bool
}

// Format selects the kind of output.
type Format int

const (
	// Auto picks a Format from the output file extension
	Auto Format = iota
	C
	Asm
	Bin
)

var formatNames = [...]string{
	Auto: "auto",
	C:    "c",
	Asm:  "asm",
	Bin:  "bin",
}

var (
	errUnknownFormat = errors.New("sink: unknown output format")
	errUnknownData   = errors.New("sink: unknown data format")
)

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat returns the Format matching name.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return Auto, errUnknownFormat
}

// Ext returns the default file extension of f.
func (f Format) Ext() string {
	switch f {
	case C:
		return ".h"
	case Asm:
		return ".asm"
	case Bin:
		return ".bin"
	}
	return ""
}

// FormatFor returns the Format implied by the extension of file. ok is
// false if the extension isn't one of a table format.
func FormatFor(file string) (f Format, ok bool) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".h", ".inc":
		return C, true
	case ".s", ".asm":
		return Asm, true
	case ".bin", ".raw":
		return Bin, true
	}
	return Auto, false
}

// DataFormat selects how numbers are written by text sinks.
type DataFormat int

const (
	// Decimal writes 210
	Decimal DataFormat = iota
	// Hexa uses the default hexadecimal notation of the language
	Hexa
	// HexaC writes 0xD2
	HexaC
	// HexaASM writes 0D2h
	HexaASM
	// HexaPascal writes $D2
	HexaPascal
	// HexaBasic writes &HD2
	HexaBasic
	// HexaAnd writes &D2
	HexaAnd
	// HexaSharp writes #D2
	HexaSharp
	// BinaryData uses the default binary notation of the language
	BinaryData
	// BinaryC writes 0b11010010
	BinaryC
	// BinaryASM writes 11010010b
	BinaryASM
)

var dataNames = [...]string{
	Decimal:    "dec",
	Hexa:       "hexa",
	HexaC:      "hexa0x",
	HexaASM:    "hexaH",
	HexaPascal: "hexa$",
	HexaBasic:  "hexa&H",
	HexaAnd:    "hexa&",
	HexaSharp:  "hexa#",
	BinaryData: "bin",
	BinaryC:    "bin0b",
	BinaryASM:  "binB",
}

func (d DataFormat) String() string {
	if d < 0 || int(d) >= len(dataNames) {
		return "unknown"
	}
	return dataNames[d]
}

// ParseDataFormat returns the DataFormat matching name.
func ParseDataFormat(name string) (DataFormat, error) {
	for i, n := range dataNames {
		if strings.EqualFold(n, name) {
			return DataFormat(i), nil
		}
	}
	return Hexa, errUnknownData
}

// New returns an empty Sink for the given format. Auto must be resolved
// beforehand.
func New(f Format, d DataFormat) (Sink, error) {
	switch f {
	case C:
		return NewText(CLang, d), nil
	case Asm:
		return NewText(AsmLang, d), nil
	case Bin:
		return NewBinary(), nil
	}
	return nil, errUnknownFormat
}

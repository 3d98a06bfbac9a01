package sink

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Binary is a Sink keeping only the data bytes, without any framing. Words
// are stored little-endian as expected by the Z80.
type Binary struct {
	buf bytes.Buffer
}

// NewBinary returns an empty Binary sink.
func NewBinary() *Binary {
	return &Binary{}
}

func (b *Binary) WriteHeader(Header) {}
func (b *Binary) WriteTableBegin(string, string) {}
func (b *Binary) WriteSpriteHeader(int) {}
func (b *Binary) WriteLineBegin() {}
func (b *Binary) WriteLineEnd() {}
func (b *Binary) WriteTableEnd(string) {}
func (b *Binary) WriteDefine(string, int) {}

func (b *Binary) Write1ByteLine(a byte, _ string) {
	b.buf.WriteByte(a)
}

func (b *Binary) Write2BytesLine(a, c byte, _ string) {
	b.buf.Write([]byte{a, c})
}

func (b *Binary) Write4BytesLine(a, c, d, e byte, _ string) {
	b.buf.Write([]byte{a, c, d, e})
}

func (b *Binary) Write1WordLine(a uint16, _ string) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], a)
	b.buf.Write(tmp[:])
}

func (b *Binary) Write2WordsLine(a, c uint16, _ string) {
	var tmp [4]byte
	binary.LittleEndian.PutUint16(tmp[0:], a)
	binary.LittleEndian.PutUint16(tmp[2:], c)
	b.buf.Write(tmp[:])
}

func (b *Binary) Write1ByteData(a byte) {
	b.buf.WriteByte(a)
}

func (b *Binary) Write8BitsData(a byte) {
	b.buf.WriteByte(a)
}

// TotalBytes returns the number of bytes written so far.
func (b *Binary) TotalBytes() int {
	return b.buf.Len()
}

// Bytes returns the bytes written so far.
func (b *Binary) Bytes() []byte {
	return b.buf.Bytes()
}

// WriteTo writes the accumulated bytes to w.
func (b *Binary) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

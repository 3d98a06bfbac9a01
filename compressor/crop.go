package compressor

import (
	"fmt"
	"image"

	"github.com/bodgit/msximg/sink"
	"github.com/bodgit/msximg/tile"
)

// headerSize returns the number of bytes of a whole block crop header.
func (c Compressor) headerSize() int {
	return int(c.FieldBits()*4+7) / 8
}

// lineHeaderSize returns the number of bytes of a per-line crop header.
func (c Compressor) lineHeaderSize() int {
	return int(c.FieldBits()*2+7) / 8
}

// marker returns the value every header field is set to for empty blocks
// and lines. No rectangle fitting the maximum size can start and end there.
func (c Compressor) marker() int {
	return c.MaxSize() - 1
}

// encodeCrop writes an empty block as the marker header alone, which a
// decoder recognises by x+w exceeding the maximum block size.
func encodeCrop(c Compressor, b *tile.Block, s sink.Sink) {
	r := b.Bounds()
	if r.Empty() {
		m := c.marker()
		header(s, fields(c.FieldBits(), c.headerSize(), m, m, m, m), "empty")
		return
	}

	header(s, fields(c.FieldBits(), c.headerSize(), r.Min.X, r.Min.Y, r.Dx()-1, r.Dy()-1),
		fmt.Sprintf("crop x:%d y:%d w:%d h:%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()))
	emit(s, pack(b.Sub(r), b.BPC), lineBytes(r.Dx(), b.BPC), b.BPC)
}

func encodeCropLine(c Compressor, b *tile.Block, s sink.Sink) {
	for y := 0; y < b.H(); y++ {
		x0, x1, ok := b.Span(y)
		if !ok {
			m := c.marker()
			header(s, fields(c.FieldBits(), c.lineHeaderSize(), m, m), fmt.Sprintf("line %d empty", y))
			continue
		}

		header(s, fields(c.FieldBits(), c.lineHeaderSize(), x0, x1-x0-1),
			fmt.Sprintf("line %d x:%d w:%d", y, x0, x1-x0))
		data := pack(b.Sub(image.Rect(x0, y, x1, y+1)), b.BPC)
		emit(s, data, len(data), b.BPC)
	}
}

package compressor

import (
	"image"

	"github.com/bodgit/msximg/sink"
	"github.com/bodgit/msximg/tile"
)

// Encode writes block b to s using c and returns the number of bytes
// written. Nothing is written if b can't be encoded with c.
func Encode(c Compressor, b *tile.Block, s sink.Sink) (int, error) {
	if err := Compatible(c, b.BPC, b.Transparent, image.Pt(b.W(), b.H())); err != nil {
		return 0, err
	}

	start := s.TotalBytes()

	switch c.Family() {
	case Crop:
		if c.PerLine() {
			encodeCropLine(c, b, s)
		} else {
			encodeCrop(c, b, s)
		}
	case RLE:
		switch c {
		case RLE0:
			encodeRLE0(b, s)
		case RLE4:
			encodeRLE4(b, s)
		default:
			encodeRLE8(b, s)
		}
	default:
		encodeNone(b, s)
	}

	return s.TotalBytes() - start, nil
}

func encodeNone(b *tile.Block, s sink.Sink) {
	emit(s, pack(b.Pix, b.BPC), lineBytes(b.W(), b.BPC), b.BPC)
}

package compressor

import (
	"fmt"

	"github.com/bodgit/msximg/sink"
	"github.com/bodgit/msximg/tile"
)

const (
	maxRLE0 = 0x7f
	maxRLE4 = 0x0f
	maxRLE8 = 0xff

	literal = 0x80
)

// run returns the length of the run of pix[0] at the start of pix, at most
// max long.
func run(pix []uint8, max int) int {
	n := 1
	for n < len(pix) && n < max && pix[n] == pix[0] {
		n++
	}
	return n
}

// encodeRLE0 alternates runs of transparent pixels with literal runs of
// opaque ones. Only the literal runs carry pixel data.
func encodeRLE0(b *tile.Block, s sink.Sink) {
	pix := b.Pix
	for len(pix) > 0 {
		if pix[0] == tile.Transparent {
			n := run(pix, maxRLE0)
			s.Write1ByteLine(byte(n), fmt.Sprintf("skip %d", n))
			pix = pix[n:]
			continue
		}

		n := 1
		for n < len(pix) && n < maxRLE0 && pix[n] != tile.Transparent {
			n++
		}
		s.Write1ByteLine(literal|byte(n), fmt.Sprintf("draw %d", n))
		emit(s, pack(pix[:n], b.BPC), 8, b.BPC)
		pix = pix[n:]
	}
}

func encodeRLE4(b *tile.Block, s sink.Sink) {
	var data []byte
	for pix := b.Pix; len(pix) > 0; {
		n := run(pix, maxRLE4)
		data = append(data, byte(n)<<4|pix[0]&0x0f)
		pix = pix[n:]
	}
	emit(s, data, 8, b.BPC)
}

func encodeRLE8(b *tile.Block, s sink.Sink) {
	var data []byte
	for pix := b.Pix; len(pix) > 0; {
		n := run(pix, maxRLE8)
		data = append(data, byte(n), pix[0])
		pix = pix[n:]
	}
	emit(s, data, 8, b.BPC)
}

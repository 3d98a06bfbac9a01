package compressor

import "github.com/bodgit/msximg/sink"

// bitWriter packs values most significant bit first.
type bitWriter struct {
	buf []byte
	acc uint
	n   uint
}

func (w *bitWriter) write(v, bits uint) {
	for i := bits; i > 0; i-- {
		w.acc = w.acc<<1 | (v>>(i-1))&1
		w.n++
		if w.n == 8 {
			w.buf = append(w.buf, byte(w.acc))
			w.acc, w.n = 0, 0
		}
	}
}

// bytes returns the packed bytes, padding the last one with zeros.
func (w *bitWriter) bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc<<(8-w.n)))
		w.acc, w.n = 0, 0
	}
	return w.buf
}

// pack stores each index of pix on bpc bits.
func pack(pix []uint8, bpc int) []byte {
	w := new(bitWriter)
	for _, p := range pix {
		w.write(uint(p), uint(bpc))
	}
	return w.bytes()
}

// fields packs each value on bits bits in the given number of bytes.
func fields(bits uint, size int, values ...int) []byte {
	w := new(bitWriter)
	for _, v := range values {
		w.write(uint(v), bits)
	}
	b := w.bytes()
	for len(b) < size {
		b = append(b, 0)
	}
	return b
}

// emit writes data as lines of at most perLine bytes. At 1 bit per color
// each byte is a row of pixels.
func emit(s sink.Sink, data []byte, perLine, bpc int) {
	if perLine <= 0 {
		perLine = 8
	}
	for len(data) > 0 {
		n := perLine
		if n > len(data) {
			n = len(data)
		}
		s.WriteLineBegin()
		for _, b := range data[:n] {
			if bpc == 1 {
				s.Write8BitsData(b)
			} else {
				s.Write1ByteData(b)
			}
		}
		s.WriteLineEnd()
		data = data[n:]
	}
}

// lineBytes returns how many bytes of packed pixels fit a text line for
// rows of w pixels.
func lineBytes(w, bpc int) int {
	if bits := w * bpc; bits > 0 && bits%8 == 0 {
		return bits / 8
	}
	return 8
}

// header writes a crop header of 1, 2, 3 or 4 bytes.
func header(s sink.Sink, b []byte, comment string) {
	switch len(b) {
	case 1:
		s.Write1ByteLine(b[0], comment)
	case 2:
		s.Write2BytesLine(b[0], b[1], comment)
	case 4:
		s.Write4BytesLine(b[0], b[1], b[2], b[3], comment)
	default:
		emit(s, b, len(b), 0)
	}
}

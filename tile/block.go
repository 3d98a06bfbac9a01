package tile

import "image"

// Transparent is the palette index reserved for transparent pixels.
const Transparent = 0

// Block is a single sprite cut from a quantized image. Pix holds one palette
// index per pixel in row-major order.
type Block struct {
	// Index is the position of the block in the grid, counting row by row
	Index int
	// Rect is the area of the source image the block was extracted from
	Rect image.Rectangle
	Pix  []uint8
	// BPC is the number of bits used by each index
	BPC int
	// Transparent is set when index 0 denotes a transparent pixel
	Transparent bool
}

// Extract copies the indices covered by r out of m. Pixels of r lying
// outside of m read as index 0.
func Extract(m *image.Paletted, r image.Rectangle, index, bpc int, transparent bool) *Block {
	b := &Block{
		Index:       index,
		Rect:        r,
		Pix:         make([]uint8, r.Dx()*r.Dy()),
		BPC:         bpc,
		Transparent: transparent,
	}

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Pix[i] = m.ColorIndexAt(x, y)
			i++
		}
	}

	return b
}

// W returns the width of the block.
func (b *Block) W() int {
	return b.Rect.Dx()
}

// H returns the height of the block.
func (b *Block) H() int {
	return b.Rect.Dy()
}

// At returns the index at block-local coordinates (x, y).
func (b *Block) At(x, y int) uint8 {
	return b.Pix[y*b.W()+x]
}

// Opaque reports whether the pixel at (x, y) is visible.
func (b *Block) Opaque(x, y int) bool {
	return !b.Transparent || b.At(x, y) != Transparent
}

// Empty reports whether every pixel of the block is transparent. A block
// without transparency is never empty.
func (b *Block) Empty() bool {
	if !b.Transparent {
		return false
	}
	for _, p := range b.Pix {
		if p != Transparent {
			return false
		}
	}
	return true
}

// Bounds returns the smallest block-local rectangle enclosing every opaque
// pixel. It is empty if the block is.
func (b *Block) Bounds() image.Rectangle {
	var r image.Rectangle
	for y := 0; y < b.H(); y++ {
		if x0, x1, ok := b.Span(y); ok {
			r = r.Union(image.Rect(x0, y, x1, y+1))
		}
	}
	return r
}

// Span returns the half-open interval [x0, x1) of row y between the first
// and the last opaque pixel. ok is false if the row is fully transparent.
func (b *Block) Span(y int) (x0, x1 int, ok bool) {
	x0, x1 = -1, -1
	for x := 0; x < b.W(); x++ {
		if b.Opaque(x, y) {
			if x0 < 0 {
				x0 = x
			}
			x1 = x + 1
		}
	}
	if x0 < 0 {
		return 0, 0, false
	}
	return x0, x1, true
}

// Sub returns the indices covered by the block-local rectangle r in
// row-major order.
func (b *Block) Sub(r image.Rectangle) []uint8 {
	r = r.Intersect(image.Rect(0, 0, b.W(), b.H()))
	pix := make([]uint8, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		pix = append(pix, b.Pix[y*b.W()+r.Min.X:y*b.W()+r.Max.X]...)
	}
	return pix
}

package image

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // Register GIF, JPEG and PNG decoders
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image from r in any registered format and returns it
// as NRGBA anchored at (0, 0).
func Decode(r io.Reader) (*image.NRGBA, error) {
	m, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}

	b := m.Bounds()
	if n, ok := m.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n, nil
	}

	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), m, b.Min, draw.Src)

	return n, nil
}

// Load decodes the image stored in file.
func Load(file string) (*image.NRGBA, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

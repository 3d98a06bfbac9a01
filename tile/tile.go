/*
Package tile implements the block geometry used to cut a sprite sheet into
individual sprites or tiles.

Blocks are laid out on a regular grid starting at a given origin. Each block
is size pixels wide and high and consecutive blocks are separated by a gap,
so the pitch between two blocks is size+gap. Blocks are enumerated row by
row, which is also the order in which sprites are numbered in the output.
*/
package tile

import "image"

// Layout returns the rectangles of every block of the grid described by
// pos, size, gap and num, relative to bounds. If either size component is
// zero a single block spanning from pos to the edge of bounds is returned
// and num is ignored.
func Layout(bounds image.Rectangle, pos, size, gap, num image.Point) []image.Rectangle {
	origin := bounds.Min.Add(pos)

	if size.X == 0 || size.Y == 0 {
		r := image.Rectangle{Min: origin, Max: bounds.Max}
		if r.Dx() < 0 {
			r.Max.X = r.Min.X
		}
		if r.Dy() < 0 {
			r.Max.Y = r.Min.Y
		}
		return []image.Rectangle{r}
	}

	if num.X <= 0 || num.Y <= 0 {
		return nil
	}

	rects := make([]image.Rectangle, 0, num.X*num.Y)
	for row := 0; row < num.Y; row++ {
		for col := 0; col < num.X; col++ {
			min := origin.Add(image.Pt(col*(size.X+gap.X), row*(size.Y+gap.Y)))
			rects = append(rects, image.Rectangle{Min: min, Max: min.Add(size)})
		}
	}
	return rects
}

// Region returns the smallest rectangle covering every block, clipped to
// bounds.
func Region(bounds image.Rectangle, rects []image.Rectangle) image.Rectangle {
	var r image.Rectangle
	for _, b := range rects {
		r = r.Union(b)
	}
	return r.Intersect(bounds)
}

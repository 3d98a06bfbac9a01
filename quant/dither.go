package quant

import (
	"errors"
	"sort"
	"strings"
)

// Dither is the dithering method applied at 1 bit per color.
type Dither int

const (
	// None thresholds every pixel on its own
	None Dither = iota
	// Floyd diffuses the quantization error following Floyd & Steinberg
	Floyd
	// Bayer4 is ordered dispersed dot dithering with a 4x4 matrix
	Bayer4
	// Bayer8 is ordered dispersed dot dithering with an 8x8 matrix
	Bayer8
	// Bayer16 is ordered dispersed dot dithering with a 16x16 matrix
	Bayer16
	// Cluster6 is ordered clustered dot dithering with a 6x6 matrix
	Cluster6
	// Cluster8 is ordered clustered dot dithering with an 8x8 matrix
	Cluster8
	// Cluster16 is ordered clustered dot dithering with a 16x16 matrix
	Cluster16
)

var ditherNames = [...]string{
	None:      "none",
	Floyd:     "floyd",
	Bayer4:    "bayer4",
	Bayer8:    "bayer8",
	Bayer16:   "bayer16",
	Cluster6:  "cluster6",
	Cluster8:  "cluster8",
	Cluster16: "cluster16",
}

var errUnknownDither = errors.New("quant: unknown dithering method")

func (d Dither) String() string {
	if d < 0 || int(d) >= len(ditherNames) {
		return "unknown"
	}
	return ditherNames[d]
}

// ParseDither returns the Dither matching name.
func ParseDither(name string) (Dither, error) {
	for i, n := range ditherNames {
		if strings.EqualFold(n, name) {
			return Dither(i), nil
		}
	}
	return None, errUnknownDither
}

// Ordered reports whether d uses a threshold matrix.
func (d Dither) Ordered() bool {
	return d >= Bayer4 && d <= Cluster16
}

var matrices = map[Dither][][]int{
	Bayer4:    bayer(4),
	Bayer8:    bayer(8),
	Bayer16:   bayer(16),
	Cluster6:  cluster(6),
	Cluster8:  cluster(8),
	Cluster16: cluster(16),
}

// Matrix returns the threshold matrix of an ordered method, or nil.
func (d Dither) Matrix() [][]int {
	return matrices[d]
}

func square(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Each step quadruples the previous matrix into
// [4M+0 4M+2]
// [4M+3 4M+1]
func bayer(n int) [][]int {
	if n <= 1 {
		return [][]int{{0}}
	}

	h := n / 2
	prev := bayer(h)
	m := square(n)
	for y := 0; y < h; y++ {
		for x := 0; x < h; x++ {
			v := 4 * prev[y][x]
			m[y][x] = v
			m[y][x+h] = v + 2
			m[y+h][x] = v + 3
			m[y+h][x+h] = v + 1
		}
	}
	return m
}

// Thresholds grow outwards from the center of the cell so neighbouring
// pixels switch on together
func cluster(n int) [][]int {
	type cell struct {
		x, y, d int
	}

	cells := make([]cell, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := 2*x-(n-1), 2*y-(n-1)
			cells = append(cells, cell{x, y, dx*dx + dy*dy})
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].d < cells[j].d
	})

	m := square(n)
	for rank, c := range cells {
		m[c.y][c.x] = rank
	}
	return m
}

// above reports whether luma, in the range 0-255, exceeds the threshold
// (v+0.5)/n² of full scale set by the value v of an n×n matrix
func above(luma, v, n int) bool {
	return (2*v+1)*255 < 2*luma*n*n
}

// diffuse runs Floyd & Steinberg error diffusion over a w×h luma plane.
// Pixels flagged in skip are left dark and neither take nor spread error.
func diffuse(luma []float64, skip []bool, w, h int) []bool {
	on := make([]bool, len(luma))

	spread := func(x, y int, e float64) {
		if x < 0 || x >= w || y >= h {
			return
		}
		if i := y*w + x; !skip[i] {
			luma[i] += e
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if skip[i] {
				continue
			}

			old, v := luma[i], 0.0
			if old >= 128 {
				v = 255
				on[i] = true
			}

			e := old - v
			spread(x+1, y, e*7/16)
			spread(x-1, y+1, e*3/16)
			spread(x, y+1, e*5/16)
			spread(x+1, y+1, e*1/16)
		}
	}

	return on
}

package grid

import (
	"fmt"
	"strconv"
)

// Grid is a fixed W x H array of sprite indices. 0 means empty.
type Grid struct {
	W, H  int
	Cells []uint8
}

// New creates an empty grid.
func New(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]uint8, w*h)}
}

// Index returns the flat index of (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.W + x
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y). Out-of-bounds reads return 0.
func (g *Grid) At(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Cells[g.Index(x, y)]
}

// Set writes the cell at (x, y). Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[g.Index(x, y)] = v
}

// Fill sets every cell to v.
func (g *Grid) Fill(v uint8) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

// SameSize reports whether both grids have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.W == o.W && g.H == o.H
}

// Compose merges layers into dst. Layers are ordered highest priority first;
// each cell takes the first non-zero value, else 0.
func Compose(dst *Grid, layers ...*Grid) {
	for _, l := range layers {
		if !dst.SameSize(l) {
			panic(fmt.Sprintf("grid: compose %dx%d into %dx%d", l.W, l.H, dst.W, dst.H))
		}
	}
	for i := range dst.Cells {
		var v uint8
		for _, l := range layers {
			if c := l.Cells[i]; c != 0 {
				v = c
				break
			}
		}
		dst.Cells[i] = v
	}
}

// Plane is a w x h block of sprite indices stored row by row.
type Plane struct {
	W, H int
	Data []uint8
}

// PrintPlane copies a plane into the grid with its top-left corner at (x, y).
// Zero cells of the plane overwrite what is below. Cells outside the grid are clipped.
func PrintPlane(dst *Grid, p Plane, x, y int) {
	for row := 0; row < p.H; row++ {
		for col := 0; col < p.W; col++ {
			i := row*p.W + col
			if i >= len(p.Data) {
				return
			}
			dst.Set(x+col, y+row, p.Data[i])
		}
	}
}

// PrintNum writes n right-aligned in a pad-wide field starting at (x, y).
// Digits are stored as their ASCII code, blanks as 0.
func PrintNum(dst *Grid, n, x, y, pad int) {
	s := strconv.Itoa(n)
	if len(s) > pad {
		s = s[len(s)-pad:]
	}
	lead := pad - len(s)
	for i := 0; i < pad; i++ {
		var v uint8
		if i >= lead {
			v = s[i-lead]
		}
		dst.Set(x+i, y, v)
	}
}

package voronoi

import (
	"fmt"
	"image"
)

// Kind tags the role of a grid cell.
type Kind uint8

const (
	// KindUnclassified is the zero value; Build never leaves a cell in it.
	KindUnclassified Kind = iota
	// KindSeed marks the cell a seed was placed on.
	KindSeed
	// KindBoundary is reserved for boundary marking and is not produced by Build.
	KindBoundary
	// KindInterior marks every non-seed cell.
	KindInterior
)

func (k Kind) String() string {
	switch k {
	case KindSeed:
		return "seed"
	case KindBoundary:
		return "boundary"
	case KindInterior:
		return "interior"
	default:
		return "unclassified"
	}
}

// MarshalText lets Kind appear by name in JSON results.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RGB is an 8-bit colour without alpha.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// White is the colour of a cell that has not been assigned to any seed.
var White = RGB{R: 255, G: 255, B: 255}

// Hex returns the colour as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Cell is one grid position and its assignment.
//
// Nearest, Ordinal and Distance are only meaningful once the cell has been
// assigned; use Site to read them safely.
type Cell struct {
	Kind     Kind        `json:"kind"`
	Position image.Point `json:"position"`
	Nearest  image.Point `json:"nearest"`
	Ordinal  int         `json:"ordinal"`
	Distance float64     `json:"distance"`
	Color    RGB         `json:"color"`
}

// Site returns the ordinal and position of the seed the cell belongs to.
// ok is false for a cell that was never assigned (only possible with zero seeds).
func (c Cell) Site() (ordinal int, position image.Point, ok bool) {
	if c.Ordinal < 0 || (c.Kind != KindSeed && c.Kind != KindInterior) {
		return 0, image.Point{}, false
	}
	return c.Ordinal, c.Nearest, true
}

// Seed is a Voronoi generator point.
type Seed struct {
	Ordinal  int         `json:"ordinal"`
	Position image.Point `json:"position"`
	Color    RGB         `json:"color"`
}

// Grid is a square array of cells stored column by column.
//
// A Grid is only written while Build runs; afterwards it is read-only.
type Grid struct {
	size  int
	cells []Cell
}

func newGrid(size int) *Grid {
	g := &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			g.cells[g.index(x, y)] = Cell{
				Kind:     KindInterior,
				Position: image.Pt(x, y),
				Ordinal:  -1,
				Color:    White,
			}
		}
	}
	return g
}

func (g *Grid) index(x, y int) int {
	return x*g.size + y
}

func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[g.index(x, y)]
}

// Size returns R, the grid's width and height.
func (g *Grid) Size() int {
	return g.size
}

// At returns a copy of the cell at (x, y). It panics if the coordinates are
// outside the grid, like slice indexing.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		panic(fmt.Sprintf("voronoi: cell (%d,%d) outside %dx%d grid", x, y, g.size, g.size))
	}
	return g.cells[g.index(x, y)]
}

// Contains reports whether (x, y) is a valid cell coordinate.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Cells returns a copy of every cell, column by column.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Range calls fn for each cell, column by column, until fn returns false.
func (g *Grid) Range(fn func(c Cell) bool) {
	for _, c := range g.cells {
		if !fn(c) {
			return
		}
	}
}

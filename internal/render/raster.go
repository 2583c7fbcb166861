package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/voronoi-tools/internal/voronoi"
)

// ToImage rasterises a grid into an opaque RGBA image, one pixel per cell.
func ToImage(grid *voronoi.Grid) *image.RGBA {
	size := grid.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	grid.Range(func(c voronoi.Cell) bool {
		img.SetRGBA(c.Position.X, c.Position.Y, toRGBA(c.Color))
		return true
	})
	return img
}

func toRGBA(c voronoi.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Boundaries returns the cells that touch a 4-neighbour owned by a different
// seed, in column order. Unassigned cells are never boundaries.
//
// This is a view for drawing; it does not change any cell's Kind.
func Boundaries(grid *voronoi.Grid) []image.Point {
	size := grid.Size()
	var out []image.Point
	offsets := [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			ordinal, _, ok := grid.At(x, y).Site()
			if !ok {
				continue
			}
			for _, off := range offsets {
				nx, ny := x+off.X, y+off.Y
				if !grid.Contains(nx, ny) {
					continue
				}
				if other, _, ok := grid.At(nx, ny).Site(); ok && other != ordinal {
					out = append(out, image.Pt(x, y))
					break
				}
			}
		}
	}
	return out
}

// WithBoundaries returns a copy of img with the grid's region boundaries
// painted in c. Seed cells are left untouched so sites stay visible.
func WithBoundaries(img image.Image, grid *voronoi.Grid, c color.Color) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for _, p := range Boundaries(grid) {
		if grid.At(p.X, p.Y).Kind == voronoi.KindSeed {
			continue
		}
		result.Set(bounds.Min.X+p.X, bounds.Min.Y+p.Y, c)
	}
	return result
}

// MarkSeeds paints every seed cell of the grid in c.
func MarkSeeds(img *image.RGBA, grid *voronoi.Grid, c color.Color) {
	bounds := img.Bounds()
	grid.Range(func(cell voronoi.Cell) bool {
		if cell.Kind == voronoi.KindSeed {
			img.Set(bounds.Min.X+cell.Position.X, bounds.Min.Y+cell.Position.Y, c)
		}
		return true
	})
}

// ComposeOptions selects the overlays Compose draws over the region colours.
type ComposeOptions struct {
	Boundaries bool
	MarkSeeds  bool

	// GridSpacing draws a labelled coordinate grid every GridSpacing cells
	// when positive.
	GridSpacing int
}

// Compose renders a diagram with the requested overlays in black.
func Compose(d *voronoi.Diagram, opts ComposeOptions) *image.RGBA {
	img := ToImage(d.Grid())
	if opts.Boundaries {
		img = WithBoundaries(img, d.Grid(), color.Black)
	}
	if opts.MarkSeeds {
		MarkSeeds(img, d.Grid(), color.Black)
	}
	if opts.GridSpacing > 0 {
		img = GridOverlay(img, opts.GridSpacing)
	}
	return img
}

package voronoi

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/voronoi-tools/internal/geometry"
)

// Options configures a single Build.
type Options struct {
	// Resolution is R, the width and height of the grid.
	Resolution int

	// Sites is N, the number of seeds to sample. Ignored when Fixed is set,
	// except that a non-zero value must then equal len(Fixed).
	Sites int

	// Padding is the margin excluded from seed placement on every side.
	Padding int

	// Random supplies coordinates when sampling. Required if Sites > 0 and
	// Fixed is nil.
	Random RandomSource

	// Fixed places seeds at the given positions, in ordinal order, instead
	// of sampling. Every position must lie inside the padded interior.
	Fixed []image.Point

	// Palette colours the regions. The zero value selects DefaultPalette.
	Palette Palette

	// Engine assigns cells to seeds. Nil selects single-threaded BruteForce.
	Engine Assigner
}

// Diagram is a fully computed Voronoi diagram. It is never observable in a
// partially built state and is read-only after Build returns.
type Diagram struct {
	grid       *Grid
	seeds      []Seed
	palette    Palette
	padding    int
	degenerate bool
}

// Build validates opts, places the seeds, assigns every cell to its nearest
// seed and colours the grid.
//
// Steps, in order:
//  1. Validate resolution and padding (geometry.ErrInvalidBounds)
//  2. Create the R×R grid with every cell Interior
//  3. Sample (or take) the seeds and mark their cells Seed
//  4. Run the assignment engine over the whole grid
//  5. Colour every assigned cell by its seed's ordinal
//
// On any error Build returns a nil Diagram.
func Build(ctx context.Context, opts Options) (*Diagram, error) {
	r, pad := opts.Resolution, opts.Padding
	if err := geometry.ValidateBounds(r, pad); err != nil {
		return nil, err
	}

	palette := opts.Palette
	if palette.Len() == 0 {
		palette = DefaultPalette
	}
	engine := opts.Engine
	if engine == nil {
		engine = BruteForce{}
	}

	positions, err := sitePositions(opts)
	if err != nil {
		return nil, err
	}

	grid := newGrid(r)
	seeds := make([]Seed, len(positions))
	for i, p := range positions {
		seeds[i] = Seed{Ordinal: i, Position: p, Color: palette.ColorFor(i)}
		grid.cell(p.X, p.Y).Kind = KindSeed
	}

	if err := engine.Assign(ctx, grid, seeds); err != nil {
		return nil, fmt.Errorf("assign cells: %w", err)
	}

	for i := range grid.cells {
		c := &grid.cells[i]
		if c.Ordinal >= 0 {
			c.Color = palette.ColorFor(c.Ordinal)
		}
	}

	return &Diagram{
		grid:       grid,
		seeds:      seeds,
		palette:    palette,
		padding:    pad,
		degenerate: IsDegenerate(r, len(seeds), pad),
	}, nil
}

func sitePositions(opts Options) ([]image.Point, error) {
	if opts.Fixed == nil {
		return Sample(opts.Resolution, opts.Sites, opts.Padding, opts.Random)
	}
	if opts.Sites != 0 && opts.Sites != len(opts.Fixed) {
		return nil, fmt.Errorf("site count %d does not match %d fixed sites", opts.Sites, len(opts.Fixed))
	}
	if err := checkSites(opts.Fixed, opts.Resolution, opts.Padding); err != nil {
		return nil, err
	}
	positions := make([]image.Point, len(opts.Fixed))
	copy(positions, opts.Fixed)
	return positions, nil
}

// Grid returns the computed grid.
func (d *Diagram) Grid() *Grid {
	return d.grid
}

// Seeds returns a copy of the seeds in ordinal order.
func (d *Diagram) Seeds() []Seed {
	out := make([]Seed, len(d.seeds))
	copy(out, d.seeds)
	return out
}

// Palette returns the palette the diagram was coloured with.
func (d *Diagram) Palette() Palette {
	return d.palette
}

// SiteStatus describes one seed in a Status summary.
type SiteStatus struct {
	Ordinal int    `json:"ordinal"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Color   string `json:"color"`
}

// Status is a read-only summary of a diagram, suitable for logging.
type Status struct {
	Resolution  int          `json:"resolution"`
	Padding     int          `json:"padding"`
	SiteCount   int          `json:"site_count"`
	Sites       []SiteStatus `json:"sites"`
	PaletteSize int          `json:"palette_size"`

	// Degenerate is set when there are more sites than interior cells, so
	// some sites necessarily share a position.
	Degenerate bool `json:"degenerate"`
}

// Status summarises the diagram's seeds and palette.
func (d *Diagram) Status() Status {
	sites := make([]SiteStatus, len(d.seeds))
	for i, s := range d.seeds {
		sites[i] = SiteStatus{
			Ordinal: s.Ordinal,
			X:       s.Position.X,
			Y:       s.Position.Y,
			Color:   s.Color.Hex(),
		}
	}
	return Status{
		Resolution:  d.grid.size,
		Padding:     d.padding,
		SiteCount:   len(d.seeds),
		Sites:       sites,
		PaletteSize: d.palette.Len(),
		Degenerate:  d.degenerate,
	}
}

// SeedCoverage is the share of the grid owned by one seed.
type SeedCoverage struct {
	Ordinal    int     `json:"ordinal"`
	Cells      int     `json:"cells"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// Coverage counts the cells owned by each seed, in ordinal order. A seed
// whose position duplicates a lower ordinal owns no cells.
func (d *Diagram) Coverage() []SeedCoverage {
	counts := make([]int, len(d.seeds))
	d.grid.Range(func(c Cell) bool {
		if ordinal, _, ok := c.Site(); ok {
			counts[ordinal]++
		}
		return true
	})

	total := float64(len(d.grid.cells))
	out := make([]SeedCoverage, len(d.seeds))
	for i, s := range d.seeds {
		out[i] = SeedCoverage{
			Ordinal:    s.Ordinal,
			Cells:      counts[i],
			Percentage: float64(counts[i]) / total * 100,
			Color:      s.Color.Hex(),
		}
	}
	return out
}

package voronoi

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/voronoi-tools/internal/geometry"
)

// Assigner fills in the nearest seed for every cell of a grid.
//
// seeds[i].Ordinal must equal i. Implementations write each cell exactly once
// and must agree with BruteForce on every cell, including tie-breaks.
type Assigner interface {
	Assign(ctx context.Context, grid *Grid, seeds []Seed) error
}

// BruteForce is the reference assignment engine.
//
// For every cell it computes the distance to every seed in ordinal order and
// keeps the first strict minimum, so equidistant seeds resolve to the lower
// ordinal. The work is O(R²·N) with O(1) bookkeeping per cell.
//
// # Parallelism
//
// With Workers > 1 the grid is split by column and the columns are processed
// by up to Workers goroutines. Each cell reads only the immutable seed slice
// and writes only itself, so the result does not depend on scheduling.
type BruteForce struct {
	// Workers is the number of goroutines to use. Values below 2 run the scan
	// on the calling goroutine.
	Workers int
}

// Assign implements Assigner.
func (b BruteForce) Assign(ctx context.Context, grid *Grid, seeds []Seed) error {
	if len(seeds) == 0 {
		return nil
	}

	if b.Workers < 2 {
		for x := 0; x < grid.size; x++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			assignColumn(grid, seeds, x)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)
	for x := 0; x < grid.size; x++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assignColumn(grid, seeds, x)
			return nil
		})
	}
	return g.Wait()
}

func assignColumn(grid *Grid, seeds []Seed, x int) {
	for y := 0; y < grid.size; y++ {
		c := grid.cell(x, y)
		ordinal, dist := nearestSeed(c.Position, seeds)
		classify(c, seeds[ordinal], dist)
	}
}

// nearestSeed scans seeds in order and returns the index of the first seed
// at minimum distance from p.
func nearestSeed(p image.Point, seeds []Seed) (int, float64) {
	best := 0
	bestDist := math.Inf(1)
	for i, s := range seeds {
		d := geometry.Distance(p, s.Position)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// classify records the winning seed on c. A cell at distance zero is the
// seed's own cell.
func classify(c *Cell, s Seed, dist float64) {
	c.Nearest = s.Position
	c.Ordinal = s.Ordinal
	c.Distance = dist
	if dist == 0 {
		c.Kind = KindSeed
	} else if c.Kind != KindSeed {
		c.Kind = KindInterior
	}
}

// Engine names accepted by EngineByName.
const (
	EngineBruteForce = "brute"
	EngineKDTree     = "kdtree"
)

// EngineByName returns the Assigner registered under name. workers only
// applies to the brute force engine.
func EngineByName(name string, workers int) (Assigner, error) {
	switch strings.ToLower(name) {
	case "", EngineBruteForce, "bruteforce", "brute-force":
		return BruteForce{Workers: workers}, nil
	case EngineKDTree, "kd-tree":
		return KDTree{}, nil
	default:
		return nil, fmt.Errorf("unknown engine: %s (valid: %s, %s)", name, EngineBruteForce, EngineKDTree)
	}
}

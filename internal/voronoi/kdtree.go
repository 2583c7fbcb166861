package voronoi

import (
	"context"
	"fmt"
	"image"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/ironsheep/voronoi-tools/internal/geometry"
)

// KDTree assigns cells using a gonum k-d tree built over the distinct seed
// positions. Its output is identical to BruteForce.
//
// Squared distances between grid points are exact integers in float64, so a
// nearest query gives the exact minimum. Every site at that minimum is then
// collected with a distance keeper whose radius sits half a unit above it,
// and the lowest ordinal among them wins.
type KDTree struct{}

// Assign implements Assigner.
func (KDTree) Assign(ctx context.Context, grid *Grid, seeds []Seed) error {
	if len(seeds) == 0 {
		return nil
	}

	// Duplicate positions collapse to their lowest ordinal.
	owners := make(map[image.Point]int, len(seeds))
	points := make(kdtree.Points, 0, len(seeds))
	for _, s := range seeds {
		if _, ok := owners[s.Position]; ok {
			continue
		}
		owners[s.Position] = s.Ordinal
		points = append(points, kdtree.Point{float64(s.Position.X), float64(s.Position.Y)})
	}
	tree := kdtree.New(points, false)

	for x := 0; x < grid.size; x++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for y := 0; y < grid.size; y++ {
			c := grid.cell(x, y)
			ordinal, err := nearestInTree(tree, owners, c.Position)
			if err != nil {
				return err
			}
			s := seeds[ordinal]
			classify(c, s, geometry.Distance(c.Position, s.Position))
		}
	}
	return nil
}

func nearestInTree(tree *kdtree.Tree, owners map[image.Point]int, p image.Point) (int, error) {
	q := kdtree.Point{float64(p.X), float64(p.Y)}
	_, best := tree.Nearest(q)

	keep := kdtree.NewDistKeeper(best + 0.5)
	tree.NearestSet(keep, q)

	ordinal := -1
	for _, cd := range keep.Heap {
		if cd.Comparable == nil || cd.Dist != best {
			continue
		}
		pt := cd.Comparable.(kdtree.Point)
		o, ok := owners[image.Pt(int(pt[0]), int(pt[1]))]
		if !ok {
			continue
		}
		if ordinal < 0 || o < ordinal {
			ordinal = o
		}
	}
	if ordinal < 0 {
		return 0, fmt.Errorf("kdtree: no site found for cell (%d,%d)", p.X, p.Y)
	}
	return ordinal, nil
}

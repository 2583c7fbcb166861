package voronoi

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/voronoi-tools/internal/geometry"
)

var (
	// ErrNegativeSiteCount is returned when fewer than zero sites are requested.
	ErrNegativeSiteCount = errors.New("site count must not be negative")

	// ErrDegenerateSiteCount is advisory: more sites than interior cells means
	// duplicate positions are certain. Build never returns it; CheckSiteCount
	// does, and Status.Degenerate reports the same condition.
	ErrDegenerateSiteCount = errors.New("site count exceeds interior area")

	// ErrNoRandomSource is returned when sites must be sampled but no source was given.
	ErrNoRandomSource = errors.New("random source required to sample sites")
)

// RandomSource yields uniform integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a deterministic PCG-backed source for the given seed.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample draws n seed positions inside the padded interior of an r×r grid.
//
// For each seed, x and then y are drawn independently and uniformly from
// [pad, r-pad). Positions are not deduplicated.
//
// # Errors
//
//   - geometry.ErrInvalidBounds when [pad, r-pad) is empty
//   - ErrNegativeSiteCount when n < 0
//   - ErrNoRandomSource when n > 0 and rng is nil
func Sample(r, n, pad int, rng RandomSource) ([]image.Point, error) {
	if err := geometry.ValidateBounds(r, pad); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSiteCount, n)
	}
	if n > 0 && rng == nil {
		return nil, ErrNoRandomSource
	}

	span := r - pad - pad
	sites := make([]image.Point, n)
	for i := range sites {
		x := pad + rng.IntN(span)
		y := pad + rng.IntN(span)
		sites[i] = image.Pt(x, y)
	}
	return sites, nil
}

// checkSites verifies caller-supplied positions against the padded interior.
func checkSites(sites []image.Point, r, pad int) error {
	for i, p := range sites {
		if !geometry.InPaddedBounds(p, r, pad) {
			return fmt.Errorf("%w: site %d at (%d,%d) outside [%d,%d)", geometry.ErrInvalidBounds, i, p.X, p.Y, pad, r-pad)
		}
	}
	return nil
}

// IsDegenerate reports whether n sites cannot all have distinct positions
// in the interior of an r×r grid padded by pad.
func IsDegenerate(r, n, pad int) bool {
	return n > geometry.InteriorArea(r, pad)
}

// CheckSiteCount returns ErrDegenerateSiteCount when IsDegenerate holds.
func CheckSiteCount(r, n, pad int) error {
	if IsDegenerate(r, n, pad) {
		return fmt.Errorf("%w: %d sites, %d interior cells", ErrDegenerateSiteCount, n, geometry.InteriorArea(r, pad))
	}
	return nil
}

// Package geometry provides the distance and bounds math shared by the
// Voronoi sampler and assignment engines.
//
// All coordinates are integer grid positions with (0,0) at the top-left
// corner. Distances are computed in float64 after widening each component,
// so subtracting a larger coordinate from a smaller one never wraps.
package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidBounds is returned when a resolution and padding pair leaves no
// interior in which to place seeds.
var ErrInvalidBounds = errors.New("invalid bounds")

// MaxResolution caps the grid side so r*r cells always fit in memory.
const MaxResolution = 4096

// Distance returns the Euclidean distance between two grid positions.
func Distance(a, b image.Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

// SquaredDistance returns the squared Euclidean distance between a and b.
//
// For grid coordinates the result is an exactly representable integer, which
// lets callers compare squared distances for equality without rounding error.
func SquaredDistance(a, b image.Point) float64 {
	dx := float64(a.X) - float64(b.X)
	dy := float64(a.Y) - float64(b.Y)
	return dx*dx + dy*dy
}

// InPaddedBounds reports whether p lies in [pad, r-pad) on both axes.
func InPaddedBounds(p image.Point, r, pad int) bool {
	return p.X >= pad && p.X < r-pad && p.Y >= pad && p.Y < r-pad
}

// ValidateBounds checks that an r×r grid with the given padding still has a
// non-empty interior.
//
// # Errors
//
//   - r <= 0: no grid
//   - r > MaxResolution: grid too large to allocate
//   - pad < 0: negative margin
//   - pad >= r-pad: the interval [pad, r-pad) is empty
//
// All failures wrap ErrInvalidBounds.
func ValidateBounds(r, pad int) error {
	switch {
	case r <= 0:
		return fmt.Errorf("%w: resolution %d must be positive", ErrInvalidBounds, r)
	case r > MaxResolution:
		return fmt.Errorf("%w: resolution %d exceeds %d", ErrInvalidBounds, r, MaxResolution)
	case pad < 0:
		return fmt.Errorf("%w: padding %d must not be negative", ErrInvalidBounds, pad)
	case pad >= r-pad:
		return fmt.Errorf("%w: padding %d leaves no interior in a %dx%d grid", ErrInvalidBounds, pad, r, r)
	}
	return nil
}

// InteriorArea returns the number of grid positions available for seeds, or
// zero when the bounds are invalid.
func InteriorArea(r, pad int) int {
	if ValidateBounds(r, pad) != nil {
		return 0
	}
	side := r - pad - pad
	return side * side
}

// Package voronoi generates discrete Voronoi diagrams over a square raster.
//
// A diagram is built in one call: seeds (sites) are sampled inside a padded
// interior, every grid cell is assigned to its nearest seed under Euclidean
// distance, and each cell is coloured from a bounded palette keyed by the
// ordinal of its seed. The package performs no I/O and never logs; callers
// that want to report progress read Diagram.Status afterwards.
//
// # Coordinate System
//
// Grids are R×R. Cell (x, y) is 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward, matching the render
// package's pixel coordinates.
//
// # Nearest Seed Rule
//
// For every cell the seeds are scanned in generation order and the first
// strict minimum is kept. When two seeds are exactly equidistant the seed with
// the lower ordinal therefore wins. Seeds sharing a position are valid input;
// the shared cell belongs to the lowest of their ordinals.
//
// # Engines
//
// Two Assigner implementations produce identical grids:
//   - BruteForce: the O(R²·N) scan, optionally spread over worker goroutines
//   - KDTree: a gonum k-d tree lookup for large site counts
//
// # Palette Wraparound
//
// Palette.ColorFor indexes modulo the palette length, so with the 14-entry
// DefaultPalette seed 14 shares seed 0's colour. Supply a longer palette when
// every region must be visually distinct.
//
// # Determinism
//
// Sampling draws from an injected RandomSource. Two builds with identical
// options and identically seeded sources produce identical grids.
package voronoi

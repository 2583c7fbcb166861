// Package render turns computed Voronoi grids into images and writes them to disk.
//
// This package is the rasteriser sink for the voronoi package: it maps each
// grid cell to one pixel, optionally outlines region boundaries, scales the
// result, and encodes it in the format implied by the output path. It also
// reads images back for colour sampling.
//
// # Coordinate System
//
// Pixel (x, y) is grid cell (x, y). (0,0) is the top-left corner, X increases
// rightward and Y increases downward. A grid of resolution R becomes an R×R
// image (R·scale when scaled).
//
// # Output Formats
//
// The format is chosen by file extension:
//   - .bmp: Windows bitmap (golang.org/x/image/bmp)
//   - .png: PNG (bild imgio encoder)
//   - .jpg, .jpeg: JPEG at quality 95 (bild imgio encoder)
//
// JPEG is lossy; use BMP or PNG when pixel colours must match the grid exactly.
//
// # Scaling
//
// SaveOptions.Scale enlarges the image by an integer factor using
// nearest-neighbour resampling, so every cell becomes a solid scale×scale block
// and no blended colours appear at region edges.
//
// # Overlays
//
// Compose layers optional overlays over the region colours, in this order:
// boundary outlines, seed markers, then a labelled coordinate grid drawn with
// the x/image basicfont face. Overlays are drawing aids only; they never
// change the grid.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package render

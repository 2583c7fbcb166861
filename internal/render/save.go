package render

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// Format identifies an output image encoding.
type Format string

const (
	FormatBMP  Format = "bmp"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// jpegQuality is the quality used for JPEG output.
const jpegQuality = 95

// SaveOptions controls how an image is written.
type SaveOptions struct {
	// Scale enlarges the image by this integer factor with nearest-neighbour
	// resampling. Values below 2 write the image at its native size.
	Scale int
}

// SaveResult describes a written image file.
type SaveResult struct {
	Path   string `json:"path"`
	Format Format `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// FormatFromPath picks the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return FormatBMP, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported output format for %q (use .bmp, .png or .jpg)", path)
	}
}

func encoderFor(f Format) (imgio.Encoder, error) {
	switch f {
	case FormatBMP:
		return bmp.Encode, nil
	case FormatPNG:
		return imgio.PNGEncoder(), nil
	case FormatJPEG:
		return imgio.JPEGEncoder(jpegQuality), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", f)
	}
}

// MaxImageSide caps the width and height of a saved image.
const MaxImageSide = 16384

// Scale enlarges img by an integer factor using nearest-neighbour
// resampling. A factor below 2 returns img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	enc, err := encoderFor(f)
	if err != nil {
		return err
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", f, err)
	}
	return nil
}

// Save scales img per opts and writes it to path in the format implied by
// the extension.
//
// # Errors
//
//   - Returns error for an unsupported extension
//   - Returns error if the file cannot be created or encoding fails
func Save(path string, img image.Image, opts SaveOptions) (*SaveResult, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	enc, err := encoderFor(f)
	if err != nil {
		return nil, err
	}

	out := Scale(img, opts.Scale)
	if err := imgio.Save(path, out, enc); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	b := out.Bounds()
	return &SaveResult{
		Path:   path,
		Format: f,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	gridLineColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
	gridLabelColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gridLabelBorder = color.NRGBA{R: 0, G: 0, B: 0, A: 180}
)

// GridOverlay returns a copy of img with a line every spacing cells and an
// "x,y" label at each intersection, so sites can be located by eye. A
// spacing below 1 returns an unmodified copy.
func GridOverlay(img image.Image, spacing int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)
	if spacing < 1 {
		return result
	}

	line := image.NewUniform(gridLineColor)
	for x := bounds.Min.X + spacing; x < bounds.Max.X; x += spacing {
		draw.Draw(result, image.Rect(x, bounds.Min.Y, x+1, bounds.Max.Y), line, image.Point{}, draw.Over)
	}
	for y := bounds.Min.Y + spacing; y < bounds.Max.Y; y += spacing {
		draw.Draw(result, image.Rect(bounds.Min.X, y, bounds.Max.X, y+1), line, image.Point{}, draw.Over)
	}

	for y := spacing; y < bounds.Dy(); y += spacing {
		for x := spacing; x < bounds.Dx(); x += spacing {
			drawLabel(result, bounds.Min.X+x+2, bounds.Min.Y+y+2, fmt.Sprintf("%d,%d", x, y))
		}
	}
	return result
}

// drawLabel writes text with its top-left corner at (x, y) on a dark box.
func drawLabel(img *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(gridLabelColor),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height+1).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(gridLabelBorder), image.Point{}, draw.Over)

	d.Dot = fixed.P(x, y+face.Ascent)
	d.DrawString(text)
}

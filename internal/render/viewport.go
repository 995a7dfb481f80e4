package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/circlemark/circlemark/internal/geom"
)

// Viewport composes the visible window: the frame scaled by the view's zoom
// and placed at its pan offset on a canvas of the display size. Parts of
// the frame outside the window are clipped; uncovered canvas stays black.
//
// Nearest-neighbour scaling keeps pixels crisp when zoomed in, which is
// what you want when placing circles on pixel-level detail.
func Viewport(frame image.Image, view geom.ViewState, width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, color.NRGBA{A: 255})

	zw := int(math.Round(float64(frame.Bounds().Dx()) * view.Zoom))
	zh := int(math.Round(float64(frame.Bounds().Dy()) * view.Zoom))
	if zw < 1 {
		zw = 1
	}
	if zh < 1 {
		zh = 1
	}

	scaled := imaging.Resize(frame, zw, zh, imaging.NearestNeighbor)
	pos := image.Pt(int(math.Round(view.PanX)), int(math.Round(view.PanY)))
	return imaging.Paste(canvas, scaled, pos)
}

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/circlemark/circlemark/internal/region"
)

// Annotate draws marker rings and, when enabled, numbered label chips over
// a copy of the frame. The input frame is not modified. Region numbering in
// the chips is positional (1-based) to match listing output.
func Annotate(frame image.Image, regions []region.Region, opts Options) image.Image {
	if len(regions) == 0 {
		return frame
	}

	dc := gg.NewContextForImage(frame)
	dc.SetFontFace(basicfont.Face7x13)

	for i, r := range regions {
		col := opts.color(r.Kind)
		dc.SetColor(col)
		dc.SetLineWidth(opts.ringWidth())
		dc.DrawCircle(float64(r.Center.X), float64(r.Center.Y), float64(r.Radius))
		dc.Stroke()

		if opts.ShowLabels {
			drawChip(dc, i+1, r, frame.Bounds())
		}
	}

	return dc.Image()
}

// Preview draws the in-progress drag circle over a copy of the frame. It is
// shown while the pointer is down and discarded on release; nothing is
// committed here.
func Preview(frame image.Image, center image.Point, radius int, col color.NRGBA) image.Image {
	dc := gg.NewContextForImage(frame)
	dc.SetColor(col)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	dc.Stroke()
	return dc.Image()
}

// drawChip places the label chip above the circle, or below when there is
// no room, clamped into the frame, with a leader line to the circle edge.
func drawChip(dc *gg.Context, n int, r region.Region, bounds image.Rectangle) {
	text := fmt.Sprintf("#%d [%s]", n, r.Kind.Tag())
	if r.Label != "" {
		text += " " + r.Label
	}

	w, h := dc.MeasureString(text)
	const pad = 3.0
	cx := float64(r.Center.X)
	cy := float64(r.Center.Y)
	rad := float64(r.Radius)

	chipW := w + 2*pad
	chipH := h + 2*pad
	chipX := cx - chipW/2
	chipY := cy - rad - chipH - 4
	anchorY := cy - rad

	if chipY < float64(bounds.Min.Y) {
		chipY = cy + rad + 4
		anchorY = cy + rad
	}
	if chipX < float64(bounds.Min.X) {
		chipX = float64(bounds.Min.X)
	}
	if maxX := float64(bounds.Max.X) - chipW; chipX > maxX {
		chipX = maxX
	}

	dc.SetLineWidth(1)
	dc.DrawLine(cx, anchorY, cx, chipY+chipH/2)
	dc.Stroke()

	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(chipX, chipY, chipW, chipH)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawString(text, chipX+pad, chipY+pad+h-2)
}

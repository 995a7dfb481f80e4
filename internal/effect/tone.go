package effect

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// lighten shifts the lightness of masked pixels in HSL space. A positive
// amount moves lightness toward 1 proportionally to the remaining headroom,
// so no channel can clip; a negative amount scales lightness toward 0.
// Alpha is preserved.
func lighten(dst *image.NRGBA, roi image.Rectangle, mask circle, amount float64) {
	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			if !mask.contains(x, y) {
				continue
			}
			i := dst.PixOffset(x, y)
			col := colorful.Color{
				R: float64(dst.Pix[i]) / 255,
				G: float64(dst.Pix[i+1]) / 255,
				B: float64(dst.Pix[i+2]) / 255,
			}
			h, s, l := col.Hsl()
			if amount >= 0 {
				l += (1 - l) * amount
			} else {
				l *= 1 + amount
			}
			r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
			dst.Pix[i] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = b
		}
	}
}

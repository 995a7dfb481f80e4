package effect

import "image"

// outline paints the ring band (radius-thickness, radius] in the marker
// color and leaves the circle interior untouched. The band lies entirely
// inside the disk mask, so the outside-the-circle guarantee holds like for
// every other kind.
func (c *Compositor) outline(dst *image.NRGBA, roi image.Rectangle, mask circle) {
	thickness := c.OutlineThickness
	if thickness < 1 {
		thickness = 1
	}
	inner := mask.radius - thickness
	innerSq := inner * inner

	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			if !mask.contains(x, y) {
				continue
			}
			dx := x - mask.center.X
			dy := y - mask.center.Y
			if inner >= 0 && dx*dx+dy*dy <= innerSq {
				continue
			}
			dst.SetNRGBA(x, y, c.OutlineColor)
		}
	}
}

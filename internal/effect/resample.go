package effect

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// blur gaussian-blurs the masked pixels. The blur radius scales with the
// region radius so a larger circle smears over a wider area, matching how
// the obscured content grows with the selection.
//
// The patch handed to the blur is padded by the kernel support so pixels
// near the circle edge are blurred with their real neighbourhood instead of
// a cut edge.
func (c *Compositor) blur(dst *image.NRGBA, roi image.Rectangle, mask circle) {
	radius := c.BlurRadiusRatio * float64(mask.radius)
	if radius < 1 {
		radius = 1
	}
	pad := int(math.Ceil(radius)) + 1

	work := image.Rect(
		roi.Min.X-pad,
		roi.Min.Y-pad,
		roi.Max.X+pad,
		roi.Max.Y+pad,
	).Intersect(dst.Bounds())

	blurred := blur.Gaussian(imaging.Crop(dst, work), radius)

	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			if !mask.contains(x, y) {
				continue
			}
			px := color.NRGBAModel.Convert(blurred.At(x-work.Min.X, y-work.Min.Y)).(color.NRGBA)
			dst.SetNRGBA(x, y, px)
		}
	}
}

// pixelate replaces masked pixels with the mean color of their mosaic cell.
// The bounding box is reduced by the block size with a box filter (each
// output pixel is the mean of one cell) and blown back up with nearest
// neighbour, so every cell is one flat color.
func (c *Compositor) pixelate(dst *image.NRGBA, roi image.Rectangle, mask circle) {
	block := c.PixelateBlock
	if block < 2 {
		block = 2
	}

	w, h := roi.Dx(), roi.Dy()
	dw := (w + block - 1) / block
	dh := (h + block - 1) / block

	cropped := imaging.Crop(dst, roi)
	small := imaging.Resize(cropped, dw, dh, imaging.Box)
	mosaic := imaging.Resize(small, w, h, imaging.NearestNeighbor)

	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			if !mask.contains(x, y) {
				continue
			}
			dst.SetNRGBA(x, y, mosaic.NRGBAAt(x-roi.Min.X, y-roi.Min.Y))
		}
	}
}

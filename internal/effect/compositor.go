package effect

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/circlemark/circlemark/internal/region"
)

// Compositor applies effect kinds to circular regions of an image.
//
// All application is copy-on-write: the input image is never modified, and
// in the returned copy only pixels inside the region's circle differ from
// the input. Pixels outside the circle are byte-identical, which is what
// makes re-rendering after an undo safe.
//
// The strength fields are tunables surfaced through configuration; the zero
// value is not useful, start from NewCompositor or fill every field.
type Compositor struct {
	// HighlightStrength moves lightness toward white, in (0, 1).
	HighlightStrength float64

	// DarkenStrength moves lightness toward black, in (0, 1).
	DarkenStrength float64

	// BlurRadiusRatio scales the gaussian blur radius with the region
	// radius, so larger circles blur more.
	BlurRadiusRatio float64

	// PixelateBlock is the mosaic cell size in pixels, at least 2.
	PixelateBlock int

	// OutlineThickness is the width in pixels of the outline ring band.
	OutlineThickness int

	// OutlineColor fills the outline ring band.
	OutlineColor color.NRGBA
}

// NewCompositor returns a compositor with the default strengths.
func NewCompositor() *Compositor {
	return &Compositor{
		HighlightStrength: 0.4,
		DarkenStrength:    0.5,
		BlurRadiusRatio:   0.5,
		PixelateBlock:     10,
		OutlineThickness:  3,
		OutlineColor:      color.NRGBA{R: 255, G: 255, B: 0, A: 255},
	}
}

// Apply returns a copy of img with one region's effect applied inside its
// circle. Portions of the circle outside the image are clipped; a circle
// entirely off-image returns an unchanged copy.
func (c *Compositor) Apply(img image.Image, r region.Region) (*image.NRGBA, error) {
	out := imaging.Clone(img)
	if err := c.applyTo(out, img.Bounds().Min, r); err != nil {
		return nil, err
	}
	return out, nil
}

// Flatten renders the ordered region list onto a fresh copy of src. Every
// call starts from the unmodified source, never from a previous render, so
// repeated flattening cannot compound effects.
func (c *Compositor) Flatten(src image.Image, regions []region.Region) (*image.NRGBA, error) {
	out := imaging.Clone(src)
	offset := src.Bounds().Min
	for _, r := range regions {
		if err := c.applyTo(out, offset, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// applyTo runs one effect in place on an origin-based NRGBA copy. offset is
// the Min of the original image bounds, so region coordinates given in the
// source's space land on the right pixels of the copy.
func (c *Compositor) applyTo(dst *image.NRGBA, offset image.Point, r region.Region) error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown effect kind %q", r.Kind)
	}

	center := r.Center.Sub(offset)
	roi := image.Rect(
		center.X-r.Radius,
		center.Y-r.Radius,
		center.X+r.Radius+1,
		center.Y+r.Radius+1,
	).Intersect(dst.Bounds())
	if roi.Empty() {
		return nil
	}

	mask := circle{center: center, radius: r.Radius}

	switch r.Kind {
	case region.KindHighlight:
		lighten(dst, roi, mask, c.HighlightStrength)
	case region.KindDarken:
		lighten(dst, roi, mask, -c.DarkenStrength)
	case region.KindBlur:
		c.blur(dst, roi, mask)
	case region.KindPixelate:
		c.pixelate(dst, roi, mask)
	case region.KindGrayscale:
		patch(dst, roi, mask, imaging.Grayscale)
	case region.KindInvert:
		patch(dst, roi, mask, imaging.Invert)
	case region.KindOutline:
		c.outline(dst, roi, mask)
	}
	return nil
}

// circle is the inclusive disk mask: a pixel belongs to the region when its
// squared distance from the center is at most radius squared.
type circle struct {
	center image.Point
	radius int
}

func (c circle) contains(x, y int) bool {
	dx := x - c.center.X
	dy := y - c.center.Y
	return dx*dx+dy*dy <= c.radius*c.radius
}

// patch applies op to the circle's bounding box and copies only the masked
// pixels back, keeping everything outside the circle untouched.
func patch(dst *image.NRGBA, roi image.Rectangle, mask circle, op func(image.Image) *image.NRGBA) {
	processed := op(imaging.Crop(dst, roi))
	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		for x := roi.Min.X; x < roi.Max.X; x++ {
			if !mask.contains(x, y) {
				continue
			}
			dst.SetNRGBA(x, y, processed.NRGBAAt(x-roi.Min.X, y-roi.Min.Y))
		}
	}
}

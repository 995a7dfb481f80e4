package render

import (
	"image"
	"image/color"

	"github.com/circlemark/circlemark/internal/effect"
	"github.com/circlemark/circlemark/internal/region"
)

// Options control the annotation overlay drawn on top of composed frames.
type Options struct {
	// ShowLabels toggles the numbered label chips; marker rings are always
	// drawn.
	ShowLabels bool

	// Colors maps effect kinds to their marker color.
	Colors map[region.Kind]color.NRGBA

	// RingWidth is the stroke width of marker rings in pixels.
	RingWidth float64
}

func (o Options) color(kind region.Kind) color.NRGBA {
	if c, ok := o.Colors[kind]; ok {
		return c
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

func (o Options) ringWidth() float64 {
	if o.RingWidth <= 0 {
		return 2
	}
	return o.RingWidth
}

// Compose renders the presentation frame for an image: the ordered region
// list flattened onto a fresh copy of the source, then the marker overlay.
// The source is never modified and repeated calls yield the same frame.
func Compose(src image.Image, regions []region.Region, comp *effect.Compositor, opts Options) (image.Image, error) {
	frame, err := comp.Flatten(src, regions)
	if err != nil {
		return nil, err
	}
	return Annotate(frame, regions, opts), nil
}

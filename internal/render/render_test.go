package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/circlemark/circlemark/internal/effect"
	"github.com/circlemark/circlemark/internal/geom"
	"github.com/circlemark/circlemark/internal/region"
)

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func testOptions() Options {
	return Options{
		Colors: map[region.Kind]color.NRGBA{
			region.KindBlur:   {R: 0, G: 0, B: 255, A: 255},
			region.KindInvert: {R: 0, G: 255, B: 255, A: 255},
		},
		RingWidth: 2,
	}
}

func TestAnnotate_DrawsRing(t *testing.T) {
	frame := flatImage(100, 100, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	regions := []region.Region{
		{ID: 1, Center: image.Pt(50, 50), Radius: 20, Kind: region.KindBlur},
	}

	out := Annotate(frame, regions, testOptions())

	// A pixel on the ring at the circle's right edge picks up blue.
	r, g, b, _ := out.At(70, 50).RGBA()
	if b>>8 <= 100 || b <= r {
		t.Errorf("ring pixel: got (%d,%d,%d), want blue-dominated", r>>8, g>>8, b>>8)
	}

	// Far from any circle nothing changes.
	r, g, b, _ = out.At(5, 5).RGBA()
	if r>>8 != 50 || g>>8 != 50 || b>>8 != 50 {
		t.Errorf("pixel far from ring changed: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestAnnotate_InputNotModified(t *testing.T) {
	frame := flatImage(100, 100, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	before := make([]uint8, len(frame.Pix))
	copy(before, frame.Pix)

	opts := testOptions()
	opts.ShowLabels = true
	Annotate(frame, []region.Region{
		{ID: 1, Center: image.Pt(50, 50), Radius: 20, Kind: region.KindBlur, Label: "dent"},
	}, opts)

	if !bytes.Equal(frame.Pix, before) {
		t.Error("Annotate modified its input frame")
	}
}

func TestAnnotate_NoRegionsReturnsFrame(t *testing.T) {
	frame := flatImage(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	out := Annotate(frame, nil, testOptions())
	if out != frame {
		t.Error("Annotate with no regions should return the frame unchanged")
	}
}

func TestAnnotate_LabelsToggle(t *testing.T) {
	frame := flatImage(120, 120, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	regions := []region.Region{
		{ID: 1, Center: image.Pt(60, 70), Radius: 15, Kind: region.KindInvert, Label: "chip"},
	}

	opts := testOptions()
	plain := Annotate(frame, regions, opts)
	opts.ShowLabels = true
	labeled := Annotate(frame, regions, opts)

	diff := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if plain.At(x, y) != labeled.At(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("enabling labels changed no pixels")
	}
}

func TestCompose_AppliesEffectAndOverlay(t *testing.T) {
	src := flatImage(100, 100, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	regions := []region.Region{
		{ID: 1, Center: image.Pt(50, 50), Radius: 20, Kind: region.KindInvert},
	}

	out, err := Compose(src, regions, effect.NewCompositor(), testOptions())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Interior pixel inverted by the effect pass: 255-50 = 205.
	r, g, b, _ := out.At(50, 50).RGBA()
	if r>>8 != 205 || g>>8 != 205 || b>>8 != 205 {
		t.Errorf("effect pixel: got (%d,%d,%d), want (205,205,205)", r>>8, g>>8, b>>8)
	}

	// Source untouched.
	if px := src.NRGBAAt(50, 50); px != (color.NRGBA{R: 50, G: 50, B: 50, A: 255}) {
		t.Errorf("source modified: %v", px)
	}
}

func TestCompose_BadKind(t *testing.T) {
	src := flatImage(50, 50, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	if _, err := Compose(src, []region.Region{
		{ID: 1, Center: image.Pt(25, 25), Radius: 10, Kind: "mosaic"},
	}, effect.NewCompositor(), testOptions()); err == nil {
		t.Error("Compose with unknown kind should fail")
	}
}

func TestPreview_DrawsWithoutCommitting(t *testing.T) {
	frame := flatImage(100, 100, color.NRGBA{R: 50, G: 50, B: 50, A: 255})

	out := Preview(frame, image.Pt(50, 50), 20, color.NRGBA{R: 255, A: 255})

	diff := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if out.At(x, y) != frame.At(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("Preview drew nothing")
	}
	if px := frame.NRGBAAt(70, 50); px != (color.NRGBA{R: 50, G: 50, B: 50, A: 255}) {
		t.Error("Preview modified its input frame")
	}
}

func TestViewport_ZoomAndPan(t *testing.T) {
	frame := flatImage(10, 10, color.NRGBA{R: 200, G: 0, B: 0, A: 255})
	view := geom.ViewState{Zoom: 2, PanX: 5, PanY: 5}

	out := Viewport(frame, view, 40, 30)

	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("viewport size: got %dx%d, want 40x30", b.Dx(), b.Dy())
	}

	// Before the pan offset the canvas is black, after it the frame shows.
	if px := out.NRGBAAt(2, 2); px.R != 0 {
		t.Errorf("canvas pixel: got %v, want black", px)
	}
	if px := out.NRGBAAt(6, 6); px.R != 200 {
		t.Errorf("frame pixel: got %v, want red", px)
	}
	// The scaled frame ends at 5+20=25.
	if px := out.NRGBAAt(27, 6); px.R != 0 {
		t.Errorf("pixel past frame edge: got %v, want black", px)
	}
}

func TestViewport_NegativePan(t *testing.T) {
	frame := flatImage(10, 10, color.NRGBA{R: 200, G: 0, B: 0, A: 255})
	view := geom.ViewState{Zoom: 1, PanX: -5, PanY: -5}

	out := Viewport(frame, view, 20, 20)

	if px := out.NRGBAAt(0, 0); px.R != 200 {
		t.Errorf("clipped frame pixel: got %v, want red", px)
	}
	if px := out.NRGBAAt(10, 10); px.R != 0 {
		t.Errorf("pixel past clipped frame: got %v, want black", px)
	}
}

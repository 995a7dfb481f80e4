package geom

import (
	"image"
	"math"
)

// ViewState describes how an image is currently presented: a zoom factor and
// a pan offset in display pixels. Display coordinates relate to image
// coordinates by
//
//	display = image*Zoom + Pan
//
// The zero value has zoom 0 and is not usable; start from Identity.
type ViewState struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// Identity returns the untransformed view: zoom 1.0, no pan.
func Identity() ViewState {
	return ViewState{Zoom: 1}
}

// ToImage converts display coordinates to image coordinates.
func (v ViewState) ToImage(dx, dy float64) (float64, float64) {
	return (dx - v.PanX) / v.Zoom, (dy - v.PanY) / v.Zoom
}

// ToDisplay converts image coordinates to display coordinates.
func (v ViewState) ToDisplay(ix, iy float64) (float64, float64) {
	return ix*v.Zoom + v.PanX, iy*v.Zoom + v.PanY
}

// ImagePoint converts a display point to the nearest integer image pixel.
func (v ViewState) ImagePoint(p image.Point) image.Point {
	x, y := v.ToImage(float64(p.X), float64(p.Y))
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// DisplayPoint converts an image pixel to the nearest display pixel.
func (v ViewState) DisplayPoint(p image.Point) image.Point {
	x, y := v.ToDisplay(float64(p.X), float64(p.Y))
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// Shifted returns the view panned by (dx, dy) display pixels.
func (v ViewState) Shifted(dx, dy float64) ViewState {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Mapper applies zoom changes within a configured range.
//
// Zoom requests outside [MinZoom, MaxZoom] are clamped silently; callers
// never see an error for over-zooming, the view simply stops changing.
type Mapper struct {
	MinZoom float64
	MaxZoom float64
}

// ClampZoom limits z to the mapper's range.
func (m Mapper) ClampZoom(z float64) float64 {
	if z < m.MinZoom {
		return m.MinZoom
	}
	if z > m.MaxZoom {
		return m.MaxZoom
	}
	return z
}

// ZoomAt returns v zoomed by factor with the image point under cursor kept
// stationary on screen. The pan offset is re-solved against the clamped zoom
// so that
//
//	cursor == imagePoint*newZoom + newPan
//
// holds exactly. A factor that would leave the clamped range returns a view
// with the same zoom but still re-anchored, so repeated calls at the limit
// are stable.
func (m Mapper) ZoomAt(v ViewState, cursor image.Point, factor float64) ViewState {
	target := m.ClampZoom(v.Zoom * factor)
	ix, iy := v.ToImage(float64(cursor.X), float64(cursor.Y))
	return ViewState{
		Zoom: target,
		PanX: float64(cursor.X) - ix*target,
		PanY: float64(cursor.Y) - iy*target,
	}
}

// FitZoom returns the zoom that fits an image inside a display budget while
// preserving aspect ratio. Images already inside the budget are not scaled
// up; the result is at most 1.
func FitZoom(imgW, imgH, maxW, maxH int) float64 {
	if imgW <= 0 || imgH <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}
	s := math.Min(float64(maxW)/float64(imgW), float64(maxH)/float64(imgH))
	if s >= 1 {
		return 1
	}
	return s
}

// Radius returns the Euclidean distance between two image points rounded to
// the nearest pixel, used for circle radii dragged out from a center.
func Radius(center, edge image.Point) int {
	dx := float64(edge.X - center.X)
	dy := float64(edge.Y - center.Y)
	return int(math.Round(math.Hypot(dx, dy)))
}

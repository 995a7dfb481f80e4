// Package geom maps between display coordinates and image coordinates.
//
// The editor presents an image through a ViewState (zoom factor plus pan
// offset). Pointer input arrives in display space; regions are stored in
// image space so they survive any later view change. This package owns the
// forward and inverse transforms, cursor-anchored zooming, and the small
// pieces of circle geometry the editor needs.
//
// # Coordinate Spaces
//
//   - Image space: pixel coordinates of the source raster. Regions, effect
//     masks and exports all live here.
//   - Display space: pixel coordinates of the presented view, related to
//     image space by display = image*zoom + pan.
//
// Round-tripping a point through ToDisplay then ToImage (or the reverse)
// reproduces it exactly in float space; the integer helpers ImagePoint and
// DisplayPoint round once, so a round trip through them is within one pixel.
package geom

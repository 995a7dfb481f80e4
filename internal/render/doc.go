// Package render builds the frames the editor presents and saves.
//
// A frame is always composed the same way: flatten the ordered region list
// onto a fresh copy of the source (package effect), then draw the marker
// overlay on top. The overlay pass draws rings and label chips with vector
// graphics and may touch pixels outside the region circles; the strict
// only-inside-the-mask guarantee applies to the effect pass underneath,
// not to markers, which exist to be seen.
//
// Viewport turns a composed frame into what the display actually shows
// under the current zoom and pan.
package render

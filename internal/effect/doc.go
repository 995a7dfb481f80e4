// Package effect implements the pixel treatments applied inside circular
// regions.
//
// Seven kinds are supported: highlight, blur, pixelate, darken, grayscale,
// invert and outline. All of them are masked by the same inclusive disk
// test, (x-cx)^2 + (y-cy)^2 <= r^2, and all of them go through a single
// copy-on-write entry point so callers can rely on two guarantees:
//
//   - The input image is never modified.
//   - In the returned copy, every pixel outside the circle is byte-identical
//     to the input. Only masked pixels may differ.
//
// # Rendering Model
//
// Effects are not accumulated onto previous renders. Flatten starts from the
// unmodified source image and folds the ordered region list over it, so the
// displayed frame is always a pure function of (source, regions). Undoing a
// region and re-flattening yields exactly the frame from before that region
// existed.
//
// # Kind Semantics
//
//   - highlight / darken: lightness shift in HSL space, scaled by the
//     remaining headroom so no channel clips
//   - blur: gaussian blur whose radius grows with the region radius
//   - pixelate: mosaic of block-mean cells over the circle's bounding box
//   - grayscale: luminance-weighted desaturation
//   - invert: per-channel complement
//   - outline: marker-colored ring band; the interior is left untouched
//
// Circles may extend past the image edge; the off-image part is clipped and
// the rest is applied normally.
package effect

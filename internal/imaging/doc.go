// Package imaging handles the disk side of the editor: decoding source
// images, caching the decoded pixels, probing files during batch discovery
// and writing rendered output.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP and TIFF are decoded; the format is detected from the
// file contents, not the extension. Output encoding is chosen by the target
// file's extension.
//
// # Caching
//
// Decoded images are kept in an ImageCache keyed by path. The editor reuses
// the cache across batch navigation so flipping between images does not
// re-decode them; Evict and Clear are available when memory matters more
// than speed.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Probe and SaveImage are stateless.
package imaging

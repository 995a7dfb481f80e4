// Package region defines the labeled circular regions drawn onto an image
// and the per-image store that owns them.
//
// A Region couples a circle in image coordinates with an effect kind and a
// free-text label. The Store keeps regions in creation order and assigns
// monotonically increasing ids that are never reused, which keeps exported
// reports unambiguous even after undos. Stores repair bad geometry instead
// of rejecting it: a degenerate drag still produces a usable region.
package region

package region

import (
	"image"
	"strconv"
	"strings"
)

// Kind identifies the pixel treatment applied inside a region's circle.
type Kind string

// Effect kinds in selector order. The numeric shortcuts 1..7 accepted by
// ParseKind follow this order.
const (
	KindHighlight Kind = "highlight"
	KindBlur      Kind = "blur"
	KindPixelate  Kind = "pixelate"
	KindDarken    Kind = "darken"
	KindGrayscale Kind = "grayscale"
	KindInvert    Kind = "invert"
	KindOutline   Kind = "outline"
)

// Kinds returns all effect kinds in selector order.
func Kinds() []Kind {
	return []Kind{
		KindHighlight,
		KindBlur,
		KindPixelate,
		KindDarken,
		KindGrayscale,
		KindInvert,
		KindOutline,
	}
}

// Valid reports whether k names a known effect kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Tag returns the three-letter uppercase tag used in overlays and listings,
// e.g. "BLU" for blur.
func (k Kind) Tag() string {
	if len(k) < 3 {
		return strings.ToUpper(string(k))
	}
	return strings.ToUpper(string(k)[:3])
}

// ParseKind resolves a kind from its name or its 1-based selector index.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, bool) {
	kinds := Kinds()
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(kinds) {
			return "", false
		}
		return kinds[n-1], true
	}
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

// Region is one labeled circular area on an image.
//
// Center and Radius are in image coordinates, so a region is independent of
// whatever zoom or pan the view had when it was drawn. The label may be
// empty. IDs are assigned by the owning Store and are never reused within
// one store, even after an undo.
type Region struct {
	ID     int
	Center image.Point
	Radius int
	Kind   Kind
	Label  string
}

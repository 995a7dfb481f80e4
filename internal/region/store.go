package region

import "image"

// Store holds the labeled regions of one image in creation order.
//
// A store belongs to a single image and lives as long as its batch entry, so
// regions survive navigating away and back. It is driven from the editor's
// single goroutine and is not safe for concurrent use.
//
// Degenerate geometry is repaired rather than rejected: radii below the
// store minimum are raised to it and centers outside the image are moved to
// the nearest in-bounds pixel. Append therefore never fails.
type Store struct {
	bounds    image.Rectangle
	minRadius int
	regions   []Region
	nextID    int
}

// NewStore creates an empty store clamping against bounds. minRadius is the
// smallest radius Append will produce; values below 1 are treated as 1.
func NewStore(bounds image.Rectangle, minRadius int) *Store {
	if minRadius < 1 {
		minRadius = 1
	}
	return &Store{
		bounds:    bounds,
		minRadius: minRadius,
		nextID:    1,
	}
}

// Bounds returns the image rectangle the store clamps centers against.
func (s *Store) Bounds() image.Rectangle {
	return s.bounds
}

// Len returns the number of regions currently held.
func (s *Store) Len() int {
	return len(s.regions)
}

// Append adds a new region and returns it with its assigned id. The radius
// is clamped up to the store minimum and the center into the image bounds.
func (s *Store) Append(center image.Point, radius int, kind Kind, label string) Region {
	if radius < s.minRadius {
		radius = s.minRadius
	}
	r := Region{
		ID:     s.nextID,
		Center: clampPoint(center, s.bounds),
		Radius: radius,
		Kind:   kind,
		Label:  label,
	}
	s.nextID++
	s.regions = append(s.regions, r)
	return r
}

// Undo removes the most recently added region and returns it. On an empty
// store it reports false and changes nothing. The removed region's id is
// not reassigned to later regions.
func (s *Store) Undo() (Region, bool) {
	if len(s.regions) == 0 {
		return Region{}, false
	}
	last := s.regions[len(s.regions)-1]
	s.regions = s.regions[:len(s.regions)-1]
	return last, true
}

// EditLabel rewrites the label of the most recent region and returns the
// updated region. It reports false on an empty store.
func (s *Store) EditLabel(label string) (Region, bool) {
	if len(s.regions) == 0 {
		return Region{}, false
	}
	s.regions[len(s.regions)-1].Label = label
	return s.regions[len(s.regions)-1], true
}

// EditLabelByID rewrites the label of the region with the given id. It
// reports false when no region has that id.
func (s *Store) EditLabelByID(id int, label string) (Region, bool) {
	for i := range s.regions {
		if s.regions[i].ID == id {
			s.regions[i].Label = label
			return s.regions[i], true
		}
	}
	return Region{}, false
}

// List returns the regions in creation order. The returned slice is a copy;
// later store mutations do not affect it.
func (s *Store) List() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Clear removes all regions and returns how many were dropped. Ids continue
// from where they were, so cleared ids never come back.
func (s *Store) Clear() int {
	n := len(s.regions)
	s.regions = nil
	return n
}

func clampPoint(p image.Point, r image.Rectangle) image.Point {
	if r.Empty() {
		return p
	}
	if p.X < r.Min.X {
		p.X = r.Min.X
	}
	if p.X > r.Max.X-1 {
		p.X = r.Max.X - 1
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	}
	if p.Y > r.Max.Y-1 {
		p.Y = r.Max.Y - 1
	}
	return p
}

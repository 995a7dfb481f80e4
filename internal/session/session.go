package session

import (
	"fmt"
	"image"

	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/region"
)

// Entry pairs one source image with its region store and lifecycle status.
//
// All region mutations go through Entry methods so the status machine
// cannot be bypassed: whatever mutates the store also decides whether the
// image became dirty.
type Entry struct {
	Source imaging.SourceInfo
	Store  *region.Store

	status Status
}

// NewEntry creates a FRESH entry for a probed source image.
func NewEntry(src imaging.SourceInfo, minRadius int) *Entry {
	return &Entry{
		Source: src,
		Store:  region.NewStore(image.Rect(0, 0, src.Width, src.Height), minRadius),
	}
}

// Status returns the entry's lifecycle state.
func (e *Entry) Status() Status {
	return e.status
}

// Append adds a region and marks the entry edited.
func (e *Entry) Append(center image.Point, radius int, kind region.Kind, label string) region.Region {
	r := e.Store.Append(center, radius, kind, label)
	e.status = StatusEdited
	return r
}

// Undo removes the most recent region. The entry becomes edited only when
// something was actually removed.
func (e *Entry) Undo() (region.Region, bool) {
	r, ok := e.Store.Undo()
	if ok {
		e.status = StatusEdited
	}
	return r, ok
}

// EditLabelLast rewrites the newest region's label.
func (e *Entry) EditLabelLast(label string) (region.Region, bool) {
	r, ok := e.Store.EditLabel(label)
	if ok {
		e.status = StatusEdited
	}
	return r, ok
}

// EditLabelByID rewrites the label of the region with the given id.
func (e *Entry) EditLabelByID(id int, label string) (region.Region, bool) {
	r, ok := e.Store.EditLabelByID(id, label)
	if ok {
		e.status = StatusEdited
	}
	return r, ok
}

// Clear drops all regions. The entry becomes edited only when at least one
// region was removed.
func (e *Entry) Clear() int {
	n := e.Store.Clear()
	if n > 0 {
		e.status = StatusEdited
	}
	return n
}

// Snapshot freezes the entry for export. The region slice is a copy, so
// exporters never observe later mutations.
func (e *Entry) Snapshot() Snapshot {
	return Snapshot{
		Source:  e.Source,
		Regions: e.Store.List(),
	}
}

// Snapshot is a frozen view of one entry handed to persisters.
type Snapshot struct {
	Source  imaging.SourceInfo
	Regions []region.Region
}

// Persister stores a snapshot outside the session, typically as an
// annotated image plus record files.
type Persister interface {
	Persist(Snapshot) error
}

// Batch is the ordered set of entries a labeling session walks over,
// with a cursor for the image currently being edited.
//
// Navigation is non-destructive: moving the cursor touches neither stores
// nor statuses, so regions drawn on one image are still there after any
// amount of moving around.
type Batch struct {
	entries []*Entry
	cursor  int
}

// NewBatch builds a batch over the given entries. The cursor starts at the
// first entry.
func NewBatch(entries []*Entry) *Batch {
	return &Batch{entries: entries}
}

// Len returns the number of entries.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Index returns the 0-based cursor position.
func (b *Batch) Index() int {
	return b.cursor
}

// Current returns the entry under the cursor, or nil for an empty batch.
func (b *Batch) Current() *Entry {
	if len(b.entries) == 0 {
		return nil
	}
	return b.entries[b.cursor]
}

// Entries returns the entries in batch order.
func (b *Batch) Entries() []*Entry {
	return b.entries
}

// Next advances the cursor and reports whether it moved. At the last entry
// the cursor stays put.
func (b *Batch) Next() bool {
	if b.cursor >= len(b.entries)-1 {
		return false
	}
	b.cursor++
	return true
}

// Prev moves the cursor back and reports whether it moved.
func (b *Batch) Prev() bool {
	if b.cursor <= 0 {
		return false
	}
	b.cursor--
	return true
}

// Persist hands a snapshot of the entry to p and, only if that succeeds,
// marks the entry SAVED. On failure the status is left exactly as it was,
// so the save can be retried.
func (b *Batch) Persist(e *Entry, p Persister) error {
	if err := p.Persist(e.Snapshot()); err != nil {
		return fmt.Errorf("persist %s: %w", e.Source.Name, err)
	}
	e.status = StatusSaved
	return nil
}

// Summary aggregates the whole batch for the end-of-session report.
type Summary struct {
	TotalImages  int            `json:"total_images"`
	EditedImages int            `json:"edited_images"`
	SavedImages  int            `json:"saved_images"`
	TotalRegions int            `json:"total_regions"`
	Images       []ImageSummary `json:"images"`
}

// ImageSummary is one batch entry's line in the summary.
type ImageSummary struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Regions int      `json:"regions"`
	Labels  []string `json:"labels"`
}

// Summarize reports per-image counts and aggregate totals. It is valid for
// any batch state, including one where nothing was ever edited.
func (b *Batch) Summarize() Summary {
	s := Summary{
		TotalImages: len(b.entries),
		Images:      make([]ImageSummary, 0, len(b.entries)),
	}
	for _, e := range b.entries {
		regions := e.Store.List()
		labels := make([]string, 0, len(regions))
		for _, r := range regions {
			labels = append(labels, r.Label)
		}
		s.Images = append(s.Images, ImageSummary{
			Name:    e.Source.Name,
			Status:  e.status.String(),
			Regions: len(regions),
			Labels:  labels,
		})
		s.TotalRegions += len(regions)
		switch e.status {
		case StatusEdited:
			s.EditedImages++
		case StatusSaved:
			s.SavedImages++
		}
	}
	return s
}

package session

import (
	"errors"
	"image"
	"testing"

	"github.com/circlemark/circlemark/internal/imaging"
	"github.com/circlemark/circlemark/internal/region"
)

func testSource(name string) imaging.SourceInfo {
	return imaging.SourceInfo{
		Path:   "/img/" + name,
		Name:   name,
		Width:  640,
		Height: 480,
		Format: "png",
	}
}

type persisterFunc func(Snapshot) error

func (f persisterFunc) Persist(s Snapshot) error { return f(s) }

func TestEntry_StatusTransitions(t *testing.T) {
	e := NewEntry(testSource("a.png"), 5)

	if e.Status() != StatusFresh {
		t.Fatalf("initial status: got %v, want FRESH", e.Status())
	}

	e.Append(image.Pt(100, 100), 30, region.KindBlur, "scratch")
	if e.Status() != StatusEdited {
		t.Errorf("status after append: got %v, want EDITED", e.Status())
	}

	ok := persisterFunc(func(Snapshot) error { return nil })
	if err := NewBatch([]*Entry{e}).Persist(e, ok); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if e.Status() != StatusSaved {
		t.Errorf("status after persist: got %v, want SAVED", e.Status())
	}

	// Mutating a saved image dirties it again.
	if _, undone := e.Undo(); !undone {
		t.Fatal("Undo failed on non-empty store")
	}
	if e.Status() != StatusEdited {
		t.Errorf("status after undo of saved image: got %v, want EDITED", e.Status())
	}
}

func TestEntry_NoOpMutationsKeepStatus(t *testing.T) {
	e := NewEntry(testSource("a.png"), 5)

	if _, ok := e.Undo(); ok {
		t.Error("Undo on empty store reported success")
	}
	if _, ok := e.EditLabelLast("x"); ok {
		t.Error("EditLabelLast on empty store reported success")
	}
	if _, ok := e.EditLabelByID(9, "x"); ok {
		t.Error("EditLabelByID on empty store reported success")
	}
	if n := e.Clear(); n != 0 {
		t.Errorf("Clear on empty store: got %d, want 0", n)
	}

	if e.Status() != StatusFresh {
		t.Errorf("status after no-op mutations: got %v, want FRESH", e.Status())
	}
}

func TestEntry_LabelEditDirties(t *testing.T) {
	e := NewEntry(testSource("a.png"), 5)
	e.Append(image.Pt(50, 50), 20, region.KindOutline, "old")

	saved := persisterFunc(func(Snapshot) error { return nil })
	if err := NewBatch([]*Entry{e}).Persist(e, saved); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	if _, ok := e.EditLabelLast("new"); !ok {
		t.Fatal("EditLabelLast failed")
	}
	if e.Status() != StatusEdited {
		t.Errorf("status after label edit: got %v, want EDITED", e.Status())
	}
}

func TestBatch_PersistFailureKeepsStatus(t *testing.T) {
	e := NewEntry(testSource("a.png"), 5)
	e.Append(image.Pt(100, 100), 30, region.KindBlur, "scratch")

	failing := persisterFunc(func(Snapshot) error { return errors.New("disk full") })
	err := NewBatch([]*Entry{e}).Persist(e, failing)
	if err == nil {
		t.Fatal("Persist should propagate the persister error")
	}
	if e.Status() != StatusEdited {
		t.Errorf("status after failed persist: got %v, want EDITED", e.Status())
	}
	if e.Store.Len() != 1 {
		t.Errorf("store length after failed persist: got %d, want 1", e.Store.Len())
	}
}

func TestEntry_SnapshotIsFrozen(t *testing.T) {
	e := NewEntry(testSource("a.png"), 5)
	e.Append(image.Pt(100, 100), 30, region.KindBlur, "scratch")

	snap := e.Snapshot()
	e.Append(image.Pt(10, 10), 10, region.KindInvert, "later")

	if len(snap.Regions) != 1 {
		t.Errorf("snapshot grew with the store: got %d regions, want 1", len(snap.Regions))
	}
	if snap.Source.Name != "a.png" {
		t.Errorf("snapshot source: got %s, want a.png", snap.Source.Name)
	}
}

func TestBatch_NavigationRetainsState(t *testing.T) {
	entries := []*Entry{
		NewEntry(testSource("a.png"), 5),
		NewEntry(testSource("b.png"), 5),
		NewEntry(testSource("c.png"), 5),
	}
	b := NewBatch(entries)

	b.Current().Append(image.Pt(100, 100), 25, region.KindDarken, "dent")

	if !b.Next() || !b.Next() {
		t.Fatal("Next failed inside batch")
	}
	if b.Next() {
		t.Error("Next at last entry should report false")
	}
	if !b.Prev() || !b.Prev() {
		t.Fatal("Prev failed inside batch")
	}
	if b.Prev() {
		t.Error("Prev at first entry should report false")
	}

	if b.Index() != 0 {
		t.Fatalf("cursor after round trip: got %d, want 0", b.Index())
	}
	cur := b.Current()
	if cur.Store.Len() != 1 {
		t.Errorf("regions lost while navigating: got %d, want 1", cur.Store.Len())
	}
	if cur.Status() != StatusEdited {
		t.Errorf("status changed by navigation: got %v, want EDITED", cur.Status())
	}
	if entries[1].Status() != StatusFresh || entries[2].Status() != StatusFresh {
		t.Error("navigation changed status of untouched entries")
	}
}

func TestBatch_Summarize(t *testing.T) {
	entries := []*Entry{
		NewEntry(testSource("a.png"), 5),
		NewEntry(testSource("b.png"), 5),
		NewEntry(testSource("c.png"), 5),
	}
	b := NewBatch(entries)

	entries[0].Append(image.Pt(10, 10), 10, region.KindBlur, "one")
	entries[0].Append(image.Pt(40, 40), 10, region.KindBlur, "two")
	entries[1].Append(image.Pt(20, 20), 10, region.KindInvert, "three")
	ok := persisterFunc(func(Snapshot) error { return nil })
	if err := b.Persist(entries[1], ok); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	s := b.Summarize()
	if s.TotalImages != 3 || s.EditedImages != 1 || s.SavedImages != 1 {
		t.Errorf("counts: got images=%d edited=%d saved=%d, want 3/1/1",
			s.TotalImages, s.EditedImages, s.SavedImages)
	}
	if s.TotalRegions != 3 {
		t.Errorf("TotalRegions: got %d, want 3", s.TotalRegions)
	}
	if len(s.Images) != 3 {
		t.Fatalf("per-image rows: got %d, want 3", len(s.Images))
	}
	if s.Images[0].Regions != 2 || s.Images[0].Status != "EDITED" {
		t.Errorf("row 0: got %+v", s.Images[0])
	}
	if s.Images[2].Regions != 0 || s.Images[2].Status != "FRESH" {
		t.Errorf("row 2: got %+v", s.Images[2])
	}
}

func TestBatch_SummarizeNothingEdited(t *testing.T) {
	b := NewBatch([]*Entry{
		NewEntry(testSource("a.png"), 5),
		NewEntry(testSource("b.png"), 5),
	})

	s := b.Summarize()
	if s.TotalImages != 2 || s.EditedImages != 0 || s.SavedImages != 0 || s.TotalRegions != 0 {
		t.Errorf("zero-edit summary: got %+v", s)
	}
}

func TestBatch_Empty(t *testing.T) {
	b := NewBatch(nil)

	if b.Current() != nil {
		t.Error("Current on empty batch should be nil")
	}
	if b.Next() || b.Prev() {
		t.Error("navigation on empty batch should report false")
	}
	if s := b.Summarize(); s.TotalImages != 0 {
		t.Errorf("empty batch summary: got %+v", s)
	}
}

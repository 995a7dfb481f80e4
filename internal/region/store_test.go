package region

import (
	"image"
	"testing"
)

func TestStore_AppendAssignsMonotonicIDs(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	first := s.Append(image.Pt(50, 50), 20, KindBlur, "one")
	second := s.Append(image.Pt(60, 60), 20, KindInvert, "two")

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids: got %d and %d, want 1 and 2", first.ID, second.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestStore_IDsNotReusedAfterUndo(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "a")
	s.Append(image.Pt(60, 60), 20, KindBlur, "b")

	removed, ok := s.Undo()
	if !ok || removed.ID != 2 {
		t.Fatalf("Undo: got (%v, %v), want region 2", removed, ok)
	}

	next := s.Append(image.Pt(70, 70), 20, KindBlur, "c")
	if next.ID != 3 {
		t.Errorf("id after undo: got %d, want 3", next.ID)
	}
}

func TestStore_UndoRestoresPreviousState(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "keep")
	before := s.List()
	s.Append(image.Pt(60, 60), 30, KindDarken, "drop")

	if _, ok := s.Undo(); !ok {
		t.Fatal("Undo failed on non-empty store")
	}

	after := s.List()
	if len(after) != len(before) {
		t.Fatalf("length after undo: got %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("region %d after undo: got %+v, want %+v", i, after[i], before[i])
		}
	}
}

func TestStore_UndoEmptyIsNoOp(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	if _, ok := s.Undo(); ok {
		t.Error("Undo on empty store reported success")
	}
}

func TestStore_RadiusClampedToMinimum(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	tests := []struct {
		name   string
		radius int
		want   int
	}{
		{"zero drag", 0, 5},
		{"tiny drag", 3, 5},
		{"at minimum", 5, 5},
		{"normal", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Append(image.Pt(100, 100), tt.radius, KindHighlight, "")
			if r.Radius != tt.want {
				t.Errorf("radius: got %d, want %d", r.Radius, tt.want)
			}
		})
	}
}

func TestStore_CenterClampedIntoBounds(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 100, 80), 5)

	tests := []struct {
		name   string
		center image.Point
		want   image.Point
	}{
		{"inside", image.Pt(50, 40), image.Pt(50, 40)},
		{"left of image", image.Pt(-10, 40), image.Pt(0, 40)},
		{"beyond right edge", image.Pt(150, 40), image.Pt(99, 40)},
		{"above", image.Pt(50, -3), image.Pt(50, 0)},
		{"below", image.Pt(50, 200), image.Pt(50, 79)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Append(tt.center, 10, KindBlur, "")
			if r.Center != tt.want {
				t.Errorf("center: got %v, want %v", r.Center, tt.want)
			}
		})
	}
}

func TestStore_EditLabel(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "old")
	s.Append(image.Pt(60, 60), 20, KindBlur, "newest")

	r, ok := s.EditLabel("renamed")
	if !ok {
		t.Fatal("EditLabel failed on non-empty store")
	}
	if r.ID != 2 || r.Label != "renamed" {
		t.Errorf("edited region: got id=%d label=%q, want id=2 label=%q", r.ID, r.Label, "renamed")
	}
	if got := s.List()[0].Label; got != "old" {
		t.Errorf("older region label changed: got %q, want %q", got, "old")
	}
}

func TestStore_EditLabelByID(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "first")
	s.Append(image.Pt(60, 60), 20, KindBlur, "second")

	r, ok := s.EditLabelByID(1, "changed")
	if !ok || r.Label != "changed" {
		t.Fatalf("EditLabelByID(1): got (%+v, %v), want label %q", r, ok, "changed")
	}

	if _, ok := s.EditLabelByID(99, "nope"); ok {
		t.Error("EditLabelByID with unknown id reported success")
	}
}

func TestStore_EditLabelEmptyStore(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	if _, ok := s.EditLabel("x"); ok {
		t.Error("EditLabel on empty store reported success")
	}
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "a")
	listed := s.List()
	s.Undo()

	if len(listed) != 1 || listed[0].Label != "a" {
		t.Errorf("earlier List affected by later mutation: %+v", listed)
	}

	// Mutating the copy must not reach the store.
	s.Append(image.Pt(60, 60), 20, KindBlur, "b")
	listed = s.List()
	listed[0].Label = "tampered"
	if got := s.List()[0].Label; got != "b" {
		t.Errorf("store label after tampering with copy: got %q, want %q", got, "b")
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(image.Rect(0, 0, 200, 200), 5)

	s.Append(image.Pt(50, 50), 20, KindBlur, "a")
	s.Append(image.Pt(60, 60), 20, KindBlur, "b")

	if n := s.Clear(); n != 2 {
		t.Errorf("Clear: got %d, want 2", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", s.Len())
	}
	if n := s.Clear(); n != 0 {
		t.Errorf("Clear on empty store: got %d, want 0", n)
	}

	r := s.Append(image.Pt(70, 70), 20, KindBlur, "c")
	if r.ID != 3 {
		t.Errorf("id after clear: got %d, want 3", r.ID)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOK bool
	}{
		{"blur", KindBlur, true},
		{"BLUR", KindBlur, true},
		{" highlight ", KindHighlight, true},
		{"1", KindHighlight, true},
		{"7", KindOutline, true},
		{"0", "", false},
		{"8", "", false},
		{"sharpen", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q): got (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKind_Tag(t *testing.T) {
	if got := KindPixelate.Tag(); got != "PIX" {
		t.Errorf("Tag: got %q, want %q", got, "PIX")
	}
	if got := KindGrayscale.Tag(); got != "GRA" {
		t.Errorf("Tag: got %q, want %q", got, "GRA")
	}
}

package gridview

import (
	"testing"
)

type selectionRecorder struct {
	applied map[int]bool
	changes int
}

func newSelectionRecorder() (*selectionRecorder, *selectionModel) {
	r := &selectionRecorder{applied: map[int]bool{}}
	s := newSelectionModel(
		func(i int, selected bool) { r.applied[i] = selected },
		func() { r.changes++ },
	)
	return r, s
}

func TestSelectionModel_RoundTrip(t *testing.T) {
	_, s := newSelectionRecorder()

	s.setSelection([]int{5, 1, 3})
	got := s.selection()
	want := []int{1, 3, 5}
	if !equalIndexes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if s.first() != 1 || s.last() != 5 {
		t.Errorf("expected first/last 1/5, got %d/%d", s.first(), s.last())
	}
	if !s.contains(3) || s.contains(2) {
		t.Error("contains misreports membership")
	}
}

func TestSelectionModel_SecondIdenticalCallIsNoOp(t *testing.T) {
	r, s := newSelectionRecorder()

	s.setSelection([]int{2, 4})
	s.setSelection([]int{4, 2}) // same set, different order
	if r.changes != 1 {
		t.Fatalf("expected exactly one change notification, got %d", r.changes)
	}
}

func TestSelectionModel_NormalizesDuplicates(t *testing.T) {
	_, s := newSelectionRecorder()
	s.setSelection([]int{3, 3, 1, 1, 2})
	if got := s.selection(); !equalIndexes(got, []int{1, 2, 3}) {
		t.Fatalf("expected deduplicated ascending set, got %v", got)
	}
}

func TestSelectionModel_ReplaceDeselectsOldSelectsNew(t *testing.T) {
	r, s := newSelectionRecorder()

	s.setSelection([]int{0, 1})
	s.setSelection([]int{2})
	if r.applied[0] || r.applied[1] {
		t.Error("old indexes should be visually deselected")
	}
	if !r.applied[2] {
		t.Error("new index should be visually selected")
	}
	if r.changes != 2 {
		t.Errorf("expected two notifications, got %d", r.changes)
	}
}

func TestSelectionModel_DisabledIgnoresMutations(t *testing.T) {
	r, s := newSelectionRecorder()
	s.setSelectable(false)

	s.setSelection([]int{1})
	if !s.isEmpty() {
		t.Fatal("mutation while disabled should be ignored")
	}
	if r.changes != 0 {
		t.Fatalf("expected no notifications, got %d", r.changes)
	}
}

func TestSelectionModel_DisableKeepsSetClearsVisual(t *testing.T) {
	r, s := newSelectionRecorder()
	s.setSelection([]int{1, 2})

	s.setSelectable(false)
	if r.applied[1] || r.applied[2] {
		t.Error("disabling should deselect in-range items")
	}
	if got := s.selection(); !equalIndexes(got, []int{1, 2}) {
		t.Fatalf("disabling should keep the index set, got %v", got)
	}

	// Re-enabling does not restore visual selection on its own.
	s.setSelectable(true)
	if r.applied[1] || r.applied[2] {
		t.Error("re-enabling must not restore visual selection")
	}
}

func TestSelectionModel_ToggleIndependentOfAnchor(t *testing.T) {
	_, s := newSelectionRecorder()
	s.setSelection([]int{0, 5})

	s.toggle(3)
	if !equalIndexes(s.selection(), []int{0, 3, 5}) {
		t.Fatalf("expected toggle to add 3, got %v", s.selection())
	}
	s.toggle(5)
	if !equalIndexes(s.selection(), []int{0, 3}) {
		t.Fatalf("expected toggle to remove 5, got %v", s.selection())
	}
}

func TestSelectionModel_AddMergesWithExisting(t *testing.T) {
	_, s := newSelectionRecorder()
	s.setSelection([]int{7})
	s.add([]int{2, 3, 4})
	if !equalIndexes(s.selection(), []int{2, 3, 4, 7}) {
		t.Fatalf("expected merged set, got %v", s.selection())
	}
}

func TestSelectionModel_ClearEmptiesSet(t *testing.T) {
	r, s := newSelectionRecorder()
	s.setSelection([]int{1})
	s.clear()
	if !s.isEmpty() {
		t.Fatal("expected empty selection after clear")
	}
	if s.first() != -1 || s.last() != -1 {
		t.Errorf("expected first/last of empty selection to be -1, got %d/%d", s.first(), s.last())
	}
	if r.changes != 2 {
		t.Errorf("expected two notifications, got %d", r.changes)
	}
}

func TestSelectionModel_ApplyToleratesOutOfRange(t *testing.T) {
	// Apply callbacks see whatever indexes the set holds; the grid's
	// projection range-checks. The model itself never prunes.
	_, s := newSelectionRecorder()
	s.setSelection([]int{0, 1, 5})
	if got := s.selection(); !equalIndexes(got, []int{0, 1, 5}) {
		t.Fatalf("expected stale indexes retained, got %v", got)
	}
}

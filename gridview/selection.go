package gridview

import (
	"sort"
)

// selectionModel is the single source of truth for the selected indexes,
// kept in ascending order. The set may reference indexes beyond the current
// item count: content can shrink without the set being pruned, so every read
// site range-checks before dereferencing. Visual selection state is a
// projection of the set onto the in-range items, applied through the apply
// callback.
type selectionModel struct {
	indexes    []int
	selectable bool

	// apply projects one index's selection state onto its item; it must
	// tolerate out-of-range indexes.
	apply func(index int, selected bool)
	// onChanged fires synchronously after every effective mutation.
	onChanged func()
}

func newSelectionModel(apply func(int, bool), onChanged func()) *selectionModel {
	return &selectionModel{
		selectable: true,
		apply:      apply,
		onChanged:  onChanged,
	}
}

// setSelection replaces the selected set. It is a no-op when selection is
// disabled or the new set equals the current one, so repeated identical calls
// emit exactly one change notification.
func (s *selectionModel) setSelection(indexes []int) {
	if !s.selectable {
		return
	}
	next := normalizeIndexes(indexes)
	if equalIndexes(next, s.indexes) {
		return
	}

	for _, i := range s.indexes {
		s.apply(i, false)
	}
	s.indexes = next
	for _, i := range next {
		s.apply(i, true)
	}

	if s.onChanged != nil {
		s.onChanged()
	}
}

func (s *selectionModel) clear() {
	s.setSelection(nil)
}

// add merges indexes into the selection without dropping the existing set.
func (s *selectionModel) add(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	merged := make([]int, 0, len(s.indexes)+len(indexes))
	merged = append(merged, s.indexes...)
	merged = append(merged, indexes...)
	s.setSelection(merged)
}

// toggle flips one index in or out of the selection, independent of any
// anchor.
func (s *selectionModel) toggle(index int) {
	if s.contains(index) {
		next := make([]int, 0, len(s.indexes)-1)
		for _, i := range s.indexes {
			if i != index {
				next = append(next, i)
			}
		}
		s.setSelection(next)
		return
	}
	s.add([]int{index})
}

// setSelectable(false) immediately deselects every in-range item but keeps
// the index set: re-enabling does not restore visual selection. The set
// models "what was last selected"; visual state is a projection.
func (s *selectionModel) setSelectable(selectable bool) {
	if s.selectable == selectable {
		return
	}
	if !selectable {
		for _, i := range s.indexes {
			s.apply(i, false)
		}
	}
	s.selectable = selectable
}

func (s *selectionModel) selection() []int {
	out := make([]int, len(s.indexes))
	copy(out, s.indexes)
	return out
}

func (s *selectionModel) isEmpty() bool {
	return len(s.indexes) == 0
}

// first returns the lowest selected index, or -1 when empty.
func (s *selectionModel) first() int {
	if len(s.indexes) == 0 {
		return -1
	}
	return s.indexes[0]
}

// last returns the highest selected index, or -1 when empty.
func (s *selectionModel) last() int {
	if len(s.indexes) == 0 {
		return -1
	}
	return s.indexes[len(s.indexes)-1]
}

func (s *selectionModel) contains(index int) bool {
	n := sort.SearchInts(s.indexes, index)
	return n < len(s.indexes) && s.indexes[n] == index
}

// reapply re-projects the current set onto the items, used after a content
// reload replaces the item objects.
func (s *selectionModel) reapply() {
	if !s.selectable {
		return
	}
	for _, i := range s.indexes {
		s.apply(i, true)
	}
}

func normalizeIndexes(indexes []int) []int {
	if len(indexes) == 0 {
		return nil
	}
	out := make([]int, len(indexes))
	copy(out, indexes)
	sort.Ints(out)
	// Dedupe in place.
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

func equalIndexes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package cursor

import "sort"

// Set manages an ordered collection of selections.
// Selections are kept sorted by canonical start offset, with overlapping or
// touching selections merged. Unlike a cursor that always exists somewhere,
// a Set may be empty — an empty set is the "null selection" and makes every
// line operation a no-op.
type Set struct {
	selections []Selection
}

// NewSet creates an empty selection set.
func NewSet() *Set {
	return &Set{}
}

// NewSetAt creates a set with a single cursor at the given offset.
func NewSetAt(offset ByteOffset) *Set {
	return &Set{selections: []Selection{NewCursorSelection(offset)}}
}

// NewSetFrom creates a set from the given selections, normalized.
func NewSetFrom(selections ...Selection) *Set {
	s := &Set{selections: make([]Selection, len(selections))}
	copy(s.selections, selections)
	s.normalize()
	return s
}

// All returns a copy of all selections in ascending start order.
func (s *Set) All() []Selection {
	result := make([]Selection, len(s.selections))
	copy(result, s.selections)
	return result
}

// Count returns the number of selections.
func (s *Set) Count() int {
	return len(s.selections)
}

// Primary returns the first selection and whether one exists.
func (s *Set) Primary() (Selection, bool) {
	if len(s.selections) == 0 {
		return Selection{}, false
	}
	return s.selections[0], true
}

// Clear removes all selections, leaving a null selection.
func (s *Set) Clear() {
	s.selections = s.selections[:0]
}

// Add adds a selection, merging with overlapping or touching ones.
func (s *Set) Add(sel Selection) {
	s.selections = append(s.selections, sel)
	s.normalize()
}

// AddAll adds multiple selections.
func (s *Set) AddAll(sels []Selection) {
	s.selections = append(s.selections, sels...)
	s.normalize()
}

// SetAll replaces all selections.
func (s *Set) SetAll(sels []Selection) {
	s.selections = make([]Selection, len(sels))
	copy(s.selections, sels)
	s.normalize()
}

// Remove removes the selection equal to sel, if present.
func (s *Set) Remove(sel Selection) {
	for i, existing := range s.selections {
		if existing.Equals(sel) {
			s.selections = append(s.selections[:i], s.selections[i+1:]...)
			return
		}
	}
}

// Subtract removes every selection whose canonical range lies within
// [r.Start, r.End], including cursors sitting on either boundary.
func (s *Set) Subtract(r Range) {
	kept := s.selections[:0]
	for _, sel := range s.selections {
		if sel.Start() >= r.Start && sel.End() <= r.End {
			continue
		}
		kept = append(kept, sel)
	}
	s.selections = kept
}

// Covering returns the smallest range containing every selection.
// The second return value is false for an empty set.
func (s *Set) Covering() (Range, bool) {
	if len(s.selections) == 0 {
		return Range{}, false
	}
	cover := s.selections[0].Range()
	for _, sel := range s.selections[1:] {
		cover = cover.Union(sel.Range())
	}
	return cover, true
}

// HasSelection returns true if any selection is non-empty (has extent).
func (s *Set) HasSelection() bool {
	for _, sel := range s.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// AllCursors returns true if every selection is a zero-width cursor.
// An empty set reports true vacuously.
func (s *Set) AllCursors() bool {
	return !s.HasSelection()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	clone := &Set{selections: make([]Selection, len(s.selections))}
	copy(clone.selections, s.selections)
	return clone
}

// Equals returns true if two sets contain the same selections in order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.selections) != len(other.selections) {
		return false
	}
	for i, sel := range s.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}

// normalize sorts selections by start and merges overlapping/touching ones.
// Merging loses direction, matching host selection-set behavior.
func (s *Set) normalize() {
	if len(s.selections) <= 1 {
		return
	}

	sort.SliceStable(s.selections, func(i, j int) bool {
		si, sj := s.selections[i].Start(), s.selections[j].Start()
		if si != sj {
			return si < sj
		}
		return s.selections[i].End() > s.selections[j].End()
	})

	merged := s.selections[:1]
	for _, sel := range s.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Start() <= last.End() {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	s.selections = merged
}

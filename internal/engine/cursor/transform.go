package cursor

import "github.com/AlanLynn/lineclip/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
//
// An insertion exactly at the offset pushes the offset right, matching how
// a host buffer moves cursors sitting at the insertion point.
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End <= offset {
		return offset + ByteOffset(edit.Delta())
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformOffsetSticky is like TransformOffset except that an insertion
// exactly at the offset leaves the offset in place instead of pushing it
// to the end of the inserted text.
func TransformOffsetSticky(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.IsEmpty() && edit.Range.Start == offset {
		return offset
	}
	return TransformOffset(offset, edit)
}

// TransformSelection updates a selection after an edit.
// Anchor and head are transformed independently, preserving direction.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformSelectionSticky updates a selection after an edit without
// dragging endpoints that sit exactly at an insertion point.
func TransformSelectionSticky(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, edit),
		Head:   TransformOffsetSticky(sel.Head, edit),
	}
}

// TransformSet updates all selections in a set after an edit.
func TransformSet(s *Set, edit Edit) {
	for i := range s.selections {
		s.selections[i] = TransformSelection(s.selections[i], edit)
	}
	s.normalize()
}

// TransformSetSticky updates all selections in a set after an edit,
// keeping endpoints parked at the insertion point in place. Used when
// appending text at the end of the buffer must not move a cursor
// already sitting there.
func TransformSetSticky(s *Set, edit Edit) {
	for i := range s.selections {
		s.selections[i] = TransformSelectionSticky(s.selections[i], edit)
	}
	s.normalize()
}

// AdjustForDeletion transforms an offset for a plain deletion: offsets
// inside the deleted range collapse to its start.
func AdjustForDeletion(offset ByteOffset, deleteRange Range) ByteOffset {
	if offset <= deleteRange.Start {
		return offset
	}
	if offset < deleteRange.End {
		return deleteRange.Start
	}
	return offset - deleteRange.Len()
}

// AdjustForInsertion transforms an offset for a plain insertion: offsets at
// or after the insertion point shift right.
func AdjustForInsertion(offset, insertOffset, insertLen ByteOffset) ByteOffset {
	if offset < insertOffset {
		return offset
	}
	return offset + insertLen
}

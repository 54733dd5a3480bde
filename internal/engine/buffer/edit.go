package buffer

// Edit represents a single text edit: the range to replace and its new text.
// An insertion has an empty range; a deletion has empty NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an edit that inserts text at the given offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: NewRange(offset, offset), NewText: text}
}

// NewDelete creates an edit that removes the given range.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// NewReplace creates an edit that replaces the given range with text.
func NewReplace(r Range, text string) Edit {
	return Edit{Range: r, NewText: text}
}

// IsInsert returns true if the edit inserts without removing anything.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if the edit removes without inserting anything.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length the edit produces.
func (e Edit) Delta() int64 {
	return int64(len(e.NewText)) - int64(e.Range.Len())
}

// EditResult contains information about a completed edit.
type EditResult struct {
	OldRange Range  // The range that was replaced
	NewRange Range  // The range now occupied by the new text
	OldText  string // The text that was removed
	Delta    int64  // Change in buffer length
}

package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Buffer is a mutable text buffer with byte-offset addressing and a
// maintained line index. Content is stored normalized to LF internally so
// that line arithmetic always works on single-byte separators.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       []byte
	lineStarts []ByteOffset // offset of the first byte of each line; always has at least [0]
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []ByteOffset{0},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.text = []byte(normalizeLineEndings(s))
	b.reindexLocked()
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindexLocked rebuilds the line index. Caller must hold the write lock.
func (b *Buffer) reindexLocked() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i)+1)
		}
	}
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns text in the given byte range, clamped to buffer bounds.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	l := ByteOffset(len(b.text))
	start = clampOffset(start, l)
	end = clampOffset(end, l)
	if start >= end {
		return ""
	}
	return string(b.text[start:end])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset >= ByteOffset(len(b.text)) {
		return 0, false
	}
	return b.text[offset], true
}

// LineCount returns the number of lines. An empty buffer has one (empty)
// line; a buffer ending in a newline has an empty final line after it.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start := b.lineStartLocked(line)
	end := b.lineEndLocked(line)
	return string(b.text[start:end])
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int(b.lineEndLocked(line) - b.lineStartLocked(line))
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column. The offset is
// clamped to buffer bounds; the end-of-buffer offset belongs to the last line.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = clampOffset(offset, ByteOffset(len(b.text)))
	line := b.lineOfLocked(offset)
	return Point{Line: line, Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to byte offset. The line is clamped to
// the last line and the column to the line's length (excluding the newline),
// so a column past the end of a line resolves to the end of that line.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := point.Line
	if max := uint32(len(b.lineStarts)) - 1; line > max {
		line = max
	}
	start := b.lineStarts[line]
	lineLen := b.lineEndLocked(line) - start
	col := ByteOffset(point.Column)
	if col > lineLen {
		col = lineLen
	}
	return start + col
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStartLocked(line)
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEndLocked(line)
}

// LineRange returns the full line containing the given offset, including its
// trailing newline if present.
func (b *Buffer) LineRange(offset ByteOffset) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = clampOffset(offset, ByteOffset(len(b.text)))
	line := b.lineOfLocked(offset)
	start := b.lineStarts[line]
	var end ByteOffset
	if int(line)+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1]
	} else {
		end = ByteOffset(len(b.text))
	}
	return Range{Start: start, End: end}
}

// lineOfLocked returns the line containing offset. Caller must hold a lock.
func (b *Buffer) lineOfLocked(offset ByteOffset) uint32 {
	// First line start greater than offset; the line is the one before it.
	idx := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return uint32(idx - 1)
}

func (b *Buffer) lineStartLocked(line uint32) ByteOffset {
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineStarts[line]
}

func (b *Buffer) lineEndLocked(line uint32) ByteOffset {
	if int(line)+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return ByteOffset(len(b.text))
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(b.text)) {
		return 0, ErrOffsetOutOfRange
	}

	text = normalizeLineEndings(text)
	b.spliceLocked(offset, offset, text)

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		return ErrRangeInvalid
	}

	b.spliceLocked(start, end, "")
	return nil
}

// Replace replaces text in the given range with new text.
// The delete and insert happen as one atomic step.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		return 0, ErrRangeInvalid
	}

	text = normalizeLineEndings(text)
	b.spliceLocked(start, end, text)

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > ByteOffset(len(b.text)) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := string(b.text[edit.Range.Start:edit.Range.End])
	text := normalizeLineEndings(edit.NewText)
	b.spliceLocked(edit.Range.Start, edit.Range.End, text)

	newEnd := edit.Range.Start + ByteOffset(len(text))

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
	}, nil
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) so earlier edits
// never invalidate the offsets of later ones.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	bufLen := ByteOffset(len(b.text))
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > bufLen {
			return ErrRangeInvalid
		}
	}

	for _, edit := range edits {
		b.spliceLocked(edit.Range.Start, edit.Range.End, normalizeLineEndings(edit.NewText))
	}

	return nil
}

// spliceLocked replaces text[start:end] with s and refreshes the line index
// and revision. Caller must hold the write lock and have validated bounds.
func (b *Buffer) spliceLocked(start, end ByteOffset, s string) {
	out := make([]byte, 0, len(b.text)-int(end-start)+len(s))
	out = append(out, b.text[:start]...)
	out = append(out, s...)
	out = append(out, b.text[end:]...)
	b.text = out
	b.reindexLocked()
	b.revisionID = NewRevisionID()
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

func clampOffset(offset, max ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

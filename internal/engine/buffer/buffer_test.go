package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEmpty(t *testing.T) {
	b := New()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got len %d", b.Len())
	}
	if !b.IsEmpty() {
		t.Error("expected IsEmpty")
	}
	if b.LineCount() != 1 {
		t.Errorf("empty buffer should have 1 line, got %d", b.LineCount())
	}
}

func TestNewFromString(t *testing.T) {
	b := NewFromString("line 1\nline 2")
	if b.Text() != "line 1\nline 2" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.Len() != 13 {
		t.Errorf("expected len 13, got %d", b.Len())
	}
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	b := NewFromString("a\r\nb\rc\n")
	if b.Text() != "a\nb\nc\n" {
		t.Errorf("expected normalized text, got %q", b.Text())
	}
}

func TestNewFromReader(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("one\ntwo"))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if b.Text() != "one\ntwo" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestLineCountTrailingNewline(t *testing.T) {
	// A trailing newline opens an empty final line.
	b := NewFromString("line 1\nline 2\n")
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	if b.LineText(2) != "" {
		t.Errorf("expected empty final line, got %q", b.LineText(2))
	}
}

func TestLineText(t *testing.T) {
	b := NewFromString("line 1\n\tline 2\nline 3")
	tests := []struct {
		line uint32
		want string
	}{
		{0, "line 1"},
		{1, "\tline 2"},
		{2, "line 3"},
	}
	for _, tt := range tests {
		if got := b.LineText(tt.line); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLineLen(t *testing.T) {
	b := NewFromString("ab\ncdef\n")
	if b.LineLen(0) != 2 {
		t.Errorf("LineLen(0) = %d, want 2", b.LineLen(0))
	}
	if b.LineLen(1) != 4 {
		t.Errorf("LineLen(1) = %d, want 4", b.LineLen(1))
	}
	if b.LineLen(2) != 0 {
		t.Errorf("LineLen(2) = %d, want 0", b.LineLen(2))
	}
}

func TestOffsetToPoint(t *testing.T) {
	b := NewFromString("line 1\nline 2\nline 3")
	tests := []struct {
		offset ByteOffset
		want   Point
	}{
		{0, Point{0, 0}},
		{5, Point{0, 5}},
		{6, Point{0, 6}},  // on the newline, still line 0
		{7, Point{1, 0}},  // first byte of line 1
		{8, Point{1, 1}},
		{14, Point{2, 0}},
		{20, Point{2, 6}}, // end of buffer belongs to the last line
	}
	for _, tt := range tests {
		if got := b.OffsetToPoint(tt.offset); got != tt.want {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestPointToOffset(t *testing.T) {
	b := NewFromString("line 1\nline 2")
	tests := []struct {
		point Point
		want  ByteOffset
	}{
		{Point{0, 0}, 0},
		{Point{0, 3}, 3},
		{Point{1, 0}, 7},
		{Point{0, 99}, 6},  // column clamps to line length
		{Point{1, 99}, 13}, // last line has no newline to stop short of
		{Point{99, 0}, 7},  // line clamps to last line
	}
	for _, tt := range tests {
		if got := b.PointToOffset(tt.point); got != tt.want {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.want)
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	b := NewFromString("alpha\nbeta\n\ngamma")
	for off := ByteOffset(0); off <= b.Len(); off++ {
		p := b.OffsetToPoint(off)
		if got := b.PointToOffset(p); got != off {
			t.Errorf("round trip %d -> %v -> %d", off, p, got)
		}
	}
}

func TestLineRange(t *testing.T) {
	b := NewFromString("line 1\nline 2\nline 3")
	tests := []struct {
		offset ByteOffset
		want   Range
	}{
		{0, Range{0, 7}},
		{6, Range{0, 7}},   // the newline belongs to its line
		{7, Range{7, 14}},
		{8, Range{7, 14}},
		{14, Range{14, 20}}, // last line: no trailing newline
		{20, Range{14, 20}},
	}
	for _, tt := range tests {
		if got := b.LineRange(tt.offset); got != tt.want {
			t.Errorf("LineRange(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestLineRangeBlankLine(t *testing.T) {
	b := NewFromString("line 1\n\nline 3")
	if got := b.LineRange(7); got != (Range{7, 8}) {
		t.Errorf("LineRange(7) = %v, want [7:8)", got)
	}
}

func TestInsert(t *testing.T) {
	b := NewFromString("line 1\nline 2")
	end, err := b.Insert(7, "new ")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if end != 11 {
		t.Errorf("expected end 11, got %d", end)
	}
	if b.Text() != "line 1\nnew line 2" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := NewFromString("abc")
	if _, err := b.Insert(4, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if _, err := b.Insert(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	b := NewFromString("line 1\nline 2")
	if err := b.Delete(0, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Text() != "line 2" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	b := NewFromString("abc")
	if err := b.Delete(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := b.Delete(0, 4); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	b := NewFromString("line 1\nline 2")
	end, err := b.Replace(7, 13, "two")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if end != 10 {
		t.Errorf("expected end 10, got %d", end)
	}
	if b.Text() != "line 1\ntwo" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestApplyEdit(t *testing.T) {
	b := NewFromString("hello world")
	res, err := b.ApplyEdit(NewReplace(NewRange(0, 5), "goodbye"))
	if err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if res.OldText != "hello" {
		t.Errorf("expected old text %q, got %q", "hello", res.OldText)
	}
	if res.NewRange != (Range{0, 7}) {
		t.Errorf("expected new range [0:7), got %v", res.NewRange)
	}
	if res.Delta != 2 {
		t.Errorf("expected delta 2, got %d", res.Delta)
	}
	if b.Text() != "goodbye world" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestApplyEditsReverseOrder(t *testing.T) {
	b := NewFromString("aaa bbb ccc")
	edits := []Edit{
		NewReplace(NewRange(8, 11), "C"),
		NewReplace(NewRange(4, 7), "B"),
		NewReplace(NewRange(0, 3), "A"),
	}
	if err := b.ApplyEdits(edits); err != nil {
		t.Fatalf("ApplyEdits: %v", err)
	}
	if b.Text() != "A B C" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestApplyEditsRejectsOverlap(t *testing.T) {
	b := NewFromString("aaa bbb ccc")
	edits := []Edit{
		NewReplace(NewRange(0, 3), "A"),
		NewReplace(NewRange(4, 7), "B"),
	}
	if err := b.ApplyEdits(edits); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("expected ErrEditsOverlap, got %v", err)
	}
	if b.Text() != "aaa bbb ccc" {
		t.Errorf("buffer should be unchanged, got %q", b.Text())
	}
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	b := NewFromString("abc")
	before := b.RevisionID()
	if _, err := b.Insert(0, "x"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.RevisionID() == before {
		t.Error("revision should change after mutation")
	}
}

func TestByteAt(t *testing.T) {
	b := NewFromString("ab")
	if c, ok := b.ByteAt(1); !ok || c != 'b' {
		t.Errorf("ByteAt(1) = %c, %v", c, ok)
	}
	if _, ok := b.ByteAt(2); ok {
		t.Error("ByteAt past end should report false")
	}
}

func TestRangeOps(t *testing.T) {
	r := NewRange(5, 10)
	if r.Len() != 5 || r.IsEmpty() || !r.IsValid() {
		t.Errorf("unexpected range properties for %v", r)
	}
	if !r.Contains(5) || r.Contains(10) {
		t.Error("Contains should be start-inclusive, end-exclusive")
	}
	if !r.Overlaps(NewRange(9, 12)) || r.Overlaps(NewRange(10, 12)) {
		t.Error("Overlaps mismatch")
	}
	if u := r.Union(NewRange(2, 7)); u != (Range{2, 10}) {
		t.Errorf("Union = %v, want [2:10)", u)
	}
}

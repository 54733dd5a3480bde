package lineops

import (
	"fmt"
	"strings"

	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
)

// Clipboard is the engine's view of a clipboard: a single plain-text string.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Engine applies line-granularity clipboard operations to a buffer and its
// selection set. Copy, Cut, Paste, and Duplicate operate on whole lines
// touched by the selection; a selection confined to a single line falls back
// to ordinary character-level behavior.
//
// Multi-region mutations always proceed from the highest document offset to
// the lowest so that earlier edits never invalidate the stored offsets of
// later ones, and the selection set is remapped after every edit.
type Engine struct {
	buf  *buffer.Buffer
	sel  *cursor.Set
	clip Clipboard
}

// New creates an engine over the given buffer, selection set, and clipboard.
func New(buf *buffer.Buffer, sel *cursor.Set, clip Clipboard) *Engine {
	return &Engine{buf: buf, sel: sel, clip: clip}
}

// Buffer returns the buffer the engine operates on.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Selection returns the live selection set.
func (e *Engine) Selection() *cursor.Set {
	return e.sel
}

// Clipboard returns the clipboard adapter.
func (e *Engine) Clipboard() Clipboard {
	return e.clip
}

// Copy puts every line containing a selection on the clipboard, each line
// copied once no matter how many selections touch it. The buffer and
// selection are never mutated. A null selection leaves the clipboard alone.
func (e *Engine) Copy() error {
	if e.selectionWithinLine() {
		return e.copyChars()
	}
	expanded := Expand(e.buf, e.sel.All())
	if err := expanded.Validate(); err != nil {
		return err
	}
	return e.copyLines(expanded)
}

// Cut copies every line containing a selection and deletes it. Cursors are
// relocated to their old columns on the line that takes the cut line's
// place: the line below, or the line above when the cut reached the end of
// the buffer. Multiple cursors on one cut line survive as distinct cursors.
func (e *Engine) Cut() error {
	if e.selectionWithinLine() {
		return e.cutChars()
	}
	if e.sel.Count() == 0 {
		return nil
	}
	return e.withSentinel(func() error {
		expanded := Expand(e.buf, e.sel.All())
		if err := expanded.Validate(); err != nil {
			return err
		}
		if err := e.copyLines(expanded); err != nil {
			return err
		}
		for i := len(expanded) - 1; i >= 0; i-- {
			region := expanded[i]
			e.sel.Subtract(region.Bounds)
			// Cursors land on the line below the cut block, or the line
			// above when the block reaches the end of the buffer.
			targetRow := int(e.buf.OffsetToPoint(region.Bounds.End).Line)
			if region.Bounds.End == e.buf.Len() {
				targetRow = int(e.buf.OffsetToPoint(region.Bounds.Start).Line) - 1
			}
			for _, src := range region.Sources {
				col := e.buf.OffsetToPoint(src.Head).Column
				e.sel.Add(cursor.NewCursorSelection(e.pointAt(targetRow, col)))
			}
			if err := e.deleteRange(region.Bounds); err != nil {
				return err
			}
		}
		return nil
	})
}

// Paste replaces every line containing a non-empty selection with the
// clipboard, and inserts the clipboard below lines holding only cursors.
// A clipboard without a newline is not lines at all and falls back to
// ordinary character-level paste.
func (e *Engine) Paste() error {
	text, err := e.clip.Get()
	if err != nil {
		return fmt.Errorf("clipboard get: %w", err)
	}
	if !strings.Contains(text, "\n") {
		return e.pasteChars(text)
	}
	if e.sel.Count() == 0 {
		return nil
	}
	return e.withSentinel(func() error {
		expanded := Expand(e.buf, e.sel.All())
		if err := expanded.Validate(); err != nil {
			return err
		}
		for i := len(expanded) - 1; i >= 0; i-- {
			region := expanded[i]
			if e.shouldOverwrite(region) {
				if err := e.overwriteRegion(region, text); err != nil {
					return err
				}
			} else if err := e.insertKeepingEnd(region.Bounds.End, text); err != nil {
				return err
			}
		}
		return nil
	})
}

// shouldOverwrite reports whether a pasted region replaces its lines rather
// than inserting below them: any non-empty source selection overwrites, and
// so does a cursor anchored on a blank first line.
func (e *Engine) shouldOverwrite(region ExpandedRegion) bool {
	for _, src := range region.Sources {
		if !src.IsEmpty() {
			return true
		}
		if src.Anchor == 0 {
			if b, ok := e.buf.ByteAt(0); ok && b == '\n' {
				return true
			}
		}
	}
	return false
}

// overwriteRegion replaces the region's lines with text and re-adds one
// cursor per source selection on the region's start row, at the source's old
// column clamped to that row's pre-replacement length.
func (e *Engine) overwriteRegion(region ExpandedRegion, text string) error {
	e.sel.Subtract(region.Bounds)
	targetRow := int(e.buf.OffsetToPoint(region.Bounds.Start).Line)
	points := make([]buffer.ByteOffset, 0, len(region.Sources))
	for _, src := range region.Sources {
		col := e.buf.OffsetToPoint(src.Head).Column
		points = append(points, e.pointAt(targetRow, col))
	}
	if err := e.replaceRange(region.Bounds, text); err != nil {
		return err
	}
	for _, p := range points {
		e.sel.Add(cursor.NewCursorSelection(p))
	}
	return nil
}

// Duplicate inserts a copy of every line containing a selection immediately
// below the original. Lines touched by several selections are duplicated
// once. An empty buffer is a no-op.
func (e *Engine) Duplicate() error {
	if e.buf.IsEmpty() {
		return nil
	}
	if e.selectionWithinLine() {
		return e.duplicateChars()
	}
	if e.sel.Count() == 0 {
		return nil
	}
	return e.withSentinel(func() error {
		expanded := Expand(e.buf, e.sel.All())
		if err := expanded.Validate(); err != nil {
			return err
		}
		for i := len(expanded) - 1; i >= 0; i-- {
			region := expanded[i]
			text := e.buf.TextRange(region.Bounds.Start, region.Bounds.End)
			if err := e.insertAt(region.Bounds.End, text); err != nil {
				return err
			}
		}
		return nil
	})
}

// copyLines concatenates the regions' text in document order and sets the
// clipboard, guaranteeing a trailing newline. An empty expansion leaves the
// clipboard untouched.
func (e *Engine) copyLines(expanded ExpandedSelection) error {
	if len(expanded) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, region := range expanded {
		sb.WriteString(e.buf.TextRange(region.Bounds.Start, region.Bounds.End))
	}
	text := sb.String()
	if text == "" || text[len(text)-1] != '\n' {
		text += "\n"
	}
	if err := e.clip.Set(text); err != nil {
		return fmt.Errorf("clipboard set: %w", err)
	}
	return nil
}

// selectionWithinLine reports whether the whole selection spans a single
// line and at least one selection is non-empty. Zero-width cursors alone
// never qualify; there is nothing meaningful to operate on character-wise.
func (e *Engine) selectionWithinLine() bool {
	cover, ok := e.sel.Covering()
	if !ok || e.sel.AllCursors() {
		return false
	}
	return e.buf.OffsetToPoint(cover.Start).Line == e.buf.OffsetToPoint(cover.End).Line
}

// withSentinel appends a trailing newline, runs fn, and strips the sentinel
// again. The extra newline means every line the algorithm sees has a proper
// terminator, which removes all end-of-buffer special cases from the loop
// bodies. The strip runs even when fn fails.
func (e *Engine) withSentinel(fn func() error) error {
	if err := e.appendSticky("\n"); err != nil {
		return err
	}
	opErr := fn()
	stripErr := e.stripSentinel()
	if opErr != nil {
		return opErr
	}
	return stripErr
}

// stripSentinel removes the final newline, if the buffer still ends with
// one. An operation may have consumed the sentinel (a cut through the end of
// the buffer swallows it), in which case there is nothing to remove.
func (e *Engine) stripSentinel() error {
	n := e.buf.Len()
	if n == 0 {
		return nil
	}
	if b, ok := e.buf.ByteAt(n - 1); !ok || b != '\n' {
		return nil
	}
	return e.deleteRange(buffer.NewRange(n-1, n))
}

// pointAt resolves (row, column) to an offset, clamping a negative row to
// the first line and an over-long column to the end of the row's line.
func (e *Engine) pointAt(row int, col uint32) buffer.ByteOffset {
	if row < 0 {
		row = 0
	}
	return e.buf.PointToOffset(buffer.Point{Line: uint32(row), Column: col})
}

// insertKeepingEnd inserts at the given offset; an insert landing exactly at
// the end of the buffer must not drag along a cursor parked there.
func (e *Engine) insertKeepingEnd(offset buffer.ByteOffset, text string) error {
	if offset == e.buf.Len() {
		return e.appendSticky(text)
	}
	return e.insertAt(offset, text)
}

// appendSticky appends text at the end of the buffer, leaving any cursor at
// the old end in place instead of moving it to the new end.
func (e *Engine) appendSticky(text string) error {
	return e.applyEdit(buffer.NewInsert(e.buf.Len(), text), true)
}

func (e *Engine) insertAt(offset buffer.ByteOffset, text string) error {
	return e.applyEdit(buffer.NewInsert(offset, text), false)
}

func (e *Engine) deleteRange(r buffer.Range) error {
	return e.applyEdit(buffer.NewDelete(r), false)
}

func (e *Engine) replaceRange(r buffer.Range, text string) error {
	return e.applyEdit(buffer.NewReplace(r, text), false)
}

// applyEdit applies one edit to the buffer and remaps the live selection
// set across it. Every engine mutation funnels through here so offsets held
// in the set are never stale.
func (e *Engine) applyEdit(edit buffer.Edit, sticky bool) error {
	if _, err := e.buf.ApplyEdit(edit); err != nil {
		return fmt.Errorf("apply edit %s: %w", edit.Range, err)
	}
	if sticky {
		cursor.TransformSetSticky(e.sel, edit)
	} else {
		cursor.TransformSet(e.sel, edit)
	}
	return nil
}

package lineops

import (
	"strings"

	"github.com/AlanLynn/lineclip/internal/engine/cursor"
)

// Character-level fallbacks, used when the selection sits within a single
// line (copy/cut/duplicate) or the clipboard carries no newline (paste).
// These mirror a host editor's ordinary clipboard commands.

// copyChars sets the clipboard to the selected text, joining multiple
// selections with newlines.
func (e *Engine) copyChars() error {
	parts := make([]string, 0, e.sel.Count())
	for _, sel := range e.sel.All() {
		r := sel.Range()
		parts = append(parts, e.buf.TextRange(r.Start, r.End))
	}
	return e.clip.Set(strings.Join(parts, "\n"))
}

// cutChars copies the selected text, then deletes each selection and leaves
// a cursor where it began.
func (e *Engine) cutChars() error {
	if err := e.copyChars(); err != nil {
		return err
	}
	sels := e.sel.All()
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		e.sel.Remove(sels[i])
		if err := e.deleteRange(r); err != nil {
			return err
		}
		e.sel.Add(cursor.NewCursorSelection(r.Start))
	}
	return nil
}

// pasteChars replaces each selection with text and leaves the cursor at the
// end of the pasted text. An empty selection is a plain insertion.
func (e *Engine) pasteChars(text string) error {
	sels := e.sel.All()
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		e.sel.Remove(sels[i])
		if err := e.replaceRange(r, text); err != nil {
			return err
		}
		e.sel.Add(cursor.NewCursorSelection(r.Start + cursor.ByteOffset(len(text))))
	}
	return nil
}

// duplicateChars duplicates each selection's text in front of it, so the
// selection ends up on the second copy. A cursor duplicates its whole line.
func (e *Engine) duplicateChars() error {
	sels := e.sel.All()
	for i := len(sels) - 1; i >= 0; i-- {
		sel := sels[i]
		if sel.IsEmpty() {
			line := e.buf.LineRange(sel.Head)
			text := e.buf.TextRange(line.Start, line.End)
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			if err := e.insertAt(line.Start, text); err != nil {
				return err
			}
			continue
		}
		r := sel.Range()
		if err := e.insertAt(r.Start, e.buf.TextRange(r.Start, r.End)); err != nil {
			return err
		}
	}
	return nil
}

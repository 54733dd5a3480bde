package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
)

// registerEditorModule installs the "editor" module. All offsets are
// zero-based byte offsets into the buffer, matching the engine.
func (r *Runner) registerEditorModule() {
	funcs := map[string]lua.LGFunction{
		"text":            r.luaText,
		"len":             r.luaLen,
		"line_count":      r.luaLineCount,
		"select":          r.luaSelect,
		"add_cursor":      r.luaAddCursor,
		"add_selection":   r.luaAddSelection,
		"clear_selection": r.luaClearSelection,
		"selections":      r.luaSelections,
		"clipboard":       r.luaClipboard,
		"set_clipboard":   r.luaSetClipboard,
		"copy_lines":      r.luaOp(r.eng.Copy),
		"cut_lines":       r.luaOp(r.eng.Cut),
		"paste_lines":     r.luaOp(r.eng.Paste),
		"duplicate_lines": r.luaOp(r.eng.Duplicate),
	}
	mod := r.L.SetFuncs(r.L.NewTable(), funcs)
	r.L.SetGlobal("editor", mod)
}

func (r *Runner) luaOp(op func() error) lua.LGFunction {
	return func(L *lua.LState) int {
		if err := op(); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

func (r *Runner) luaText(L *lua.LState) int {
	L.Push(lua.LString(r.eng.Buffer().Text()))
	return 1
}

func (r *Runner) luaLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.Buffer().Len()))
	return 1
}

func (r *Runner) luaLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.Buffer().LineCount()))
	return 1
}

// select(anchor [, head]) replaces the selection set with one selection.
func (r *Runner) luaSelect(L *lua.LState) int {
	anchor := buffer.ByteOffset(L.CheckInt64(1))
	head := anchor
	if L.GetTop() >= 2 {
		head = buffer.ByteOffset(L.CheckInt64(2))
	}
	r.eng.Selection().SetAll([]cursor.Selection{cursor.NewSelection(anchor, head)})
	return 0
}

func (r *Runner) luaAddCursor(L *lua.LState) int {
	offset := buffer.ByteOffset(L.CheckInt64(1))
	r.eng.Selection().Add(cursor.NewCursorSelection(offset))
	return 0
}

func (r *Runner) luaAddSelection(L *lua.LState) int {
	anchor := buffer.ByteOffset(L.CheckInt64(1))
	head := buffer.ByteOffset(L.CheckInt64(2))
	r.eng.Selection().Add(cursor.NewSelection(anchor, head))
	return 0
}

func (r *Runner) luaClearSelection(L *lua.LState) int {
	r.eng.Selection().Clear()
	return 0
}

// selections() returns an array of {anchor=..., head=...} tables.
func (r *Runner) luaSelections(L *lua.LState) int {
	out := L.NewTable()
	for _, sel := range r.eng.Selection().All() {
		entry := L.NewTable()
		entry.RawSetString("anchor", lua.LNumber(sel.Anchor))
		entry.RawSetString("head", lua.LNumber(sel.Head))
		out.Append(entry)
	}
	L.Push(out)
	return 1
}

func (r *Runner) luaClipboard(L *lua.LState) int {
	text, err := r.eng.Clipboard().Get()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LString(text))
	return 1
}

func (r *Runner) luaSetClipboard(L *lua.LState) int {
	text := L.CheckString(1)
	if err := r.eng.Clipboard().Set(text); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

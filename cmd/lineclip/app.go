package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/AlanLynn/lineclip/internal/clipboard"
	"github.com/AlanLynn/lineclip/internal/command"
	"github.com/AlanLynn/lineclip/internal/config"
	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
	"github.com/AlanLynn/lineclip/internal/lineops"
)

// errQuit signals a normal exit from the event loop.
var errQuit = errors.New("quit")

// quitSignal marks an interrupt event that should end the event loop.
type quitSignal struct{}

type app struct {
	screen   tcell.Screen
	fileName string

	mu     sync.Mutex
	eng    *lineops.Engine
	reg    *command.Registry
	status string
}

func newApp(eng *lineops.Engine, fileName string) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	name := fileName
	if name == "" {
		name = "[No Name]"
	}
	return &app{
		screen:   screen,
		fileName: name,
		eng:      eng,
		reg:      command.NewRegistry(),
	}, nil
}

func (a *app) shutdown() {
	a.screen.Fini()
}

func (a *app) interrupt() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
}

func (a *app) refresh() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// applyConfig swaps the clipboard backend when the config file changes.
// Safe to call from the watcher goroutine.
func (a *app) applyConfig(cfg config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var clip lineops.Clipboard
	if cfg.Clipboard.UseSystem {
		clip = clipboard.NewSystem()
	} else {
		clip = clipboard.NewRegister()
	}
	a.eng = lineops.New(a.eng.Buffer(), a.eng.Selection(), clip)
	a.status = "config reloaded"
	a.refresh()
}

func (a *app) loop() error {
	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if _, quit := ev.Data().(quitSignal); quit {
				return errQuit
			}
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				return err
			}
		case nil:
			return nil
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return errQuit
	case tcell.KeyCtrlC:
		a.execute(command.KindCopy)
	case tcell.KeyCtrlX:
		a.execute(command.KindCut)
	case tcell.KeyCtrlV:
		a.execute(command.KindPaste)
	case tcell.KeyCtrlD:
		a.execute(command.KindDuplicate)
	case tcell.KeyLeft:
		a.moveHorizontal(-1)
	case tcell.KeyRight:
		a.moveHorizontal(1)
	case tcell.KeyUp:
		a.moveVertical(-1)
	case tcell.KeyDown:
		a.moveVertical(1)
	case tcell.KeyEnter:
		a.insertText("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.backspace()
	case tcell.KeyRune:
		a.insertText(string(ev.Rune()))
	}
	return nil
}

func (a *app) execute(kind command.Kind) {
	res := a.reg.Execute(kind, a.eng)
	if res.Status == command.StatusError {
		a.status = res.Err.Error()
		return
	}
	a.status = fmt.Sprintf("%s (%s)", kind, res.Duration.Round(time.Microsecond))
}

// insertText replaces every selection with text.
func (a *app) insertText(text string) {
	buf := a.eng.Buffer()
	sel := a.eng.Selection()

	sels := sel.All()
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		sel.Remove(sels[i])
		edit := buffer.NewReplace(r, text)
		if _, err := buf.ApplyEdit(edit); err != nil {
			a.status = err.Error()
			return
		}
		cursor.TransformSet(sel, edit)
		sel.Add(cursor.NewCursorSelection(r.Start + buffer.ByteOffset(len(text))))
	}
}

// backspace deletes selections, or the byte before each bare cursor.
func (a *app) backspace() {
	buf := a.eng.Buffer()
	sel := a.eng.Selection()

	sels := sel.All()
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		if sels[i].IsEmpty() {
			if r.Start == 0 {
				continue
			}
			r = buffer.NewRange(r.Start-1, r.Start)
		}
		edit := buffer.NewDelete(r)
		if _, err := buf.ApplyEdit(edit); err != nil {
			a.status = err.Error()
			return
		}
		cursor.TransformSet(sel, edit)
	}
}

func (a *app) moveHorizontal(delta int) {
	buf := a.eng.Buffer()
	sel := a.eng.Selection()

	sels := sel.All()
	moved := make([]cursor.Selection, 0, len(sels))
	for _, s := range sels {
		offset := s.Cursor() + buffer.ByteOffset(delta)
		if offset < 0 {
			offset = 0
		}
		if offset > buf.Len() {
			offset = buf.Len()
		}
		moved = append(moved, cursor.NewCursorSelection(offset))
	}
	sel.SetAll(moved)
}

func (a *app) moveVertical(delta int) {
	buf := a.eng.Buffer()
	sel := a.eng.Selection()

	sels := sel.All()
	moved := make([]cursor.Selection, 0, len(sels))
	for _, s := range sels {
		pt := buf.OffsetToPoint(s.Cursor())
		line := int(pt.Line) + delta
		if line < 0 {
			line = 0
		}
		if line >= int(buf.LineCount()) {
			line = int(buf.LineCount()) - 1
		}
		offset := buf.PointToOffset(buffer.Point{Line: uint32(line), Column: pt.Column})
		moved = append(moved, cursor.NewCursorSelection(offset))
	}
	sel.SetAll(moved)
}

func (a *app) draw() {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf := a.eng.Buffer()
	sel := a.eng.Selection()

	a.screen.Clear()
	width, height := a.screen.Size()
	if height < 2 {
		a.screen.Show()
		return
	}
	textHeight := height - 1

	normal := tcell.StyleDefault
	selected := tcell.StyleDefault.Reverse(true)

	for line := 0; line < int(buf.LineCount()) && line < textHeight; line++ {
		start := buf.LineStartOffset(uint32(line))
		text := buf.LineText(uint32(line))
		col := 0
		for i, r := range text {
			if col >= width {
				break
			}
			style := normal
			if offsetSelected(sel, start+buffer.ByteOffset(i)) {
				style = selected
			}
			a.screen.SetContent(col, line, r, nil, style)
			col++
		}
	}

	a.drawStatus(width, height-1)

	if primary, ok := sel.Primary(); ok {
		pt := buf.OffsetToPoint(primary.Cursor())
		a.screen.ShowCursor(int(pt.Column), int(pt.Line))
	} else {
		a.screen.HideCursor()
	}

	a.screen.Show()
}

func (a *app) drawStatus(width, row int) {
	buf := a.eng.Buffer()
	style := tcell.StyleDefault.Reverse(true)

	pos := ""
	if primary, ok := a.eng.Selection().Primary(); ok {
		pt := buf.OffsetToPoint(primary.Cursor())
		pos = fmt.Sprintf("%d:%d", pt.Line+1, pt.Column+1)
	}
	line := fmt.Sprintf(" %s  %s  %s", a.fileName, pos, a.status)

	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		a.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		a.screen.SetContent(col, row, ' ', nil, style)
	}
}

func offsetSelected(sel *cursor.Set, offset buffer.ByteOffset) bool {
	for _, s := range sel.All() {
		if !s.IsEmpty() && offset >= s.Start() && offset < s.End() {
			return true
		}
	}
	return false
}

package command

import (
	"errors"
	"testing"

	"github.com/AlanLynn/lineclip/internal/clipboard"
	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
	"github.com/AlanLynn/lineclip/internal/lineops"
)

func newTestEngine(text string, offset int64) *lineops.Engine {
	buf := buffer.NewFromString(text)
	sel := cursor.NewSetAt(buffer.ByteOffset(offset))
	return lineops.New(buf, sel, clipboard.NewRegister())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCopy, "Copy Lines"},
		{KindCut, "Cut Lines"},
		{KindPaste, "Paste Lines"},
		{KindDuplicate, "Duplicate Lines"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"Copy Lines", KindCopy},
		{"copy lines", KindCopy},
		{"cut_lines", KindCut},
		{"paste-lines", KindPaste},
		{"  Duplicate Lines  ", KindDuplicate},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseKind("transpose lines"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestExecuteCut(t *testing.T) {
	eng := newTestEngine("line 1\nline 2\n", 1)
	reg := NewRegistry()

	res := reg.Execute(KindCut, eng)
	if res.Status != StatusOK {
		t.Fatalf("cut failed: %v", res.Err)
	}
	if res.ID == "" {
		t.Error("result has no ID")
	}
	if res.Kind != KindCut {
		t.Errorf("result kind = %v, want KindCut", res.Kind)
	}
	if !res.BufferChanged {
		t.Error("cut should report a buffer change")
	}
	if got := eng.Buffer().Text(); got != "line 2\n" {
		t.Errorf("buffer = %q, want %q", got, "line 2\n")
	}
	text, err := eng.Clipboard().Get()
	if err != nil || text != "line 1\n" {
		t.Errorf("clipboard = %q, %v", text, err)
	}
}

func TestExecuteCopyLeavesBufferUnchanged(t *testing.T) {
	eng := newTestEngine("line 1\nline 2\n", 1)
	reg := NewRegistry()

	res := reg.Execute(KindCopy, eng)
	if res.Status != StatusOK {
		t.Fatalf("copy failed: %v", res.Err)
	}
	if res.BufferChanged {
		t.Error("copy should not report a buffer change")
	}
}

func TestExecuteUnknownKind(t *testing.T) {
	eng := newTestEngine("line 1\n", 0)
	reg := &Registry{handlers: map[Kind]Handler{}}

	res := reg.Execute(KindCopy, eng)
	if res.Status != StatusError {
		t.Fatal("expected error status")
	}
	if !errors.Is(res.Err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", res.Err)
	}
}

func TestExecuteWrapsHandlerError(t *testing.T) {
	errBoom := errors.New("boom")
	eng := newTestEngine("line 1\n", 0)
	reg := NewRegistry()
	reg.Register(KindPaste, func(*lineops.Engine) error { return errBoom })

	res := reg.Execute(KindPaste, eng)
	if res.Status != StatusError {
		t.Fatal("expected error status")
	}
	if !errors.Is(res.Err, errBoom) {
		t.Errorf("expected wrapped handler error, got %v", res.Err)
	}
	if res.BufferChanged {
		t.Error("failed handler did not touch the buffer")
	}
}

func TestExecuteResultIDsAreUnique(t *testing.T) {
	eng := newTestEngine("line 1\n", 0)
	reg := NewRegistry()

	a := reg.Execute(KindCopy, eng)
	b := reg.Execute(KindCopy, eng)
	if a.ID == b.ID {
		t.Errorf("duplicate execution IDs: %q", a.ID)
	}
}

package command

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AlanLynn/lineclip/internal/lineops"
)

// Status reports how a command execution finished.
type Status int

// Execution statuses.
const (
	StatusOK Status = iota
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes one command execution.
type Result struct {
	// ID uniquely identifies this execution.
	ID string

	// Kind is the command that ran.
	Kind Kind

	// Status is the outcome.
	Status Status

	// Err holds the failure when Status is StatusError.
	Err error

	// Duration is how long the handler ran.
	Duration time.Duration

	// BufferChanged reports whether the handler mutated the buffer.
	BufferChanged bool
}

// Handler executes a command against an engine.
type Handler func(*lineops.Engine) error

// Registry maps command kinds to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
}

// NewRegistry returns a registry with the built-in line commands
// registered.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[Kind]Handler, kindCount)}
	r.Register(KindCopy, (*lineops.Engine).Copy)
	r.Register(KindCut, (*lineops.Engine).Cut)
	r.Register(KindPaste, (*lineops.Engine).Paste)
	r.Register(KindDuplicate, (*lineops.Engine).Duplicate)
	return r
}

// Register installs a handler for kind, replacing any existing one.
func (r *Registry) Register(kind Kind, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// Lookup returns the handler for kind.
func (r *Registry) Lookup(kind Kind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[kind]
	return h, ok
}

// Execute runs the handler for kind against eng and reports the outcome.
// An unregistered kind yields a StatusError result wrapping
// ErrUnknownCommand.
func (r *Registry) Execute(kind Kind, eng *lineops.Engine) Result {
	res := Result{
		ID:   uuid.NewString(),
		Kind: kind,
	}

	h, ok := r.Lookup(kind)
	if !ok {
		res.Status = StatusError
		res.Err = fmt.Errorf("%w: %s", ErrUnknownCommand, kind)
		return res
	}

	before := eng.Buffer().RevisionID()
	start := time.Now()
	err := h(eng)
	res.Duration = time.Since(start)
	res.BufferChanged = eng.Buffer().RevisionID() != before

	if err != nil {
		res.Status = StatusError
		res.Err = fmt.Errorf("%s: %w", kind, err)
	}
	return res
}

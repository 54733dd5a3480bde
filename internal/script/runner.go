package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/AlanLynn/lineclip/internal/lineops"
)

// ErrRunnerClosed indicates the runner has been closed.
var ErrRunnerClosed = errors.New("script runner closed")

// Runner executes Lua scripts against an editing engine. The engine is
// exposed to scripts as the "editor" module.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// access from Go code, and Lua execution itself is single-threaded.
type Runner struct {
	L   *lua.LState
	eng *lineops.Engine

	mu     sync.Mutex
	closed bool
}

// New creates a runner bound to eng. Only the base, table, string, and
// math libraries are opened; io, os, debug, and package stay out so
// scripts cannot touch the host.
func New(eng *lineops.Engine) *Runner {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	r := &Runner{L: L, eng: eng}
	r.registerEditorModule()
	return r
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoString executes a Lua chunk. Execution is synchronous.
func (r *Runner) DoString(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}
	return r.doWithRecovery(func() error {
		return r.L.DoString(code)
	})
}

// DoFile executes a Lua file. Execution is synchronous.
func (r *Runner) DoFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}
	return r.doWithRecovery(func() error {
		return r.L.DoFile(path)
	})
}

func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// IsClosed returns true if the runner has been closed.
func (r *Runner) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close releases the underlying Lua state. Close is idempotent.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}

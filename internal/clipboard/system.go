package clipboard

import (
	host "github.com/atotto/clipboard"

	"github.com/AlanLynn/lineclip/internal/lineops"
)

// System talks to the host clipboard. On platforms or sessions without one
// (no display server, missing xclip/xsel) it degrades to an in-memory
// register so line operations keep working within the process.
type System struct {
	useHost  bool
	fallback *Register
}

// NewSystem creates a clipboard backed by the host clipboard when available.
func NewSystem() *System {
	return &System{
		useHost:  !host.Unsupported,
		fallback: NewRegister(),
	}
}

// Get reads from the host clipboard, or the fallback register when the host
// clipboard is unavailable or fails.
func (s *System) Get() (string, error) {
	if s.useHost {
		if text, err := host.ReadAll(); err == nil {
			return text, nil
		}
	}
	return s.fallback.Get()
}

// Set writes to the host clipboard, mirroring into the fallback register so
// Get stays consistent if the host clipboard fails later.
func (s *System) Set(text string) error {
	if err := s.fallback.Set(text); err != nil {
		return err
	}
	if s.useHost {
		if err := host.WriteAll(text); err != nil {
			// Host clipboard went away mid-session; keep serving from
			// the register.
			s.useHost = false
		}
	}
	return nil
}

var _ lineops.Clipboard = (*System)(nil)

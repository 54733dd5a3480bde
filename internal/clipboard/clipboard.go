package clipboard

import (
	"sync"

	"github.com/AlanLynn/lineclip/internal/lineops"
)

// Register is an in-memory clipboard. It is the storage used when no system
// clipboard is available, and the natural choice for tests.
type Register struct {
	mu   sync.RWMutex
	text string
}

// NewRegister creates an empty in-memory clipboard.
func NewRegister() *Register {
	return &Register{}
}

// Get returns the stored text.
func (r *Register) Get() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text, nil
}

// Set stores text.
func (r *Register) Set(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

var _ lineops.Clipboard = (*Register)(nil)

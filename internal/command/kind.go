package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand indicates a name or kind with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// Kind identifies a line clipboard command. Dispatch is by enum value
// rather than by name string, so an unregistered kind is a compile-time
// visible gap instead of a runtime typo.
type Kind int

// The available commands.
const (
	KindCopy Kind = iota
	KindCut
	KindPaste
	KindDuplicate

	kindCount
)

var kindNames = [...]string{
	KindCopy:      "Copy Lines",
	KindCut:       "Cut Lines",
	KindPaste:     "Paste Lines",
	KindDuplicate: "Duplicate Lines",
}

// String returns the human-readable command name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a real command.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseKind resolves a command name to its Kind. Matching is
// case-insensitive and accepts both the display name ("Copy Lines") and
// a compact form ("copy_lines", "copy-lines").
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for k, display := range kindNames {
		if normalized == strings.ToLower(display) {
			return Kind(k), nil
		}
	}
	return kindCount, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

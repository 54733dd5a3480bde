// Package clipboard provides the clipboard adapters used by line
// operations: an in-memory Register and a System adapter over the host
// clipboard that degrades to a register when the host has none.
package clipboard

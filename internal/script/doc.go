// Package script runs sandboxed Lua scripts against an editing engine.
// Scripts drive the buffer, selection, and clipboard through the
// "editor" module.
package script

// Package lineops implements line-granularity clipboard editing: copy, cut,
// paste, and duplicate that operate on whole lines touched by the selection
// rather than on exact selection boundaries.
//
// The core is the expansion step (Expand), which converts an arbitrary
// multi-region selection into a minimal ordered list of disjoint full-line
// regions while remembering which original selections fed each region, and
// the Engine, which mutates the buffer in reverse document order and
// recomputes cursor positions from row/column coordinates after each edit.
//
// A selection confined to a single line keeps ordinary character-level
// clipboard behavior, as does pasting a clipboard that contains no newline.
package lineops

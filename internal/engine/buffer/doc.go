// Package buffer provides a mutable text buffer with byte-offset addressing
// and a maintained line index.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between byte offsets and line/column positions
//   - Full-line range lookup including trailing newlines
//   - Atomic multi-edit application in reverse document order
//   - Line ending normalization to LF
//   - Revision tracking for change detection
//
// Basic usage:
//
//	buf := buffer.NewFromString("line 1\nline 2")
//
//	// Insert text
//	buf.Insert(7, "new ") // "line 1\nnew line 2"
//
//	// Full line containing an offset, including its newline
//	r := buf.LineRange(2) // [0:7)
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes),
//     where PointToOffset clamps columns past the end of a line
package buffer

// Package cursor provides selections and ordered selection sets.
//
// A Selection is an anchor/head pair; anchor > head represents a reversed
// (right-to-left) selection and Head is always the active endpoint. A Set
// keeps selections sorted by start offset with overlapping ones merged, and
// may be empty (the null selection).
//
// Transform functions remap offsets and selections across buffer edits so
// that positions recorded before a mutation stay meaningful after it.
package cursor

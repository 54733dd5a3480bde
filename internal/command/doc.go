// Package command dispatches line clipboard commands by enum kind and
// reports per-execution results.
package command

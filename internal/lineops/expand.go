package lineops

import (
	"errors"
	"fmt"

	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
)

// ErrRegionOverlap indicates that expansion produced overlapping regions.
// Overlaps are resolved by merging during expansion, so seeing this error
// means the input selections were not in normalized order.
var ErrRegionOverlap = errors.New("expanded regions overlap")

// ExpandedRegion is a full-line span of the buffer together with the source
// selections that were merged into it. Sources are kept in merge order so
// that per-cursor output positions can be reconstructed after a mutation.
type ExpandedRegion struct {
	Bounds  buffer.Range
	Sources []cursor.Selection
}

// ExpandedSelection is an ordered, non-overlapping sequence of expanded
// regions, ascending by start offset. Adjacent regions are allowed;
// overlapping ones are merged during construction.
type ExpandedSelection []ExpandedRegion

// Expand grows each selection to the full lines containing it and merges
// spans that overlap or share a line, so that at most one region is produced
// per physically distinct run of covered lines. Selections must be in
// ascending start order, as produced by cursor.Set. An empty input yields an
// empty result.
func Expand(buf *buffer.Buffer, sels []cursor.Selection) ExpandedSelection {
	var expanded ExpandedSelection
	prevEnd := buffer.ByteOffset(-1)
	for _, sel := range sels {
		span := fullLineSpan(buf, sel)
		if len(expanded) > 0 && span.Start < prevEnd {
			last := &expanded[len(expanded)-1]
			last.Bounds = last.Bounds.Union(span)
			last.Sources = append(last.Sources, sel)
		} else {
			expanded = append(expanded, ExpandedRegion{
				Bounds:  span,
				Sources: []cursor.Selection{sel},
			})
		}
		prevEnd = span.End
	}
	return expanded
}

// fullLineSpan returns the range covering every line the selection touches,
// including each line's trailing newline. A non-empty selection ending
// exactly at a line start does not pull in that further line.
func fullLineSpan(buf *buffer.Buffer, sel cursor.Selection) buffer.Range {
	start := buf.LineRange(sel.Start()).Start
	end := sel.End()
	if sel.IsEmpty() || buf.OffsetToPoint(end).Column != 0 {
		end = buf.LineRange(end).End
	}
	return buffer.Range{Start: start, End: end}
}

// Validate checks the ordering invariant: regions ascend by start offset and
// never overlap (adjacency is fine). A violation is a programming error in
// the caller, not a recoverable condition.
func (es ExpandedSelection) Validate() error {
	for i := 1; i < len(es); i++ {
		if es[i].Bounds.Start < es[i-1].Bounds.End {
			return fmt.Errorf("%w: %s and %s", ErrRegionOverlap,
				es[i-1].Bounds, es[i].Bounds)
		}
	}
	return nil
}

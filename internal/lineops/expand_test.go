package lineops

import (
	"errors"
	"testing"

	"github.com/AlanLynn/lineclip/internal/engine/buffer"
	"github.com/AlanLynn/lineclip/internal/engine/cursor"
)

func TestFullLineSpans(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  cursor.Selection
		want buffer.Range
	}{
		{
			name: "cursor mid line",
			text: "line 1\nline 2\nline 3",
			sel:  cur(8),
			want: buffer.NewRange(7, 14),
		},
		{
			name: "cursor at line start",
			text: "line 1\nline 2\nline 3",
			sel:  cur(7),
			want: buffer.NewRange(7, 14),
		},
		{
			name: "selection across lines",
			text: "line 1\nline 2\nline 3\nline 4",
			sel:  reg(8, 16),
			want: buffer.NewRange(7, 21),
		},
		{
			name: "selection ending at line start stops short",
			text: "line 1\nline 2",
			sel:  reg(0, 7),
			want: buffer.NewRange(0, 7),
		},
		{
			name: "reversed selection",
			text: "line 1\nline 2\nline 3",
			sel:  reg(9, 1),
			want: buffer.NewRange(0, 14),
		},
		{
			name: "cursor on last line without newline",
			text: "line 1\nline 2",
			sel:  cur(13),
			want: buffer.NewRange(7, 13),
		},
		{
			name: "cursor in empty buffer",
			text: "",
			sel:  cur(0),
			want: buffer.NewRange(0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewFromString(tt.text)
			expanded := Expand(buf, []cursor.Selection{tt.sel})
			if len(expanded) != 1 {
				t.Fatalf("expected 1 region, got %d", len(expanded))
			}
			if expanded[0].Bounds != tt.want {
				t.Errorf("bounds = %s, want %s", expanded[0].Bounds, tt.want)
			}
			if len(expanded[0].Sources) != 1 || !expanded[0].Sources[0].Equals(tt.sel) {
				t.Errorf("sources = %v, want [%v]", expanded[0].Sources, tt.sel)
			}
		})
	}
}

func TestExpandEmptySelection(t *testing.T) {
	buf := buffer.NewFromString("line 1\nline 2")
	if expanded := Expand(buf, nil); len(expanded) != 0 {
		t.Errorf("expected empty expansion, got %v", expanded)
	}
}

func TestExpandMergesSameLine(t *testing.T) {
	buf := buffer.NewFromString("line 1\nline 2")
	expanded := Expand(buf, []cursor.Selection{cur(1), cur(3)})
	if len(expanded) != 1 {
		t.Fatalf("expected 1 merged region, got %d", len(expanded))
	}
	if expanded[0].Bounds != buffer.NewRange(0, 7) {
		t.Errorf("bounds = %s, want 0..7", expanded[0].Bounds)
	}
	if len(expanded[0].Sources) != 2 {
		t.Errorf("expected both sources attributed, got %v", expanded[0].Sources)
	}
}

func TestExpandMergesOverlappingSpans(t *testing.T) {
	buf := buffer.NewFromString("line 1\nline 2\nline 3\nline 4")
	expanded := Expand(buf, []cursor.Selection{reg(1, 8), reg(12, 15)})
	if len(expanded) != 1 {
		t.Fatalf("expected 1 merged region, got %d", len(expanded))
	}
	if expanded[0].Bounds != buffer.NewRange(0, 21) {
		t.Errorf("bounds = %s, want 0..21", expanded[0].Bounds)
	}
	if len(expanded[0].Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(expanded[0].Sources))
	}
}

func TestExpandKeepsAdjacentRegionsSeparate(t *testing.T) {
	// Cursors on consecutive lines produce touching spans, not a merge.
	buf := buffer.NewFromString("line 1\nline 2\nline 3")
	expanded := Expand(buf, []cursor.Selection{cur(1), cur(8)})
	if len(expanded) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(expanded))
	}
	if expanded[0].Bounds != buffer.NewRange(0, 7) || expanded[1].Bounds != buffer.NewRange(7, 14) {
		t.Errorf("bounds = %s, %s", expanded[0].Bounds, expanded[1].Bounds)
	}
}

func TestExpandIdempotent(t *testing.T) {
	buf := buffer.NewFromString("line 1\nline 2\nline 3\nline 4")
	first := Expand(buf, []cursor.Selection{reg(1, 8), reg(12, 15)})

	asSelections := make([]cursor.Selection, 0, len(first))
	for _, region := range first {
		asSelections = append(asSelections, cursor.NewRangeSelection(region.Bounds))
	}
	second := Expand(buf, asSelections)

	if len(first) != len(second) {
		t.Fatalf("region count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Bounds != second[i].Bounds {
			t.Errorf("region %d changed: %s vs %s", i, first[i].Bounds, second[i].Bounds)
		}
	}
}

func FuzzExpand(f *testing.F) {
	f.Add("line 1\nline 2\nline 3\n", int64(1), int64(9), int64(16))
	f.Add("", int64(0), int64(0), int64(0))
	f.Add("a\nb\nc", int64(4), int64(0), int64(2))
	f.Add("one\n\n\ntwo", int64(5), int64(3), int64(9))

	f.Fuzz(func(t *testing.T, text string, a, b, c int64) {
		buf := buffer.NewFromString(text)
		clamp := func(v int64) buffer.ByteOffset {
			if v < 0 {
				return 0
			}
			if v > int64(buf.Len()) {
				return buf.Len()
			}
			return buffer.ByteOffset(v)
		}
		// Normalize through a Set, as every caller does.
		set := cursor.NewSetFrom(
			cursor.NewSelection(clamp(a), clamp(b)),
			cursor.NewCursorSelection(clamp(c)),
		)
		sels := set.All()

		expanded := Expand(buf, sels)
		if err := expanded.Validate(); err != nil {
			t.Fatalf("expansion violates ordering: %v", err)
		}
		for _, region := range expanded {
			if region.Bounds.Start > region.Bounds.End {
				t.Fatalf("inverted bounds %s", region.Bounds)
			}
			if region.Bounds.End > buf.Len() {
				t.Fatalf("bounds %s exceed buffer length %d", region.Bounds, buf.Len())
			}
			if buf.OffsetToPoint(region.Bounds.Start).Column != 0 {
				t.Fatalf("region %s does not start at a line start", region.Bounds)
			}
			if len(region.Sources) == 0 {
				t.Fatalf("region %s has no sources", region.Bounds)
			}
			for _, src := range region.Sources {
				if src.Start() < region.Bounds.Start || src.End() > region.Bounds.End {
					t.Fatalf("source %v escapes region %s", src, region.Bounds)
				}
			}
		}
		total := 0
		for _, region := range expanded {
			total += len(region.Sources)
		}
		if total != len(sels) {
			t.Fatalf("attributed %d sources, had %d selections", total, len(sels))
		}
	})
}

func TestValidate(t *testing.T) {
	buf := buffer.NewFromString("line 1\nline 2\nline 3")
	good := Expand(buf, []cursor.Selection{cur(1), cur(15)})
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := ExpandedSelection{
		{Bounds: buffer.NewRange(0, 10)},
		{Bounds: buffer.NewRange(5, 12)},
	}
	if err := bad.Validate(); !errors.Is(err, ErrRegionOverlap) {
		t.Errorf("expected ErrRegionOverlap, got %v", err)
	}
}

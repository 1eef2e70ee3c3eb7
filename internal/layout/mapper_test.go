package layout

import (
	"errors"
	"testing"
)

func mapperFor(text string, opts Options) *Mapper {
	return Build(Segment(text, opts))
}

func TestToGridExamples(t *testing.T) {
	m := mapperFor("AB\nCD", DefaultOptions())
	tests := []struct {
		offset SourcePosition
		want   GridPosition
	}{
		{0, GridPosition{Column: 1, Row: 0}},
		{1, GridPosition{Column: 1, Row: 1}},
		{2, GridPosition{Column: 1, Row: 2}}, // the line break: end of "AB"
		{3, GridPosition{Column: 0, Row: 0}},
		{4, GridPosition{Column: 0, Row: 1}},
		{5, GridPosition{Column: 0, Row: 2}},
	}
	for _, tt := range tests {
		got, err := m.ToGrid(tt.offset)
		if err != nil {
			t.Fatalf("ToGrid(%d) error: %v", tt.offset, err)
		}
		if got != tt.want {
			t.Fatalf("ToGrid(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestToGridCapacity(t *testing.T) {
	m := mapperFor("ABCDE", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	want := []GridPosition{
		{Column: 2, Row: 0},
		{Column: 2, Row: 1},
		{Column: 1, Row: 0},
		{Column: 1, Row: 1},
		{Column: 0, Row: 0},
		{Column: 0, Row: 1},
	}
	for off, w := range want {
		got, err := m.ToGrid(SourcePosition(off))
		if err != nil {
			t.Fatalf("ToGrid(%d) error: %v", off, err)
		}
		if got != w {
			t.Fatalf("ToGrid(%d) = %+v, want %+v", off, got, w)
		}
	}
}

func TestToGridBoundary(t *testing.T) {
	m := mapperFor("ABC\nDE", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	got, err := m.ToGrid(6)
	if err != nil {
		t.Fatalf("ToGrid(total) error: %v", err)
	}
	if got != (GridPosition{Column: 0, Row: 2}) {
		t.Fatalf("ToGrid(total) = %+v, want {0 2}", got)
	}
	if _, err := m.ToGrid(7); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ToGrid(total+1) err = %v, want ErrOutOfRange", err)
	}
	if _, err := m.ToGrid(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ToGrid(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestToGridSkippedLines(t *testing.T) {
	m := mapperFor("\nA\n\nB\n", DefaultOptions())
	tests := []struct {
		offset SourcePosition
		want   GridPosition
	}{
		{0, GridPosition{Column: 1, Row: 0}}, // leading empty line
		{1, GridPosition{Column: 1, Row: 0}},
		{2, GridPosition{Column: 1, Row: 1}},
		{3, GridPosition{Column: 1, Row: 1}}, // skipped line
		{4, GridPosition{Column: 0, Row: 0}},
		{6, GridPosition{Column: 0, Row: 1}}, // trailing empty line
	}
	for _, tt := range tests {
		got, err := m.ToGrid(tt.offset)
		if err != nil {
			t.Fatalf("ToGrid(%d) error: %v", tt.offset, err)
		}
		if got != tt.want {
			t.Fatalf("ToGrid(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestToSourceErrors(t *testing.T) {
	m := mapperFor("AB\nC", DefaultOptions())
	bad := []GridPosition{
		{Column: -1, Row: 0},
		{Column: 2, Row: 0},
		{Column: 0, Row: 2},
		{Column: 1, Row: -1},
		{Column: 1, Row: 3},
	}
	for _, p := range bad {
		if _, err := m.ToSource(p); !errors.Is(err, ErrInvalidGridPosition) {
			t.Fatalf("ToSource(%+v) err = %v, want ErrInvalidGridPosition", p, err)
		}
		if m.Valid(p) {
			t.Fatalf("Valid(%+v) = true", p)
		}
	}
	got, err := m.ToSource(GridPosition{Column: 0, Row: 1})
	if err != nil || got != 4 {
		t.Fatalf("ToSource({0 1}) = %d, %v; want 4", got, err)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	optsList := []Options{
		{SkipEmptyLines: false},
		{MaxRowsPerColumn: 1, SkipEmptyLines: false},
		{MaxRowsPerColumn: 2, SkipEmptyLines: false},
		{MaxRowsPerColumn: 4, SkipEmptyLines: false},
	}
	for _, opts := range optsList {
		for _, text := range sampleTexts {
			m := mapperFor(text, opts)
			if m.ColumnCount() == 0 {
				continue
			}
			for o := 0; o <= m.Total(); o++ {
				p, err := m.ToGrid(SourcePosition(o))
				if err != nil {
					t.Fatalf("%q %+v: ToGrid(%d) error: %v", text, opts, o, err)
				}
				back, err := m.ToSource(p)
				if err != nil {
					t.Fatalf("%q %+v: ToSource(%+v) error: %v", text, opts, p, err)
				}
				if int(back) != o {
					t.Fatalf("%q %+v: ToSource(ToGrid(%d)) = %d", text, opts, o, back)
				}
			}
		}
	}
}

func TestOffsetRoundTripSkippingEmptyLines(t *testing.T) {
	// Without empty lines every offset has a cell or an end-of-column caret.
	texts := []string{"A", "AB\nCD", "ABCDE", "縦書き\nメモ", "ab\r\ncd\ref"}
	for _, text := range texts {
		for _, capacity := range []int{0, 1, 2, 3} {
			m := mapperFor(text, Options{MaxRowsPerColumn: capacity, SkipEmptyLines: true})
			for o := 0; o <= m.Total(); o++ {
				p, err := m.ToGrid(SourcePosition(o))
				if err != nil {
					t.Fatalf("ToGrid(%d) error: %v", o, err)
				}
				back, err := m.ToSource(p)
				if err != nil || int(back) != o {
					t.Fatalf("%q cap %d: ToSource(ToGrid(%d)) = %d, %v", text, capacity, o, back, err)
				}
			}
		}
	}
}

func TestGridRoundTrip(t *testing.T) {
	optsList := []Options{
		{SkipEmptyLines: true},
		{SkipEmptyLines: false},
		{MaxRowsPerColumn: 1, SkipEmptyLines: true},
		{MaxRowsPerColumn: 2, SkipEmptyLines: false},
		{MaxRowsPerColumn: 3, SkipEmptyLines: true},
	}
	for _, opts := range optsList {
		for _, text := range sampleTexts {
			g := Segment(text, opts)
			m := Build(g)
			for ci, col := range g.Columns() {
				for row := 0; row <= col.Len(); row++ {
					p := GridPosition{Column: ci, Row: row}
					off, err := m.ToSource(p)
					if err != nil {
						t.Fatalf("ToSource(%+v) error: %v", p, err)
					}
					got, err := m.ToGrid(off)
					if err != nil {
						t.Fatalf("ToGrid(%d) error: %v", off, err)
					}
					if row == col.Len() && col.Wrapped {
						// The caret after a wrapped column is the top of the next one.
						want := GridPosition{Column: ci - 1, Row: 0}
						if got != want {
							t.Fatalf("%q %+v: wrapped end %+v -> %+v, want %+v", text, opts, p, got, want)
						}
						continue
					}
					if got != p {
						t.Fatalf("%q %+v: ToGrid(ToSource(%+v)) = %+v", text, opts, p, got)
					}
				}
			}
		}
	}
}

func TestClampToNearest(t *testing.T) {
	m := mapperFor("ABC\nD", DefaultOptions())
	tests := []struct {
		in   GridPosition
		want GridPosition
	}{
		{GridPosition{Column: 0, Row: 0}, GridPosition{Column: 0, Row: 0}},
		{GridPosition{Column: -3, Row: 5}, GridPosition{Column: 0, Row: 1}},
		{GridPosition{Column: 9, Row: 9}, GridPosition{Column: 1, Row: 3}},
		{GridPosition{Column: 1, Row: -2}, GridPosition{Column: 1, Row: 0}},
	}
	for _, tt := range tests {
		if got := m.ClampToNearest(tt.in); got != tt.want {
			t.Fatalf("ClampToNearest(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestEmptyGrid(t *testing.T) {
	m := mapperFor("", DefaultOptions())
	if got := m.ClampToNearest(GridPosition{Column: 4, Row: 2}); !got.IsEmpty() {
		t.Fatalf("ClampToNearest on empty grid = %+v, want EmptyPosition", got)
	}
	p, err := m.ToGrid(0)
	if err != nil || !p.IsEmpty() {
		t.Fatalf("ToGrid(0) = %+v, %v; want EmptyPosition", p, err)
	}
	if _, err := m.ToGrid(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ToGrid(1) err = %v, want ErrOutOfRange", err)
	}
	if _, err := m.ToSource(GridPosition{}); !errors.Is(err, ErrInvalidGridPosition) {
		t.Fatalf("ToSource err = %v, want ErrInvalidGridPosition", err)
	}

	m = mapperFor("\n\n", DefaultOptions())
	for o := 0; o <= 2; o++ {
		if p, err := m.ToGrid(SourcePosition(o)); err != nil || !p.IsEmpty() {
			t.Fatalf("ToGrid(%d) on line breaks only = %+v, %v", o, p, err)
		}
	}
}

func TestCells(t *testing.T) {
	m := mapperFor("ABC\nDE", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	// Columns: [DE] [C] [AB] in presentation order.
	got := m.Cells(1, 5)
	want := []GridPosition{
		{Column: 2, Row: 1}, // B
		{Column: 1, Row: 0}, // C
		{Column: 0, Row: 0}, // D; the break at 3 has no cell
	}
	if len(got) != len(want) {
		t.Fatalf("Cells(1,5) = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Cells(1,5) = %+v, want %+v", got, want)
		}
	}
	if cells := m.Cells(5, 1); len(cells) != 3 {
		t.Fatalf("reversed range cells = %d, want 3", len(cells))
	}
	if cells := m.Cells(2, 2); cells != nil {
		t.Fatalf("empty range cells = %+v", cells)
	}
	if cells := m.Cells(-5, 100); len(cells) != 5 {
		t.Fatalf("clamped range cells = %d, want 5", len(cells))
	}
}

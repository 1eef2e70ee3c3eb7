package layout

import (
	"strings"
	"testing"
)

var sampleTexts = []string{
	"",
	"A",
	"AB\nCD",
	"ABCDE",
	"A\n\nB",
	"\n",
	"\n\n",
	"\nlead",
	"trail\n\n",
	"縦書きのメモ\n二行目\n",
	"e\u0301\U0001F468\u200D\U0001F469\u200D\U0001F467\U0001F1EF\U0001F1F5\r\nx\ry",
	"ABCD\nEF G",
}

func columnTexts(g *Grid) []string {
	out := make([]string, 0, g.ColumnCount())
	for _, c := range g.Columns() {
		out = append(out, c.Text())
	}
	return out
}

func assertColumns(t *testing.T, g *Grid, want ...string) {
	t.Helper()
	got := columnTexts(g)
	if len(got) != len(want) {
		t.Fatalf("columns = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("columns = %q, want %q", got, want)
		}
	}
}

func TestSegmentPresentationOrder(t *testing.T) {
	g := Segment("AB\nCD", DefaultOptions())
	assertColumns(t, g, "CD", "AB")
	if c := g.SourceOrder(0); c.Text() != "AB" || c.Line != 0 || c.Start != 0 {
		t.Fatalf("source column 0 = %+v", c)
	}
	if c := g.SourceOrder(1); c.Text() != "CD" || c.Line != 1 || c.Start != 3 {
		t.Fatalf("source column 1 = %+v", c)
	}
}

func TestSegmentCapacityWrap(t *testing.T) {
	g := Segment("ABCDE", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	assertColumns(t, g, "E", "CD", "AB")
	if !g.SourceOrder(0).Wrapped || !g.SourceOrder(1).Wrapped {
		t.Fatalf("leading chunks not marked wrapped")
	}
	if g.SourceOrder(2).Wrapped {
		t.Fatalf("last chunk marked wrapped")
	}
}

func TestSegmentGlobalReversalAcrossLines(t *testing.T) {
	g := Segment("ABC\nDEFG", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	assertColumns(t, g, "FG", "DE", "C", "AB")
}

func TestSegmentExactCapacityNoTrailingColumn(t *testing.T) {
	g := Segment("ABCD", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	assertColumns(t, g, "CD", "AB")
	g = Segment("AB", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	assertColumns(t, g, "AB")
}

func TestSegmentEmptyLines(t *testing.T) {
	g := Segment("A\n\nB", Options{SkipEmptyLines: true})
	assertColumns(t, g, "B", "A")

	g = Segment("A\n\nB", Options{SkipEmptyLines: false})
	assertColumns(t, g, "B", "", "A")
	if c := g.Column(1); c.Start != 2 || c.Line != 1 {
		t.Fatalf("empty column = %+v, want start 2 line 1", c)
	}

	g = Segment("A\n\nB", Options{MaxRowsPerColumn: 3, SkipEmptyLines: false})
	assertColumns(t, g, "B", "", "A")
}

func TestSegmentEmptySource(t *testing.T) {
	for _, opts := range []Options{
		{},
		{SkipEmptyLines: true},
		{MaxRowsPerColumn: 4},
	} {
		g := Segment("", opts)
		if g.ColumnCount() != 0 {
			t.Fatalf("opts %+v: columns = %d, want 0", opts, g.ColumnCount())
		}
		if g.Total() != 0 {
			t.Fatalf("opts %+v: total = %d, want 0", opts, g.Total())
		}
	}
}

func TestSegmentOnlyLineBreaks(t *testing.T) {
	g := Segment("\n\n", Options{SkipEmptyLines: true})
	if g.ColumnCount() != 0 {
		t.Fatalf("skip: columns = %d, want 0", g.ColumnCount())
	}
	g = Segment("\n\n", Options{SkipEmptyLines: false})
	assertColumns(t, g, "", "", "")
}

func TestSegmentGraphemeUnits(t *testing.T) {
	g := Segment("e\u0301\U0001F468\u200D\U0001F469\u200D\U0001F467\U0001F1EF\U0001F1F5", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	if g.Total() != 3 {
		t.Fatalf("total = %d, want 3", g.Total())
	}
	assertColumns(t, g, "\U0001F1EF\U0001F1F5", "e\u0301\U0001F468\u200D\U0001F469\u200D\U0001F467")
	if u, ok := g.Unit(GridPosition{Column: 1, Row: 1}); !ok || u != "\U0001F468\u200D\U0001F469\u200D\U0001F467" {
		t.Fatalf("unit = %q ok=%v", u, ok)
	}
}

func TestSegmentCRLFIsOneBreak(t *testing.T) {
	g := Segment("ab\r\ncd", DefaultOptions())
	assertColumns(t, g, "cd", "ab")
	if g.Total() != 5 {
		t.Fatalf("total = %d, want 5", g.Total())
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	optsList := []Options{
		{SkipEmptyLines: true},
		{SkipEmptyLines: false},
		{MaxRowsPerColumn: 1, SkipEmptyLines: true},
		{MaxRowsPerColumn: 2, SkipEmptyLines: false},
		{MaxRowsPerColumn: 3, SkipEmptyLines: true},
	}
	for _, opts := range optsList {
		for _, text := range sampleTexts {
			if got := Segment(text, opts).Text(); got != text {
				t.Fatalf("opts %+v: Text() = %q, want %q", opts, got, text)
			}
		}
	}
}

func TestSegmentWrapsDoNotAddBreaks(t *testing.T) {
	text := strings.Repeat("あ", 7) + "\n" + strings.Repeat("い", 3)
	g := Segment(text, Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	if g.ColumnCount() != 6 {
		t.Fatalf("columns = %d, want 6", g.ColumnCount())
	}
	if got := strings.Count(g.Text(), "\n"); got != 1 {
		t.Fatalf("line breaks in reconstruction = %d, want 1", got)
	}
	if g.MaxRows() != 2 {
		t.Fatalf("MaxRows = %d, want 2", g.MaxRows())
	}
}

func TestCompare(t *testing.T) {
	if Compare(1, 2) != -1 || Compare(2, 2) != 0 || Compare(3, 2) != 1 {
		t.Fatalf("Compare ordering wrong")
	}
}

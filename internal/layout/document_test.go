package layout

import (
	"errors"
	"testing"
)

func TestDocumentInsertCascades(t *testing.T) {
	d := NewDocument("ABCDE", Options{MaxRowsPerColumn: 2, SkipEmptyLines: true})
	assertColumns(t, d.Grid(), "E", "CD", "AB")

	caret, err := d.Insert(0, "X")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if caret != 1 {
		t.Fatalf("caret = %d, want 1", caret)
	}
	if d.Text() != "XABCDE" {
		t.Fatalf("text = %q", d.Text())
	}
	// Every later column shifts by one row.
	assertColumns(t, d.Grid(), "DE", "BC", "XA")
	p, err := d.Mapper().ToGrid(caret)
	if err != nil {
		t.Fatalf("ToGrid error: %v", err)
	}
	if p != (GridPosition{Column: 2, Row: 1}) {
		t.Fatalf("caret cell = %+v, want {2 1}", p)
	}
}

func TestDocumentDeleteAndReplace(t *testing.T) {
	d := NewDocument("縦書き\nメモ", DefaultOptions())
	if err := d.Delete(2, 4); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if d.Text() != "縦書メモ" {
		t.Fatalf("text after delete = %q", d.Text())
	}
	assertColumns(t, d.Grid(), "縦書メモ")

	caret, err := d.Replace(4, 2, "\n")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if d.Text() != "縦書\n" || caret != 3 {
		t.Fatalf("text = %q caret = %d", d.Text(), caret)
	}
	if d.Len() != 3 {
		t.Fatalf("Len = %d, want 3", d.Len())
	}
}

func TestDocumentRangeErrors(t *testing.T) {
	d := NewDocument("abc", DefaultOptions())
	rev := d.Revision()
	if _, err := d.Insert(4, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Insert past end err = %v", err)
	}
	if err := d.Delete(-1, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Delete before start err = %v", err)
	}
	if d.Text() != "abc" || d.Revision() != rev {
		t.Fatalf("failed edit changed the document")
	}
}

func TestDocumentInsertFusesCluster(t *testing.T) {
	d := NewDocument("ab", DefaultOptions())
	caret, err := d.Insert(1, "\u0301")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if caret != 1 {
		t.Fatalf("caret = %d, want 1", caret)
	}
}

func TestDocumentSetTextAndOptions(t *testing.T) {
	d := NewDocument("", DefaultOptions())
	if d.Grid().ColumnCount() != 0 {
		t.Fatalf("empty document has columns")
	}
	rev := d.Revision()
	d.SetText("")
	if d.Revision() != rev {
		t.Fatalf("identical SetText relayouted")
	}
	d.SetText("ABCD")
	d.SetOptions(Options{MaxRowsPerColumn: 3, SkipEmptyLines: true})
	assertColumns(t, d.Grid(), "D", "ABC")
	rev = d.Revision()
	d.SetOptions(Options{MaxRowsPerColumn: 3, SkipEmptyLines: true})
	if d.Revision() != rev {
		t.Fatalf("identical SetOptions relayouted")
	}
	if got := d.Slice(1, 3); got != "BC" {
		t.Fatalf("Slice = %q", got)
	}
	if u, ok := d.UnitAt(3); !ok || u != "D" {
		t.Fatalf("UnitAt(3) = %q, %v", u, ok)
	}
}

func TestDocumentOldLayoutStaysValid(t *testing.T) {
	d := NewDocument("AB", DefaultOptions())
	g, m := d.Grid(), d.Mapper()
	if _, err := d.Insert(2, "CD"); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if g.Text() != "AB" {
		t.Fatalf("old grid text = %q", g.Text())
	}
	if _, err := m.ToGrid(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("stale mapper accepted new offset: %v", err)
	}
}

// Package layout arranges plain text into tategaki columns and maps between
// linear source offsets and (column, row) cells.
//
// Columns are kept in presentation order, the reverse of source order: index
// 0 holds the end of the text. Laid out left to right from index 0, the text
// starts at the right edge and reads leftwards. All offsets count grapheme
// units (see package grapheme), line-break units included.
package layout

import (
	"cmp"
	"strings"
)

// SourcePosition is an offset into the source text in grapheme units.
type SourcePosition int

// Compare returns -1, 0 or +1 depending on whether a is before, equal to or
// after b.
func Compare(a, b SourcePosition) int {
	return cmp.Compare(a, b)
}

// GridPosition addresses a cell by presentation column and row.
// Row == len(column) is the caret slot just past the column's last unit.
type GridPosition struct {
	Column int
	Row    int
}

// EmptyPosition is returned for lookups on a grid with no columns.
var EmptyPosition = GridPosition{Column: -1, Row: -1}

// IsEmpty reports whether p is the empty-grid sentinel.
func (p GridPosition) IsEmpty() bool {
	return p == EmptyPosition
}

// Options control segmentation.
type Options struct {
	// MaxRowsPerColumn caps the units per column. Zero or less means a whole
	// line always fits in one column.
	MaxRowsPerColumn int
	// SkipEmptyLines drops empty lines instead of emitting empty columns.
	SkipEmptyLines bool
}

// DefaultOptions returns unbounded columns with empty lines skipped.
func DefaultOptions() Options {
	return Options{SkipEmptyLines: true}
}

// Bounded reports whether columns are capacity limited.
func (o Options) Bounded() bool {
	return o.MaxRowsPerColumn > 0
}

// Column is one vertical strip, read top to bottom.
type Column struct {
	// Units is shared with the grid and must not be modified.
	Units []string
	// Start is the source offset of the first unit. Empty columns use the
	// offset of the empty line they stand for.
	Start SourcePosition
	// Line is the 0-based source line the column belongs to.
	Line int
	// Wrapped is set when the line continues in the next source-order column.
	Wrapped bool
}

func (c Column) Len() int {
	return len(c.Units)
}

// End is the offset just past the column's last unit.
func (c Column) End() SourcePosition {
	return c.Start + SourcePosition(len(c.Units))
}

func (c Column) Text() string {
	return strings.Join(c.Units, "")
}

// Grid is the result of one segmentation pass. It is immutable.
type Grid struct {
	columns []Column
	breaks  []string
	lines   int
	total   int
	opts    Options
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	if g == nil {
		return 0
	}
	return len(g.columns)
}

// Column returns the column at presentation index i.
func (g *Grid) Column(i int) Column {
	return g.columns[i]
}

// Columns returns all columns in presentation order. The slice is shared.
func (g *Grid) Columns() []Column {
	if g == nil {
		return nil
	}
	return g.columns
}

// SourceOrder returns the i-th column in reading order.
func (g *Grid) SourceOrder(i int) Column {
	return g.columns[len(g.columns)-1-i]
}

// PresentationIndex converts a source-order column index to presentation order
// and back; the mapping is its own inverse.
func (g *Grid) PresentationIndex(i int) int {
	return len(g.columns) - 1 - i
}

// Total returns the number of grapheme units in the source, line breaks
// included.
func (g *Grid) Total() int {
	if g == nil {
		return 0
	}
	return g.total
}

// LineCount returns the number of source lines, empty ones included.
func (g *Grid) LineCount() int {
	if g == nil {
		return 0
	}
	return g.lines
}

// MaxRows returns the length of the tallest column.
func (g *Grid) MaxRows() int {
	if g == nil {
		return 0
	}
	rows := 0
	for _, c := range g.columns {
		if c.Len() > rows {
			rows = c.Len()
		}
	}
	return rows
}

func (g *Grid) Options() Options {
	return g.opts
}

// Unit returns the unit drawn at pos, if pos addresses an occupied cell.
func (g *Grid) Unit(pos GridPosition) (string, bool) {
	if g == nil || pos.Column < 0 || pos.Column >= len(g.columns) {
		return "", false
	}
	c := g.columns[pos.Column]
	if pos.Row < 0 || pos.Row >= c.Len() {
		return "", false
	}
	return c.Units[pos.Row], true
}

// Text reconstructs the source text. Capacity wraps join without a break;
// skipped empty lines and the recorded break units are restored.
func (g *Grid) Text() string {
	if g == nil || g.lines == 0 {
		return ""
	}
	var sb strings.Builder
	src := len(g.columns) - 1
	for line := 0; line < g.lines; line++ {
		for src >= 0 && g.columns[src].Line == line {
			for _, u := range g.columns[src].Units {
				sb.WriteString(u)
			}
			src--
		}
		if line < len(g.breaks) {
			sb.WriteString(g.breaks[line])
		}
	}
	return sb.String()
}

package layout

import (
	"fmt"
	"sort"
)

// Mapper converts between source offsets and grid cells for one Grid.
// It is built once per segmentation pass and never mutated afterwards.
type Mapper struct {
	grid *Grid
	// starts[i] is the start offset of the i-th column in source order.
	starts []int
}

// Build indexes grid for offset lookups.
func Build(grid *Grid) *Mapper {
	if grid == nil {
		grid = &Grid{}
	}
	n := grid.ColumnCount()
	starts := make([]int, n)
	for i := 0; i < n; i++ {
		starts[i] = int(grid.SourceOrder(i).Start)
	}
	return &Mapper{grid: grid, starts: starts}
}

func (m *Mapper) Grid() *Grid {
	return m.grid
}

func (m *Mapper) Total() int {
	return m.grid.Total()
}

func (m *Mapper) ColumnCount() int {
	return len(m.starts)
}

// ToGrid returns the cell for offset. offset == Total is the end-of-text
// caret. Offsets without a cell of their own, such as a line break or a
// skipped empty line, resolve to the end of the preceding column.
func (m *Mapper) ToGrid(offset SourcePosition) (GridPosition, error) {
	if offset < 0 || int(offset) > m.grid.Total() {
		return GridPosition{}, fmt.Errorf("%w: offset %d not in [0, %d]", ErrOutOfRange, offset, m.grid.Total())
	}
	n := len(m.starts)
	if n == 0 {
		return EmptyPosition, nil
	}
	src := sort.Search(n, func(i int) bool { return m.starts[i] > int(offset) }) - 1
	if src < 0 {
		// Leading empty lines were skipped.
		return GridPosition{Column: n - 1, Row: 0}, nil
	}
	col := m.grid.SourceOrder(src)
	row := min(int(offset)-m.starts[src], col.Len())
	return GridPosition{Column: n - 1 - src, Row: row}, nil
}

// ToSource returns the offset addressed by pos.
func (m *Mapper) ToSource(pos GridPosition) (SourcePosition, error) {
	n := len(m.starts)
	if pos.Column < 0 || pos.Column >= n {
		return 0, fmt.Errorf("%w: column %d not in [0, %d)", ErrInvalidGridPosition, pos.Column, n)
	}
	src := n - 1 - pos.Column
	length := m.grid.SourceOrder(src).Len()
	if pos.Row < 0 || pos.Row > length {
		return 0, fmt.Errorf("%w: row %d not in [0, %d] for column %d", ErrInvalidGridPosition, pos.Row, length, pos.Column)
	}
	return SourcePosition(m.starts[src] + pos.Row), nil
}

// ClampToNearest pulls pos into the grid's shape. It returns EmptyPosition
// when the grid has no columns.
func (m *Mapper) ClampToNearest(pos GridPosition) GridPosition {
	n := len(m.starts)
	if n == 0 {
		return EmptyPosition
	}
	col := clampInt(pos.Column, 0, n-1)
	row := clampInt(pos.Row, 0, m.grid.Column(col).Len())
	return GridPosition{Column: col, Row: row}
}

// Valid reports whether pos lies inside the grid's shape.
func (m *Mapper) Valid(pos GridPosition) bool {
	if pos.Column < 0 || pos.Column >= len(m.starts) {
		return false
	}
	return pos.Row >= 0 && pos.Row <= m.grid.Column(pos.Column).Len()
}

// Cells returns the occupied cells covering [start, end), in source order.
// Line breaks and skipped lines have no cell and are left out. The range is
// clamped to the text.
func (m *Mapper) Cells(start, end SourcePosition) []GridPosition {
	if start > end {
		start, end = end, start
	}
	start = max(start, 0)
	end = min(end, SourcePosition(m.grid.Total()))
	if start >= end || len(m.starts) == 0 {
		return nil
	}

	var out []GridPosition
	n := len(m.starts)
	src := sort.Search(n, func(i int) bool { return m.starts[i] > int(start) }) - 1
	src = max(src, 0)
	for ; src < n; src++ {
		col := m.grid.SourceOrder(src)
		if col.Start >= end {
			break
		}
		from := max(int(start), int(col.Start))
		to := min(int(end), int(col.End()))
		for off := from; off < to; off++ {
			out = append(out, GridPosition{Column: n - 1 - src, Row: off - int(col.Start)})
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

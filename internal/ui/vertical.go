package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tatememo/internal/grapheme"
	"github.com/kobzarvs/tatememo/internal/layout"
)

const (
	columnGap   = 1
	rightMargin = 1
)

func (e *Editor) columnWidth() int {
	return e.cellWidth + columnGap
}

// visibleColumns is how many columns fit across the view.
func (e *Editor) visibleColumns() int {
	return max((e.viewWidth-rightMargin)/e.columnWidth(), 1)
}

// slotX is the screen x of the first cell of source-order column src.
// Column hscroll sits against the right margin and later columns follow to
// the left.
func (e *Editor) slotX(src int) int {
	return e.viewWidth - rightMargin - (src-e.hscroll+1)*e.columnWidth() + columnGap
}

// caretGrid returns the caret cell. An empty grid puts it at the top of the
// first column slot.
func (e *Editor) caretGrid() layout.GridPosition {
	m := e.doc.Mapper()
	pos, err := m.ToGrid(e.caret)
	if err != nil {
		e.caret = layout.SourcePosition(clampIndex(int(e.caret), e.doc.Len()+1))
		pos, _ = m.ToGrid(e.caret)
	}
	return pos
}

// sourceColumn converts a presentation index into a source-order index.
func (e *Editor) sourceColumn(pos layout.GridPosition) int {
	if pos.IsEmpty() {
		return 0
	}
	return e.doc.Grid().ColumnCount() - 1 - pos.Column
}

func (e *Editor) moveCaret(to layout.SourcePosition) {
	if e.doc == nil {
		return
	}
	e.caret = max(0, min(to, layout.SourcePosition(e.doc.Len())))
}

// moveColumn steps dir presentation columns, keeping the row where the
// target column is long enough.
func (e *Editor) moveColumn(dir int) {
	if e.doc == nil {
		return
	}
	m := e.doc.Mapper()
	pos := e.caretGrid()
	if pos.IsEmpty() {
		return
	}
	target := pos.Column + dir
	if target < 0 || target >= m.ColumnCount() {
		return
	}
	off, err := m.ToSource(m.ClampToNearest(layout.GridPosition{Column: target, Row: pos.Row}))
	if err != nil {
		return
	}
	e.caret = off
}

func (e *Editor) moveColumnEdge(end bool) {
	if e.doc == nil {
		return
	}
	m := e.doc.Mapper()
	pos := e.caretGrid()
	if pos.IsEmpty() {
		return
	}
	row := 0
	if end {
		row = e.doc.Grid().Column(pos.Column).Len()
	}
	if off, err := m.ToSource(layout.GridPosition{Column: pos.Column, Row: row}); err == nil {
		e.caret = off
	}
}

// hitTest maps a screen cell in the text area to a source offset.
func (e *Editor) hitTest(x, y int) (layout.SourcePosition, bool) {
	m := e.doc.Mapper()
	n := m.ColumnCount()
	if n == 0 {
		return 0, true
	}
	d := e.viewWidth - rightMargin - 1 - x
	k := 0
	if d > 0 {
		k = d / e.columnWidth()
	}
	src := e.hscroll + k
	pos := m.ClampToNearest(layout.GridPosition{Column: n - 1 - src, Row: y + e.vscroll})
	off, err := m.ToSource(pos)
	if err != nil {
		return 0, false
	}
	return off, true
}

// ensureCaretVisible scrolls so the caret's column and row are on screen.
func (e *Editor) ensureCaretVisible(pos layout.GridPosition) {
	src := e.sourceColumn(pos)
	visible := e.visibleColumns()
	if src < e.hscroll {
		e.hscroll = src
	}
	if src >= e.hscroll+visible {
		e.hscroll = src - visible + 1
	}
	row := max(pos.Row, 0)
	if row < e.vscroll {
		e.vscroll = row
	}
	if row >= e.vscroll+e.viewHeight {
		e.vscroll = row - e.viewHeight + 1
	}
}

func (e *Editor) scrollColumns(delta int) {
	n := e.doc.Grid().ColumnCount()
	e.hscroll = max(0, min(e.hscroll+delta, n-1))
	e.freeScroll = true
}

func (e *Editor) renderVertical(s tcell.Screen) {
	e.doc.SetOptions(e.layoutOptions())
	grid := e.doc.Grid()
	n := grid.ColumnCount()
	caret := e.caretGrid()
	if !e.freeScroll {
		e.ensureCaretVisible(caret)
	}

	for p := 0; p < n; p++ {
		src := n - 1 - p
		x := e.slotX(src)
		if x < 0 || x+e.cellWidth > e.viewWidth {
			continue
		}
		col := grid.Column(p)
		if col.Len() == 0 && e.vscroll == 0 && e.viewHeight > 0 {
			// Kept empty line.
			s.SetContent(x, 0, '·', nil, e.styleRule)
		}
		for row, unit := range col.Units {
			y := row - e.vscroll
			if y < 0 {
				continue
			}
			if y >= e.viewHeight {
				break
			}
			e.drawUnit(s, x, y, unit, e.styleMain)
		}
	}

	// More text off either edge.
	if e.hscroll > 0 && e.viewHeight > 0 {
		s.SetContent(e.viewWidth-1, 0, '›', nil, e.styleRule)
	}
	if n-e.hscroll > e.visibleColumns() && e.viewHeight > 0 {
		s.SetContent(0, 0, '‹', nil, e.styleRule)
	}

	if e.editable() {
		return
	}
	// View mode marks the caret cell instead of showing a terminal cursor.
	if x, y, ok := e.caretCell(caret); ok {
		unit := " "
		if !caret.IsEmpty() {
			if u, ok := grid.Unit(caret); ok {
				unit = u
			}
		}
		e.drawUnit(s, x, y, unit, e.styleCaret)
	}
}

// caretCell is the screen cell of the caret, if it is on screen.
func (e *Editor) caretCell(pos layout.GridPosition) (int, int, bool) {
	x := e.slotX(e.sourceColumn(pos))
	y := max(pos.Row, 0) - e.vscroll
	if x < 0 || x >= e.viewWidth || y < 0 || y >= e.viewHeight {
		return 0, 0, false
	}
	return x, y, true
}

// drawUnit draws one unit centred in its slot.
func (e *Editor) drawUnit(s tcell.Screen, x, y int, unit string, style tcell.Style) {
	if e.verticalForms {
		unit = verticalForm(unit)
	}
	w := grapheme.Width(unit)
	for i := 0; i < e.cellWidth; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
	if w <= 0 {
		return
	}
	if w < e.cellWidth {
		x += (e.cellWidth - w) / 2
	}
	setCluster(s, x, y, unit, style)
}

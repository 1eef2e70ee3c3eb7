package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const listHeaderRows = 1

func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	statusY := h - 2
	cmdY := h - 1
	viewHeight := h - 2
	if h < 2 {
		statusY = h - 1
		cmdY = h - 1
	}
	if viewHeight < 0 {
		viewHeight = 0
	}
	e.viewHeight = viewHeight
	e.viewWidth = w

	s.SetStyle(e.styleMain)
	s.Clear()

	switch e.mode {
	case ModeList, ModeConfirmDelete:
		e.renderList(s, w, viewHeight)
	default:
		e.renderVertical(s)
	}

	if statusY >= 0 {
		e.renderStatusline(s, w, statusY)
	}
	if cmdY >= 0 && cmdY != statusY {
		e.renderCommandline(s, w, cmdY)
	}

	if !e.editable() {
		s.HideCursor()
		s.Show()
		return
	}
	x, y, ok := e.caretCell(e.caretGrid())
	if !ok {
		s.HideCursor()
		s.Show()
		return
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(x, y)
	s.Show()
}

func (e *Editor) renderList(s tcell.Screen, w, viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	header := fmt.Sprintf(" 縦書きメモ  %d", len(e.memos))
	drawText(s, 0, 0, w, header, e.styleTitle)

	rows := viewHeight - listHeaderRows
	if rows <= 0 {
		return
	}
	if len(e.memos) == 0 {
		drawText(s, 1, listHeaderRows, w, "メモがありません", e.styleRule)
		return
	}
	if e.selected < e.listScroll {
		e.listScroll = e.selected
	}
	if e.selected >= e.listScroll+rows {
		e.listScroll = e.selected - rows + 1
	}
	for y := 0; y < rows; y++ {
		i := e.listScroll + y
		if i >= len(e.memos) {
			break
		}
		style := e.styleMain
		if i == e.selected {
			style = e.styleSelected
			clearLine(s, listHeaderRows+y, w, style)
		}
		title := runewidth.Truncate(e.titles[i], max(w-2, 0), "…")
		drawText(s, 1, listHeaderRows+y, w, title, style)
	}
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	mode := e.mode.String()
	name := ""
	switch {
	case e.mode == ModeCompose:
		name = "[new]"
	case e.mode != ModeList && e.mode != ModeConfirmDelete:
		name = fmt.Sprintf("%d/%d", e.current+1, len(e.memos))
	case len(e.memos) > 0:
		name = fmt.Sprintf("%d/%d", e.selected+1, len(e.memos))
	}
	dirty := ""
	if e.dirty {
		dirty = "*"
	}

	status := fmt.Sprintf(" %s | %s%s ", mode, name, dirty)
	if e.statusMessage != "" {
		status = fmt.Sprintf(" %s | %s%s | %s ", mode, name, dirty, e.statusMessage)
	}
	var position, offset string
	if e.mode != ModeList && e.mode != ModeConfirmDelete && e.doc != nil {
		pos := e.caretGrid()
		col, row := 1, 1
		if !pos.IsEmpty() {
			col = e.sourceColumn(pos) + 1
			row = pos.Row + 1
		}
		position = fmt.Sprintf("Col %d, Row %d", col, row)
		offset = fmt.Sprintf("%d/%d", e.caret, e.doc.Len())
	}
	right := statusSegments(position, offset, e.layoutName)
	if runewidth.StringWidth(status)+runewidth.StringWidth(right) > w {
		// The offset is the first thing to go on a narrow screen.
		right = statusSegments(position, e.layoutName)
	}

	clearLine(s, y, w, e.styleStatus)
	drawText(s, 0, y, w, composeStatusLine(status, right, w), e.styleStatus)
}

// statusSegments joins the non-empty parts of the right side of the status
// line.
func statusSegments(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return " " + strings.Join(kept, " | ") + " "
}

func (e *Editor) renderCommandline(s tcell.Screen, w, y int) {
	clearLine(s, y, w, e.styleCommand)
	var text string
	switch e.mode {
	case ModeConfirmDelete:
		title := ""
		if e.selected < len(e.titles) {
			title = e.titles[e.selected]
		}
		text = fmt.Sprintf("delete %q? (y/n)", title)
	case ModeList:
		text = e.hints(e.keymap.list, actionOpen, actionAdd, actionDelete, actionQuit)
	case ModeView:
		text = e.hints(e.keymap.view, actionToggleEdit, actionCopy, actionBack)
	default:
		text = e.hints(e.keymap.edit, actionSave, actionFinish, actionPaste)
	}
	drawText(s, 0, y, w, text, e.styleCommand)
}

// hints lists the first key bound to each action.
func (e *Editor) hints(keymap map[string]string, actions ...string) string {
	var parts []string
	for _, action := range actions {
		key := ""
		for k, v := range keymap {
			if v == action && (key == "" || len(k) < len(key) || (len(k) == len(key) && k < key)) {
				key = k
			}
		}
		if key != "" {
			parts = append(parts, key+":"+strings.ReplaceAll(action, "_", " "))
		}
	}
	return " " + strings.Join(parts, "  ")
}

func (e *Editor) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch e.mode {
	case ModeList:
		e.handleListMouse(ev, y)
	case ModeView, ModeEdit, ModeCompose:
		switch ev.Buttons() {
		case tcell.WheelUp:
			e.scrollColumns(-1)
		case tcell.WheelDown:
			e.scrollColumns(1)
		case tcell.Button1:
			if y < 0 || y >= e.viewHeight {
				return
			}
			if off, ok := e.hitTest(x, y); ok {
				e.caret = off
				e.freeScroll = false
			}
		}
	}
}

func (e *Editor) handleListMouse(ev *tcell.EventMouse, y int) {
	switch ev.Buttons() {
	case tcell.WheelUp:
		e.selectMemo(e.selected - 1)
	case tcell.WheelDown:
		e.selectMemo(e.selected + 1)
	case tcell.Button1:
		i := e.listScroll + y - listHeaderRows
		if y < listHeaderRows || i < 0 || i >= len(e.memos) {
			return
		}
		if i == e.selected {
			e.openSelected()
			return
		}
		e.selectMemo(i)
	}
}

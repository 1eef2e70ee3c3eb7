// Package ui is the terminal front end: a memo list plus a vertical
// (tategaki) viewer and editor drawn with tcell.
package ui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tatememo/internal/config"
	"github.com/kobzarvs/tatememo/internal/layout"
	"github.com/kobzarvs/tatememo/internal/logger"
	"github.com/kobzarvs/tatememo/internal/preview"
	"github.com/kobzarvs/tatememo/internal/store"
)

var log = logger.Component("ui")

type Mode int

const (
	ModeList Mode = iota
	ModeView
	ModeEdit
	ModeCompose
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "VIEW"
	case ModeEdit:
		return "EDIT"
	case ModeCompose:
		return "NEW"
	case ModeConfirmDelete:
		return "DELETE"
	default:
		return "LIST"
	}
}

const (
	actionMoveUp      = "move_up"
	actionMoveDown    = "move_down"
	actionFirst       = "first"
	actionLast        = "last"
	actionOpen        = "open"
	actionAdd         = "add"
	actionDelete      = "delete"
	actionQuit        = "quit"
	actionBack        = "back"
	actionToggleEdit  = "toggle_edit"
	actionColumnNext  = "column_next" // one column left, later in the text
	actionColumnPrev  = "column_prev" // one column right, earlier in the text
	actionColumnStart = "column_start"
	actionColumnEnd   = "column_end"
	actionTextStart   = "text_start"
	actionTextEnd     = "text_end"
	actionCopy        = "copy"
	actionFinish      = "finish"
	actionSave        = "save"
	actionBackspace   = "backspace"
	actionDeleteChar  = "delete_char"
	actionNewline     = "newline"
	actionPaste       = "paste"
)

// MemoStore is the persistence the editor needs. *store.Manager implements
// it.
type MemoStore interface {
	Load() []string
	Add(text string) (int, error)
	Update(i int, text string) error
	Delete(i int) error
	Cursor(i int) (int, bool)
	SetCursor(i, offset int)
	Selected() int
	SetSelected(i int)
}

type keymapSet struct {
	list map[string]string
	view map[string]string
	edit map[string]string
}

type Editor struct {
	store  MemoStore
	titler *preview.Titler
	keymap keymapSet
	layout config.LayoutOptions
	mode   Mode

	memos      []string
	titles     []string
	selected   int
	listScroll int

	// current is the memo open in view or edit mode, -1 while composing.
	current int
	doc     *layout.Document
	caret   layout.SourcePosition
	dirty   bool

	hscroll    int
	vscroll    int
	freeScroll bool
	viewHeight int
	viewWidth  int

	cellWidth     int
	verticalForms bool
	statusMessage string
	layoutName    string

	styleMain     tcell.Style
	styleStatus   tcell.Style
	styleCommand  tcell.Style
	styleTitle    tcell.Style
	styleSelected tcell.Style
	styleCaret    tcell.Style
	styleRule     tcell.Style

	copyText   func(string) error
	pasteText  func() (string, error)
	actionHook func(string)
}

func New(cfg config.Config, st MemoStore) *Editor {
	list := make(map[string]string, len(cfg.Keymap.List))
	for k, v := range cfg.Keymap.List {
		list[k] = v
	}
	view := make(map[string]string, len(cfg.Keymap.View))
	for k, v := range cfg.Keymap.View {
		view[k] = v
	}
	edit := make(map[string]string, len(cfg.Keymap.Edit))
	for k, v := range cfg.Keymap.Edit {
		edit[k] = v
	}
	cellWidth := cfg.Editor.CellWidth
	if cellWidth < 1 || cellWidth > 2 {
		cellWidth = 2
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(cfg.Theme.CommandlineForeground, statusFg)
	commandBg := parseColor(cfg.Theme.CommandlineBackground, statusBg)
	titleFg := parseColor(cfg.Theme.TitleForeground, mainFg)
	selectedFg := parseColor(cfg.Theme.ListSelectedForeground, mainBg)
	selectedBg := parseColor(cfg.Theme.ListSelectedBackground, mainFg)
	caretFg := parseColor(cfg.Theme.CaretForeground, mainBg)
	caretBg := parseColor(cfg.Theme.CaretBackground, mainFg)
	ruleFg := parseColor(cfg.Theme.RuleForeground, tcell.ColorGray)

	e := &Editor{
		store:         st,
		titler:        preview.NewTitler(),
		keymap:        keymapSet{list: list, view: view, edit: edit},
		layout:        cfg.Layout,
		mode:          ModeList,
		current:       -1,
		cellWidth:     cellWidth,
		verticalForms: cfg.Editor.VerticalForms,
		viewHeight:    20,
		viewWidth:     80,
		styleMain:     tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:   tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleCommand:  tcell.StyleDefault.Foreground(commandFg).Background(commandBg),
		styleTitle:    tcell.StyleDefault.Foreground(titleFg).Background(mainBg).Bold(true),
		styleSelected: tcell.StyleDefault.Foreground(selectedFg).Background(selectedBg),
		styleCaret:    tcell.StyleDefault.Foreground(caretFg).Background(caretBg),
		styleRule:     tcell.StyleDefault.Foreground(ruleFg).Background(mainBg),
		copyText:      clipboard.WriteAll,
		pasteText:     clipboard.ReadAll,
	}
	e.reloadMemos()
	e.selected = clampIndex(st.Selected(), len(e.memos))
	return e
}

func (e *Editor) Mode() Mode {
	return e.mode
}

// Document is the memo being viewed or edited, nil in list mode.
func (e *Editor) Document() *layout.Document {
	if e.mode == ModeList {
		return nil
	}
	return e.doc
}

func (e *Editor) Caret() layout.SourcePosition {
	return e.caret
}

func (e *Editor) Selected() int {
	return e.selected
}

func (e *Editor) StatusMessage() string {
	return e.statusMessage
}

func (e *Editor) SetStatusMessage(msg string) {
	e.statusMessage = msg
}

func (e *Editor) SetKeyboardLayout(name string) {
	e.layoutName = name
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

func (e *Editor) reloadMemos() {
	e.memos = e.store.Load()
	e.titles = make([]string, len(e.memos))
	for i, m := range e.memos {
		e.titles[i] = e.titler.Title(m)
	}
}

// layoutOptions derives segmentation options for the current view. One row
// is kept free so the caret after a full column stays on screen.
func (e *Editor) layoutOptions() layout.Options {
	return e.layout.Options(max(e.viewHeight-1, 1))
}

// HandleKey processes one key event and reports whether the program should
// exit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.freeScroll = false
	if e.mode != ModeConfirmDelete {
		e.statusMessage = ""
	}
	switch e.mode {
	case ModeConfirmDelete:
		return e.handleConfirmDelete(ev)
	case ModeView:
		return e.handleMapped(ev, e.keymap.view)
	case ModeEdit, ModeCompose:
		return e.handleEdit(ev)
	default:
		return e.handleMapped(ev, e.keymap.list)
	}
}

func (e *Editor) handleMapped(ev *tcell.EventKey, keymap map[string]string) bool {
	if action, ok := keymap[keyString(ev)]; ok {
		return e.execAction(action)
	}
	return false
}

func (e *Editor) handleEdit(ev *tcell.EventKey) bool {
	if action, ok := e.keymap.edit[keyString(ev)]; ok {
		return e.execAction(action)
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		e.insertText(string(ev.Rune()))
	}
	return false
}

func (e *Editor) handleConfirmDelete(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
		e.deleteSelected()
	} else {
		e.setStatus("delete cancelled")
	}
	e.mode = ModeList
	return false
}

func (e *Editor) execAction(action string) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case actionQuit:
		e.Shutdown()
		return true
	case actionMoveUp:
		if e.mode == ModeList {
			e.selectMemo(e.selected - 1)
		} else {
			e.moveCaret(e.caret - 1)
		}
	case actionMoveDown:
		if e.mode == ModeList {
			e.selectMemo(e.selected + 1)
		} else {
			e.moveCaret(e.caret + 1)
		}
	case actionFirst:
		e.selectMemo(0)
	case actionLast:
		e.selectMemo(len(e.memos) - 1)
	case actionOpen:
		e.openSelected()
	case actionAdd:
		e.compose()
	case actionDelete:
		if len(e.memos) == 0 {
			e.setStatus("no memo to delete")
			break
		}
		e.mode = ModeConfirmDelete
	case actionBack:
		e.closeMemo()
	case actionToggleEdit:
		if e.mode == ModeView {
			e.mode = ModeEdit
		}
	case actionColumnNext:
		e.moveColumn(-1)
	case actionColumnPrev:
		e.moveColumn(1)
	case actionColumnStart:
		e.moveColumnEdge(false)
	case actionColumnEnd:
		e.moveColumnEdge(true)
	case actionTextStart:
		e.moveCaret(0)
	case actionTextEnd:
		if e.doc != nil {
			e.moveCaret(layout.SourcePosition(e.doc.Len()))
		}
	case actionCopy:
		e.copyMemo()
	case actionFinish:
		e.finishEdit()
	case actionSave:
		e.saveEdit()
	case actionBackspace:
		if e.caret > 0 {
			e.deleteRange(e.caret-1, e.caret)
		}
	case actionDeleteChar:
		if e.doc != nil && int(e.caret) < e.doc.Len() {
			e.deleteRange(e.caret, e.caret+1)
		}
	case actionNewline:
		e.insertText("\n")
	case actionPaste:
		e.paste()
	}
	return false
}

func (e *Editor) selectMemo(i int) {
	if len(e.memos) == 0 {
		return
	}
	e.selected = clampIndex(i, len(e.memos))
	e.store.SetSelected(e.selected)
}

func (e *Editor) openSelected() {
	if len(e.memos) == 0 {
		e.setStatus("no memos yet")
		return
	}
	i := e.selected
	e.current = i
	e.doc = layout.NewDocument(e.memos[i], e.layoutOptions())
	e.caret = 0
	if off, ok := e.store.Cursor(i); ok {
		e.caret = layout.SourcePosition(clampIndex(off, e.doc.Len()+1))
	}
	e.dirty = false
	e.hscroll, e.vscroll = 0, 0
	e.mode = ModeView
}

func (e *Editor) compose() {
	e.current = -1
	e.doc = layout.NewDocument("", e.layoutOptions())
	e.caret = 0
	e.dirty = false
	e.hscroll, e.vscroll = 0, 0
	e.mode = ModeCompose
}

// closeMemo leaves view mode for the list, remembering the caret.
func (e *Editor) closeMemo() {
	if e.current >= 0 {
		e.store.SetCursor(e.current, int(e.caret))
	}
	e.mode = ModeList
}

// finishEdit ends an edit session. Editing an existing memo saves it and
// returns to view mode; composing is abandoned.
func (e *Editor) finishEdit() {
	if e.mode == ModeCompose {
		e.mode = ModeList
		e.doc = nil
		e.setStatus("discarded new memo")
		return
	}
	if e.dirty && !e.commit() {
		return
	}
	e.mode = ModeView
}

func (e *Editor) saveEdit() {
	if e.commit() {
		e.setStatus("saved")
	}
}

// commit writes the document back to the store. A composed memo becomes a
// new entry and the editor switches over to it.
func (e *Editor) commit() bool {
	text := e.doc.Text()
	if e.mode == ModeCompose {
		i, err := e.store.Add(text)
		if err != nil {
			e.reportError("add memo", err)
			return false
		}
		e.reloadMemos()
		e.current = i
		e.selectMemo(i)
		e.mode = ModeEdit
		e.dirty = false
		return true
	}
	if err := e.store.Update(e.current, text); err != nil {
		e.reportError("save memo", err)
		return false
	}
	e.memos[e.current] = text
	e.titles[e.current] = e.titler.Title(text)
	e.dirty = false
	return true
}

func (e *Editor) deleteSelected() {
	i := e.selected
	if err := e.store.Delete(i); err != nil {
		e.reportError("delete memo", err)
		return
	}
	e.reloadMemos()
	e.selected = clampIndex(i, len(e.memos))
	e.store.SetSelected(e.selected)
	e.setStatus("deleted")
}

func (e *Editor) reportError(op string, err error) {
	log.Warn(op+" failed", "error", err)
	if errors.Is(err, store.ErrBlankMemo) {
		e.setStatus("memo is empty")
		return
	}
	e.setStatus(fmt.Sprintf("%s: %v", op, err))
}

func (e *Editor) editable() bool {
	return e.mode == ModeEdit || e.mode == ModeCompose
}

func (e *Editor) insertText(text string) {
	if !e.editable() || text == "" {
		return
	}
	caret, err := e.doc.Insert(e.caret, text)
	if err != nil {
		e.reportError("insert", err)
		return
	}
	e.caret = caret
	e.dirty = true
}

func (e *Editor) deleteRange(start, end layout.SourcePosition) {
	if !e.editable() {
		return
	}
	if err := e.doc.Delete(start, end); err != nil {
		e.reportError("delete", err)
		return
	}
	e.caret = start
	e.dirty = true
}

func (e *Editor) copyMemo() {
	if e.doc == nil {
		return
	}
	if err := e.copyText(e.doc.Text()); err != nil {
		e.setStatus("clipboard unavailable")
		log.Debug("clipboard write failed", "error", err)
		return
	}
	e.setStatus("copied to clipboard")
}

func (e *Editor) paste() {
	text, err := e.pasteText()
	if err != nil {
		e.setStatus("clipboard unavailable")
		log.Debug("clipboard read failed", "error", err)
		return
	}
	if text == "" {
		e.setStatus("clipboard empty")
		return
	}
	e.insertText(text)
}

// Shutdown records view state before exit. Unsaved edits of an existing memo
// are written; a non-blank composed memo is added.
func (e *Editor) Shutdown() {
	switch e.mode {
	case ModeEdit:
		if e.dirty {
			e.commit()
		}
	case ModeCompose:
		if !store.IsBlank(e.doc.Text()) {
			e.commit()
		}
	}
	if e.mode != ModeList && e.current >= 0 {
		e.store.SetCursor(e.current, int(e.caret))
	}
	e.store.SetSelected(e.selected)
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

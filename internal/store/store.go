// Package store persists the memo list and per-memo view state in a small
// JSON key-value file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kobzarvs/tatememo/internal/logger"
)

var log = logger.Component("store")

var (
	ErrBlankMemo  = errors.New("memo is blank")
	ErrNoSuchMemo = errors.New("no such memo")
)

// MemosKey is the key the memo list is stored under.
const MemosKey = "savedMemos"

// Data is the on-disk layout.
type Data struct {
	Memos []string `json:"savedMemos"`
	// Cursors maps a memo index to the caret offset it was left at.
	Cursors   map[string]int `json:"cursors,omitempty"`
	Selected  int            `json:"selected"`
	LastSaved time.Time      `json:"last_saved"`
}

// Manager handles memo persistence.
//
// Memo changes are written through immediately. View state (carets, the
// selected row) is saved by the autosave loop and on Stop.
type Manager struct {
	mu       sync.RWMutex
	data     Data
	path     string
	dirty    bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewManager opens the store at the default location.
func NewManager() (*Manager, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open loads the store at path and starts the autosave loop. A missing file
// is an empty store.
func Open(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	m := &Manager{
		data:     Data{Cursors: make(map[string]int)},
		path:     path,
		stopChan: make(chan struct{}),
	}
	if err := m.read(); err != nil {
		return nil, err
	}
	go m.autosaveLoop()
	return m, nil
}

// DefaultPath is $XDG_STATE_HOME/tatememo/store.json.
func DefaultPath() (string, error) {
	if v := os.Getenv("TATEMEMO_STATE_HOME"); v != "" {
		return filepath.Join(v, "store.json"), nil
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "tatememo", "store.json"), nil
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) read() error {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode %s: %w", m.path, err)
	}
	if data.Cursors == nil {
		data.Cursors = make(map[string]int)
	}
	m.data = data
	return nil
}

// Load returns a copy of the memo list.
func (m *Manager) Load() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.data.Memos...)
}

// Save replaces the memo list and writes it out.
func (m *Manager) Save(memos []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Memos = append([]string(nil), memos...)
	m.pruneCursorsLocked()
	return m.writeLocked()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data.Memos)
}

// Get returns memo i.
func (m *Manager) Get(i int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.data.Memos) {
		return "", fmt.Errorf("%w: %d", ErrNoSuchMemo, i)
	}
	return m.data.Memos[i], nil
}

// Add appends text as a new memo and returns its index. Text that is empty
// after trimming whitespace and line breaks is rejected.
func (m *Manager) Add(text string) (int, error) {
	if IsBlank(text) {
		return -1, ErrBlankMemo
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.data
	next.Memos = append(slices.Clone(m.data.Memos), text)
	if err := m.commitLocked(next); err != nil {
		return -1, err
	}
	return len(m.data.Memos) - 1, nil
}

// Update replaces memo i.
func (m *Manager) Update(i int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.data.Memos) {
		return fmt.Errorf("%w: %d", ErrNoSuchMemo, i)
	}
	next := m.data
	next.Memos = slices.Clone(m.data.Memos)
	next.Memos[i] = text
	return m.commitLocked(next)
}

// Delete removes memo i. Carets of later memos move down with them.
func (m *Manager) Delete(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.data.Memos) {
		return fmt.Errorf("%w: %d", ErrNoSuchMemo, i)
	}
	next := m.data
	next.Memos = slices.Delete(slices.Clone(m.data.Memos), i, i+1)
	next.Cursors = make(map[string]int, len(m.data.Cursors))
	for k, v := range m.data.Cursors {
		idx, err := strconv.Atoi(k)
		if err != nil || idx == i {
			continue
		}
		if idx > i {
			idx--
		}
		next.Cursors[strconv.Itoa(idx)] = v
	}
	if next.Selected >= len(next.Memos) {
		next.Selected = max(len(next.Memos)-1, 0)
	}
	return m.commitLocked(next)
}

// commitLocked writes next and keeps it only when the write succeeds.
func (m *Manager) commitLocked(next Data) error {
	prev := m.data
	m.data = next
	if err := m.writeLocked(); err != nil {
		m.data = prev
		return err
	}
	return nil
}

// Cursor returns the saved caret offset for memo i.
func (m *Manager) Cursor(i int) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data.Cursors[strconv.Itoa(i)]
	return v, ok
}

// SetCursor records the caret offset for memo i.
func (m *Manager) SetCursor(i, offset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strconv.Itoa(i)
	if v, ok := m.data.Cursors[key]; ok && v == offset {
		return
	}
	m.data.Cursors[key] = offset
	m.dirty = true
}

func (m *Manager) Selected() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Selected
}

func (m *Manager) SetSelected(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data.Selected == i {
		return
	}
	m.data.Selected = i
	m.dirty = true
}

// Flush writes pending view state.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	return m.writeLocked()
}

func (m *Manager) pruneCursorsLocked() {
	for k := range m.data.Cursors {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 || idx >= len(m.data.Memos) {
			delete(m.data.Cursors, k)
		}
	}
}

func (m *Manager) writeLocked() error {
	m.data.LastSaved = time.Now()
	raw, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".store-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	m.dirty = false
	log.Debug("store saved", "path", m.path, "memos", len(m.data.Memos))
	return nil
}

func (m *Manager) autosaveLoop() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.Flush(); err != nil {
				log.Warn("autosave failed", "path", m.path, "error", err)
			}
		case <-m.stopChan:
			return
		}
	}
}

// Stop stops the autosave loop and saves pending state.
func (m *Manager) Stop() error {
	m.stopOnce.Do(func() { close(m.stopChan) })
	return m.Flush()
}

// IsBlank reports whether text has nothing but whitespace and line breaks.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

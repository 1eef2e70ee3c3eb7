package layout

import (
	"fmt"

	"github.com/kobzarvs/tatememo/internal/grapheme"
	"github.com/kobzarvs/tatememo/internal/logger"
)

var log = logger.Component("layout")

// Document holds the text of one memo together with its current layout.
//
// Every mutation re-segments the whole text and rebuilds the mapper: an
// insertion in bounded mode can shift every later unit by one row, so column
// contents change far from the edit. Grid and Mapper values handed out
// earlier stay valid for the text they were built from.
//
// A Document is not safe for concurrent use.
type Document struct {
	opts     Options
	text     string
	units    []string
	grid     *Grid
	mapper   *Mapper
	revision uint64
}

func NewDocument(text string, opts Options) *Document {
	d := &Document{opts: opts, text: text}
	d.relayout()
	return d
}

func (d *Document) Text() string {
	return d.text
}

// Len returns the number of grapheme units in the text.
func (d *Document) Len() int {
	return len(d.units)
}

func (d *Document) Options() Options {
	return d.opts
}

func (d *Document) Grid() *Grid {
	return d.grid
}

func (d *Document) Mapper() *Mapper {
	return d.mapper
}

// Revision increases on every relayout.
func (d *Document) Revision() uint64 {
	return d.revision
}

// SetText replaces the whole text.
func (d *Document) SetText(text string) {
	if text == d.text && d.grid != nil {
		return
	}
	d.text = text
	d.relayout()
}

// SetOptions changes segmentation options and lays the text out again.
func (d *Document) SetOptions(opts Options) {
	if opts == d.opts && d.grid != nil {
		return
	}
	d.opts = opts
	d.relayout()
}

// Insert puts text at offset at and returns the offset just past it.
func (d *Document) Insert(at SourcePosition, text string) (SourcePosition, error) {
	return d.Replace(at, at, text)
}

// Delete removes [start, end).
func (d *Document) Delete(start, end SourcePosition) error {
	_, err := d.Replace(start, end, "")
	return err
}

// Replace swaps [start, end) for text and returns the offset just past the
// inserted text. start and end may be given in either order.
func (d *Document) Replace(start, end SourcePosition, text string) (SourcePosition, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || int(end) > len(d.units) {
		return 0, fmt.Errorf("%w: range [%d, %d) not in [0, %d]", ErrOutOfRange, start, end, len(d.units))
	}
	if start == end && text == "" {
		return start, nil
	}
	prefix := grapheme.Join(d.units[:start]) + text
	d.text = prefix + grapheme.Join(d.units[end:])
	d.relayout()
	// Inserted text can fuse with a neighbour into one cluster.
	caret := min(grapheme.Count(prefix), len(d.units))
	return SourcePosition(caret), nil
}

// Slice returns the text of [start, end), clamped to the document.
func (d *Document) Slice(start, end SourcePosition) string {
	if start > end {
		start, end = end, start
	}
	start = max(start, 0)
	end = min(end, SourcePosition(len(d.units)))
	if start >= end {
		return ""
	}
	return grapheme.Join(d.units[start:end])
}

// UnitAt returns the unit at offset, if any.
func (d *Document) UnitAt(offset SourcePosition) (string, bool) {
	if offset < 0 || int(offset) >= len(d.units) {
		return "", false
	}
	return d.units[offset], true
}

func (d *Document) relayout() {
	d.units = grapheme.Split(d.text)
	d.grid = segmentUnits(d.units, d.opts)
	d.mapper = Build(d.grid)
	d.revision++
	log.Debug("relayout",
		"revision", d.revision,
		"units", len(d.units),
		"columns", d.grid.ColumnCount(),
		"max_rows", d.opts.MaxRowsPerColumn,
	)
}

package layout

import (
	"slices"

	"github.com/kobzarvs/tatememo/internal/grapheme"
)

// Segment splits source into columns. It never fails.
//
// Lines are split at line-break units. Each non-empty line becomes one column,
// or consecutive chunks of at most opts.MaxRowsPerColumn units when bounded.
// Columns are collected in reading order and then reversed once, globally, so
// the last column of the last line comes first.
func Segment(source string, opts Options) *Grid {
	return segmentUnits(grapheme.Split(source), opts)
}

func segmentUnits(units []string, opts Options) *Grid {
	g := &Grid{opts: opts}
	if len(units) == 0 {
		return g
	}
	g.total = len(units)

	var cols []Column
	line := 0
	lineStart := 0
	for i, u := range units {
		if !grapheme.IsLineBreak(u) {
			continue
		}
		cols = appendLine(cols, units[lineStart:i:i], lineStart, line, opts)
		g.breaks = append(g.breaks, u)
		line++
		lineStart = i + 1
	}
	cols = appendLine(cols, units[lineStart:], lineStart, line, opts)
	g.lines = line + 1

	slices.Reverse(cols)
	g.columns = cols
	return g
}

func appendLine(cols []Column, units []string, start, line int, opts Options) []Column {
	if len(units) == 0 {
		if opts.SkipEmptyLines {
			return cols
		}
		return append(cols, Column{Start: SourcePosition(start), Line: line})
	}
	if !opts.Bounded() {
		return append(cols, Column{Units: units, Start: SourcePosition(start), Line: line})
	}
	n := opts.MaxRowsPerColumn
	for off := 0; off < len(units); off += n {
		end := min(off+n, len(units))
		cols = append(cols, Column{
			Units:   units[off:end:end],
			Start:   SourcePosition(start + off),
			Line:    line,
			Wrapped: end < len(units),
		})
	}
	return cols
}

// Package grapheme splits text into user-perceived characters.
//
// All offsets handed out by the layout engine count grapheme clusters, never
// bytes or runes, so a family emoji or "e" + combining acute is one unit.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in source order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	out := make([]string, 0, len(text))
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		out = append(out, cluster)
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	return sb.String()
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsLineBreak reports whether unit ends a line. CR LF is a single cluster.
func IsLineBreak(unit string) bool {
	switch unit {
	case "\n", "\r", "\r\n", "\v", "\f", "\u0085", "\u2028", "\u2029":
		return true
	}
	return false
}

// Width returns the terminal cell width of a cluster.
func Width(unit string) int {
	w := runewidth.StringWidth(unit)
	if w <= 0 {
		w = uniseg.StringWidth(unit)
	}
	if w < 0 {
		w = 0
	}
	return w
}

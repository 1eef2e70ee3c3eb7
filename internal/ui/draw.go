package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tatememo/internal/grapheme"
)

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws text from x, one cluster per cell group, and stops before
// maxX. It returns the x after the last drawn cluster.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, unit := range grapheme.Split(text) {
		w := grapheme.Width(unit)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		setCluster(s, x, y, unit, style)
		x += w
	}
	return x
}

func setCluster(s tcell.Screen, x, y int, unit string, style tcell.Style) {
	runes := []rune(unit)
	if len(runes) == 0 {
		return
	}
	var comb []rune
	if len(runes) > 1 {
		comb = runes[1:]
	}
	s.SetContent(x, y, runes[0], comb, style)
}

// composeStatusLine lays left and right out on one row of width cells. The
// left part wins when both do not fit: right loses cells from its start.
func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	lw := runewidth.StringWidth(left)
	if lw >= width {
		return runewidth.Truncate(left, width, "")
	}
	rw := runewidth.StringWidth(right)
	if lw+rw > width {
		right = runewidth.TruncateLeft(right, lw+rw-width, "")
		rw = runewidth.StringWidth(right)
	}
	return left + strings.Repeat(" ", max(width-lw-rw, 0)) + right
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// verticalForms maps horizontal punctuation to the presentation forms used
// in vertical text.
var verticalForms = map[string]string{
	"、": "︑",
	"。": "︒",
	"，": "︐",
	"：": "︓",
	"；": "︔",
	"！": "︕",
	"？": "︖",
	"「": "﹁",
	"」": "﹂",
	"『": "﹃",
	"』": "﹄",
	"（": "︵",
	"）": "︶",
	"｛": "︷",
	"｝": "︸",
	"〔": "︹",
	"〕": "︺",
	"【": "︻",
	"】": "︼",
	"《": "︽",
	"》": "︾",
	"〈": "︿",
	"〉": "﹀",
	"［": "﹇",
	"］": "﹈",
	"…": "︙",
	"‥": "︰",
	"ー": "｜",
	"—": "︱",
	"―": "︱",
	"〜": "≀",
	"～": "≀",
}

func verticalForm(unit string) string {
	if v, ok := verticalForms[unit]; ok {
		return v
	}
	return unit
}

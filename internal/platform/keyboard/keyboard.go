// Package keyboard reports the active keyboard layout or input mode for the
// status line.
package keyboard

import "strings"

var layoutAbbreviations = map[string]string{
	"ABC":            "US",
	"US":             "US",
	"Roman":          "EN",
	"Japanese":       "あ",
	"Katakana":       "ア",
	"HalfWidthKana":  "ｱ",
	"FullWidthRoman": "Ａ",
	"Kotoeri":        "JA",
	"Russian":        "RU",
	"RussianPC":      "RU",
}

func simplifyLayoutName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	sep := strings.LastIndexAny(raw, ".")
	if sep >= 0 && sep < len(raw)-1 {
		raw = raw[sep+1:]
	}
	raw = strings.TrimPrefix(raw, "com.apple.")
	raw = strings.TrimPrefix(raw, "keylayout.")
	raw = strings.TrimPrefix(raw, "inputmethod.")
	raw = strings.TrimPrefix(raw, "inputsource.")
	raw = strings.ReplaceAll(raw, ".", " ")
	raw = strings.ReplaceAll(raw, "-", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if abbr, ok := layoutAbbreviations[raw]; ok {
		return abbr
	}
	return raw
}

// CurrentLayout is the short status line label for CurrentLayoutRaw.
func CurrentLayout() string {
	raw := CurrentLayoutRaw()
	if raw == "" {
		return ""
	}
	return simplifyLayoutName(raw)
}

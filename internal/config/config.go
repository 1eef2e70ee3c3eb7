package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/tatememo/internal/layout"
)

// Wrap modes for [layout] wrap.
const (
	WrapScreen = "screen" // column capacity follows the view height
	WrapFixed  = "fixed"  // column capacity is max-rows-per-column
	WrapNone   = "none"   // one column per line
)

type Keymap struct {
	List map[string]string `toml:"list"`
	View map[string]string `toml:"view"`
	Edit map[string]string `toml:"edit"`
}

type LayoutOptions struct {
	Wrap             string `toml:"wrap"`
	MaxRowsPerColumn int    `toml:"max-rows-per-column"`
	SkipEmptyLines   bool   `toml:"skip-empty-lines"`
}

type EditorOptions struct {
	CellWidth int `toml:"cell-width"`
	// VerticalForms draws punctuation such as 。「」 with its vertical
	// presentation form.
	VerticalForms bool `toml:"vertical-forms"`
	Debug         bool `toml:"debug"`
}

type Theme struct {
	Theme                  string `toml:"theme"`
	Foreground             string `toml:"foreground"`
	Background             string `toml:"background"`
	StatuslineForeground   string `toml:"statusline-foreground"`
	StatuslineBackground   string `toml:"statusline-background"`
	CommandlineForeground  string `toml:"commandline-foreground"`
	CommandlineBackground  string `toml:"commandline-background"`
	TitleForeground        string `toml:"title-foreground"`
	ListSelectedForeground string `toml:"list-selected-foreground"`
	ListSelectedBackground string `toml:"list-selected-background"`
	CaretForeground        string `toml:"caret-foreground"`
	CaretBackground        string `toml:"caret-background"`
	RuleForeground         string `toml:"rule-foreground"`
}

type Config struct {
	Layout LayoutOptions `toml:"layout"`
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Layout: LayoutOptions{
			Wrap:             WrapScreen,
			MaxRowsPerColumn: 20,
			SkipEmptyLines:   true,
		},
		Editor: EditorOptions{
			CellWidth:     2,
			VerticalForms: true,
		},
		Theme: Theme{
			Foreground:             "#3B3228",
			Background:             "#F6F1E7",
			StatuslineForeground:   "#F6F1E7",
			StatuslineBackground:   "#6B5B4B",
			CommandlineForeground:  "#3B3228",
			CommandlineBackground:  "#EDE6D6",
			TitleForeground:        "#8C2F1B",
			ListSelectedForeground: "#F6F1E7",
			ListSelectedBackground: "#8C2F1B",
			CaretForeground:        "#F6F1E7",
			CaretBackground:        "#3B3228",
			RuleForeground:         "#D8CDB8",
		},
		Keymap: Keymap{
			List: map[string]string{
				"up":     "move_up",
				"k":      "move_up",
				"down":   "move_down",
				"j":      "move_down",
				"g":      "first",
				"G":      "last",
				"enter":  "open",
				"l":      "open",
				"a":      "add",
				"n":      "add",
				"d":      "delete",
				"del":    "delete",
				"q":      "quit",
				"ctrl+c": "quit",
			},
			View: map[string]string{
				"esc":    "back",
				"q":      "back",
				"e":      "toggle_edit",
				"i":      "toggle_edit",
				"left":   "column_next",
				"h":      "column_next",
				"right":  "column_prev",
				"l":      "column_prev",
				"up":     "move_up",
				"k":      "move_up",
				"down":   "move_down",
				"j":      "move_down",
				"home":   "text_start",
				"end":    "text_end",
				"y":      "copy",
				"ctrl+c": "quit",
			},
			Edit: map[string]string{
				"esc":       "finish",
				"ctrl+s":    "save",
				"left":      "column_next",
				"right":     "column_prev",
				"up":        "move_up",
				"down":      "move_down",
				"home":      "column_start",
				"end":       "column_end",
				"ctrl+home": "text_start",
				"ctrl+end":  "text_end",
				"backspace": "backspace",
				"del":       "delete_char",
				"enter":     "newline",
				"ctrl+v":    "paste",
				"ctrl+c":    "quit",
			},
		},
	}
}

// Options converts [layout] into segmentation options. viewRows is the
// number of screen rows available for a column and only matters for
// wrap = "screen".
func (l LayoutOptions) Options(viewRows int) layout.Options {
	opts := layout.Options{SkipEmptyLines: l.SkipEmptyLines}
	switch l.Wrap {
	case WrapNone:
	case WrapFixed:
		opts.MaxRowsPerColumn = l.MaxRowsPerColumn
	default:
		opts.MaxRowsPerColumn = max(viewRows, 1)
	}
	return opts
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	switch userCfg.Layout.Wrap {
	case WrapScreen, WrapFixed, WrapNone:
		cfg.Layout.Wrap = userCfg.Layout.Wrap
	}
	if userCfg.Layout.MaxRowsPerColumn > 0 {
		cfg.Layout.MaxRowsPerColumn = userCfg.Layout.MaxRowsPerColumn
	}
	// false is meaningful here, so check presence instead of zero value
	if md.IsDefined("layout", "skip-empty-lines") {
		cfg.Layout.SkipEmptyLines = userCfg.Layout.SkipEmptyLines
	}
	if userCfg.Editor.CellWidth == 1 || userCfg.Editor.CellWidth == 2 {
		cfg.Editor.CellWidth = userCfg.Editor.CellWidth
	}
	if md.IsDefined("editor", "vertical-forms") {
		cfg.Editor.VerticalForms = userCfg.Editor.VerticalForms
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap.List {
		cfg.Keymap.List[k] = v
	}
	for k, v := range userCfg.Keymap.View {
		cfg.Keymap.View[k] = v
	}
	for k, v := range userCfg.Keymap.Edit {
		cfg.Keymap.Edit[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.CommandlineForeground, src.CommandlineForeground)
	set(&dst.CommandlineBackground, src.CommandlineBackground)
	set(&dst.TitleForeground, src.TitleForeground)
	set(&dst.ListSelectedForeground, src.ListSelectedForeground)
	set(&dst.ListSelectedBackground, src.ListSelectedBackground)
	set(&dst.CaretForeground, src.CaretForeground)
	set(&dst.CaretBackground, src.CaretBackground)
	set(&dst.RuleForeground, src.RuleForeground)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. Both a bare table and one wrapped in
// [theme] are accepted.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TATEMEMO_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tatememo"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tatememo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

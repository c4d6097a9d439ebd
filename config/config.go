package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"scribe/highlight"
	"scribe/viewport"
)

type Config struct {
	Theme              string `json:"theme"`
	TabWidth           int    `json:"tab_width"`
	LeftMargin         int    `json:"left_margin"`
	RightMargin        int    `json:"right_margin"`
	InsertFinalNewline bool   `json:"insert_final_newline"`
	LogFile            string `json:"log_file"`
}

func Default() *Config {
	return &Config{
		Theme:              "monokai",
		TabWidth:           4,
		LeftMargin:         viewport.DefaultLeftMargin,
		RightMargin:        viewport.DefaultRightMargin,
		InsertFinalNewline: true,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scribe", "settings.json")
}

// Load reads the settings file. A missing file yields the defaults. A file
// that cannot be parsed also yields the defaults, together with the error so
// the caller can warn about it.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	if path == "" {
		return errors.New("no home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) normalize() {
	if c.TabWidth < 1 {
		c.TabWidth = 4
	}
	if c.LeftMargin < 0 {
		c.LeftMargin = viewport.DefaultLeftMargin
	}
	if c.RightMargin < 0 {
		c.RightMargin = viewport.DefaultRightMargin
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

// Palette resolves the theme into the styles the renderer draws with.
type Palette struct {
	Text          tcell.Style
	StatusBar     tcell.Style
	StatusError   tcell.Style
	Prompt        tcell.Style
	Popup         tcell.Style
	PopupSelected tcell.Style
	syntax        map[highlight.ColorClass]tcell.Style
}

func (c *Config) Palette() *Palette {
	t := c.GetTheme()
	base := tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
	p := &Palette{
		Text:          base,
		StatusBar:     tcell.StyleDefault.Background(t.StatusBarBg).Foreground(t.StatusBarFg),
		StatusError:   tcell.StyleDefault.Background(t.StatusBarBg).Foreground(t.Error).Bold(true),
		Prompt:        tcell.StyleDefault.Background(t.PromptBg).Foreground(t.PromptFg),
		Popup:         tcell.StyleDefault.Background(t.PopupBg).Foreground(t.Foreground),
		PopupSelected: tcell.StyleDefault.Background(t.Selection).Foreground(t.Foreground).Bold(true),
		syntax: map[highlight.ColorClass]tcell.Style{
			highlight.Keyword:   base.Foreground(t.Keyword).Bold(true),
			highlight.Comment:   base.Foreground(t.Comment).Italic(true),
			highlight.String:    base.Foreground(t.String),
			highlight.Number:    base.Foreground(t.Number),
			highlight.Tag:       base.Foreground(t.Tag),
			highlight.Attribute: base.Foreground(t.Attribute),
			highlight.Selector:  base.Foreground(t.Tag).Bold(true),
			highlight.Property:  base.Foreground(t.Attribute),
			highlight.Function:  base.Foreground(t.Function),
			highlight.Type:      base.Foreground(t.Type),
		},
	}
	return p
}

// Style returns the style for class, or the text style for unstyled spans.
func (p *Palette) Style(class highlight.ColorClass) tcell.Style {
	if s, ok := p.syntax[class]; ok {
		return s
	}
	return p.Text
}

package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"scribe/config"
)

type StatusBar struct {
	Filename string
	Dirty    bool
	Line     int
	Col      int
	Language string
	Message  string // temporary status message
	IsError  bool
	Palette  *config.Palette
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	style := tcell.StyleDefault.Reverse(true)
	msgStyle := style
	if s.Palette != nil {
		style = s.Palette.StatusBar
		msgStyle = style
		if s.IsError {
			msgStyle = s.Palette.StatusError
		}
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x + 1
	put := func(text string, st tcell.Style) {
		for _, ch := range text {
			if col >= x+width {
				return
			}
			screen.SetContent(col, y, ch, nil, st)
			col++
		}
	}

	if s.Message != "" {
		put(s.Message, msgStyle)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "[No Name]"
	}
	if s.Dirty {
		fname += " [+]"
	}
	put(fname, style.Bold(true))

	right := []rune(fmt.Sprintf("Ln %d, Col %d │ %s ", s.Line+1, s.Col+1, s.Language))
	start := x + width - len(right)
	if start > col+1 {
		for i, ch := range right {
			screen.SetContent(start+i, y, ch, nil, style)
		}
	}
}

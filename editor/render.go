package editor

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// bufferColToDisplayCol converts a buffer column (rune index) to a display
// column, expanding tabs to the next stop and counting wide runes twice.
func bufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += runeCells(r, displayCol, tabSize)
	}
	return displayCol
}

// displayColToBufferCol returns the first rune whose display column is at or
// past displayCol, or the line length when none is.
func displayColToBufferCol(line string, displayCol int, tabSize int) int {
	col := 0
	runes := []rune(line)
	for i, r := range runes {
		if col >= displayCol {
			return i
		}
		col += runeCells(r, col, tabSize)
	}
	return len(runes)
}

func runeCells(r rune, displayCol, tabSize int) int {
	if r == '\t' {
		return tabSize - displayCol%tabSize
	}
	return runewidth.RuneWidth(r)
}

func (s *Session) render() {
	s.screen.SetStyle(s.palette.Text)
	s.screen.Clear()
	screenW, screenH := s.screen.Size()

	for y := 0; y < s.view.Rows && y < screenH-1; y++ {
		row := s.view.Row + y
		if row >= s.buf.LineCount() {
			break
		}
		s.renderLine(row, y, screenW)
	}

	s.statusBar.Filename = ""
	if s.buf.Path != "" {
		s.statusBar.Filename = filepath.Base(s.buf.Path)
	}
	s.statusBar.Dirty = s.buf.Dirty
	s.statusBar.Line, s.statusBar.Col = s.cur.Row, s.cur.Col
	if s.dialog != nil {
		s.dialog.Render(s.screen, 0, screenH-1, screenW, 1)
	} else {
		s.statusBar.Render(s.screen, 0, screenH-1, screenW, 1)
	}

	if s.autocomplete != nil {
		s.autocomplete.Render(s.screen, 0, 0, screenW, screenH-1)
	}

	if s.dialog != nil {
		s.screen.HideCursor()
	} else {
		y, x := s.cursorScreenPos()
		s.screen.ShowCursor(x, y)
	}
	s.screen.Show()
}

// renderLine paints buffer row at screen row y. Highlight spans are applied
// in order, so later spans win where they overlap.
func (s *Session) renderLine(row, y, width int) {
	line := s.buf.Line(row)
	runes := []rune(line)

	styles := make([]tcell.Style, len(runes))
	for i := range styles {
		styles[i] = s.palette.Text
	}
	for _, span := range s.highlighter.Highlight(line) {
		style := s.palette.Style(span.Class)
		for i := max(span.Start, 0); i < span.Start+span.Length && i < len(runes); i++ {
			styles[i] = style
		}
	}

	tab := s.cfg.TabWidth
	start := bufferColToDisplayCol(line, s.view.Col, tab)
	col := 0
	for i, r := range runes {
		cells := runeCells(r, col, tab)
		if col >= start {
			x := col - start
			if x+cells > width {
				return
			}
			switch {
			case r == '\t':
				for k := 0; k < cells; k++ {
					s.screen.SetContent(x+k, y, ' ', nil, styles[i])
				}
			case cells > 0:
				s.screen.SetContent(x, y, r, nil, styles[i])
			}
		}
		col += cells
	}
}

// cursorScreenPos returns the screen (row, col) of the cursor.
func (s *Session) cursorScreenPos() (int, int) {
	row, _ := s.view.Translate(s.cur)
	line := s.buf.Line(s.cur.Row)
	tab := s.cfg.TabWidth
	x := bufferColToDisplayCol(line, s.cur.Col, tab) - bufferColToDisplayCol(line, s.view.Col, tab)
	return row, max(x, 0)
}

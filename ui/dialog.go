package ui

import (
	"github.com/gdamore/tcell/v2"

	"scribe/config"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogConfirm
	DialogInput
)

// Dialog is a one-line prompt drawn over the status row: either a yes/no
// question or a text input.
type Dialog struct {
	Type    DialogType
	Prompt  string
	Input   string
	Cursor  int // rune index into Input
	Palette *config.Palette

	OnConfirm func(yes bool)
	OnSubmit  func(value string)
	OnCancel  func()
}

func NewConfirmDialog(prompt string) *Dialog {
	return &Dialog{Type: DialogConfirm, Prompt: prompt}
}

func NewInputDialog(prompt string) *Dialog {
	return &Dialog{Type: DialogInput, Prompt: prompt}
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	style := tcell.StyleDefault.Reverse(true)
	if d.Palette != nil {
		style = d.Palette.Prompt
	}
	promptStyle := style.Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range d.Prompt {
		if col >= x+width {
			return
		}
		screen.SetContent(col, y, ch, nil, promptStyle)
		col++
	}
	if d.Type != DialogInput {
		return
	}

	for i, ch := range []rune(d.Input) {
		if col >= x+width {
			return
		}
		st := style
		if i == d.Cursor {
			st = style.Reverse(true)
		}
		screen.SetContent(col, y, ch, nil, st)
		col++
	}
	if d.Cursor >= len([]rune(d.Input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}

// HandleKey consumes every key while the dialog is open.
func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	if d.Type == DialogConfirm {
		return d.handleConfirmKey(ev)
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		d.cancel()
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'y', 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm(true)
		}
	case 'n', 'N':
		if d.OnConfirm != nil {
			d.OnConfirm(false)
		}
	}
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	runes := []rune(d.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		d.cancel()
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
	case tcell.KeyDelete:
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case tcell.KeyRight:
		if d.Cursor < len(runes) {
			d.Cursor++
		}
	case tcell.KeyHome:
		d.Cursor = 0
	case tcell.KeyEnd:
		d.Cursor = len(runes)
	case tcell.KeyRune:
		d.Input = string(runes[:d.Cursor]) + string(ev.Rune()) + string(runes[d.Cursor:])
		d.Cursor++
	}
	return true
}

func (d *Dialog) cancel() {
	if d.OnCancel != nil {
		d.OnCancel()
	}
}

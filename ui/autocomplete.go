package ui

import (
	"github.com/gdamore/tcell/v2"

	"scribe/config"
)

const maxVisibleItems = 8

// Autocomplete is the suggestion popup anchored below the cursor.
type Autocomplete struct {
	Items    []string
	Selected int
	Visible  bool
	X, Y     int // screen cell of the cursor
	Palette  *config.Palette
	OnSelect func(item string)
	OnClose  func()
}

func NewAutocomplete(items []string, x, y int) *Autocomplete {
	return &Autocomplete{
		Items:   items,
		Visible: len(items) > 0,
		X:       x,
		Y:       y,
	}
}

func (a *Autocomplete) Render(screen tcell.Screen, x, y, width, height int) {
	if !a.Visible || len(a.Items) == 0 {
		return
	}

	boxWidth := 12
	for _, item := range a.Items {
		if w := len([]rune(item)) + 2; w > boxWidth {
			boxWidth = w
		}
	}
	if boxWidth > width {
		boxWidth = width
	}
	rows := min(len(a.Items), maxVisibleItems)

	posX, posY := a.X, a.Y+1
	if posY+rows > y+height {
		posY = a.Y - rows
	}
	if posY < y {
		posY = y
	}
	if posX+boxWidth > x+width {
		posX = x + width - boxWidth
	}
	if posX < x {
		posX = x
	}

	style := tcell.StyleDefault.Reverse(true)
	selStyle := tcell.StyleDefault.Bold(true)
	if a.Palette != nil {
		style, selStyle = a.Palette.Popup, a.Palette.PopupSelected
	}

	scrollOff := 0
	if a.Selected >= rows {
		scrollOff = a.Selected - rows + 1
	}

	for i := 0; i < rows; i++ {
		idx := scrollOff + i
		st := style
		if idx == a.Selected {
			st = selStyle
		}
		for cx := posX; cx < posX+boxWidth; cx++ {
			screen.SetContent(cx, posY+i, ' ', nil, st)
		}
		col := posX + 1
		for _, ch := range a.Items[idx] {
			if col >= posX+boxWidth {
				break
			}
			screen.SetContent(col, posY+i, ch, nil, st)
			col++
		}
	}
}

func (a *Autocomplete) HandleKey(ev *tcell.EventKey) bool {
	if !a.Visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp:
		if a.Selected > 0 {
			a.Selected--
		}
		return true
	case tcell.KeyDown:
		if a.Selected < len(a.Items)-1 {
			a.Selected++
		}
		return true
	case tcell.KeyEnter, tcell.KeyTab:
		a.Visible = false
		if a.Selected >= 0 && a.Selected < len(a.Items) && a.OnSelect != nil {
			a.OnSelect(a.Items[a.Selected])
		}
		return true
	case tcell.KeyEscape:
		a.Visible = false
		if a.OnClose != nil {
			a.OnClose()
		}
		return true
	}
	return false
}

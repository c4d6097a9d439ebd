package editor

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"scribe/buffer"
	"scribe/ui"
)

func (s *Session) handleKey(ev *tcell.EventKey) {
	key := ctrlKey(ev)

	// Any key but Escape drops a pending quit.
	if key != tcell.KeyEscape {
		s.quitPending = false
	}

	// Dialog gets every key while open
	if s.dialog != nil {
		s.dialog.HandleKey(ev)
		return
	}

	// Autocomplete gets priority when visible
	if s.autocomplete != nil && s.autocomplete.Visible {
		if s.autocomplete.HandleKey(ev) {
			return
		}
		// Any other key closes it and is handled normally
		s.autocomplete = nil
	}

	switch key {
	case tcell.KeyEscape:
		s.handleQuit()
	case tcell.KeyCtrlS:
		s.startSave()
	case tcell.KeyCtrlSpace, tcell.KeyCtrlN:
		s.triggerSuggestions()
	case tcell.KeyCtrlZ:
		s.undo()
	case tcell.KeyCtrlY:
		s.redo()
	case tcell.KeyCtrlK:
		s.cutLine()
	case tcell.KeyCtrlC:
		s.copyLine()
	case tcell.KeyCtrlV:
		s.paste()
	case tcell.KeyCtrlR:
		s.restoreBackup()

	case tcell.KeyUp:
		s.cur.MoveUp(s.buf)
	case tcell.KeyDown:
		s.cur.MoveDown(s.buf)
	case tcell.KeyLeft:
		s.cur.MoveLeft(s.buf)
	case tcell.KeyRight:
		s.cur.MoveRight(s.buf)
	case tcell.KeyHome:
		s.cur.MoveHome(s.buf)
	case tcell.KeyEnd:
		s.cur.MoveEnd(s.buf)

	case tcell.KeyEnter:
		s.mustNot(s.cur.InsertNewline(s.buf))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.mustNot(s.cur.Backspace(s.buf))
	case tcell.KeyDelete:
		s.mustNot(s.cur.DeleteForward(s.buf))
	case tcell.KeyTab:
		s.cur.InsertText(s.buf, strings.Repeat(" ", s.cfg.TabWidth))
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			s.cur.InsertText(s.buf, string(ev.Rune()))
		}
	}
}

// ctrlKey folds Ctrl+letter reported as a rune with ModCtrl onto the control
// key codes, so both terminal encodings dispatch the same way.
func ctrlKey(ev *tcell.EventKey) tcell.Key {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModCtrl == 0 {
		return ev.Key()
	}
	r := unicode.ToLower(ev.Rune())
	switch {
	case r >= 'a' && r <= 'z':
		return tcell.KeyCtrlA + tcell.Key(r-'a')
	case r == ' ':
		return tcell.KeyCtrlSpace
	}
	return ev.Key()
}

func (s *Session) handleQuit() {
	if s.buf.Dirty && !s.quitPending {
		s.quitPending = true
		s.setTemporaryError("Unsaved changes! Press Esc again to quit without saving")
		return
	}
	s.quit = true
}

// Save flow: confirm, then ask for a path when the buffer has none.

func (s *Session) startSave() {
	d := ui.NewConfirmDialog("Save? [Y]es [N]o")
	d.OnConfirm = func(yes bool) {
		s.dialog = nil
		if !yes {
			return
		}
		if s.buf.Path == "" {
			s.openSaveAsDialog()
			return
		}
		s.saveTo(s.buf.Path)
	}
	d.OnCancel = func() { s.dialog = nil }
	s.setDialog(d)
}

func (s *Session) openSaveAsDialog() {
	d := ui.NewInputDialog("File name: ")
	d.OnSubmit = func(name string) {
		s.dialog = nil
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
		s.saveTo(name)
	}
	d.OnCancel = func() { s.dialog = nil }
	s.setDialog(d)
}

func (s *Session) setDialog(d *ui.Dialog) {
	d.Palette = s.palette
	s.dialog = d
}

func (s *Session) saveTo(path string) {
	renamed := path != s.buf.Path
	if err := s.buf.Save(path); err != nil {
		s.log.Printf("save %s: %v", path, err)
		s.setTemporaryError("Error saving: " + err.Error())
		return
	}
	s.log.Printf("saved %s", path)
	s.removeBackup()
	if renamed {
		s.cfg = s.base.ForFile(path)
		s.setFileType(path)
		s.watch(path)
	}
	s.setTemporaryMessage("Saved " + filepath.Base(path))
}

// Suggestions

func (s *Session) triggerSuggestions() {
	fragment := s.cur.WordFragment(s.buf)
	items := s.suggester.Suggest(fragment)
	switch len(items) {
	case 0:
		s.setTemporaryMessage("No suggestions")
		return
	case 1:
		s.applySuggestion(fragment, items[0])
		return
	}

	y, x := s.cursorScreenPos()
	ac := ui.NewAutocomplete(items, x, y)
	ac.Palette = s.palette
	ac.OnSelect = func(item string) {
		s.applySuggestion(fragment, item)
		s.autocomplete = nil
	}
	ac.OnClose = func() { s.autocomplete = nil }
	s.autocomplete = ac
}

// applySuggestion inserts the part of candidate the user has not typed yet.
func (s *Session) applySuggestion(fragment, candidate string) {
	runes := []rune(candidate)
	n := buffer.RuneLen(fragment)
	if n > len(runes) {
		return
	}
	s.cur.InsertText(s.buf, string(runes[n:]))
}

// Undo/redo move the cursor to where the change happened.

func (s *Session) undo() {
	pos, ok := s.buf.ApplyUndo()
	if !ok {
		s.setTemporaryMessage("Nothing to undo")
		return
	}
	s.cur = pos
}

func (s *Session) redo() {
	pos, ok := s.buf.ApplyRedo()
	if !ok {
		s.setTemporaryMessage("Nothing to redo")
		return
	}
	s.cur = pos
}

// Line clipboard

func (s *Session) copyLine() {
	s.Clipboard.Write(s.buf.Line(s.cur.Row) + "\n")
	s.setTemporaryMessage("Copied line")
}

func (s *Session) cutLine() {
	text, err := s.buf.DeleteLine(s.cur.Row)
	if err != nil {
		s.mustNot(err)
		return
	}
	s.Clipboard.Write(text + "\n")
	s.cur.Col = 0
	s.cur.Clamp(s.buf)
}

func (s *Session) paste() {
	text := s.Clipboard.Read()
	if text == "" {
		return
	}
	s.cur.Paste(s.buf, text)
}

package editor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"scribe/buffer"
	"scribe/clipboardx"
	"scribe/config"
	"scribe/highlight"
	"scribe/suggest"
	"scribe/ui"
	"scribe/viewport"
)

const messageTimeout = 5 * time.Second

// Session edits one file on one screen. All of its state is owned by the
// goroutine that calls Run; watchers and timers only post events.
type Session struct {
	screen  tcell.Screen
	base    *config.Config // settings before .editorconfig overrides
	cfg     *config.Config
	palette *config.Palette
	log     *log.Logger

	buf  *buffer.Buffer
	cur  buffer.Cursor
	view *viewport.Viewport

	fileType    highlight.FileType
	highlighter highlight.Highlighter
	suggester   suggest.Suggester

	// Clipboard backs cut, copy and paste. Tests swap in a clipboardx.Local.
	Clipboard clipboardx.Clipboard

	statusBar    *ui.StatusBar
	dialog       *ui.Dialog
	autocomplete *ui.Autocomplete

	quit        bool
	quitPending bool // true after the first Escape with unsaved changes

	fileWatcher *fsnotify.Watcher
	watchedDir  string
	stopBackups func()
	backupFound bool

	statusMessageTime time.Time
}

// New builds a session on an initialized screen. A nil logger discards.
func New(cfg *config.Config, screen tcell.Screen, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		screen:    screen,
		base:      cfg,
		cfg:       cfg,
		palette:   cfg.Palette(),
		log:       logger,
		buf:       buffer.NewBuffer(),
		Clipboard: clipboardx.NewSystem(),
		statusBar: ui.NewStatusBar(),
	}
	s.statusBar.Palette = s.palette
	s.buf.FinalNewline = cfg.InsertFinalNewline

	w, h := screen.Size()
	s.view = viewport.New(h-1, w)
	s.setFileType("")
	return s
}

// Open loads path into the session. A missing file opens an empty buffer
// that will be created on save.
func (s *Session) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", buffer.ErrIO, err)
	}
	buf, err := buffer.Load(abs)
	if err != nil {
		// Keep editing in the current buffer; saving asks for a name.
		s.log.Printf("open %s: %v", abs, err)
		s.setStatusMessage("Cannot open " + filepath.Base(abs) + ": " + err.Error())
		s.statusBar.IsError = true
		return err
	}

	s.cfg = s.base.ForFile(abs)
	if buf.LastSaveTime.IsZero() {
		buf.FinalNewline = s.cfg.InsertFinalNewline
	}
	s.buf = buf
	s.cur = buffer.Cursor{}
	s.view.Row, s.view.Col = 0, 0
	s.setFileType(abs)
	s.restorePosition()
	s.watch(abs)
	s.log.Printf("opened %s (%d lines, %s)", abs, buf.LineCount(), s.fileType)

	if s.hasBackup() {
		s.backupFound = true
		s.setStatusMessage("Recovery data found for " + filepath.Base(abs) + ": Ctrl+R restores it")
	}
	return nil
}

func (s *Session) setFileType(path string) {
	s.fileType = highlight.DetectFileType(path)
	s.highlighter = highlight.For(path)
	s.suggester = suggest.For(s.fileType)
	s.statusBar.Language = highlight.DetectLanguage(path)
}

// Run processes events until the user quits.
func (s *Session) Run() error {
	s.stopBackups = s.startBackupTimer()
	defer s.Close()

	for !s.quit {
		s.clearExpiredMessages()
		s.render()

		ev := s.screen.PollEvent()
		if ev == nil {
			break
		}
		s.HandleEvent(ev)
	}

	s.savePosition()
	if s.buf.Path != "" && !s.buf.Dirty {
		s.removeBackup()
	}
	s.log.Printf("session closed")
	return nil
}

// Close releases the file watcher and the backup timer.
func (s *Session) Close() {
	if s.stopBackups != nil {
		s.stopBackups()
		s.stopBackups = nil
	}
	if s.fileWatcher != nil {
		s.fileWatcher.Close()
		s.fileWatcher = nil
	}
}

// HandleEvent applies one event and then keeps the cursor inside the
// viewport.
func (s *Session) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		w, h := s.screen.Size()
		s.view.Resize(h-1, w)
	case *tcell.EventKey:
		s.handleKey(ev)
	case *FileWatchEvent:
		s.handleFileWatchEvent(ev)
	case *backupEvent:
		s.writeBackup()
	}
	s.followCursor()
}

func (s *Session) followCursor() {
	s.cur.Clamp(s.buf)
	s.view.Follow(s.cur, s.buf)
	s.scrollHorizontally()
}

// scrollHorizontally applies the margin band in display cells, so tabs and
// wide runes count for what they occupy on screen. The offset is stored as
// the first rune of the cursor line at or past the scrolled start.
func (s *Session) scrollHorizontally() {
	line := s.buf.Line(s.cur.Row)
	tab := s.cfg.TabWidth
	start := bufferColToDisplayCol(line, s.view.Col, tab)

	cells := *s.view
	cells.Col = start
	cells.AdjustHorizontalScroll(buffer.Cursor{
		Row: s.cur.Row,
		Col: bufferColToDisplayCol(line, s.cur.Col, tab),
	}, s.cfg.LeftMargin, s.cfg.RightMargin)
	if cells.Col != start {
		s.view.Col = displayColToBufferCol(line, cells.Col, tab)
	}
}

// Buffer and Cursor expose the edited document for inspection.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }
func (s *Session) Cursor() buffer.Cursor  { return s.cur }
func (s *Session) Viewport() viewport.Viewport {
	return *s.view
}

// Done reports whether the user has quit.
func (s *Session) Done() bool { return s.quit }

// mustNot reports err on the status bar. Out-of-range positions mean the
// cursor invariant is broken, so they panic instead.
func (s *Session) mustNot(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, buffer.ErrOutOfRange) {
		panic(err)
	}
	s.log.Printf("error: %v", err)
	s.setTemporaryError(err.Error())
}

// setStatusMessage sets a message that stays until replaced.
func (s *Session) setStatusMessage(msg string) {
	s.statusBar.Message = msg
	s.statusBar.IsError = false
	s.statusMessageTime = time.Time{}
}

func (s *Session) setTemporaryMessage(msg string) {
	s.statusBar.Message = msg
	s.statusBar.IsError = false
	s.statusMessageTime = time.Now()
}

func (s *Session) setTemporaryError(msg string) {
	s.statusBar.Message = msg
	s.statusBar.IsError = true
	s.statusMessageTime = time.Now()
}

func (s *Session) clearExpiredMessages() {
	if !s.statusMessageTime.IsZero() && time.Since(s.statusMessageTime) > messageTimeout {
		s.statusBar.Message = ""
		s.statusBar.IsError = false
		s.statusMessageTime = time.Time{}
	}
}

// StatusMessage returns the message currently shown on the status bar.
func (s *Session) StatusMessage() string { return s.statusBar.Message }

package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"scribe/buffer"
	"scribe/clipboardx"
	"scribe/config"
	"scribe/highlight"
)

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "scribe-home-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Setenv("HOME", home)
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

func newSession(t *testing.T, w, h int) *Session {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)

	s := New(config.Default(), screen, nil)
	s.Clipboard = &clipboardx.Local{}
	t.Cleanup(s.Close)
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func press(s *Session, k tcell.Key) {
	s.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func ctrl(s *Session, k tcell.Key) {
	s.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func typeText(s *Session, text string) {
	for _, r := range text {
		s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTypingAndAutoIndent(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "def foo():")
	press(s, tcell.KeyEnter)

	if got := s.Buffer().Lines; len(got) != 2 || got[0] != "def foo():" || got[1] != "    " {
		t.Fatalf("unexpected lines %q", got)
	}
	if c := s.Cursor(); c.Row != 1 || c.Col != 4 {
		t.Fatalf("expected cursor 1:4, got %s", c)
	}
}

func TestTabInsertsSpaces(t *testing.T) {
	s := newSession(t, 80, 24)
	press(s, tcell.KeyTab)
	typeText(s, "x")
	if got := s.Buffer().Line(0); got != "    x" {
		t.Fatalf("expected four spaces then x, got %q", got)
	}
}

func TestBackspaceAndDeleteKeys(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "ab")
	press(s, tcell.KeyEnter)
	typeText(s, "cd")

	press(s, tcell.KeyHome)
	press(s, tcell.KeyBackspace2)
	if got := s.Buffer().String(); got != "abcd" {
		t.Fatalf("expected join, got %q", got)
	}
	if c := s.Cursor(); c.Row != 0 || c.Col != 2 {
		t.Fatalf("expected cursor 0:2, got %s", c)
	}

	press(s, tcell.KeyDelete)
	if got := s.Buffer().String(); got != "abd" {
		t.Fatalf("expected forward delete, got %q", got)
	}
}

func TestEscapeQuitsCleanBuffer(t *testing.T) {
	s := newSession(t, 80, 24)
	press(s, tcell.KeyEscape)
	if !s.Done() {
		t.Fatal("expected quit")
	}
}

func TestEscapeWarnsBeforeDiscarding(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "x")

	press(s, tcell.KeyEscape)
	if s.Done() {
		t.Fatal("first escape must not quit with unsaved changes")
	}
	if !strings.Contains(s.StatusMessage(), "Unsaved") {
		t.Fatalf("expected a warning, got %q", s.StatusMessage())
	}

	press(s, tcell.KeyLeft)
	press(s, tcell.KeyEscape)
	if s.Done() {
		t.Fatal("another key should reset the pending quit")
	}
	press(s, tcell.KeyEscape)
	if !s.Done() {
		t.Fatal("expected second escape to quit")
	}
}

func TestSaveWithoutPathAbortsOnEmptyName(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "hi")

	ctrl(s, tcell.KeyCtrlS)
	if s.dialog == nil || s.dialog.Prompt != "Save? [Y]es [N]o" {
		t.Fatalf("expected the save confirmation, got %+v", s.dialog)
	}
	typeText(s, "y")
	if s.dialog == nil {
		t.Fatal("expected a file name prompt")
	}
	press(s, tcell.KeyEnter)

	if s.dialog != nil {
		t.Fatal("expected the prompt to close")
	}
	if !s.Buffer().Dirty || s.Buffer().Path != "" {
		t.Fatalf("expected nothing saved, got dirty=%v path=%q", s.Buffer().Dirty, s.Buffer().Path)
	}
}

func TestSaveAsWritesFile(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "out.txt")
	typeText(s, "hi")

	ctrl(s, tcell.KeyCtrlS)
	typeText(s, "Y")
	typeText(s, path)
	press(s, tcell.KeyEnter)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file written: %v", err)
	}
	if string(data) != "hi\n" {
		t.Fatalf("expected %q, got %q", "hi\n", data)
	}
	if s.Buffer().Dirty || s.Buffer().Path != path {
		t.Fatalf("expected clean buffer bound to %s, got dirty=%v path=%q", path, s.Buffer().Dirty, s.Buffer().Path)
	}
	if s.StatusMessage() != "Saved out.txt" {
		t.Fatalf("unexpected status %q", s.StatusMessage())
	}
}

func TestSaveDeclinedLeavesFileAlone(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "keep.txt")
	writeFile(t, path, "old\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	typeText(s, "new ")

	ctrl(s, tcell.KeyCtrlS)
	typeText(s, "n")
	if data, _ := os.ReadFile(path); string(data) != "old\n" {
		t.Fatalf("file changed to %q", data)
	}
	if !s.Buffer().Dirty {
		t.Fatal("expected buffer still dirty")
	}
}

func TestSaveErrorShownOnStatusBar(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "missing", "a.txt")
	if err := s.Open(path); err != nil {
		t.Fatalf("opening a new file should succeed, got %v", err)
	}
	typeText(s, "x")

	ctrl(s, tcell.KeyCtrlS)
	typeText(s, "y")

	if !strings.HasPrefix(s.StatusMessage(), "Error saving") || !s.statusBar.IsError {
		t.Fatalf("expected an error message, got %q", s.StatusMessage())
	}
	if !s.Buffer().Dirty || s.Buffer().String() != "x" {
		t.Fatal("expected buffer untouched after failed save")
	}
}

func TestSingleSuggestionIsApplied(t *testing.T) {
	s := newSession(t, 80, 24)
	if err := s.Open(filepath.Join(t.TempDir(), "a.py")); err != nil {
		t.Fatal(err)
	}
	typeText(s, "whi")
	ctrl(s, tcell.KeyCtrlSpace)

	if got := s.Buffer().Line(0); got != "while" {
		t.Fatalf("expected while, got %q", got)
	}
	if c := s.Cursor(); c.Col != 5 {
		t.Fatalf("expected cursor after the word, got %s", c)
	}
}

func TestSuggestionPopup(t *testing.T) {
	s := newSession(t, 80, 24)
	if err := s.Open(filepath.Join(t.TempDir(), "a.py")); err != nil {
		t.Fatal(err)
	}
	typeText(s, "de")
	ctrl(s, tcell.KeyCtrlN)

	if s.autocomplete == nil || len(s.autocomplete.Items) != 2 {
		t.Fatalf("expected a popup with two items, got %+v", s.autocomplete)
	}
	press(s, tcell.KeyDown)
	press(s, tcell.KeyEnter)

	if got := s.Buffer().Line(0); got != "del" {
		t.Fatalf("expected del, got %q", got)
	}
	if s.autocomplete != nil {
		t.Fatal("expected the popup closed")
	}
}

func TestEscapeClosesPopupBeforeQuitting(t *testing.T) {
	s := newSession(t, 80, 24)
	if err := s.Open(filepath.Join(t.TempDir(), "a.py")); err != nil {
		t.Fatal(err)
	}
	typeText(s, "de")
	ctrl(s, tcell.KeyCtrlN)
	press(s, tcell.KeyEscape)

	if s.autocomplete != nil || s.Done() {
		t.Fatalf("expected popup closed and session running, done=%v", s.Done())
	}
	if got := s.Buffer().Line(0); got != "de" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestNoSuggestionsForPlainText(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "de")
	ctrl(s, tcell.KeyCtrlN)
	if s.autocomplete != nil || s.Buffer().Line(0) != "de" {
		t.Fatal("expected no completion in a plain buffer")
	}
	if s.StatusMessage() != "No suggestions" {
		t.Fatalf("unexpected status %q", s.StatusMessage())
	}
}

func TestUndoRedoKeys(t *testing.T) {
	s := newSession(t, 80, 24)
	typeText(s, "ab")

	ctrl(s, tcell.KeyCtrlZ)
	if got := s.Buffer().String(); got != "" {
		t.Fatalf("expected empty after undo, got %q", got)
	}
	if c := s.Cursor(); c.Col != 0 {
		t.Fatalf("expected cursor at 0, got %s", c)
	}
	ctrl(s, tcell.KeyCtrlY)
	if got := s.Buffer().String(); got != "ab" {
		t.Fatalf("expected ab after redo, got %q", got)
	}
	if c := s.Cursor(); c.Col != 2 {
		t.Fatalf("expected cursor at 2, got %s", c)
	}
}

func TestCutCopyPasteLine(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "lines.txt")
	writeFile(t, path, "one\ntwo\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}

	ctrl(s, tcell.KeyCtrlK)
	if got := s.Buffer().String(); got != "two" {
		t.Fatalf("expected first line cut, got %q", got)
	}
	if got := s.Clipboard.Read(); got != "one\n" {
		t.Fatalf("expected clipboard %q, got %q", "one\n", got)
	}

	ctrl(s, tcell.KeyCtrlV)
	if got := s.Buffer().String(); got != "one\ntwo" {
		t.Fatalf("expected line pasted back, got %q", got)
	}
	if c := s.Cursor(); c.Row != 1 || c.Col != 0 {
		t.Fatalf("expected cursor 1:0, got %s", c)
	}

	ctrl(s, tcell.KeyCtrlC)
	if got := s.Clipboard.Read(); got != "two\n" {
		t.Fatalf("expected copied line, got %q", got)
	}
}

func TestViewportFollowsCursorDown(t *testing.T) {
	s := newSession(t, 40, 11)
	path := filepath.Join(t.TempDir(), "long.txt")
	writeFile(t, path, strings.Repeat("line\n", 20))
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 15; i++ {
		press(s, tcell.KeyDown)
	}
	v := s.Viewport()
	if v.Row != 6 {
		t.Fatalf("expected viewport row 6, got %d", v.Row)
	}
	if row, _ := s.cursorScreenPos(); row != 9 {
		t.Fatalf("expected cursor on the last text row, got %d", row)
	}
}

func TestHorizontalScrollKeepsRightMargin(t *testing.T) {
	s := newSession(t, 20, 5)
	typeText(s, strings.Repeat("x", 40))

	if v := s.Viewport(); v.Col != 23 {
		t.Fatalf("expected horizontal offset 23, got %d", v.Col)
	}
	if _, col := s.cursorScreenPos(); col != 17 {
		t.Fatalf("expected cursor two columns from the edge, got %d", col)
	}
}

func TestHorizontalScrollCountsWideRunes(t *testing.T) {
	s := newSession(t, 20, 5)
	typeText(s, strings.Repeat("世", 15))

	if v := s.Viewport(); v.Col != 7 {
		t.Fatalf("expected horizontal offset 7, got %d", v.Col)
	}
	if _, col := s.cursorScreenPos(); col != 16 {
		t.Fatalf("expected cursor at cell 16, got %d", col)
	}
}

func TestHorizontalScrollCountsTabs(t *testing.T) {
	s := newSession(t, 20, 5)
	path := filepath.Join(t.TempDir(), "tabs.txt")
	writeFile(t, path, strings.Repeat("\t", 10)+"\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	press(s, tcell.KeyEnd)

	if v := s.Viewport(); v.Col != 6 {
		t.Fatalf("expected horizontal offset 6, got %d", v.Col)
	}
	_, col := s.cursorScreenPos()
	if col != 16 {
		t.Fatalf("expected cursor at cell 16, got %d", col)
	}

	press(s, tcell.KeyHome)
	if v := s.Viewport(); v.Col != 0 {
		t.Fatalf("expected scroll back to 0, got %d", v.Col)
	}
}

func TestCursorStaysOnScreenWithMixedWidths(t *testing.T) {
	s := newSession(t, 20, 5)
	for _, text := range []string{"\t世a\tb世世\t", "世世世世世世世世世世世世"} {
		typeText(s, text)
		_, col := s.cursorScreenPos()
		if col < 0 || col >= 20 {
			t.Fatalf("cursor drawn at cell %d on a 20 cell screen", col)
		}
	}
}

func TestOpenUnreadablePathKeepsSession(t *testing.T) {
	s := newSession(t, 80, 24)
	dir := t.TempDir()

	err := s.Open(dir)
	if !errors.Is(err, buffer.ErrIO) {
		t.Fatalf("expected an i/o error, got %v", err)
	}
	if !strings.HasPrefix(s.StatusMessage(), "Cannot open") || !s.statusBar.IsError {
		t.Fatalf("expected the error on the status bar, got %q", s.StatusMessage())
	}
	if s.Buffer().Path != "" || s.Done() {
		t.Fatalf("expected an unnamed buffer and a live session, got path %q", s.Buffer().Path)
	}
	typeText(s, "ok")
	if got := s.Buffer().String(); got != "ok" {
		t.Fatalf("expected editing to continue, got %q", got)
	}
}

func TestResizeUpdatesViewport(t *testing.T) {
	s := newSession(t, 80, 24)
	s.screen.SetSize(30, 8)
	s.HandleEvent(tcell.NewEventResize(30, 8))
	if v := s.Viewport(); v.Rows != 7 || v.Cols != 30 {
		t.Fatalf("expected 7x30, got %dx%d", v.Rows, v.Cols)
	}
}

func TestRenderPaintsHighlightSpans(t *testing.T) {
	s := newSession(t, 40, 5)
	if err := s.Open(filepath.Join(t.TempDir(), "a.py")); err != nil {
		t.Fatal(err)
	}
	typeText(s, "def x")
	s.render()

	r, _, style, _ := s.screen.GetContent(0, 0)
	if r != 'd' || style != s.palette.Style(highlight.Keyword) {
		t.Fatalf("expected keyword style on 'd', got %q", r)
	}
	r, _, style, _ = s.screen.GetContent(4, 0)
	if r != 'x' || style != s.palette.Text {
		t.Fatalf("expected plain style on 'x', got %q", r)
	}
}

func TestExternalWriteReloadsCleanBuffer(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "w.txt")
	writeFile(t, path, "a\nb\nc\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	press(s, tcell.KeyDown)
	press(s, tcell.KeyDown)

	writeFile(t, path, "x\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})

	if got := s.Buffer().String(); got != "x" {
		t.Fatalf("expected reloaded content, got %q", got)
	}
	if c := s.Cursor(); c.Row != 0 {
		t.Fatalf("expected cursor clamped to row 0, got %s", c)
	}
	if !strings.Contains(s.StatusMessage(), "reloaded") {
		t.Fatalf("unexpected status %q", s.StatusMessage())
	}
}

func TestExternalWriteWithUnsavedChangesWarns(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "w.txt")
	writeFile(t, path, "a\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	typeText(s, "z")

	writeFile(t, path, "other\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})

	if got := s.Buffer().String(); got != "za" {
		t.Fatalf("expected local edits kept, got %q", got)
	}
	if !strings.Contains(s.StatusMessage(), "modified externally") {
		t.Fatalf("unexpected status %q", s.StatusMessage())
	}
}

func TestExternalRemoveWarns(t *testing.T) {
	s := newSession(t, 80, 24)
	path := filepath.Join(t.TempDir(), "gone.txt")
	writeFile(t, path, "a\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Remove})

	if !strings.Contains(s.StatusMessage(), "deleted externally") {
		t.Fatalf("unexpected status %q", s.StatusMessage())
	}
	if s.Buffer().String() != "a" {
		t.Fatal("buffer should be kept")
	}
}

func TestEventsForOtherFilesAreIgnored(t *testing.T) {
	s := newSession(t, 80, 24)
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.txt")
	writeFile(t, path, "a\n")
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(&FileWatchEvent{Path: filepath.Join(dir, "other.txt"), Op: fsnotify.Remove})
	if s.StatusMessage() != "" {
		t.Fatalf("expected no message, got %q", s.StatusMessage())
	}
}

func TestRunReturnsOnEscape(t *testing.T) {
	s := newSession(t, 80, 24)
	if err := s.screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !s.Done() {
		t.Fatal("expected the session to be done")
	}
}

func TestPositionRestoredOnReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.txt")
	writeFile(t, path, "one\ntwo\nthree\n")

	first := newSession(t, 80, 24)
	if err := first.Open(path); err != nil {
		t.Fatal(err)
	}
	press(first, tcell.KeyDown)
	press(first, tcell.KeyDown)
	press(first, tcell.KeyEnd)
	first.savePosition()

	second := newSession(t, 80, 24)
	if err := second.Open(path); err != nil {
		t.Fatal(err)
	}
	if c := second.Cursor(); c.Row != 2 || c.Col != 5 {
		t.Fatalf("expected cursor 2:5, got %s", c)
	}
}

func TestBackupRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	writeFile(t, path, "one\n")

	first := newSession(t, 80, 24)
	if err := first.Open(path); err != nil {
		t.Fatal(err)
	}
	typeText(first, "X")
	first.HandleEvent(&backupEvent{})
	if _, err := os.Stat(backupPathForFile(path)); err != nil {
		t.Fatalf("expected a recovery file: %v", err)
	}

	second := newSession(t, 80, 24)
	if err := second.Open(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(second.StatusMessage(), "Recovery data") {
		t.Fatalf("expected recovery notice, got %q", second.StatusMessage())
	}
	ctrl(second, tcell.KeyCtrlR)
	if got := second.Buffer().String(); got != "Xone" || !second.Buffer().Dirty {
		t.Fatalf("expected restored unsaved text, got %q dirty=%v", got, second.Buffer().Dirty)
	}

	ctrl(second, tcell.KeyCtrlS)
	typeText(second, "y")
	if _, err := os.Stat(backupPathForFile(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected recovery file removed after save, got %v", err)
	}
}

func TestMustNot(t *testing.T) {
	s := newSession(t, 80, 24)
	s.mustNot(fmt.Errorf("write: %w", buffer.ErrIO))
	if !s.statusBar.IsError {
		t.Fatal("expected i/o errors on the status bar")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for out-of-range positions")
		}
	}()
	s.mustNot(fmt.Errorf("split: %w", buffer.ErrOutOfRange))
}

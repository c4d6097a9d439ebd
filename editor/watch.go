package editor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"scribe/buffer"
)

const (
	watchDebounce = 100 * time.Millisecond
	// Writes this close to our own save are our own.
	saveGrace = time.Second
)

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// watch follows the directory of path. Editors often replace a file by
// renaming over it, which a watch on the file itself would lose.
func (s *Session) watch(path string) {
	dir := filepath.Dir(path)
	if s.fileWatcher != nil && s.watchedDir == dir {
		return
	}
	if s.fileWatcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			// Continue without watching
			s.log.Printf("file watcher unavailable: %v", err)
			return
		}
		s.fileWatcher = watcher
		go pumpWatchEvents(watcher, s.screen)
	}
	if s.watchedDir != "" {
		_ = s.fileWatcher.Remove(s.watchedDir)
	}
	if err := s.fileWatcher.Add(dir); err != nil {
		s.log.Printf("watch %s: %v", dir, err)
		return
	}
	s.watchedDir = dir
}

// pumpWatchEvents forwards debounced watcher events to the screen's event
// queue. It never touches session state.
func pumpWatchEvents(watcher *fsnotify.Watcher, screen tcell.Screen) {
	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	var pending []fsnotify.Event

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			pending = append(pending, event)
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			for _, event := range pending {
				ev := &FileWatchEvent{Path: event.Name, Op: event.Op}
				ev.SetEventNow()
				_ = screen.PostEvent(ev)
			}
			pending = nil

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (s *Session) handleFileWatchEvent(ev *FileWatchEvent) {
	if s.buf.Path == "" || filepath.Clean(ev.Path) != filepath.Clean(s.buf.Path) {
		return
	}
	name := filepath.Base(ev.Path)

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if _, err := os.Stat(ev.Path); err == nil {
			// Replaced by rename; the Create that follows reloads it.
			return
		}
		s.log.Printf("%s removed externally", ev.Path)
		s.setStatusMessage("Warning: " + name + " was deleted externally")

	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		info, err := os.Stat(ev.Path)
		if err != nil {
			return
		}
		if !info.ModTime().After(s.buf.LastSaveTime.Add(saveGrace)) {
			return
		}
		if s.buf.Dirty {
			s.log.Printf("%s modified externally with unsaved changes", ev.Path)
			s.setStatusMessage("⚠ " + name + " was modified externally! (unsaved changes)")
			return
		}
		s.reload()
	}
}

// reload replaces a clean buffer with the file on disk, keeping the cursor
// where it was as far as the new content allows.
func (s *Session) reload() {
	buf, err := buffer.Load(s.buf.Path)
	if err != nil {
		s.mustNot(err)
		return
	}
	s.buf = buf
	s.cur.Clamp(buf)
	s.log.Printf("reloaded %s", buf.Path)
	s.setTemporaryMessage("↻ " + filepath.Base(buf.Path) + " (reloaded)")
}

package editor

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"scribe/buffer"
)

const backupInterval = 30 * time.Second

// backupEvent asks the event loop to write the recovery file.
type backupEvent struct {
	tcell.EventTime
}

func backupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "scribe", "backups")
}

func backupPathForFile(path string) string {
	dir := backupDir()
	if dir == "" || path == "" {
		return ""
	}
	h := sha256.Sum256([]byte(path))
	return filepath.Join(dir, fmt.Sprintf("%x.bak", h[:8]))
}

// startBackupTimer posts a backupEvent every backupInterval until the
// returned stop function is called.
func (s *Session) startBackupTimer() func() {
	done := make(chan struct{})
	screen := s.screen
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ev := &backupEvent{}
				ev.SetEventNow()
				_ = screen.PostEvent(ev)
			}
		}
	}()
	return func() { close(done) }
}

// writeBackup stores the unsaved content of a named buffer.
func (s *Session) writeBackup() {
	if !s.buf.Dirty {
		return
	}
	path := backupPathForFile(s.buf.Path)
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.log.Printf("backup: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(s.buf.Content()), 0644); err != nil {
		s.log.Printf("backup: %v", err)
	}
}

func (s *Session) hasBackup() bool {
	path := backupPathForFile(s.buf.Path)
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (s *Session) removeBackup() {
	if path := backupPathForFile(s.buf.Path); path != "" {
		_ = os.Remove(path)
	}
	s.backupFound = false
}

// restoreBackup swaps the recovery file in as unsaved content.
func (s *Session) restoreBackup() {
	if !s.backupFound {
		return
	}
	data, err := os.ReadFile(backupPathForFile(s.buf.Path))
	if err != nil {
		s.setTemporaryError("Error reading recovery data: " + err.Error())
		return
	}

	restored := buffer.FromString(string(data))
	restored.Path = s.buf.Path
	restored.LastSaveTime = s.buf.LastSaveTime
	restored.MarkSavedAs(s.buf.String())
	s.buf = restored
	s.cur.Clamp(s.buf)
	s.backupFound = false
	s.setTemporaryMessage("Restored unsaved changes")
}

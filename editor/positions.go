package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const maxRememberedFiles = 200

// FilePosition is where the cursor and view were when a file was last closed.
type FilePosition struct {
	Row       int `json:"cursor_row"`
	Col       int `json:"cursor_col"`
	ScrollRow int `json:"scroll_row"`
	ScrollCol int `json:"scroll_col"`

	LastUsed time.Time `json:"last_used"`
}

func positionsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "scribe", "positions.json")
}

func loadPositions() map[string]FilePosition {
	positions := make(map[string]FilePosition)
	path := positionsPath()
	if path == "" {
		return positions
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return positions
	}
	_ = json.Unmarshal(data, &positions)
	return positions
}

func (s *Session) savePosition() {
	path := positionsPath()
	if path == "" || s.buf.Path == "" {
		return
	}

	positions := loadPositions()
	positions[s.buf.Path] = FilePosition{
		Row:       s.cur.Row,
		Col:       s.cur.Col,
		ScrollRow: s.view.Row,
		ScrollCol: s.view.Col,
		LastUsed:  time.Now(),
	}
	prunePositions(positions, maxRememberedFiles)

	data, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.log.Printf("positions: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.log.Printf("positions: %v", err)
	}
}

// prunePositions keeps the limit most recently used entries.
func prunePositions(positions map[string]FilePosition, limit int) {
	if len(positions) <= limit {
		return
	}
	files := make([]string, 0, len(positions))
	for file := range positions {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return positions[files[i]].LastUsed.After(positions[files[j]].LastUsed)
	})
	for _, file := range files[limit:] {
		delete(positions, file)
	}
}

// restorePosition puts the cursor back where it was, clamped to the current
// content.
func (s *Session) restorePosition() {
	pos, ok := loadPositions()[s.buf.Path]
	if !ok {
		return
	}
	s.cur.Row, s.cur.Col = pos.Row, pos.Col
	s.cur.Clamp(s.buf)
	s.view.Row, s.view.Col = max(pos.ScrollRow, 0), max(pos.ScrollCol, 0)
	s.followCursor()
}

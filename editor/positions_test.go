package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePositionsForTest(t *testing.T, positions map[string]FilePosition) {
	t.Helper()
	data, err := json.Marshal(positions)
	if err != nil {
		t.Fatal(err)
	}
	path := positionsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPrunePositionsKeepsMostRecent(t *testing.T) {
	now := time.Now()
	positions := make(map[string]FilePosition)
	for i := 0; i < 5; i++ {
		positions[fmt.Sprintf("/f%d", i)] = FilePosition{Row: i, LastUsed: now.Add(time.Duration(i) * time.Minute)}
	}

	prunePositions(positions, 2)

	if len(positions) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(positions))
	}
	for _, file := range []string{"/f3", "/f4"} {
		if _, ok := positions[file]; !ok {
			t.Fatalf("expected %s kept, got %v", file, positions)
		}
	}
}

func TestSavePositionEvictsOldestFile(t *testing.T) {
	s := newSession(t, 80, 24)
	s.buf.Path = "/recent"

	old := time.Now().Add(-time.Hour)
	positions := make(map[string]FilePosition)
	for i := 0; i < maxRememberedFiles; i++ {
		positions[fmt.Sprintf("/old%d", i)] = FilePosition{LastUsed: old.Add(time.Duration(i) * time.Second)}
	}
	writePositionsForTest(t, positions)

	s.savePosition()

	got := loadPositions()
	if len(got) != maxRememberedFiles {
		t.Fatalf("expected %d entries, got %d", maxRememberedFiles, len(got))
	}
	if _, ok := got["/recent"]; !ok {
		t.Fatal("expected the current file remembered")
	}
	if _, ok := got["/old0"]; ok {
		t.Fatal("expected the oldest entry evicted")
	}
	if _, ok := got[fmt.Sprintf("/old%d", maxRememberedFiles-1)]; !ok {
		t.Fatal("expected the newest old entry kept")
	}
}

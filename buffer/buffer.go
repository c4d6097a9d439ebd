package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange reports a row or column outside the buffer on an
	// operation that does not extend the buffer by itself.
	ErrOutOfRange = errors.New("position out of range")
	// ErrIO wraps every file read or write failure.
	ErrIO = errors.New("i/o error")
)

const maxFileSize = 100 * 1024 * 1024

type Buffer struct {
	Lines        []string
	Path         string // known save destination, empty for an unnamed buffer
	Dirty        bool
	FinalNewline bool // file ended with a newline when loaded; written back on save
	Undo         *UndoStack
	LastSaveTime time.Time

	group         int // undo group for ops recorded inside Batch
	savedSnapshot string
}

func NewBuffer() *Buffer {
	return &Buffer{
		Lines:        []string{""},
		FinalNewline: true,
		Undo:         NewUndoStack(),
	}
}

// Load reads path into a new buffer. A missing file is not an error: the
// result is an empty buffer bound to path.
func Load(path string) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b := NewBuffer()
			b.Path = path
			return b, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: file too large (%d MB), max supported is 100 MB", ErrIO, info.Size()/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	b := FromString(string(data))
	b.Path = path
	b.LastSaveTime = info.ModTime()
	return b, nil
}

// FromString builds a clean buffer from file content. One trailing newline is
// stripped and remembered in FinalNewline.
func FromString(content string) *Buffer {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	final := strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	b := &Buffer{
		Lines:        strings.Split(content, "\n"),
		FinalNewline: final,
		Undo:         NewUndoStack(),
	}
	b.MarkSaved()
	return b
}

// RuneLen returns the length of s in runes, the unit of every column.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.Lines) {
		return ""
	}
	return b.Lines[row]
}

// LineLen returns the rune length of row.
func (b *Buffer) LineLen(row int) int {
	return RuneLen(b.Line(row))
}

// Content serializes the buffer the way Save writes it.
func (b *Buffer) Content() string {
	content := strings.Join(b.Lines, "\n")
	if b.FinalNewline {
		content += "\n"
	}
	return content
}

func (b *Buffer) String() string {
	return strings.Join(b.Lines, "\n")
}

func (b *Buffer) ensureLine() {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
}

// Insert splices text into row at col. Rows past the end are created first;
// col is clamped to the line. Embedded newlines are kept literally.
func (b *Buffer) Insert(row, col int, text string) {
	b.ensureLine()
	if row < 0 {
		row = 0
	}
	if row >= len(b.Lines) {
		b.Batch(func() {
			for row >= len(b.Lines) {
				last := len(b.Lines) - 1
				b.splitAt(last, RuneLen(b.Lines[last]))
			}
			b.insertAt(row, col, text)
		})
		return
	}
	b.insertAt(row, col, text)
}

func (b *Buffer) insertAt(row, col int, text string) {
	if text == "" {
		return
	}
	line := b.Lines[row]
	col = clampCol(line, col)
	b.Lines[row] = splice(line, col, col, text)
	b.record(Operation{Type: OpInsert, Pos: Cursor{Row: row, Col: col}, Text: text})
}

// Split divides row at col; the suffix becomes a new line right after it.
func (b *Buffer) Split(row, col int) error {
	b.ensureLine()
	if row < 0 || row >= len(b.Lines) {
		return fmt.Errorf("split row %d of %d: %w", row, len(b.Lines), ErrOutOfRange)
	}
	b.splitAt(row, clampCol(b.Lines[row], col))
	return nil
}

func (b *Buffer) splitAt(row, col int) {
	runes := []rune(b.Lines[row])
	head, tail := string(runes[:col]), string(runes[col:])
	b.Lines[row] = head
	b.Lines = append(b.Lines, "")
	copy(b.Lines[row+2:], b.Lines[row+1:])
	b.Lines[row+1] = tail
	b.record(Operation{Type: OpSplit, Pos: Cursor{Row: row, Col: col}})
}

// JoinWithPrevious appends row onto row-1 and removes row. Row 0 is a no-op.
func (b *Buffer) JoinWithPrevious(row int) error {
	if row < 0 || row >= len(b.Lines) {
		return fmt.Errorf("join row %d of %d: %w", row, len(b.Lines), ErrOutOfRange)
	}
	if row == 0 {
		return nil
	}
	b.joinAt(row - 1)
	return nil
}

func (b *Buffer) joinAt(row int) {
	col := RuneLen(b.Lines[row])
	b.Lines[row] += b.Lines[row+1]
	b.Lines = append(b.Lines[:row+1], b.Lines[row+2:]...)
	b.record(Operation{Type: OpJoin, Pos: Cursor{Row: row, Col: col}})
}

// Delete removes the rune before col, or joins row onto the previous line
// when col is 0. It is a backspace, not a forward delete.
func (b *Buffer) Delete(row, col int) error {
	if row < 0 || row >= len(b.Lines) {
		return fmt.Errorf("delete row %d of %d: %w", row, len(b.Lines), ErrOutOfRange)
	}
	line := b.Lines[row]
	col = clampCol(line, col)
	if col > 0 {
		runes := []rune(line)
		deleted := string(runes[col-1])
		b.Lines[row] = string(runes[:col-1]) + string(runes[col:])
		b.record(Operation{Type: OpDelete, Pos: Cursor{Row: row, Col: col - 1}, Text: deleted})
		return nil
	}
	return b.JoinWithPrevious(row)
}

// DeleteLine removes row and returns its text. When row is the only line it
// is emptied instead.
func (b *Buffer) DeleteLine(row int) (string, error) {
	if row < 0 || row >= len(b.Lines) {
		return "", fmt.Errorf("delete line %d of %d: %w", row, len(b.Lines), ErrOutOfRange)
	}
	text := b.Lines[row]
	b.Batch(func() {
		if text != "" {
			b.Lines[row] = ""
			b.record(Operation{Type: OpDelete, Pos: Cursor{Row: row}, Text: text})
		}
		switch {
		case row+1 < len(b.Lines):
			b.joinAt(row)
		case row > 0:
			b.joinAt(row - 1)
		}
	})
	return text, nil
}

// Save writes the buffer to path, replacing its content. On failure the
// buffer is left untouched.
func (b *Buffer) Save(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no file name", ErrIO)
	}
	if err := os.WriteFile(path, []byte(b.Content()), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	b.Path = path
	b.MarkSaved()
	b.LastSaveTime = time.Now()
	return nil
}

func (b *Buffer) MarkSaved() {
	b.savedSnapshot = b.String()
	b.Dirty = false
}

// MarkSavedAs records snapshot as the content on disk, for buffers whose text
// did not come from the file itself.
func (b *Buffer) MarkSavedAs(snapshot string) {
	b.savedSnapshot = snapshot
	b.RecomputeDirty()
}

func (b *Buffer) RecomputeDirty() {
	b.Dirty = b.String() != b.savedSnapshot
}

// Batch records every edit made by fn as a single undo step.
func (b *Buffer) Batch(fn func()) {
	if b.group != 0 {
		fn()
		return
	}
	b.group = b.Undo.NewGroup()
	defer func() { b.group = 0 }()
	fn()
}

func (b *Buffer) record(op Operation) {
	b.Dirty = true
	if b.Undo == nil {
		return
	}
	if b.group != 0 {
		b.Undo.PushGrouped(op, b.group)
		return
	}
	b.Undo.Push(op)
}

// ApplyUndo reverts the most recent undo step and returns where the cursor
// should go.
func (b *Buffer) ApplyUndo() (Cursor, bool) {
	ops, ok := b.Undo.PopUndo()
	if !ok {
		return Cursor{}, false
	}
	var pos Cursor
	for _, op := range ops {
		pos = b.applyInverse(op)
	}
	b.RecomputeDirty()
	return pos, true
}

// ApplyRedo replays the most recently undone step.
func (b *Buffer) ApplyRedo() (Cursor, bool) {
	ops, ok := b.Undo.PopRedo()
	if !ok {
		return Cursor{}, false
	}
	var pos Cursor
	for _, op := range ops {
		pos = b.applyForward(op)
	}
	b.RecomputeDirty()
	return pos, true
}

func (b *Buffer) applyInverse(op Operation) Cursor {
	switch op.Type {
	case OpInsert:
		b.removeText(op.Pos, op.Text)
		return op.Pos
	case OpDelete:
		b.insertText(op.Pos, op.Text)
		return Cursor{Row: op.Pos.Row, Col: op.Pos.Col + RuneLen(op.Text)}
	case OpSplit:
		b.rawJoin(op.Pos.Row)
		return op.Pos
	case OpJoin:
		b.rawSplit(op.Pos.Row, op.Pos.Col)
		return Cursor{Row: op.Pos.Row + 1}
	}
	return op.Pos
}

func (b *Buffer) applyForward(op Operation) Cursor {
	switch op.Type {
	case OpInsert:
		b.insertText(op.Pos, op.Text)
		return Cursor{Row: op.Pos.Row, Col: op.Pos.Col + RuneLen(op.Text)}
	case OpDelete:
		b.removeText(op.Pos, op.Text)
		return op.Pos
	case OpSplit:
		b.rawSplit(op.Pos.Row, op.Pos.Col)
		return Cursor{Row: op.Pos.Row + 1}
	case OpJoin:
		b.rawJoin(op.Pos.Row)
		return op.Pos
	}
	return op.Pos
}

// The raw helpers replay history without recording it.

func (b *Buffer) insertText(pos Cursor, text string) {
	if pos.Row < 0 || pos.Row >= len(b.Lines) {
		return
	}
	line := b.Lines[pos.Row]
	col := clampCol(line, pos.Col)
	b.Lines[pos.Row] = splice(line, col, col, text)
}

func (b *Buffer) removeText(pos Cursor, text string) {
	if pos.Row < 0 || pos.Row >= len(b.Lines) {
		return
	}
	line := b.Lines[pos.Row]
	col := clampCol(line, pos.Col)
	end := clampCol(line, col+RuneLen(text))
	b.Lines[pos.Row] = splice(line, col, end, "")
}

func (b *Buffer) rawSplit(row, col int) {
	if row < 0 || row >= len(b.Lines) {
		return
	}
	runes := []rune(b.Lines[row])
	col = clampCol(b.Lines[row], col)
	b.Lines[row] = string(runes[:col])
	b.Lines = append(b.Lines, "")
	copy(b.Lines[row+2:], b.Lines[row+1:])
	b.Lines[row+1] = string(runes[col:])
}

func (b *Buffer) rawJoin(row int) {
	if row < 0 || row+1 >= len(b.Lines) {
		return
	}
	b.Lines[row] += b.Lines[row+1]
	b.Lines = append(b.Lines[:row+1], b.Lines[row+2:]...)
}

// clampCol limits col to [0, RuneLen(line)].
func clampCol(line string, col int) int {
	if col < 0 {
		return 0
	}
	if n := RuneLen(line); col > n {
		return n
	}
	return col
}

// splice replaces the rune range [start, end) of line with text.
func splice(line string, start, end int, text string) string {
	runes := []rune(line)
	return string(runes[:start]) + text + string(runes[end:])
}

package buffer

import (
	"fmt"
	"strings"
	"unicode"
)

// IndentWidth is the indent added after a line ending in ':' or '{'.
const IndentWidth = 4

// Cursor is an edit position: a row index into Lines and a rune offset into
// that row. Row and Col are kept in bounds by every method.
type Cursor struct {
	Row, Col int
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Clamp pulls the cursor back inside buf.
func (c *Cursor) Clamp(buf *Buffer) {
	buf.ensureLine()
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= len(buf.Lines) {
		c.Row = len(buf.Lines) - 1
	}
	c.Col = clampCol(buf.Lines[c.Row], c.Col)
}

func (c *Cursor) MoveUp(buf *Buffer) {
	if c.Row > 0 {
		c.Row--
	}
	c.Clamp(buf)
}

func (c *Cursor) MoveDown(buf *Buffer) {
	if c.Row < len(buf.Lines)-1 {
		c.Row++
	}
	c.Clamp(buf)
}

func (c *Cursor) MoveLeft(buf *Buffer) {
	c.Clamp(buf)
	if c.Col > 0 {
		c.Col--
	} else if c.Row > 0 {
		c.Row--
		c.Col = buf.LineLen(c.Row)
	}
}

func (c *Cursor) MoveRight(buf *Buffer) {
	c.Clamp(buf)
	if c.Col < buf.LineLen(c.Row) {
		c.Col++
	} else if c.Row < len(buf.Lines)-1 {
		c.Row++
		c.Col = 0
	}
}

func (c *Cursor) MoveHome(buf *Buffer) {
	c.Clamp(buf)
	c.Col = 0
}

func (c *Cursor) MoveEnd(buf *Buffer) {
	c.Clamp(buf)
	c.Col = buf.LineLen(c.Row)
}

// InsertText types s at the cursor and moves past it.
func (c *Cursor) InsertText(buf *Buffer, s string) {
	c.Clamp(buf)
	buf.Insert(c.Row, c.Col, s)
	c.Col += RuneLen(s)
}

// Paste inserts text that may span several lines as one undo step. Lines are
// split verbatim, without auto-indent.
func (c *Cursor) Paste(buf *Buffer, text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	c.Clamp(buf)
	buf.Batch(func() {
		for i, piece := range strings.Split(text, "\n") {
			if i > 0 {
				buf.splitAt(c.Row, c.Col)
				c.Row++
				c.Col = 0
			}
			buf.Insert(c.Row, c.Col, piece)
			c.Col += RuneLen(piece)
		}
	})
}

// InsertNewline splits the line at the cursor. When the line, trimmed, ends
// in ':' or '{' the new line starts with IndentWidth spaces. Only the literal
// last character is checked; strings and comments are not recognized.
func (c *Cursor) InsertNewline(buf *Buffer) error {
	c.Clamp(buf)
	trimmed := strings.TrimSpace(buf.Lines[c.Row])
	indent := strings.HasSuffix(trimmed, ":") || strings.HasSuffix(trimmed, "{")

	var err error
	buf.Batch(func() {
		if err = buf.Split(c.Row, c.Col); err != nil {
			return
		}
		c.Row++
		c.Col = 0
		if indent {
			buf.Insert(c.Row, 0, strings.Repeat(" ", IndentWidth))
			c.Col = IndentWidth
		}
	})
	return err
}

// Backspace removes the rune before the cursor, or joins the line onto the
// previous one at column 0. At (0, 0) it does nothing.
func (c *Cursor) Backspace(buf *Buffer) error {
	c.Clamp(buf)
	if c.Col > 0 {
		if err := buf.Delete(c.Row, c.Col); err != nil {
			return err
		}
		c.Col--
		return nil
	}
	if c.Row == 0 {
		return nil
	}
	prevLen := buf.LineLen(c.Row - 1)
	if err := buf.JoinWithPrevious(c.Row); err != nil {
		return err
	}
	c.Row--
	c.Col = prevLen
	return nil
}

// DeleteForward removes the rune under the cursor, or pulls the next line up
// at end of line. The cursor does not move.
func (c *Cursor) DeleteForward(buf *Buffer) error {
	c.Clamp(buf)
	if c.Col < buf.LineLen(c.Row) {
		return buf.Delete(c.Row, c.Col+1)
	}
	if c.Row < len(buf.Lines)-1 {
		return buf.JoinWithPrevious(c.Row + 1)
	}
	return nil
}

// WordFragment returns the run of word characters directly left of the cursor.
func (c Cursor) WordFragment(buf *Buffer) string {
	runes := []rune(buf.Line(c.Row))
	end := c.Col
	if end > len(runes) {
		end = len(runes)
	}
	start := end
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

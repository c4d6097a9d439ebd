// Package viewport maps buffer coordinates onto a fixed-size screen window.
//
// A Viewport is a pair of scroll offsets plus the visible size. It never owns
// the buffer or the cursor; callers pass them in after every command that can
// move the cursor.
package viewport

import "scribe/buffer"

// Default horizontal margins: columns kept between the cursor and the left
// and right edges before the view scrolls.
const (
	DefaultLeftMargin  = 5
	DefaultRightMargin = 2
)

type Viewport struct {
	Rows, Cols int // visible size
	Row, Col   int // top-left scroll offset into the buffer
}

func New(rows, cols int) *Viewport {
	v := &Viewport{}
	v.Resize(rows, cols)
	return v
}

// Resize sets the visible size. Sizes below one are raised to one.
func (v *Viewport) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	v.Rows, v.Cols = rows, cols
}

// Bottom is the last buffer row inside the window.
func (v *Viewport) Bottom() int {
	return v.Row + v.Rows - 1
}

func (v *Viewport) ScrollUp() {
	if v.Row > 0 {
		v.Row--
	}
}

// ScrollDown moves the window one row down while its bottom row is still
// above the last line of buf.
func (v *Viewport) ScrollDown(buf *buffer.Buffer) {
	if v.Bottom() < buf.LineCount()-1 {
		v.Row++
	}
}

// Follow scrolls vertically until cur.Row is inside [Row, Bottom].
func (v *Viewport) Follow(cur buffer.Cursor, buf *buffer.Buffer) {
	for cur.Row < v.Row && v.Row > 0 {
		v.ScrollUp()
	}
	for cur.Row > v.Bottom() {
		before := v.Row
		v.ScrollDown(buf)
		if v.Row == before {
			break
		}
	}
}

// AdjustHorizontalScroll keeps cur.Col at least left columns from the left
// edge and right columns from the right edge.
func (v *Viewport) AdjustHorizontalScroll(cur buffer.Cursor, left, right int) {
	if cur.Col < v.Col+left {
		v.Col = max(cur.Col-left, 0)
	} else if cur.Col >= v.Col+v.Cols-right {
		v.Col = cur.Col - v.Cols + right + 1
	}
}

// Translate converts cur to window-relative (row, col).
func (v *Viewport) Translate(cur buffer.Cursor) (int, int) {
	return cur.Row - v.Row, cur.Col - v.Col
}

// Visible reports whether buffer row is inside the window.
func (v *Viewport) Visible(row int) bool {
	return row >= v.Row && row <= v.Bottom()
}

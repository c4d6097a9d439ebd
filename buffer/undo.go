package buffer

import "time"

type OpType int

const (
	OpInsert OpType = iota // Text inserted at Pos
	OpDelete               // Text removed from Pos
	OpSplit                // line Pos.Row split at Pos.Col
	OpJoin                 // line Pos.Row+1 appended to Pos.Row, which was Pos.Col long
)

type Operation struct {
	Type  OpType
	Pos   Cursor
	Text  string
	Time  time.Time // when the operation was recorded
	Group int       // group ID for batched undo (0 = ungrouped)
}

type UndoStack struct {
	undos     []Operation
	redos     []Operation
	nextGroup int // next group ID to assign
}

const undoGroupInterval = 300 * time.Millisecond

func NewUndoStack() *UndoStack {
	return &UndoStack{nextGroup: 1}
}

func (u *UndoStack) Push(op Operation) {
	op.Time = time.Now()

	// Auto-group sequential single-rune inserts/deletes within the time window
	if len(u.undos) > 0 {
		prev := &u.undos[len(u.undos)-1]
		if prev.Type == op.Type && isTyping(op) && isTyping(*prev) &&
			op.Time.Sub(prev.Time) < undoGroupInterval &&
			!isGroupBreak(prev, &op) {
			if prev.Group == 0 {
				prev.Group = u.nextGroup
				u.nextGroup++
			}
			op.Group = prev.Group
		}
	}

	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

// PushGrouped pushes an operation with a specific group ID (for atomic ops like auto-indent).
func (u *UndoStack) PushGrouped(op Operation, groupID int) {
	op.Time = time.Now()
	op.Group = groupID
	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

// NewGroup returns a fresh group ID for batching multiple operations as one undo.
func (u *UndoStack) NewGroup() int {
	id := u.nextGroup
	u.nextGroup++
	return id
}

func isTyping(op Operation) bool {
	return (op.Type == OpInsert || op.Type == OpDelete) && RuneLen(op.Text) == 1
}

// isGroupBreak returns true if consecutive ops should NOT be grouped
// (whitespace breaks a word group, and so do non-adjacent positions).
func isGroupBreak(prev, cur *Operation) bool {
	if cur.Text == " " || cur.Text == "\t" || prev.Text == " " || prev.Text == "\t" {
		return true
	}
	if cur.Pos.Row != prev.Pos.Row {
		return true
	}
	switch cur.Type {
	case OpInsert:
		return cur.Pos.Col != prev.Pos.Col+1
	case OpDelete:
		return cur.Pos.Col != prev.Pos.Col-1
	}
	return false
}

func (u *UndoStack) CanUndo() bool { return len(u.undos) > 0 }
func (u *UndoStack) CanRedo() bool { return len(u.redos) > 0 }

// PopUndo pops the top operation and all others in the same group, most
// recent first.
func (u *UndoStack) PopUndo() ([]Operation, bool) {
	if len(u.undos) == 0 {
		return nil, false
	}
	op := u.undos[len(u.undos)-1]
	u.undos = u.undos[:len(u.undos)-1]
	u.redos = append(u.redos, op)
	ops := []Operation{op}

	if op.Group != 0 {
		for len(u.undos) > 0 && u.undos[len(u.undos)-1].Group == op.Group {
			grouped := u.undos[len(u.undos)-1]
			u.undos = u.undos[:len(u.undos)-1]
			u.redos = append(u.redos, grouped)
			ops = append(ops, grouped)
		}
	}
	return ops, true
}

// PopRedo pops the top redo operation and all others in the same group, in
// the order they were originally applied.
func (u *UndoStack) PopRedo() ([]Operation, bool) {
	if len(u.redos) == 0 {
		return nil, false
	}
	op := u.redos[len(u.redos)-1]
	u.redos = u.redos[:len(u.redos)-1]
	u.undos = append(u.undos, op)
	ops := []Operation{op}

	if op.Group != 0 {
		for len(u.redos) > 0 && u.redos[len(u.redos)-1].Group == op.Group {
			grouped := u.redos[len(u.redos)-1]
			u.redos = u.redos[:len(u.redos)-1]
			u.undos = append(u.undos, grouped)
			ops = append(ops, grouped)
		}
	}
	return ops, true
}

package domain

import "fmt"

// CursorState is the position of a Cursor.
type CursorState int

const (
	BeforeFirst CursorState = iota
	OnRow
	AfterLast
	Closed
)

func (s CursorState) String() string {
	switch s {
	case BeforeFirst:
		return "BEFORE_FIRST"
	case OnRow:
		return "ON_ROW"
	case AfterLast:
		return "AFTER_LAST"
	case Closed:
		return "CLOSED"
	default:
		return fmt.Sprintf("CursorState(%d)", int(s))
	}
}

// Cursor iterates a FixedRowSet forward only. AFTER_LAST is terminal.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	set   *FixedRowSet
	pos   int
	state CursorState
}

func newCursor(set *FixedRowSet) *Cursor {
	return &Cursor{set: set, pos: -1, state: BeforeFirst}
}

// Next advances to the next row and reports whether one is available.
func (c *Cursor) Next() bool {
	switch c.state {
	case AfterLast, Closed:
		return false
	}
	if c.pos+1 >= c.set.Len() {
		c.state = AfterLast
		return false
	}
	c.pos++
	c.state = OnRow
	return true
}

// Row returns a copy of the current row.
func (c *Cursor) Row() (Row, error) {
	if err := c.checkOnRow(); err != nil {
		return nil, err
	}
	return c.set.Row(c.pos), nil
}

// Value returns column i of the current row.
func (c *Cursor) Value(i int) (any, error) {
	if err := c.checkOnRow(); err != nil {
		return nil, err
	}
	row := c.set.rows[c.pos]
	if i < 0 || i >= len(row) {
		return nil, fmt.Errorf("%w: %d", ErrColumnIndex, i)
	}
	return row[i], nil
}

// Schema returns the column layout. It stays available after Close.
func (c *Cursor) Schema() RowSchema {
	return c.set.Schema()
}

// State returns the cursor position.
func (c *Cursor) State() CursorState {
	return c.state
}

// Close releases the cursor. Further calls to Next report no row.
func (c *Cursor) Close() error {
	c.state = Closed
	return nil
}

func (c *Cursor) checkOnRow() error {
	switch c.state {
	case OnRow:
		return nil
	case Closed:
		return ErrCursorClosed
	default:
		return fmt.Errorf("%w: %s", ErrNoCurrentRow, c.state)
	}
}

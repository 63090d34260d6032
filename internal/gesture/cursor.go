package gesture

// Cursor is a CSS cursor keyword.
type Cursor string

const (
	CursorIdle       Cursor = "default"
	CursorCopy       Cursor = "copy"
	CursorGrabbing   Cursor = "grabbing"
	CursorEWResize   Cursor = "ew-resize"
	CursorNSResize   Cursor = "ns-resize"
	CursorNWSEResize Cursor = "nwse-resize"
)

// CursorStack tracks which cursor the host should show.
type CursorStack struct {
	stack []Cursor
}

func (c *CursorStack) Current() Cursor {
	if len(c.stack) == 0 {
		return CursorIdle
	}
	return c.stack[len(c.stack)-1]
}

func (c *CursorStack) IsIdle() bool {
	return c.Current() == CursorIdle
}

func (c *CursorStack) Push(cur Cursor) {
	c.stack = append(c.stack, cur)
}

// Pop removes cur if it is on top.
func (c *CursorStack) Pop(cur Cursor) {
	if n := len(c.stack); n > 0 && c.stack[n-1] == cur {
		c.stack = c.stack[:n-1]
	}
}

// ReturnToIdle drops every pushed cursor.
func (c *CursorStack) ReturnToIdle() {
	c.stack = c.stack[:0]
}

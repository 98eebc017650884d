package arrange

// Placement reports where a sequence position is drawn: its column (left)
// and row (top) offsets in the flow-wrapped layout.
type Placement interface {
	Place(pos int) (left, top int)
}

// GridPlacement is a fixed-width flow layout: positions fill rows of Columns.
type GridPlacement struct {
	Columns int
}

func (g GridPlacement) Place(pos int) (int, int) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	return pos % cols, pos / cols
}

// PlacementFunc adapts a function to Placement.
type PlacementFunc func(pos int) (int, int)

func (f PlacementFunc) Place(pos int) (int, int) { return f(pos) }

// SetPlacement installs the geometry used by MoveUp and MoveDown.
func (c *Collection) SetPlacement(p Placement) {
	if p == nil {
		p = GridPlacement{Columns: 1}
	}
	c.placement = p
}

func (c *Collection) left(pos int) int {
	l, _ := c.placement.Place(pos)
	return l
}

func (c *Collection) top(pos int) int {
	_, t := c.placement.Place(pos)
	return t
}

func (c *Collection) moveCursorTo(pos int) bool {
	p := c.Page(pos)
	if p == nil {
		return false
	}
	c.SetCursor(p)
	c.moved = true
	return true
}

// MoveTo puts the cursor on the page at pos as keyboard navigation would.
func (c *Collection) MoveTo(pos int) bool {
	return c.moveCursorTo(pos)
}

// MoveNext advances the cursor in sequence order, wrapping to the first page.
// Without a cursor it starts on the first page.
func (c *Collection) MoveNext() bool {
	n := len(c.sequence)
	if n == 0 {
		return false
	}
	if c.cursor == nil {
		return c.moveCursorTo(0)
	}
	if n <= 1 {
		return false
	}
	next := c.Position(c.cursor) + 1
	if next >= n {
		next = 0
	}
	return c.moveCursorTo(next)
}

// MovePrevious steps the cursor back, wrapping to the last page.
func (c *Collection) MovePrevious() bool {
	n := len(c.sequence)
	if n == 0 {
		return false
	}
	if c.cursor == nil {
		return c.moveCursorTo(n - 1)
	}
	if n <= 1 {
		return false
	}
	prev := c.Position(c.cursor) - 1
	if prev < 0 {
		prev = n - 1
	}
	return c.moveCursorTo(prev)
}

// MoveDown moves to the entry below the cursor in the next row. From the last
// row it wraps to the first page; a single row is left alone.
func (c *Collection) MoveDown() bool {
	n := len(c.sequence)
	if n == 0 {
		return false
	}
	if c.cursor == nil {
		return c.moveCursorTo(0)
	}
	if n <= 1 {
		return false
	}

	pos := c.Position(c.cursor)
	curLeft, curTop := c.placement.Place(pos)

	next := pos + 1
	for next < n && c.top(next) == curTop {
		next++
	}
	if next >= n {
		next = 0
		if c.top(next) == curTop {
			return false
		}
	}

	// Stop at the first column at or right of the cursor, or at the very last
	// page when nothing below reaches that far.
	for c.left(next) < curLeft {
		if next+1 >= n {
			break
		}
		next++
	}
	return c.moveCursorTo(next)
}

// MoveUp mirrors MoveDown: previous row, first column at or left of the
// cursor, wrapping to the last page from the first row.
func (c *Collection) MoveUp() bool {
	n := len(c.sequence)
	if n == 0 {
		return false
	}
	if c.cursor == nil {
		return c.moveCursorTo(n - 1)
	}
	if n <= 1 {
		return false
	}

	pos := c.Position(c.cursor)
	curLeft, curTop := c.placement.Place(pos)

	prev := pos - 1
	for prev >= 0 && c.top(prev) == curTop {
		prev--
	}
	if prev < 0 {
		prev = n - 1
		if c.top(prev) == curTop {
			return false
		}
	}

	for prev >= 0 && c.left(prev) > curLeft {
		prev--
	}
	if prev < 0 {
		return false
	}
	return c.moveCursorTo(prev)
}

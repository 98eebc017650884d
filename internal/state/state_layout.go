package state

import "github.com/kk-code-lab/pdfarrange/internal/arrange"

const (
	headerRows = 1
	footerRows = 2
	tileGap    = 1
	gridLeft   = 1
)

// GridMetrics describes how tiles are laid out on screen.
type GridMetrics struct {
	Top         int
	Left        int
	Columns     int
	Rows        int // total tile rows for the current document
	VisibleRows int
	CellWidth   int // tile width plus gap
	CellHeight  int
}

// TileSize is the drawn tile size in cells, falling back to the defaults.
func (s *AppState) TileSize() (int, int) {
	w, h := s.TileWidth, s.TileHeight
	if w < 4 {
		w = defaultTileWidth
	}
	if h < 3 {
		h = defaultTileHeight
	}
	return w, h
}

// Grid computes the current tile layout.
func (s *AppState) Grid() GridMetrics {
	w, h := s.TileSize()
	g := GridMetrics{
		Top:        headerRows,
		Left:       gridLeft,
		CellWidth:  w + tileGap,
		CellHeight: h + tileGap,
	}

	g.Columns = (s.ScreenWidth - gridLeft) / g.CellWidth
	if g.Columns < 1 {
		g.Columns = 1
	}
	g.VisibleRows = (s.ScreenHeight - headerRows - footerRows) / g.CellHeight
	if g.VisibleRows < 1 {
		g.VisibleRows = 1
	}

	n := 0
	if s.Pages != nil {
		n = s.Pages.Len()
	}
	g.Rows = (n + g.Columns - 1) / g.Columns
	return g
}

// syncPlacement keeps the collection's vertical navigation in step with the grid.
func (s *AppState) syncPlacement() {
	g := s.Grid()
	s.collection().SetPlacement(arrange.GridPlacement{Columns: g.Columns})
}

// TileOrigin returns the top-left screen cell of the tile at pos and whether
// any of it is on screen.
func (s *AppState) TileOrigin(pos int) (int, int, bool) {
	g := s.Grid()
	row := pos/g.Columns - s.ScrollOffset
	col := pos % g.Columns
	x := g.Left + col*g.CellWidth
	y := g.Top + row*g.CellHeight
	return x, y, row >= 0 && row < g.VisibleRows
}

// TileAt maps a screen cell to a sequence position. relX is the column
// relative to the tile's left edge. Gaps between tiles miss.
func (s *AppState) TileAt(x, y int) (pos int, relX int, ok bool) {
	if s.Pages == nil {
		return -1, 0, false
	}
	g := s.Grid()
	if x < g.Left || y < g.Top {
		return -1, 0, false
	}
	col := (x - g.Left) / g.CellWidth
	row := (y - g.Top) / g.CellHeight
	if col >= g.Columns || row >= g.VisibleRows {
		return -1, 0, false
	}
	relX = (x - g.Left) % g.CellWidth
	relY := (y - g.Top) % g.CellHeight
	if relX >= g.CellWidth-tileGap || relY >= g.CellHeight-tileGap {
		return -1, 0, false
	}
	pos = (row+s.ScrollOffset)*g.Columns + col
	if pos >= s.Pages.Len() {
		return -1, 0, false
	}
	return pos, relX, true
}

// VisibleRange returns the half-open range of sequence positions on screen.
func (s *AppState) VisibleRange() (int, int) {
	if s.Pages == nil {
		return 0, 0
	}
	g := s.Grid()
	start := s.ScrollOffset * g.Columns
	end := start + g.VisibleRows*g.Columns
	if end > s.Pages.Len() {
		end = s.Pages.Len()
	}
	if start > end {
		start = end
	}
	return start, end
}

func (s *AppState) maxScrollOffset() int {
	g := s.Grid()
	if g.Rows <= g.VisibleRows {
		return 0
	}
	return g.Rows - g.VisibleRows
}

func (s *AppState) clampScroll() {
	if limit := s.maxScrollOffset(); s.ScrollOffset > limit {
		s.ScrollOffset = limit
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// ensureCursorVisible scrolls the grid so the cursor row is on screen.
func (s *AppState) ensureCursorVisible() {
	p := s.CursorPage()
	if p == nil {
		s.clampScroll()
		return
	}
	pos := s.Pages.Position(p)
	if pos < 0 {
		return
	}
	g := s.Grid()
	row := pos / g.Columns
	if row < s.ScrollOffset {
		s.ScrollOffset = row
	} else if row >= s.ScrollOffset+g.VisibleRows {
		s.ScrollOffset = row - g.VisibleRows + 1
	}
	s.clampScroll()
}

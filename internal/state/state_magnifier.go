package state

import (
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/pdfdoc"
)

// Magnified pages are drawn at a fixed scale, usually larger than the screen,
// and panned with the arrow keys.
const (
	magnifierPointsPerColumn = 6.0
	magnifierPointsPerRow    = 12.0
	magnifierMargin          = 2
)

// MagnifierRect is the screen area of the magnifier overlay.
func (s *AppState) MagnifierRect() (x, y, w, h int) {
	x = magnifierMargin
	y = headerRows + 1
	w = s.ScreenWidth - 2*magnifierMargin
	h = s.ScreenHeight - headerRows - footerRows - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return x, y, w, h
}

// MagnifiedSize returns the drawn size of p in cells, honouring both the page's
// own rotation and the rotation applied while arranging.
func MagnifiedSize(p *arrange.Page) (int, int) {
	info, ok := PageInfoFor(p)
	if !ok {
		info = PageInfo{Width: pdfdoc.LetterWidth, Height: pdfdoc.LetterHeight}
	}
	extra := 0
	if p != nil {
		extra = p.Rotation()
	}
	w, h := info.Oriented(extra)
	cols := int(w/magnifierPointsPerColumn + 0.5)
	rows := int(h/magnifierPointsPerRow + 0.5)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// magnifierLimits is the largest pan offset for p inside the overlay.
func (s *AppState) magnifierLimits(p *arrange.Page) (int, int) {
	_, _, vw, vh := s.MagnifierRect()
	// interior excludes the overlay border
	vw -= 2
	vh -= 2
	cols, rows := MagnifiedSize(p)
	maxX, maxY := cols-vw, rows-vh
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return maxX, maxY
}

func (s *AppState) panMagnifier(dx, dy int, edge bool) bool {
	p := s.CursorPage()
	if p == nil || !p.Magnified() {
		return false
	}
	maxX, maxY := s.magnifierLimits(p)
	if edge {
		x, y := p.Scroll()
		switch {
		case dx < 0:
			x = 0
		case dx > 0:
			x = maxX
		}
		switch {
		case dy < 0:
			y = 0
		case dy > 0:
			y = maxY
		}
		return p.ScrollTo(x, y, maxX, maxY)
	}
	step := s.ScrollStep
	if step <= 0 {
		step = defaultScrollStep
	}
	return p.ScrollBy(dx*step, dy*step, maxX, maxY)
}

package render

import (
	"math"
	"strconv"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/pdfdoc"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

// tileView is everything drawn inside one page tile, resolved from state so
// the drawing code only deals with strings and flags.
type tileView struct {
	label     string // source page number
	rotation  string // "↻90", empty when unrotated
	paper     string
	known     bool // geometry fetched
	landscape bool
	ratio     float64 // oriented width / height
	docBadge  string  // "§2" on pages that start a new output document
	comment   bool
	cursor    bool
	selected  bool
	removed   bool
	dragged   bool
	dropSide  arrange.DropSide
	split     bool
}

func buildTileView(pages *arrange.Collection, pos int) tileView {
	p := pages.Page(pos)
	if p == nil {
		return tileView{}
	}

	view := tileView{
		label:    strconv.Itoa(p.Index),
		rotation: formatRotation(p.Rotation()),
		comment:  p.Comment() != "",
		cursor:   pages.Cursor() == p,
		selected: p.Selected(),
		removed:  p.Removed(),
		dragged:  p.Dragged(),
		dropSide: p.DropSide(),
		split:    p.SplitBefore(),
		ratio:    letterRatio,
	}
	if view.split {
		view.docBadge = "§" + strconv.Itoa(pages.DocumentNumber(pos))
	}

	if info, ok := statepkg.PageInfoFor(p); ok {
		view.known = true
		view.paper = info.PaperName()
		w, h := info.Oriented(p.Rotation())
		view.landscape = w > h
		if h > 0 {
			view.ratio = w / h
		}
	} else if p.Rotation()%180 != 0 {
		view.ratio = 1 / letterRatio
		view.landscape = true
	}
	return view
}

// Portrait letter proportions until the real size is known.
const letterRatio = pdfdoc.LetterWidth / pdfdoc.LetterHeight

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// glyphSize returns the size in cells of the miniature page drawn inside a
// tile interior of innerW x innerH, leaving one text row above and below.
func glyphSize(innerW, innerH int, ratio float64, landscape bool) (int, int) {
	rows := innerH - 2
	if rows < 1 {
		return 0, 0
	}
	if landscape && rows > 1 {
		rows--
	}
	cols := int(math.Round(float64(rows) * cellAspect * ratio))
	if cols < 1 {
		cols = 1
	}
	if cols > innerW {
		cols = innerW
	}
	return cols, rows
}

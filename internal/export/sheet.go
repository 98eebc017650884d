// Package export renders a processed arrangement as a PNG plan sheet: one row
// per output document, one box per page.
package export

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/textutil"
)

// Sheet geometry in character cells.
const (
	padding     = 2
	labelWidth  = 9
	slotWidth   = 14
	slotHeight  = 8
	rowGap      = 1
	titleHeight = 3
)

// Box is one page of an output document.
type Box struct {
	Label     string
	Rotation  string
	Comment   string
	Landscape bool
}

// Row is one output document.
type Row struct {
	Label string
	Boxes []Box
}

// Sheet is the plan laid out on a character grid, ready to rasterize.
type Sheet struct {
	Title string
	Rows  []Row
}

// OrientationFunc reports whether a source page, after rotation, is wider than
// tall. It may be nil, in which case every page is drawn portrait.
type OrientationFunc func(page, rotation int) bool

// Build lays out d.
func Build(d arrange.Directive, landscape OrientationFunc) Sheet {
	source := "document"
	if len(d.Src) > 0 && d.Src[0] != "" {
		source = filepath.Base(d.Src[0])
	}

	sheet := Sheet{
		Title: fmt.Sprintf("%s: %d document(s), %d page(s)", source, len(d.Docs), d.PageCount()),
		Rows:  make([]Row, 0, len(d.Docs)),
	}
	for i, doc := range d.Docs {
		row := Row{Label: "doc " + strconv.Itoa(i+1)}
		if len(doc) == 0 {
			row.Label += " ∅"
		}
		for _, e := range doc {
			box := Box{
				Label:   "p." + strconv.Itoa(e.Page),
				Comment: textutil.FitWidth(textutil.CleanComment(e.Comment), slotWidth-2),
			}
			if e.Rotation != 0 {
				box.Rotation = "r" + strconv.Itoa(e.Rotation)
			}
			if landscape != nil {
				box.Landscape = landscape(e.Page, e.Rotation)
			}
			row.Boxes = append(row.Boxes, box)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Size returns the sheet size in character cells.
func (s Sheet) Size() (cols, rows int) {
	widest := 1
	for _, row := range s.Rows {
		if len(row.Boxes) > widest {
			widest = len(row.Boxes)
		}
	}
	cols = padding + labelWidth + widest*slotWidth + padding
	if titleCols := padding*2 + textutil.DisplayWidth(s.Title); titleCols > cols {
		cols = titleCols
	}
	rows = titleHeight + len(s.Rows)*(slotHeight+rowGap) + padding
	return cols, rows
}

// boxRect returns the page outline of a box inside its slot, in cells
// relative to the slot origin.
func boxRect(b Box) (x, y, w, h int) {
	if b.Landscape {
		return 1, 2, slotWidth - 2, slotHeight - 4
	}
	return 3, 0, slotWidth - 6, slotHeight - 1
}

// slotOrigin returns the top-left cell of box j in row i.
func slotOrigin(i, j int) (int, int) {
	return padding + labelWidth + j*slotWidth, titleHeight + i*(slotHeight+rowGap)
}

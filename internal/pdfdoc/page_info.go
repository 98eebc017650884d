package pdfdoc

import "math"

// US Letter in points, used when a page carries no usable MediaBox.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// PageInfo is the render handle of one page: enough geometry to draw its
// outline, nothing of its content.
type PageInfo struct {
	Number int
	Width  float64 // points
	Height float64 // points
	Rotate int     // page /Rotate, normalized to 0/90/180/270
}

// Oriented returns width and height after applying the page's own rotation
// plus extra degrees.
func (p PageInfo) Oriented(extra int) (float64, float64) {
	deg := (p.Rotate + extra) % 360
	if deg < 0 {
		deg += 360
	}
	if deg%180 != 0 {
		return p.Height, p.Width
	}
	return p.Width, p.Height
}

// Landscape reports whether the page is wider than tall once rotated by extra.
func (p PageInfo) Landscape(extra int) bool {
	w, h := p.Oriented(extra)
	return w > h
}

type paperSize struct {
	name string
	w, h float64
}

var paperSizes = []paperSize{
	{"A3", 842, 1191},
	{"A4", 595, 842},
	{"A5", 420, 595},
	{"Letter", 612, 792},
	{"Legal", 612, 1008},
	{"Tabloid", 792, 1224},
}

// PaperName matches the unrotated size against common formats within 2pt.
func (p PageInfo) PaperName() string {
	short, long := math.Min(p.Width, p.Height), math.Max(p.Width, p.Height)
	for _, size := range paperSizes {
		if math.Abs(short-size.w) <= 2 && math.Abs(long-size.h) <= 2 {
			return size.name
		}
	}
	return ""
}

// Millimetres converts the page size from points.
func (p PageInfo) Millimetres() (float64, float64) {
	const pointsPerMM = 72.0 / 25.4
	return p.Width / pointsPerMM, p.Height / pointsPerMM
}

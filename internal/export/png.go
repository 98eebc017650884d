package export

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	charWidth  = 8.0
	charHeight = 16.0
	fontSize   = 12.0
)

var (
	inkColor     = color.Black
	mutedColor   = color.Gray{Y: 0x80}
	paperColor   = color.Gray{Y: 0xf4}
	commentColor = color.RGBA{R: 0x1f, G: 0x5f, B: 0xbf, A: 0xff}
)

// WritePNG rasterizes s to filename.
func WritePNG(filename string, s Sheet) error {
	cols, rows := s.Size()
	dc := gg.NewContext(int(float64(cols)*charWidth), int(float64(rows)*charHeight))
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.SetColor(inkColor)
	dc.DrawString(s.Title, padding*charWidth, 1.5*charHeight)

	for i, row := range s.Rows {
		_, y := slotOrigin(i, 0)
		dc.SetColor(inkColor)
		dc.DrawString(row.Label, padding*charWidth, (float64(y)+float64(slotHeight)/2)*charHeight)
		for j, box := range row.Boxes {
			sx, sy := slotOrigin(i, j)
			drawBoxPNG(dc, box, sx, sy)
		}
	}

	return dc.SavePNG(filename)
}

func drawBoxPNG(dc *gg.Context, box Box, slotX, slotY int) {
	bx, by, bw, bh := boxRect(box)
	x := float64(slotX+bx) * charWidth
	y := float64(slotY+by) * charHeight
	width := float64(bw) * charWidth
	height := float64(bh) * charHeight

	dc.SetColor(paperColor)
	dc.DrawRectangle(x, y, width, height)
	dc.Fill()

	dc.SetLineWidth(1.0)
	dc.SetColor(inkColor)
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()

	dc.DrawString(box.Label, x+charWidth, y+charHeight)
	if box.Rotation != "" {
		dc.SetColor(mutedColor)
		dc.DrawString(box.Rotation, x+charWidth, y+2*charHeight)
	}
	if box.Comment != "" {
		dc.SetColor(commentColor)
		dc.DrawString(box.Comment, float64(slotX+1)*charWidth, float64(slotY+slotHeight)*charHeight)
	}
}

package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	if maxWidth <= 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

// drawTextLine draws text from startX and returns the column after the last
// drawn rune.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 && runes[i] > 0x7f {
			combc = append(combc, runes[i])
			i++
		}

		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) fillRect(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		r.fillRow(x, x+w, row, style)
	}
}

// boxChars is a border set: corners then horizontal and vertical edges.
type boxChars struct {
	tl, tr, bl, br, h, v rune
}

var (
	singleBox = boxChars{'┌', '┐', '└', '┘', '─', '│'}
	doubleBox = boxChars{'╔', '╗', '╚', '╝', '═', '║'}
)

func (r *Renderer) drawBox(x, y, w, h int, box boxChars, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	for cx := x + 1; cx < right; cx++ {
		r.screen.SetContent(cx, y, box.h, nil, style)
		r.screen.SetContent(cx, bottom, box.h, nil, style)
	}
	for cy := y + 1; cy < bottom; cy++ {
		r.screen.SetContent(x, cy, box.v, nil, style)
		r.screen.SetContent(right, cy, box.v, nil, style)
	}
	r.screen.SetContent(x, y, box.tl, nil, style)
	r.screen.SetContent(right, y, box.tr, nil, style)
	r.screen.SetContent(x, bottom, box.bl, nil, style)
	r.screen.SetContent(right, bottom, box.br, nil, style)
}

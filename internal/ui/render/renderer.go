package render

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
	textutil "github.com/kk-code-lab/pdfarrange/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// yankFlash is how long the status line stays highlighted after a yank.
const yankFlash = 100 * time.Millisecond

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state == nil {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.screen.HideCursor()
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawGrid(state, w, h)
	if state.MagnifiedCursor() {
		r.drawMagnifier(state)
	}
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)

	r.screen.Show()
}

func (r *Renderer) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
}

// drawHeader renders the top bar: program name, source file, armed mode and
// page counts.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, w, 0, headerStyle)

	endX := r.drawTextLine(0, 0, w, "pdfarrange", headerStyle)

	name := ""
	if state.Pages != nil {
		name = state.Pages.Source()
	}
	if name == "" && state.SourcePath != "" {
		name = filepath.Base(state.SourcePath)
	}
	if name != "" && endX+1 < w {
		endX++
		name = textutil.SanitizeTerminalText(name)
		name = r.truncateTextToWidth(name, w-endX)
		endX = r.drawTextLine(endX, 0, w-endX, name, headerStyle.Bold(true))
	}

	if state.Pages != nil {
		if badge := formatModeBadge(state.Pages.Mode()); badge != "" && endX+1 < w {
			endX++
			modeStyle := tcell.StyleDefault.Background(r.theme.ModeBg).Foreground(r.theme.ModeFg).Bold(true)
			endX = r.drawTextLine(endX, 0, w-endX, badge, modeStyle)
		}
	}

	summary := formatHeaderSummary(state)
	if width := r.measureTextWidth(summary); width > 0 && endX+1+width <= w {
		r.drawTextLine(w-width, 0, width, summary, headerStyle)
	}
}

func (r *Renderer) drawGrid(state *statepkg.AppState, w, h int) {
	pages := state.Pages
	if pages == nil || pages.Len() == 0 {
		r.drawEmpty(state, w, h)
		return
	}

	tw, th := state.TileSize()
	start, end := state.VisibleRange()
	placed := make([]placedTile, 0, end-start)
	for pos := start; pos < end; pos++ {
		x, y, visible := state.TileOrigin(pos)
		if !visible {
			continue
		}
		view := buildTileView(pages, pos)
		r.drawTile(x, y, tw, th, view)
		placed = append(placed, placedTile{x: x, y: y, view: view})
	}
	r.drawGapMarkers(placed, tw, th)

	g := state.Grid()
	arrowStyle := r.baseStyle().Foreground(r.theme.TileBorder)
	if state.ScrollOffset > 0 && w > 0 {
		r.screen.SetContent(w-1, g.Top, '▲', nil, arrowStyle)
	}
	if state.ScrollOffset+g.VisibleRows < g.Rows && w > 0 {
		r.screen.SetContent(w-1, g.Top+g.VisibleRows*g.CellHeight-2, '▼', nil, arrowStyle)
	}
}

func (r *Renderer) drawEmpty(state *statepkg.AppState, w, h int) {
	var msg string
	switch {
	case state.Loading():
		msg = "loading " + filepath.Base(state.SourcePath) + "…"
	case state.SourcePath == "":
		msg = "no document"
	default:
		msg = "document has no pages"
	}
	msg = r.truncateTextToWidth(textutil.SanitizeTerminalText(msg), w)
	width := r.measureTextWidth(msg)
	x := (w - width) / 2
	if x < 0 {
		x = 0
	}
	r.drawTextLine(x, h/2, w-x, msg, r.baseStyle().Foreground(r.theme.TileBorder))
}

// drawTile draws one page tile with its top-left corner at x, y.
func (r *Renderer) drawTile(x, y, w, h int, v tileView) {
	base := r.baseStyle()
	interior := base
	borderStyle := base.Foreground(r.theme.TileBorder)
	box := singleBox

	if v.cursor {
		borderStyle = base.Foreground(r.theme.CursorFg).Bold(true)
		box = doubleBox
	}
	if v.selected {
		interior = base.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		borderStyle = borderStyle.Background(r.theme.SelectionBg)
	}
	if v.removed {
		interior = interior.Foreground(r.theme.RemovedFg)
		if !v.cursor {
			borderStyle = borderStyle.Foreground(r.theme.RemovedFg)
		}
	}
	if v.dragged {
		interior = interior.Dim(true)
		borderStyle = borderStyle.Dim(true)
	}

	r.fillRect(x+1, y+1, w-2, h-2, interior)
	r.drawBox(x, y, w, h, box, borderStyle)

	innerX, innerW := x+1, w-2
	if innerW <= 0 || h < 3 {
		return
	}

	labelStyle := interior.Bold(true)
	if v.removed {
		labelStyle = labelStyle.StrikeThrough(true)
	}
	r.drawTextLine(innerX, y+1, innerW, v.label, labelStyle)
	if v.rotation != "" {
		if rw := r.measureTextWidth(v.rotation); rw < innerW-r.measureTextWidth(v.label) {
			r.drawTextLine(innerX+innerW-rw, y+1, rw, v.rotation, interior)
		}
	}

	r.drawTileGlyph(innerX, y, innerW, h, v, interior)

	bottomY := y + h - 2
	if bottomY > y+1 && v.paper != "" {
		r.drawTextLine(innerX, bottomY, innerW, r.truncateTextToWidth(v.paper, innerW/2+1), interior)
	}
	if bottomY > y+1 {
		right := innerX + innerW
		if v.docBadge != "" {
			bw := r.measureTextWidth(v.docBadge)
			right -= bw
			r.drawTextLine(right, bottomY, bw, v.docBadge, interior.Foreground(r.theme.SplitFg).Bold(true))
		}
		if v.comment {
			right--
			r.screen.SetContent(right, bottomY, '✎', nil, interior.Foreground(r.theme.CommentFg))
		}
	}
}

// drawGapMarkers draws split bars and drop markers into the gap columns
// beside each tile. Drop markers are drawn last so they win over a split bar
// sharing the same column.
func (r *Renderer) drawGapMarkers(placed []placedTile, w, h int) {
	base := r.baseStyle()
	splitStyle := base.Foreground(r.theme.SplitFg)
	for _, t := range placed {
		if !t.view.split {
			continue
		}
		for cy := t.y; cy < t.y+h; cy++ {
			r.screen.SetContent(t.x-1, cy, '┃', nil, splitStyle)
		}
	}

	dropStyle := base.Foreground(r.theme.DropFg).Bold(true)
	for _, t := range placed {
		col, ch := -1, ' '
		switch t.view.dropSide {
		case arrange.DropBefore:
			col, ch = t.x-1, '▐'
		case arrange.DropAfter:
			col, ch = t.x+w, '▌'
		default:
			continue
		}
		for cy := t.y; cy < t.y+h; cy++ {
			r.screen.SetContent(col, cy, ch, nil, dropStyle)
		}
	}
}

type placedTile struct {
	x, y int
	view tileView
}

func (r *Renderer) drawTileGlyph(innerX, y, innerW, h int, v tileView, interior tcell.Style) {
	gw, gh := glyphSize(innerW, h-2, v.ratio, v.landscape)
	if gw == 0 || gh == 0 {
		return
	}

	glyph, style := '█', interior.Foreground(r.theme.PageFg)
	switch {
	case v.removed:
		glyph, style = '░', interior.Foreground(r.theme.RemovedFg)
	case !v.known:
		glyph, style = '▒', interior.Foreground(r.theme.PendingFg)
	}

	gx := innerX + (innerW-gw)/2
	gy := y + 2 + (h-4-gh)/2
	for row := 0; row < gh; row++ {
		for col := 0; col < gw; col++ {
			r.screen.SetContent(gx+col, gy+row, glyph, nil, style)
		}
	}
}

// drawMagnifier draws the cursor page at magnifier scale, shifted by its pan
// offset, inside a framed overlay above the grid.
func (r *Renderer) drawMagnifier(state *statepkg.AppState) {
	p := state.CursorPage()
	if p == nil {
		return
	}
	x, y, w, h := state.MagnifierRect()
	if w < 3 || h < 3 {
		return
	}

	base := r.baseStyle()
	r.fillRect(x, y, w, h, base)

	paperStyle := base.Background(r.theme.PaperBg).Foreground(r.theme.PaperFg)
	if p.Removed() {
		paperStyle = paperStyle.Foreground(r.theme.RemovedFg)
	}
	cols, rows := statepkg.MagnifiedSize(p)
	sx, sy := p.Scroll()
	ix, iy, iw, ih := x+1, y+1, w-2, h-2
	for row := 0; row < ih && row+sy < rows; row++ {
		for col := 0; col < iw && col+sx < cols; col++ {
			ch := paperRune(col+sx, row+sy, cols, rows)
			r.screen.SetContent(ix+col, iy+row, ch, nil, paperStyle)
		}
	}

	frameStyle := base.Foreground(r.theme.CursorFg).Bold(true)
	r.drawBox(x, y, w, h, doubleBox, frameStyle)

	title := " " + formatPageDetails(state.Pages, p) + " "
	title = r.truncateTextToWidth(title, w-4)
	r.drawTextLine(x+2, y, w-4, title, frameStyle)

	pos := fmt.Sprintf(" %d,%d of %dx%d ", sx, sy, cols, rows)
	if pw := r.measureTextWidth(pos); pw+4 <= w {
		r.drawTextLine(x+w-2-pw, y+h-1, pw, pos, frameStyle)
	}
}

// paperRune returns the outline character for cell px, py of a page that is
// cols x rows cells large.
func paperRune(px, py, cols, rows int) rune {
	left, right := px == 0, px == cols-1
	top, bottom := py == 0, py == rows-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	default:
		return ' '
	}
}

// drawStatusLine renders the line above the footer: the comment prompt when
// one is open, otherwise errors, messages or details about the cursor page.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 2
	if y < 1 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	if state.Comment.Active {
		r.drawPrompt(state, w, y, normalStyle)
		return
	}
	r.screen.HideCursor()

	text, isError := formatStatusText(state)
	style := normalStyle
	if isError {
		style = style.Foreground(r.theme.ErrorFg)
	}
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < yankFlash {
		style = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}

	r.fillRow(0, w, y, style)
	text = textutil.SanitizeTerminalText(text)
	text = r.truncateTextToWidth(text, w-1)
	r.drawTextLine(1, y, w-1, text, style)
}

const promptLabel = " comment: "

func (r *Renderer) drawPrompt(state *statepkg.AppState, w, y int, style tcell.Style) {
	r.fillRow(0, w, y, style)
	x := r.drawTextLine(0, y, w, promptLabel, style.Bold(true))

	visible, cursorCol := r.promptWindow(state.Comment.Value, state.Comment.CursorPos, w-x-1)
	r.drawTextLine(x, y, w-x, visible, style)
	r.screen.ShowCursor(x+cursorCol, y)
}

// promptWindow returns the slice of value that fits in avail columns while
// keeping the cursor visible, plus the cursor column within that slice.
func (r *Renderer) promptWindow(value []rune, cursor, avail int) (string, int) {
	if avail <= 0 {
		return "", 0
	}
	if cursor > len(value) {
		cursor = len(value)
	}

	start := 0
	width := 0
	for _, ru := range value[:cursor] {
		width += r.cachedRuneWidth(ru)
	}
	for width >= avail && start < cursor {
		width -= r.cachedRuneWidth(value[start])
		start++
	}

	var visible []rune
	used := 0
	for _, ru := range value[start:] {
		rw := r.cachedRuneWidth(ru)
		if used+rw > avail {
			break
		}
		visible = append(visible, ru)
		used += rw
	}
	return textutil.SanitizeTerminalText(string(visible)), width
}

func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	if h < 1 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	helpText := buildFooterHelpText(state)
	if helpText == "" {
		helpText = " "
	}
	helpText = textutil.SanitizeTerminalText(helpText)
	helpText = r.truncateTextToWidth(helpText, w)

	r.fillRow(0, w, h-1, normalStyle)
	r.drawTextLine(0, h-1, w, helpText, normalStyle)
}

package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
	textutil "github.com/kk-code-lab/pdfarrange/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "←↑↓→", desc: "Move the cursor (wraps at row ends)"},
				{keys: "Home / End", desc: "First / last page"},
				{keys: "PgUp / PgDn", desc: "Scroll one screen"},
				{keys: "+ or =", desc: "Magnify or close the cursor page"},
				{keys: "arrows", desc: "Pan while magnified (Ctrl jumps to the edge)"},
			},
		},
		{
			title: "Arrange",
			entries: []helpOverlayEntry{
				{keys: "Alt+← / Alt+→", desc: "Mark drop before / after the cursor"},
				{keys: "↵", desc: "Move the selection to the drop mark"},
				{keys: "drag", desc: "Move the selection with the mouse"},
				{keys: "Ctrl+← / Ctrl+→", desc: "Rotate cursor page left / right"},
				{keys: "Ctrl+Shift+←/→", desc: "Rotate selected pages"},
				{keys: "Del / Shift+Del", desc: "Remove cursor / selected pages"},
				{keys: "Backspace or u", desc: "Restore the cursor page"},
				{keys: "Ctrl+S / S", desc: "Toggle split before cursor / selection"},
				{keys: "c", desc: "Comment on the cursor page"},
			},
		},
		{
			title: "Selection",
			entries: []helpOverlayEntry{
				{keys: "space", desc: "Toggle the cursor page"},
				{keys: "click", desc: "Select one page (Ctrl+click toggles)"},
				{keys: "Ctrl+A / Ctrl+D", desc: "Select all / none"},
				{keys: "Tab or *", desc: "Invert selection"},
			},
		},
		{
			title: "Modes",
			entries: []helpOverlayEntry{
				{keys: "v m s", desc: "Arm select / magnify / split tool"},
				{keys: "r l x", desc: "Arm rotate right / left / remove tool"},
				{keys: "↵ or click", desc: "Apply the armed tool to a page"},
				{keys: "Esc", desc: "Close magnifier, disarm, then deselect"},
			},
		},
		{
			title: "Output",
			entries: []helpOverlayEntry{
				{keys: "p", desc: "Process the arrangement into a plan"},
				{keys: "y", desc: yankDescription(state)},
				{keys: "E", desc: "Export the plan as a PNG sheet"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "w", desc: "Write the plan and quit"},
				{keys: "q", desc: "Quit without writing"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 48)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func yankDescription(state *statepkg.AppState) string {
	if state != nil && !state.ClipboardAvailable {
		return "Copy the plan (no clipboard found)"
	}
	return "Copy the plan JSON to the clipboard"
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-18s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fillRect(0, 0, w, h, baseStyle)

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		style := baseStyle
		if line != "" && !strings.HasPrefix(line, " ") {
			style = style.Bold(true)
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, style)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		footerText := r.truncateTextToWidth(footer, w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}

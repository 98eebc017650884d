package render

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
	textutil "github.com/kk-code-lab/pdfarrange/internal/textutil"
)

func formatRotation(deg int) string {
	if deg == 0 {
		return ""
	}
	return fmt.Sprintf("↻%d", deg)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// formatHeaderSummary lists page counts for the right side of the header.
func formatHeaderSummary(state *statepkg.AppState) string {
	if state.Loading() {
		return "loading…"
	}
	pages := state.Pages
	if pages == nil || pages.Len() == 0 {
		return ""
	}

	parts := []string{plural(pages.Len(), "page")}
	if n := pages.SelectedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := pages.RemovedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := pages.SplitCount(); n > 0 {
		parts = append(parts, plural(n+1, "doc"))
	}
	return strings.Join(parts, " · ")
}

func formatModeBadge(mode arrange.Mode) string {
	if mode == arrange.ModeNone {
		return ""
	}
	return " " + string(mode) + " "
}

// formatPageDetails describes the cursor page for the status line.
func formatPageDetails(pages *arrange.Collection, p *arrange.Page) string {
	if p == nil {
		return ""
	}
	pos := pages.Position(p)
	parts := []string{fmt.Sprintf("p.%d (%d/%d)", p.Index, pos+1, pages.Len())}

	if info, ok := statepkg.PageInfoFor(p); ok {
		parts = append(parts, formatPaper(info))
		if info.Landscape(p.Rotation()) {
			parts = append(parts, "landscape")
		} else {
			parts = append(parts, "portrait")
		}
	}
	if rot := formatRotation(p.Rotation()); rot != "" {
		parts = append(parts, rot)
	}
	if p.Removed() {
		parts = append(parts, "removed")
	}
	if p.SplitBefore() {
		parts = append(parts, fmt.Sprintf("starts doc %d", pages.DocumentNumber(pos)))
	}
	if c := p.Comment(); c != "" {
		parts = append(parts, "“"+textutil.SanitizeTerminalText(c)+"”")
	}
	return strings.Join(parts, " · ")
}

func formatPaper(info statepkg.PageInfo) string {
	wmm, hmm := info.Millimetres()
	size := fmt.Sprintf("%.0f×%.0f mm", wmm, hmm)
	if name := info.PaperName(); name != "" {
		return name + " " + size
	}
	return size
}

// formatStatusText picks what the status line shows. isError is set when the
// text comes from a failed action.
func formatStatusText(state *statepkg.AppState) (text string, isError bool) {
	switch {
	case state.LastError != nil:
		return "error: " + state.LastError.Error(), true
	case state.StatusMessage != "":
		return state.StatusMessage, false
	}

	if details := formatPageDetails(state.Pages, state.CursorPage()); details != "" {
		return details, false
	}
	if state.LastDirective != nil {
		return "plan: " + state.LastDirective.Compact(), false
	}
	if state.SourcePath != "" && !state.Loading() {
		return state.SourcePath, false
	}
	return "", false
}

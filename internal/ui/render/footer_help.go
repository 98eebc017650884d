package render

import (
	"strings"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	mode := arrange.ModeNone
	if state.Pages != nil {
		mode = state.Pages.Mode()
	}

	switch {
	case state.Comment.Active:
		return []string{
			"type: comment",
			"↵: save",
			"Esc: cancel",
		}
	case state.MagnifiedCursor():
		return []string{
			"←↑↓→: pan",
			"Ctrl+arrow: edge",
			"Esc/+: close",
		}
	case state.Pages != nil && state.Pages.DropTarget() != nil:
		return []string{
			"↵: move selection here",
			"Alt+←/→: side",
			"other key: cancel",
		}
	case mode != arrange.ModeNone:
		return []string{
			"↵/click: apply " + string(mode),
			"Esc: disarm",
			"←↑↓→: move",
		}
	default:
		return []string{
			"←↑↓→: move",
			"space: select",
			"Alt+←/→: drop",
			"Ctrl+←/→: rotate",
			"Del: remove",
			"Ctrl+S: split",
			"+: magnify",
			"c: comment",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.Comment.Active {
		return nil
	}

	segments := []string{"p: process"}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank plan")
	}
	segments = append(segments, "w/q: write/quit", "?: help")
	return segments
}

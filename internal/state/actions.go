package state

import "github.com/kk-code-lab/pdfarrange/internal/arrange"

// Action is the base interface for all state mutations
type Action interface{}

// ===== DOCUMENT ACTIONS =====

type LoadDocumentAction struct {
	Path string
}

// DocumentLoadedAction carries the result of an async document load.
type DocumentLoadedAction DocumentLoadResult

type PageHandleLoadedAction struct {
	Token int
	Index int // 1-based source page number
	Info  PageInfo
	Err   error
}

// ===== NAVIGATION ACTIONS =====

type NavigateLeftAction struct{}
type NavigateRightAction struct{}
type NavigateUpAction struct{}
type NavigateDownAction struct{}
type CursorJumpAction struct {
	End bool // false: first page, true: last page
}

// MagnifierPanAction pans the magnified cursor page.
type MagnifierPanAction struct {
	DX, DY int  // direction, -1/0/1 per axis
	Edge   bool // jump to the edge instead of stepping
}

// ===== PAGE ACTIONS =====

type RotateCursorAction struct {
	Clockwise bool
}
type RotateSelectionAction struct {
	Clockwise bool
}
type RemoveCursorAction struct{}
type RemoveSelectionAction struct{}
type RestoreCursorAction struct{}
type SplitCursorAction struct{}
type SplitSelectionAction struct{}
type MagnifyCursorAction struct{}

// EscapeAction unmagnifies the cursor page or disarms the active mode.
type EscapeAction struct{}

type ToggleModeAction struct {
	Mode arrange.Mode
}

// ===== SELECTION ACTIONS =====

type ToggleSelectCursorAction struct{}
type SelectAllAction struct {
	Mode arrange.SelectAllMode
}

// ===== DROP ACTIONS =====

// SetDropTargetAction marks the cursor page as the keyboard drop target.
type SetDropTargetAction struct {
	Side arrange.DropSide
}

// ActivateCursorAction commits a pending drop, or applies the armed tool to
// the cursor page.
type ActivateCursorAction struct{}

// ===== POINTER ACTIONS =====

type PageClickAction struct {
	Position int
	Ctrl     bool
}
type DragStartAction struct {
	Position int
}
type DragOverAction struct {
	Position int
	X        int // column relative to the tile's left edge
	Width    int
}
type DragLeaveAction struct {
	Position int
}
type DropAction struct {
	Position int
	X        int
	Width    int
}
type DragEndAction struct{}

// ===== COMMENT PROMPT ACTIONS =====

type CommentStartAction struct{}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptDeleteAction struct{}
type PromptMoveCursorAction struct {
	Direction string // "left", "right", "home", "end"
}
type PromptConfirmAction struct{}
type PromptCancelAction struct{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== OUTPUT ACTIONS =====

// ProcessAction flattens the arrangement into a directive and notifies
// the collection's process listeners.
type ProcessAction struct{}

type YankDirectiveAction struct{}
type ExportSheetAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}         // q - leave without a directive
type WriteAndQuitAction struct{} // w - emit the directive, then leave
type SuspendAction struct{}

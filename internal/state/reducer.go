package state

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/textutil"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	dragSource *arrange.Page
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// keepsDropTarget lists the actions that leave a pending drop target alone.
// Every other interaction cancels it.
func keepsDropTarget(action Action) bool {
	switch action.(type) {
	case SetDropTargetAction, ActivateCursorAction,
		DragStartAction, DragOverAction, DragLeaveAction, DropAction, DragEndAction,
		ScrollUpAction, ScrollDownAction, ScrollPageUpAction, ScrollPageDownAction,
		ResizeAction, DocumentLoadedAction, PageHandleLoadedAction, HelpToggleAction, HelpHideAction:
		return true
	}
	return false
}

func isBackgroundAction(action Action) bool {
	switch action.(type) {
	case ResizeAction, DocumentLoadedAction, PageHandleLoadedAction:
		return true
	}
	return false
}

func (r *StateReducer) loadDocument(state *AppState, path string) error {
	if path == "" {
		return fmt.Errorf("no document path given")
	}
	path = filepath.Clean(path)

	loader := state.DocumentLoader
	dispatch := state.getDispatch()

	if prev := state.ActiveLoadToken(); prev != 0 && loader != nil {
		loader.Cancel(prev)
	}
	r.dragSource = nil
	teardownDocument(state, path)
	token := state.nextLoadToken()

	if loader == nil || dispatch == nil {
		state.loading = false
		if err := LoadDocument(state, path); err != nil {
			return err
		}
		state.syncPlacement()
		return nil
	}

	state.loading = true
	loader.Start(DocumentLoadRequest{
		Token: token,
		Path:  path,
		Callback: func(result DocumentLoadResult) {
			dispatch(DocumentLoadedAction(result))
		},
	})
	return nil
}

// reportBulk sets the status after a selection-wide action. n == 0 means the
// selection was empty and the action toggled its mode instead.
func (r *StateReducer) reportBulk(state *AppState, n int, verb string, mode arrange.Mode) {
	if n > 0 {
		state.setStatus(fmt.Sprintf("%s %d page(s)", verb, n))
		return
	}
	if state.Pages.Mode() == mode {
		state.setStatus(fmt.Sprintf("%s mode: click a page", mode))
	} else {
		state.setStatus("")
	}
}

// Reduce applies an action to state and returns new state
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	pages := state.collection()
	if !keepsDropTarget(action) {
		pages.ClearDropTarget()
	}
	if !isBackgroundAction(action) {
		state.LastError = nil
	}
	state.syncPlacement()
	defer r.requestVisibleHandles(state)

	switch a := action.(type) {

	// ===== DOCUMENT =====

	case LoadDocumentAction:
		return state, r.loadDocument(state, a.Path)

	case DocumentLoadedAction:
		if a.Token == 0 || a.Token != state.ActiveLoadToken() {
			if a.Document != nil {
				_ = a.Document.Close()
			}
			return state, nil
		}
		state.loading = false

		if a.Err != nil {
			state.LastError = a.Err
			state.logger().Error("document load failed",
				slog.String("path", a.Path),
				slog.Any("err", a.Err))
			return state, nil
		}

		applyDocument(state, a.Path, a.Document)
		state.syncPlacement()
		return state, nil

	case PageHandleLoadedAction:
		if a.Token != state.loadToken || state.loading {
			return state, nil
		}
		if p := findPageByIndex(pages, a.Index); p != nil {
			r.attachHandle(state, p, a.Info, a.Err)
		}
		return state, nil

	// ===== NAVIGATION =====

	case NavigateLeftAction:
		pages.MovePrevious()
		state.ensureCursorVisible()
		return state, nil

	case NavigateRightAction:
		pages.MoveNext()
		state.ensureCursorVisible()
		return state, nil

	case NavigateUpAction:
		pages.MoveUp()
		state.ensureCursorVisible()
		return state, nil

	case NavigateDownAction:
		pages.MoveDown()
		state.ensureCursorVisible()
		return state, nil

	case CursorJumpAction:
		if pages.Len() == 0 {
			return state, nil
		}
		pos := 0
		if a.End {
			pos = pages.Len() - 1
		}
		pages.MoveTo(pos)
		state.ensureCursorVisible()
		return state, nil

	case MagnifierPanAction:
		state.panMagnifier(a.DX, a.DY, a.Edge)
		return state, nil

	// ===== PAGE =====

	case RotateCursorAction:
		p := pages.Cursor()
		if p == nil {
			return state, nil
		}
		var rotated bool
		if a.Clockwise {
			rotated = p.RotateRight()
		} else {
			rotated = p.RotateLeft()
		}
		if !rotated {
			state.setStatus(fmt.Sprintf("page %d is removed", p.Index))
		}
		return state, nil

	case RotateSelectionAction:
		if a.Clockwise {
			r.reportBulk(state, pages.RotateRight(), "rotated", arrange.ModeRotateRight)
		} else {
			r.reportBulk(state, pages.RotateLeft(), "rotated", arrange.ModeRotateLeft)
		}
		return state, nil

	case RemoveCursorAction:
		p := pages.Cursor()
		if p == nil {
			r.reportBulk(state, pages.Remove(), "removed", arrange.ModeRemove)
			return state, nil
		}
		p.Remove()
		return state, nil

	case RemoveSelectionAction:
		r.reportBulk(state, pages.Remove(), "removed", arrange.ModeRemove)
		return state, nil

	case RestoreCursorAction:
		if p := pages.Cursor(); p != nil {
			p.Unremove()
		}
		return state, nil

	case SplitCursorAction:
		p := pages.Cursor()
		if p == nil {
			r.reportBulk(state, pages.SplitBefore(), "split before", arrange.ModeSplitBefore)
			return state, nil
		}
		if p.Removed() {
			state.setStatus(fmt.Sprintf("page %d is removed", p.Index))
			return state, nil
		}
		p.ToggleSplitBefore()
		return state, nil

	case SplitSelectionAction:
		r.reportBulk(state, pages.SplitBefore(), "split before", arrange.ModeSplitBefore)
		return state, nil

	case MagnifyCursorAction:
		p := pages.Cursor()
		if p == nil {
			return state, nil
		}
		if p.Magnified() {
			p.Unmagnify()
		} else {
			p.Magnify()
		}
		return state, nil

	case EscapeAction:
		switch {
		case state.MagnifiedCursor():
			pages.Cursor().Unmagnify()
		case pages.Mode() != arrange.ModeNone:
			pages.ToggleMode(pages.Mode())
		default:
			pages.SelectAll(arrange.SelectAllOff)
		}
		return state, nil

	case ToggleModeAction:
		pages.ToggleMode(a.Mode)
		return state, nil

	// ===== SELECTION =====

	case ToggleSelectCursorAction:
		if p := pages.Cursor(); p != nil {
			p.SelectToggle()
		}
		return state, nil

	case SelectAllAction:
		pages.SelectAll(a.Mode)
		return state, nil

	// ===== DROP =====

	case SetDropTargetAction:
		p := pages.Cursor()
		if p == nil {
			return state, nil
		}
		if p.Selected() {
			pages.ClearDropTarget()
			state.setStatus("cannot drop onto a selected page")
			return state, nil
		}
		pages.SetDropTarget(p, a.Side)
		return state, nil

	case ActivateCursorAction:
		if pages.DropTarget() != nil {
			if !pages.CommitDrop() {
				state.setStatus("nothing selected to move")
			}
			return state, nil
		}
		if p := pages.Cursor(); p != nil && pages.Mode() != arrange.ModeNone {
			p.Click(true)
		}
		return state, nil

	// ===== POINTER =====

	case PageClickAction:
		if p := pages.Page(a.Position); p != nil {
			p.Click(a.Ctrl)
		}
		return state, nil

	case DragStartAction:
		p := pages.Page(a.Position)
		if p == nil {
			return state, nil
		}
		if !p.DragStart() {
			state.setStatus(fmt.Sprintf("page %d is removed", p.Index))
			return state, nil
		}
		r.dragSource = p
		return state, nil

	case DragOverAction:
		p := pages.Page(a.Position)
		if r.dragSource == nil || p == nil || p.Selected() {
			pages.ClearDropTarget()
			return state, nil
		}
		p.DragOver(a.X, a.Width)
		return state, nil

	case DragLeaveAction:
		if p := pages.Page(a.Position); p != nil {
			p.DragLeave()
		}
		return state, nil

	case DropAction:
		p := pages.Page(a.Position)
		if r.dragSource == nil || p == nil || p.Selected() {
			pages.ClearDropTarget()
			return state, nil
		}
		p.Drop(a.X, a.Width)
		return state, nil

	case DragEndAction:
		if r.dragSource != nil {
			r.dragSource.DragEnd()
			r.dragSource = nil
		}
		pages.ClearDropTarget()
		return state, nil

	// ===== COMMENT =====

	case CommentStartAction:
		if !pages.EditComment(state) {
			state.setStatus("no page under the cursor")
		}
		return state, nil

	case PromptCharAction:
		if state.Comment.Active {
			state.promptInsert(a.Char)
		}
		return state, nil

	case PromptBackspaceAction:
		if state.Comment.Active {
			state.promptBackspace()
		}
		return state, nil

	case PromptDeleteAction:
		if state.Comment.Active {
			state.promptDelete()
		}
		return state, nil

	case PromptMoveCursorAction:
		if state.Comment.Active {
			state.promptMove(a.Direction)
		}
		return state, nil

	case PromptConfirmAction:
		if state.Comment.Active {
			state.closePrompt(textutil.CleanComment(state.Comment.Text()))
		}
		return state, nil

	case PromptCancelAction:
		if state.Comment.Active {
			state.closePrompt(state.Comment.original)
		}
		return state, nil

	// ===== SCROLLING =====

	case ScrollUpAction:
		state.ScrollOffset--
		state.clampScroll()
		return state, nil

	case ScrollDownAction:
		state.ScrollOffset++
		state.clampScroll()
		return state, nil

	case ScrollPageUpAction:
		state.ScrollOffset -= state.Grid().VisibleRows
		state.clampScroll()
		return state, nil

	case ScrollPageDownAction:
		state.ScrollOffset += state.Grid().VisibleRows
		state.clampScroll()
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.syncPlacement()
		state.ensureCursorVisible()
		if p := pages.Cursor(); p != nil && p.Magnified() {
			// re-clamp the pan offset to the new viewport
			state.panMagnifier(0, 0, false)
		}
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	// ===== OUTPUT =====

	case ProcessAction:
		d := pages.Process()
		state.LastDirective = &d
		state.setStatus(fmt.Sprintf("%d document(s), %d page(s)", len(d.Docs), d.PageCount()))
		state.logger().Info("directive emitted",
			slog.Int("documents", len(d.Docs)),
			slog.Int("pages", d.PageCount()),
			slog.String("plan", d.Compact()))
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

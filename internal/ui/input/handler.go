package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asks the application to stop.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) bool {
	ih.actionChan <- action
	return true
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	promptActive := ih.state != nil && ih.state.Comment.Active
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if promptActive {
		return ih.processPromptKey(ev)
	}

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	mods := ev.Modifiers()
	ctrl := mods&tcell.ModCtrl != 0
	shift := mods&tcell.ModShift != 0
	alt := mods&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.EscapeAction{})

	case tcell.KeyLeft, tcell.KeyRight:
		dx := 1
		if ev.Key() == tcell.KeyLeft {
			dx = -1
		}
		return ih.processHorizontal(dx, ctrl, shift, alt)

	case tcell.KeyUp, tcell.KeyDown:
		dy := 1
		if ev.Key() == tcell.KeyUp {
			dy = -1
		}
		if ih.magnified() {
			return ih.emit(statepkg.MagnifierPanAction{DY: dy, Edge: ctrl})
		}
		if dy < 0 {
			return ih.emit(statepkg.NavigateUpAction{})
		}
		return ih.emit(statepkg.NavigateDownAction{})

	case tcell.KeyEnter:
		return ih.emit(statepkg.ActivateCursorAction{})

	case tcell.KeyDelete:
		if shift {
			return ih.emit(statepkg.RemoveSelectionAction{})
		}
		return ih.emit(statepkg.RemoveCursorAction{})

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.RestoreCursorAction{})

	case tcell.KeyHome:
		return ih.emit(statepkg.CursorJumpAction{})

	case tcell.KeyEnd:
		return ih.emit(statepkg.CursorJumpAction{End: true})

	case tcell.KeyPgUp:
		return ih.emit(statepkg.ScrollPageUpAction{})

	case tcell.KeyPgDn:
		return ih.emit(statepkg.ScrollPageDownAction{})

	case tcell.KeyCtrlA:
		return ih.emit(statepkg.SelectAllAction{Mode: arrange.SelectAllOn})

	case tcell.KeyCtrlD:
		return ih.emit(statepkg.SelectAllAction{Mode: arrange.SelectAllOff})

	case tcell.KeyTab:
		return ih.emit(statepkg.SelectAllAction{Mode: arrange.SelectAllInverse})

	case tcell.KeyCtrlS:
		return ih.emit(statepkg.SplitCursorAction{})

	case tcell.KeyCtrlZ:
		return ih.emit(statepkg.SuspendAction{})

	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}

	return true
}

func (ih *InputHandler) magnified() bool {
	return ih.state != nil && ih.state.MagnifiedCursor()
}

func (ih *InputHandler) processHorizontal(dx int, ctrl, shift, alt bool) bool {
	clockwise := dx > 0
	switch {
	case ih.magnified():
		return ih.emit(statepkg.MagnifierPanAction{DX: dx, Edge: ctrl})
	case alt:
		side := arrange.DropAfter
		if dx < 0 {
			side = arrange.DropBefore
		}
		return ih.emit(statepkg.SetDropTargetAction{Side: side})
	case ctrl && shift:
		return ih.emit(statepkg.RotateSelectionAction{Clockwise: clockwise})
	case ctrl:
		return ih.emit(statepkg.RotateCursorAction{Clockwise: clockwise})
	case dx < 0:
		return ih.emit(statepkg.NavigateLeftAction{})
	default:
		return ih.emit(statepkg.NavigateRightAction{})
	}
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'w':
		ih.actionChan <- statepkg.WriteAndQuitAction{}
		return false
	case ' ':
		return ih.emit(statepkg.ToggleSelectCursorAction{})
	case '*':
		return ih.emit(statepkg.SelectAllAction{Mode: arrange.SelectAllInverse})
	case '+', '=':
		return ih.emit(statepkg.MagnifyCursorAction{})
	case 'S':
		return ih.emit(statepkg.SplitSelectionAction{})
	case 'u':
		return ih.emit(statepkg.RestoreCursorAction{})
	case 'c':
		return ih.emit(statepkg.CommentStartAction{})
	case 'p':
		return ih.emit(statepkg.ProcessAction{})
	case 'y':
		return ih.emit(statepkg.YankDirectiveAction{})
	case 'E':
		return ih.emit(statepkg.ExportSheetAction{})
	case '?':
		return ih.emit(statepkg.HelpToggleAction{})
	}

	if mode, ok := modeKeys[r]; ok {
		return ih.emit(statepkg.ToggleModeAction{Mode: mode})
	}
	return true
}

var modeKeys = map[rune]arrange.Mode{
	'm': arrange.ModeMagnify,
	's': arrange.ModeSplitBefore,
	'r': arrange.ModeRotateRight,
	'l': arrange.ModeRotateLeft,
	'x': arrange.ModeRemove,
	'v': arrange.ModeSelect,
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PromptCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PromptConfirmAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PromptBackspaceAction{}
	case tcell.KeyDelete:
		ih.actionChan <- statepkg.PromptDeleteAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "left"}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "right"}
	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "home"}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.PromptMoveCursorAction{Direction: "end"}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.PromptCharAction{Char: ev.Rune()}
	}
	return true
}

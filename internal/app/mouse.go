package app

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

// pointerState tracks one primary-button gesture from press to release.
type pointerState struct {
	pressed  bool
	pressX   int
	pressY   int
	pressPos int // sequence position under the press, -1 when none
	ctrl     bool
	dragging bool
	overPos  int // tile currently hovered during a drag, -1 when none
}

func newPointerState() pointerState {
	return pointerState{pressPos: -1, overPos: -1}
}

// handleMouse turns raw mouse events into clicks or a drag & drop sequence.
// A press and release on the same cell is a click; moving to another cell
// while the button is held starts a drag of the pressed page.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil || app.state.HelpVisible || app.state.Comment.Active {
		return
	}

	buttons := ev.Buttons()
	x, y := ev.Position()

	switch {
	case buttons&tcell.WheelUp != 0:
		app.wheel(-1)
		return
	case buttons&tcell.WheelDown != 0:
		app.wheel(1)
		return
	}

	p := &app.pointer
	if buttons&tcell.Button1 != 0 {
		if !p.pressed {
			*p = newPointerState()
			p.pressed = true
			p.pressX, p.pressY = x, y
			p.ctrl = ev.Modifiers()&tcell.ModCtrl != 0
			if pos, _, ok := app.state.TileAt(x, y); ok {
				p.pressPos = pos
			}
			return
		}
		if !p.dragging && (x != p.pressX || y != p.pressY) && p.pressPos >= 0 {
			p.dragging = true
			app.actionCh <- statepkg.DragStartAction{Position: p.pressPos}
		}
		if p.dragging {
			app.dragOver(x, y)
		}
		return
	}

	if !p.pressed {
		return
	}
	if p.dragging {
		if pos, relX, ok := app.state.TileAt(x, y); ok {
			app.actionCh <- statepkg.DropAction{Position: pos, X: relX, Width: app.tileWidth()}
		}
		app.actionCh <- statepkg.DragEndAction{}
	} else if p.pressPos >= 0 {
		app.actionCh <- statepkg.PageClickAction{Position: p.pressPos, Ctrl: p.ctrl}
	}
	*p = newPointerState()
}

func (app *Application) dragOver(x, y int) {
	p := &app.pointer
	pos, relX, ok := app.state.TileAt(x, y)
	if p.overPos >= 0 && (!ok || pos != p.overPos) {
		app.actionCh <- statepkg.DragLeaveAction{Position: p.overPos}
		p.overPos = -1
	}
	if !ok {
		return
	}
	p.overPos = pos
	app.actionCh <- statepkg.DragOverAction{Position: pos, X: relX, Width: app.tileWidth()}
}

func (app *Application) wheel(dy int) {
	if app.state.MagnifiedCursor() {
		app.actionCh <- statepkg.MagnifierPanAction{DY: dy}
		return
	}
	if dy < 0 {
		app.actionCh <- statepkg.ScrollUpAction{}
		return
	}
	app.actionCh <- statepkg.ScrollDownAction{}
}

func (app *Application) tileWidth() int {
	w, _ := app.state.TileSize()
	return w
}

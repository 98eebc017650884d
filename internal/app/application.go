package app

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/config"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
	inputui "github.com/kk-code-lab/pdfarrange/internal/ui/input"
	renderui "github.com/kk-code-lab/pdfarrange/internal/ui/render"
)

// Options configure a new Application.
type Options struct {
	Path      string // PDF to arrange
	SheetPath string // overrides the plan sheet location derived from Config
	Config    *config.Config
	Logger    *slog.Logger
}

// Application represents the running app.
type Application struct {
	screen    tcell.Screen
	state     *statepkg.AppState
	reducer   *statepkg.StateReducer
	renderer  *renderui.Renderer
	input     *inputui.InputHandler
	actionCh  chan statepkg.Action
	config    *config.Config
	logger    *slog.Logger
	sheetPath string

	shouldQuit    bool
	pointer       pointerState
	lastProcessed *arrange.Directive
	exitDirective *arrange.Directive
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	if doc := app.state.Document; doc != nil {
		return doc.Close()
	}
	return nil
}

// Directive returns the plan to write on exit, or nil when the user quit
// without writing.
func (app *Application) Directive() *arrange.Directive {
	return app.exitDirective
}

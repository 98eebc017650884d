package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/config"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
	"github.com/kk-code-lab/pdfarrange/internal/ui/input"
	renderui "github.com/kk-code-lab/pdfarrange/internal/ui/render"
)

// NewApplication opens the terminal and starts loading opts.Path.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app := newApplication(screen, opts)
	app.state.DocumentLoader = statepkg.NewAsyncDocumentLoader()
	if opts.Path != "" {
		app.reduce(statepkg.LoadDocumentAction{Path: opts.Path})
	}
	return app, nil
}

// newApplication wires state, reducer, renderer and input around screen
// without loading anything.
func newApplication(screen tcell.Screen, opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := statepkg.NewAppState()
	state.TileWidth = cfg.TileWidth
	state.TileHeight = cfg.TileHeight
	state.ScrollStep = cfg.ScrollStep
	state.ClipboardAvailable = clipboardAvailable()
	state.Logger = logger
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		actionCh:  actionCh,
		config:    cfg,
		logger:    logger,
		sheetPath: opts.SheetPath,
		pointer:   newPointerState(),
	}

	state.Pages.OnProcess(func(d arrange.Directive) {
		app.lastProcessed = &d
	})
	return app
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			// The quit action is still queued; let it through so "w" can
			// compute the directive before the loop stops.
			app.processActions()
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < 100*time.Millisecond
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.WriteAndQuitAction:
		app.exitDirective = app.processDirective()
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.YankDirectiveAction:
		return app.handleYank()
	case statepkg.ExportSheetAction:
		return app.handleExport()
	}

	app.reduce(action)
	return true
}

// reduce applies action and records a failure on the status line.
func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.logger.Error("action failed",
			slog.String("action", actionName(action)),
			slog.Any("err", err))
		return
	}
	if app.logger.Enabled(context.Background(), slog.LevelDebug) {
		if err := app.state.Pages.CheckInvariants(); err != nil {
			app.logger.Debug("selection out of sync",
				slog.String("action", actionName(action)),
				slog.Any("err", err))
		}
	}
}

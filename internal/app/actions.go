package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/export"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

var errNoClipboard = errors.New("no clipboard available")

// processDirective runs the process step through the reducer and returns the
// resulting plan.
func (app *Application) processDirective() *arrange.Directive {
	app.lastProcessed = nil
	app.reduce(statepkg.ProcessAction{})
	if app.lastProcessed != nil {
		return app.lastProcessed
	}
	return app.state.LastDirective
}

func (app *Application) handleYank() bool {
	d := app.processDirective()
	if d == nil {
		return true
	}
	if !app.state.ClipboardAvailable {
		app.state.LastError = errNoClipboard
		return true
	}

	data, err := json.Marshal(d)
	if err != nil {
		app.state.LastError = fmt.Errorf("encode plan: %w", err)
		return true
	}
	if err := writeClipboard(string(data)); err != nil {
		app.state.LastError = fmt.Errorf("yank plan: %w", err)
		app.logger.Warn("clipboard write failed", slog.Any("err", err))
		return true
	}

	app.state.LastYankTime = time.Now()
	app.state.StatusMessage = "plan copied to clipboard"
	return true
}

func (app *Application) handleExport() bool {
	d := app.processDirective()
	if d == nil {
		return true
	}

	path := app.sheetPath
	if path == "" {
		var err error
		path, err = app.config.SheetPath(app.state.SourcePath)
		if err != nil {
			app.state.LastError = err
			return true
		}
	}

	sheet := export.Build(*d, app.pageLandscape)
	if err := export.WritePNG(path, sheet); err != nil {
		app.state.LastError = fmt.Errorf("export plan sheet: %w", err)
		app.logger.Error("plan sheet export failed", slog.String("path", path), slog.Any("err", err))
		return true
	}

	app.state.StatusMessage = "plan sheet written to " + path
	app.logger.Info("plan sheet exported", slog.String("path", path), slog.Int("documents", len(sheet.Rows)))
	return true
}

// pageLandscape looks up page geometry for the plan sheet: first from the
// tiles already fetched, then from the document itself.
func (app *Application) pageLandscape(page, rotation int) bool {
	for _, p := range app.state.Pages.Pages() {
		if p.Index != page {
			continue
		}
		if info, ok := statepkg.PageInfoFor(p); ok {
			return info.Landscape(rotation)
		}
		break
	}
	if doc := app.state.Document; doc != nil {
		if info, err := doc.PageInfo(page); err == nil {
			return info.Landscape(rotation)
		}
	}
	return rotation%180 != 0
}

func actionName(action statepkg.Action) string {
	name := fmt.Sprintf("%T", action)
	return strings.TrimPrefix(name, "state.")
}

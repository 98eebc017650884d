package state

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// LoadDocument opens the PDF at path and installs it into the provided AppState.
func LoadDocument(state *AppState, path string) error {
	doc, err := openDocumentFn(path)
	if err != nil {
		return fmt.Errorf("cannot open document %s: %w", path, err)
	}
	applyDocument(state, path, doc)
	return nil
}

// teardownDocument clears every page-level state and releases the previous
// document before a new one arrives.
func teardownDocument(state *AppState, path string) {
	state.collection().Clear(sourceName(path))
	if state.Document != nil {
		_ = state.Document.Close()
		state.Document = nil
	}
	state.SourcePath = path
	state.ScrollOffset = 0
	state.LastDirective = nil
	state.Comment = CommentPrompt{}
}

func applyDocument(state *AppState, path string, doc Document) {
	teardownDocument(state, path)
	state.Document = doc
	state.collection().Load(sourceName(path), doc.NumPages())
	state.logger().Info("document loaded",
		slog.String("path", path),
		slog.Int("pages", doc.NumPages()))
}

// sourceName is the name the directive carries for a source path.
func sourceName(path string) string {
	if path == "" {
		return ""
	}
	return norm.NFC.String(filepath.Base(path))
}

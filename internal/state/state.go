package state

import (
	"log/slog"
	"time"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/pdfdoc"
)

// PageInfo mirrors pdfdoc.PageInfo so UI/state code can rely on a stable type.
type PageInfo = pdfdoc.PageInfo

// Document is the loaded source as seen by the reducer.
type Document interface {
	Path() string
	NumPages() int
	PageInfo(n int) (PageInfo, error)
	Close() error
}

const (
	defaultTileWidth  = 12
	defaultTileHeight = 7
	defaultScrollStep = 4
)

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Source document
	SourcePath string
	Document   Document
	Pages      *arrange.Collection
	loadToken  int
	loading    bool

	// Viewport
	ScrollOffset int // first visible tile row
	TileWidth    int
	TileHeight   int
	ScrollStep   int // magnifier pan step in cells

	// Overlays
	HelpVisible bool
	Comment     CommentPrompt

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time // Time of last successful yank (for flash effect)
	StatusMessage      string
	LastDirective      *arrange.Directive

	// Error state
	LastError error

	DocumentLoader DocumentLoader
	Logger         *slog.Logger
	dispatchAction func(Action)
}

// NewAppState returns an empty state ready to receive LoadDocumentAction.
func NewAppState() *AppState {
	return &AppState{
		Pages:      arrange.NewCollection(),
		TileWidth:  defaultTileWidth,
		TileHeight: defaultTileHeight,
		ScrollStep: defaultScrollStep,
	}
}

// ===== HELPER METHODS =====

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

func (s *AppState) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *AppState) collection() *arrange.Collection {
	if s.Pages == nil {
		s.Pages = arrange.NewCollection()
	}
	return s.Pages
}

// Loading reports whether a document load is in flight.
func (s *AppState) Loading() bool {
	return s.loading
}

// ActiveLoadToken identifies the in-flight load, or 0.
func (s *AppState) ActiveLoadToken() int {
	if !s.loading {
		return 0
	}
	return s.loadToken
}

func (s *AppState) nextLoadToken() int {
	s.loadToken++
	return s.loadToken
}

// CursorPage returns the page under keyboard focus, or nil.
func (s *AppState) CursorPage() *arrange.Page {
	if s.Pages == nil {
		return nil
	}
	return s.Pages.Cursor()
}

// MagnifiedCursor reports whether the cursor page is shown in the magnifier.
func (s *AppState) MagnifiedCursor() bool {
	p := s.CursorPage()
	return p != nil && p.Magnified()
}

// PageInfoFor returns the fetched geometry of p, if any.
func PageInfoFor(p *arrange.Page) (PageInfo, bool) {
	if p == nil {
		return PageInfo{}, false
	}
	info, ok := p.Handle().(PageInfo)
	return info, ok
}

// setStatus replaces the transient status message.
func (s *AppState) setStatus(msg string) {
	s.StatusMessage = msg
}

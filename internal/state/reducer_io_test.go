package state

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// ===== I/O TESTS =====
// These tests verify document loading without needing a real PDF.

func stubOpenDocument(t *testing.T, fn func(path string) (Document, error)) {
	t.Helper()
	prev := openDocumentFn
	openDocumentFn = fn
	t.Cleanup(func() { openDocumentFn = prev })
}

type recordingLoader struct {
	mu        sync.Mutex
	requests  []DocumentLoadRequest
	cancelled []int
}

func (l *recordingLoader) Start(req DocumentLoadRequest) {
	l.mu.Lock()
	l.requests = append(l.requests, req)
	l.mu.Unlock()
}

func (l *recordingLoader) Cancel(token int) {
	l.mu.Lock()
	l.cancelled = append(l.cancelled, token)
	l.mu.Unlock()
}

func TestLoadDocumentSynchronous(t *testing.T) {
	stubOpenDocument(t, func(path string) (Document, error) {
		return newFakeDocument(path, 7), nil
	})

	state := NewAppState()
	state.ScreenWidth, state.ScreenHeight = 80, 24
	reducer := NewStateReducer()

	path := filepath.Join("scans", "contract.pdf")
	reduceAll(t, reducer, state, LoadDocumentAction{Path: path})

	if state.Loading() {
		t.Fatalf("synchronous load should not leave loading set")
	}
	if state.Pages.Len() != 7 {
		t.Fatalf("expected 7 pages, got %d", state.Pages.Len())
	}
	if state.Pages.Source() != "contract.pdf" {
		t.Fatalf("unexpected source %q", state.Pages.Source())
	}
	if state.SourcePath != path {
		t.Fatalf("unexpected source path %q", state.SourcePath)
	}
	for i, p := range state.Pages.Pages() {
		if p.Index != i+1 {
			t.Fatalf("expected natural order, got %v", pageOrder(state))
		}
	}
}

func TestLoadDocumentSynchronousError(t *testing.T) {
	stubOpenDocument(t, func(path string) (Document, error) {
		return nil, errors.New("not a pdf")
	})

	state := NewAppState()
	reducer := NewStateReducer()

	if _, err := reducer.Reduce(state, LoadDocumentAction{Path: "junk.pdf"}); err == nil {
		t.Fatalf("expected load error")
	}
	if state.Pages.Len() != 0 {
		t.Fatalf("failed load should leave an empty collection")
	}
}

func TestLoadDocumentTearsDownPreviousState(t *testing.T) {
	stubOpenDocument(t, func(path string) (Document, error) {
		return newFakeDocument(path, 2), nil
	})

	state, oldDoc := newTestState(t, 5)
	reducer := NewStateReducer()
	reduceAll(t, reducer, state, NavigateRightAction{}, ToggleSelectCursorAction{}, ProcessAction{})

	reduceAll(t, reducer, state, LoadDocumentAction{Path: "next.pdf"})

	if !oldDoc.closed {
		t.Fatalf("previous document should be closed")
	}
	if state.Pages.Len() != 2 || state.Pages.SelectedCount() != 0 || state.CursorPage() != nil {
		t.Fatalf("expected fresh page state")
	}
	if state.LastDirective != nil {
		t.Fatalf("last directive belongs to the previous document")
	}
}

func TestAsyncLoadAppliesMatchingToken(t *testing.T) {
	state := NewAppState()
	state.ScreenWidth, state.ScreenHeight = 80, 24
	loader := &recordingLoader{}
	state.DocumentLoader = loader

	var dispatched []Action
	state.SetDispatch(func(a Action) { dispatched = append(dispatched, a) })

	reducer := NewStateReducer()
	reduceAll(t, reducer, state, LoadDocumentAction{Path: "a.pdf"})

	if !state.Loading() || len(loader.requests) != 1 {
		t.Fatalf("expected one async request in flight")
	}
	req := loader.requests[0]

	doc := newFakeDocument("a.pdf", 4)
	req.Callback(DocumentLoadResult{Token: req.Token, Path: req.Path, Document: doc})
	if len(dispatched) != 1 {
		t.Fatalf("expected callback to dispatch, got %d actions", len(dispatched))
	}

	reduceAll(t, reducer, state, dispatched[0])
	if state.Loading() {
		t.Fatalf("expected loading cleared")
	}
	if state.Pages.Len() != 4 || state.Document != doc {
		t.Fatalf("expected loaded document")
	}
}

func TestAsyncLoadIgnoresStaleToken(t *testing.T) {
	state := NewAppState()
	loader := &recordingLoader{}
	state.DocumentLoader = loader
	state.SetDispatch(func(Action) {})
	reducer := NewStateReducer()

	reduceAll(t, reducer, state, LoadDocumentAction{Path: "a.pdf"}, LoadDocumentAction{Path: "b.pdf"})
	first, second := loader.requests[0], loader.requests[1]
	if len(loader.cancelled) != 1 || loader.cancelled[0] != first.Token {
		t.Fatalf("expected first load cancelled, got %v", loader.cancelled)
	}

	stale := newFakeDocument("a.pdf", 9)
	reduceAll(t, reducer, state, DocumentLoadedAction{Token: first.Token, Path: "a.pdf", Document: stale})
	if !stale.closed {
		t.Fatalf("stale document should be closed")
	}
	if state.Pages.Len() != 0 || !state.Loading() {
		t.Fatalf("stale result must not be applied")
	}

	reduceAll(t, reducer, state, DocumentLoadedAction{Token: second.Token, Path: "b.pdf", Document: newFakeDocument("b.pdf", 3)})
	if state.Pages.Len() != 3 {
		t.Fatalf("expected second document applied, got %d pages", state.Pages.Len())
	}
}

func TestAsyncLoadErrorSetsLastError(t *testing.T) {
	state := NewAppState()
	loader := &recordingLoader{}
	state.DocumentLoader = loader
	state.SetDispatch(func(Action) {})
	reducer := NewStateReducer()

	reduceAll(t, reducer, state, LoadDocumentAction{Path: "bad.pdf"})
	req := loader.requests[0]
	reduceAll(t, reducer, state, DocumentLoadedAction{Token: req.Token, Path: req.Path, Err: errors.New("broken xref")})

	if state.LastError == nil {
		t.Fatalf("expected LastError")
	}
	if state.Loading() {
		t.Fatalf("expected loading cleared")
	}
}

func TestAsyncDocumentLoaderDeliversResult(t *testing.T) {
	stubOpenDocument(t, func(path string) (Document, error) {
		return newFakeDocument(path, 2), nil
	})

	loader := NewAsyncDocumentLoader()
	results := make(chan DocumentLoadResult, 1)
	loader.Start(DocumentLoadRequest{
		Token:    1,
		Path:     "x.pdf",
		Callback: func(r DocumentLoadResult) { results <- r },
	})

	select {
	case r := <-results:
		if r.Token != 1 || r.Err != nil || r.Document.NumPages() != 2 {
			t.Fatalf("unexpected result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for loader")
	}
}

func TestAsyncDocumentLoaderCancelSuppressesCallback(t *testing.T) {
	release := make(chan struct{})
	doc := newFakeDocument("slow.pdf", 1)
	stubOpenDocument(t, func(path string) (Document, error) {
		<-release
		return doc, nil
	})

	loader := NewAsyncDocumentLoader()
	called := make(chan struct{}, 1)
	loader.Start(DocumentLoadRequest{
		Token:    5,
		Path:     "slow.pdf",
		Callback: func(DocumentLoadResult) { called <- struct{}{} },
	})
	loader.Cancel(5)
	close(release)

	select {
	case <-called:
		t.Fatalf("cancelled load must not call back")
	case <-time.After(100 * time.Millisecond):
	}
}

// ===== PAGE GEOMETRY TESTS =====

func TestVisiblePagesFetchGeometryOnce(t *testing.T) {
	state, doc := newTestState(t, 20)
	reducer := NewStateReducer()

	reduceAll(t, reducer, state, NavigateRightAction{}, NavigateRightAction{})

	// 6 columns x 2 rows are on screen.
	for n := 1; n <= 12; n++ {
		if doc.fetches(n) != 1 {
			t.Fatalf("page %d fetched %d times", n, doc.fetches(n))
		}
	}
	if doc.fetches(13) != 0 {
		t.Fatalf("off-screen page 13 should not be fetched yet")
	}

	reduceAll(t, reducer, state, ScrollDownAction{})
	if doc.fetches(13) != 1 {
		t.Fatalf("page 13 should be fetched once it scrolls into view")
	}
}

func TestAsyncGeometryFetchDispatches(t *testing.T) {
	state, doc := newTestState(t, 1)
	doc.infos = map[int]PageInfo{1: {Number: 1, Width: 842, Height: 595}}

	results := make(chan Action, 4)
	state.SetDispatch(func(a Action) { results <- a })
	reducer := NewStateReducer()

	reduceAll(t, reducer, state, NavigateRightAction{})

	var action Action
	select {
	case action = <-results:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for geometry")
	}
	loaded, ok := action.(PageHandleLoadedAction)
	if !ok {
		t.Fatalf("expected PageHandleLoadedAction, got %T", action)
	}

	stale := loaded
	stale.Token++
	reduceAll(t, reducer, state, stale)
	if _, ok := PageInfoFor(state.Pages.Page(0)); ok {
		t.Fatalf("stale geometry must be ignored")
	}

	reduceAll(t, reducer, state, loaded)
	info, ok := PageInfoFor(state.Pages.Page(0))
	if !ok || !info.Landscape(0) {
		t.Fatalf("expected landscape geometry attached, got %+v", info)
	}
}

func TestGeometryErrorFallsBackToLetter(t *testing.T) {
	state, doc := newTestState(t, 1)
	doc.err = errors.New("bad page tree")
	reducer := NewStateReducer()

	reduceAll(t, reducer, state, NavigateRightAction{})
	info, ok := PageInfoFor(state.Pages.Page(0))
	if !ok || info.Width != 612 || info.Height != 792 {
		t.Fatalf("expected letter fallback, got %+v", info)
	}
}

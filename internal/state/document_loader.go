package state

import (
	"context"
	"sync"

	"github.com/kk-code-lab/pdfarrange/internal/pdfdoc"
)

// openDocumentFn opens a source PDF; overridable in tests.
var openDocumentFn = func(path string) (Document, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DocumentLoader performs document reads asynchronously.
type DocumentLoader interface {
	Start(req DocumentLoadRequest)
	Cancel(token int)
}

// DocumentLoadRequest describes a document read to perform.
type DocumentLoadRequest struct {
	Token    int
	Path     string
	Callback func(DocumentLoadResult)
}

// DocumentLoadResult is emitted by DocumentLoader once the read completes.
type DocumentLoadResult struct {
	Token    int
	Path     string
	Document Document
	Err      error
}

// NewAsyncDocumentLoader constructs the default goroutine-based loader.
func NewAsyncDocumentLoader() DocumentLoader {
	return &asyncDocumentLoader{
		jobs: make(map[int]context.CancelFunc),
	}
}

type asyncDocumentLoader struct {
	mu   sync.Mutex
	jobs map[int]context.CancelFunc
}

func (l *asyncDocumentLoader) Start(req DocumentLoadRequest) {
	if req.Token == 0 || req.Path == "" || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Token] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Token)
			l.mu.Unlock()
		}()

		doc, err := openDocumentFn(req.Path)

		select {
		case <-ctx.Done():
			if doc != nil {
				_ = doc.Close()
			}
			return
		default:
		}

		req.Callback(DocumentLoadResult{
			Token:    req.Token,
			Path:     req.Path,
			Document: doc,
			Err:      err,
		})
	}()
}

func (l *asyncDocumentLoader) Cancel(token int) {
	l.mu.Lock()
	if cancel, ok := l.jobs[token]; ok {
		cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}

package state

import (
	"log/slog"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/pdfdoc"
)

// requestVisibleHandles fetches geometry for on-screen pages that have not
// asked for it yet. Each page asks at most once.
func (r *StateReducer) requestVisibleHandles(state *AppState) {
	doc := state.Document
	if doc == nil || state.Pages == nil || state.loading {
		return
	}
	start, end := state.VisibleRange()
	if p := state.CursorPage(); p != nil && p.Magnified() {
		r.requestHandle(state, doc, p)
	}
	for pos := start; pos < end; pos++ {
		r.requestHandle(state, doc, state.Pages.Page(pos))
	}
}

func (r *StateReducer) requestHandle(state *AppState, doc Document, p *arrange.Page) {
	if p == nil || !p.MarkRequested() {
		return
	}

	dispatch := state.getDispatch()
	if dispatch == nil {
		info, err := doc.PageInfo(p.Index)
		r.attachHandle(state, p, info, err)
		return
	}

	token := state.loadToken
	index := p.Index
	go func() {
		info, err := doc.PageInfo(index)
		dispatch(PageHandleLoadedAction{Token: token, Index: index, Info: info, Err: err})
	}()
}

func (r *StateReducer) attachHandle(state *AppState, p *arrange.Page, info PageInfo, err error) {
	if err != nil {
		state.logger().Warn("page geometry unavailable",
			slog.Int("page", p.Index),
			slog.Any("err", err))
		info = PageInfo{Number: p.Index, Width: pdfdoc.LetterWidth, Height: pdfdoc.LetterHeight}
	}
	p.AttachHandle(info)
}

func findPageByIndex(c *arrange.Collection, index int) *arrange.Page {
	if c == nil {
		return nil
	}
	for _, p := range c.Pages() {
		if p.Index == index {
			return p
		}
	}
	return nil
}

// Package pdfdoc opens source PDFs for arranging. It only reports the page
// count and per-page geometry; page content is never interpreted.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// maxInheritDepth bounds the walk up the page tree for inherited attributes.
const maxInheritDepth = 32

var disableConfigOnce sync.Once

// Document is a loaded source PDF.
type Document struct {
	path      string
	data      []byte
	pageCount int

	mu     sync.Mutex
	reader *pdf.Reader
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse validates an in-memory PDF. name identifies it in the directive.
func Parse(name string, data []byte) (*Document, error) {
	count, err := countPages(data)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", filepath.Base(name), err)
	}
	if count <= 0 {
		return nil, fmt.Errorf("cannot load %s: document has no pages", filepath.Base(name))
	}
	return &Document{path: name, data: data, pageCount: count}, nil
}

// countPages asks pdfcpu first and falls back to the lenient reader for files
// pdfcpu refuses to validate.
func countPages(data []byte) (int, error) {
	n, err := validatedPageCount(data)
	if err == nil && n > 0 {
		return n, nil
	}

	n, fallbackErr := lenientPageCount(data)
	if fallbackErr != nil {
		return 0, errors.Join(err, fallbackErr)
	}
	return n, nil
}

func validatedPageCount(data []byte) (n int, err error) {
	defer recoverMalformed(&err)
	disableConfigOnce.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

func lenientPageCount(data []byte) (n int, err error) {
	defer recoverMalformed(&err)
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// recoverMalformed turns a parser panic into an error. Both PDF libraries
// panic on some corrupt inputs instead of returning one.
func recoverMalformed(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed PDF: %v", r)
	}
}

func (d *Document) Path() string  { return d.path }
func (d *Document) NumPages() int { return d.pageCount }

// Close drops the buffered file contents.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = nil
	d.reader = nil
	return nil
}

// PageInfo returns the geometry of the 1-based page n. Safe for concurrent use.
func (d *Document) PageInfo(n int) (info PageInfo, err error) {
	if n < 1 || n > d.pageCount {
		return PageInfo{}, fmt.Errorf("page %d out of range 1..%d", n, d.pageCount)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			info, err = PageInfo{}, fmt.Errorf("malformed page %d: %v", n, r)
		}
	}()

	if d.reader == nil {
		if d.data == nil {
			return PageInfo{}, errors.New("document closed")
		}
		r, err := pdf.NewReader(bytes.NewReader(d.data), int64(len(d.data)))
		if err != nil {
			return PageInfo{}, fmt.Errorf("cannot read page tree: %w", err)
		}
		d.reader = r
	}

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return PageInfo{}, fmt.Errorf("page %d not found", n)
	}

	info = PageInfo{Number: n, Width: LetterWidth, Height: LetterHeight}
	if box := inherited(page.V, "MediaBox"); box.Kind() == pdf.Array && box.Len() == 4 {
		w := box.Index(2).Float64() - box.Index(0).Float64()
		h := box.Index(3).Float64() - box.Index(1).Float64()
		if w < 0 {
			w = -w
		}
		if h < 0 {
			h = -h
		}
		if w > 0 && h > 0 {
			info.Width, info.Height = w, h
		}
	}
	if rot := inherited(page.V, "Rotate"); rot.Kind() == pdf.Integer {
		info.Rotate = normalizeRotate(int(rot.Int64()))
	}
	return info, nil
}

func inherited(v pdf.Value, key string) pdf.Value {
	for i := 0; i < maxInheritDepth && !v.IsNull(); i++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

func normalizeRotate(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}

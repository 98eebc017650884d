package render

import (
	"testing"

	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	statepkg "github.com/kk-code-lab/pdfarrange/internal/state"
)

func TestGlyphSize(t *testing.T) {
	tests := []struct {
		name         string
		innerW       int
		innerH       int
		ratio        float64
		landscape    bool
		wantW, wantH int
	}{
		{"a4 portrait", 10, 5, 595.0 / 842.0, false, 4, 3},
		{"a4 landscape", 10, 5, 842.0 / 595.0, true, 6, 2},
		{"clamped to width", 4, 5, 842.0 / 595.0, true, 4, 2},
		{"no room", 10, 2, 1, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := glyphSize(tt.innerW, tt.innerH, tt.ratio, tt.landscape)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("glyphSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBuildTileView(t *testing.T) {
	pages := arrange.NewCollection()
	pages.Load("batch.pdf", 4)

	p := pages.Page(2)
	p.AttachHandle(statepkg.PageInfo{Number: 3, Width: 595, Height: 842})
	p.RotateRight()
	p.ToggleSplitBefore()
	p.SetComment("check signature")
	pages.MoveTo(2)

	v := buildTileView(pages, 2)
	if v.label != "3" || v.rotation != "↻90" {
		t.Fatalf("unexpected label/rotation %q %q", v.label, v.rotation)
	}
	if !v.known || v.paper != "A4" || !v.landscape {
		t.Fatalf("expected rotated A4 to read as landscape, got %+v", v)
	}
	if v.docBadge != "§2" || !v.comment || !v.cursor {
		t.Fatalf("unexpected badges %+v", v)
	}

	pending := buildTileView(pages, 0)
	if pending.known || pending.landscape || pending.rotation != "" {
		t.Fatalf("unfetched page should be a plain portrait placeholder, got %+v", pending)
	}

	if empty := buildTileView(pages, 9); empty.label != "" {
		t.Fatalf("out of range position should yield an empty view")
	}
}

func TestPaperRune(t *testing.T) {
	cases := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'},
		{9, 0, '┐'},
		{0, 4, '└'},
		{9, 4, '┘'},
		{5, 0, '─'},
		{0, 2, '│'},
		{5, 2, ' '},
	}
	for _, c := range cases {
		if got := paperRune(c.x, c.y, 10, 5); got != c.want {
			t.Fatalf("paperRune(%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseReadsKnownKeys(t *testing.T) {
	rc := `
# layout
tilewidth = 16
TILE_HEIGHT=9
scrollstep=2
output = ~/plans/out.json
sheetdir=/tmp/sheets
logfile = ~/pdfarrange.log
unknown = ignored
`
	got := Parse(strings.NewReader(rc), "/home/ada")

	if got.TileWidth != 16 || got.TileHeight != 9 || got.ScrollStep != 2 {
		t.Fatalf("unexpected sizes %+v", got)
	}
	if got.Output != filepath.Join("/home/ada", "plans/out.json") {
		t.Fatalf("unexpected output %q", got.Output)
	}
	if got.SheetDir != "/tmp/sheets" {
		t.Fatalf("unexpected sheetdir %q", got.SheetDir)
	}
	if got.LogFile != filepath.Join("/home/ada", "pdfarrange.log") {
		t.Fatalf("unexpected logfile %q", got.LogFile)
	}
}

func TestParseKeepsDefaultsForMalformedValues(t *testing.T) {
	rc := strings.Join([]string{
		"tilewidth=wide",
		"tileheight=2",
		"scrollstep=0",
		"no equals sign here",
	}, "\n")

	got := Parse(strings.NewReader(rc), "")
	want := Default()
	if *got != *want {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	got := Parse(strings.NewReader(""), "")
	if got.TileWidth != DefaultTileWidth || got.Output != "" {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, FileName), []byte("tilewidth=20\n"), 0o644); err != nil {
		t.Fatalf("write rc: %v", err)
	}

	if got := Load(); got.TileWidth != 20 {
		t.Fatalf("expected rc value, got %+v", got)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if got := Load(); *got != *Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSheetPath(t *testing.T) {
	c := Default()
	got, err := c.SheetPath("/scans/batch.pdf")
	if err != nil || got != "/scans/batch-plan.png" {
		t.Fatalf("got %q, %v", got, err)
	}

	c.SheetDir = filepath.Join(t.TempDir(), "nested", "sheets")
	got, err = c.SheetPath("/scans/batch.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(c.SheetDir, "batch-plan.png") {
		t.Fatalf("unexpected path %q", got)
	}
	if info, err := os.Stat(c.SheetDir); err != nil || !info.IsDir() {
		t.Fatalf("expected sheet dir to be created")
	}
}

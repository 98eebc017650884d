// Package config reads the ~/.pdfarrangerc key=value file.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the rc file looked up in the home directory.
const FileName = ".pdfarrangerc"

const (
	DefaultTileWidth  = 12
	DefaultTileHeight = 7
	DefaultScrollStep = 4

	minTileWidth  = 6
	minTileHeight = 5
)

type Config struct {
	TileWidth  int
	TileHeight int
	ScrollStep int    // magnifier pan step in cells
	Output     string // directive file written by "w"; empty means stdout
	SheetDir   string // where exported plan sheets go; empty means next to the PDF
	LogFile    string // empty discards logs
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TileWidth:  DefaultTileWidth,
		TileHeight: DefaultTileHeight,
		ScrollStep: DefaultScrollStep,
	}
}

// Load reads ~/.pdfarrangerc. A missing or unreadable file yields the
// defaults.
func Load() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Default()
	}

	file, err := os.Open(filepath.Join(homeDir, FileName))
	if err != nil {
		return Default()
	}
	defer file.Close()

	return Parse(file, homeDir)
}

// Parse reads key=value lines. Unknown keys, comments and malformed values are
// skipped so a broken line never prevents startup.
func Parse(r io.Reader, homeDir string) *Config {
	config := Default()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "tilewidth", "tile_width":
			config.TileWidth = parseInt(value, minTileWidth, config.TileWidth)
		case "tileheight", "tile_height":
			config.TileHeight = parseInt(value, minTileHeight, config.TileHeight)
		case "scrollstep", "scroll_step":
			config.ScrollStep = parseInt(value, 1, config.ScrollStep)
		case "output", "out":
			config.Output = expandPath(value, homeDir)
		case "sheetdir", "sheet_dir":
			config.SheetDir = expandPath(value, homeDir)
		case "logfile", "log_file", "log":
			config.LogFile = expandPath(value, homeDir)
		}
	}

	return config
}

func parseInt(value string, lowest, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < lowest {
		return fallback
	}
	return n
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return ""
	}
	if homeDir != "" && (value == "~" || strings.HasPrefix(value, "~/")) {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// SheetPath returns where the plan sheet for source is written, creating
// SheetDir when needed.
func (c *Config) SheetPath(source string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "plan"
	}
	name := base + "-plan.png"

	if c.SheetDir == "" {
		return filepath.Join(filepath.Dir(source), name), nil
	}
	if err := os.MkdirAll(c.SheetDir, 0o755); err != nil {
		return "", fmt.Errorf("create sheet directory: %w", err)
	}
	return filepath.Join(c.SheetDir, name), nil
}

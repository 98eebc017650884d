package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/pdfarrange/internal/app"
	"github.com/kk-code-lab/pdfarrange/internal/arrange"
	"github.com/kk-code-lab/pdfarrange/internal/config"
)

func printHelp() {
	fmt.Print(`pdfarrange - arrange PDF pages in the terminal

USAGE:
    pdfarrange [OPTIONS] FILE.pdf

OPTIONS:
    -h, --help      Show this help message and exit
    -o FILE         Write the plan JSON to FILE instead of stdout
    -log FILE       Append a debug log to FILE
    -png FILE       Path for the plan sheet written with E

Press w to write the plan and quit, q to quit without writing.
Settings are read from ~/` + config.FileName + `.
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cfg := config.Load()

	flags := flag.NewFlagSet("pdfarrange", flag.ExitOnError)
	flags.Usage = printHelp
	output := flags.String("o", cfg.Output, "")
	logFile := flags.String("log", cfg.LogFile, "")
	sheet := flags.String("png", "", "")
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		printHelp()
		os.Exit(2)
	}

	logger, closeLog, err := openLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closeLog()

	app, err := apppkg.NewApplication(apppkg.Options{
		Path:      flags.Arg(0),
		SheetPath: *sheet,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()

	d := app.Directive()
	if d == nil {
		return
	}
	if err := writeDirective(*output, d); err != nil {
		logger.Error("plan write failed", slog.Any("err", err))
		fmt.Fprintf(os.Stderr, "Error writing plan: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}
	logger.Info("plan written", slog.String("plan", d.Compact()))
}

// openLogger returns a text logger appending to path, or a discarding one
// when path is empty or cannot be opened.
func openLogger(path string) (*slog.Logger, func(), error) {
	discard := slog.New(slog.DiscardHandler)
	if path == "" {
		return discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// writeDirective prints the plan as one line of JSON to path, or stdout.
func writeDirective(path string, d *arrange.Directive) error {
	if path == "" || path == "-" {
		return encodeDirective(os.Stdout, d)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeDirective(f, d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeDirective(w io.Writer, d *arrange.Directive) error {
	return json.NewEncoder(w).Encode(d)
}

package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures a structured logger at the given level writing
// to w. The TUI owns the terminal during play, so interactive mode
// passes a log file here instead of stderr.
func setupLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openLogFile opens the log file for appending, falling back to
// discarding logs if it cannot be created.
func openLogFile(path string) (io.Writer, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// Package logging builds the diagnostic logger used across task-cli.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every diagnostic line.
const Prefix = "task-cli"

// New returns a text logger writing to w at the named level.
// Status lines go to stdout; diagnostics belong on stderr.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		Prefix:          Prefix,
		ReportTimestamp: lvl == log.DebugLevel,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

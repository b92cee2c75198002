// Package logging configures zerolog for the binaries and the e2e suite.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// New returns a logger writing to w: human readable when w is a terminal, JSON otherwise.
func New(w io.Writer) zerolog.Logger {
	if IsTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Setup installs New(w) as the global logger and returns it.
func Setup(w io.Writer) zerolog.Logger {
	logger := New(w)
	log.Logger = logger
	return logger
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

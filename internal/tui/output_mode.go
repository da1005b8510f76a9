package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how the token page is presented.
type OutputMode int

// Output modes.
const (
	// OutputInteractive runs the Bubble Tea program.
	OutputInteractive OutputMode = iota
	// OutputPlain prints a one-shot text snapshot.
	OutputPlain
	// OutputJSON prints a one-shot JSON snapshot.
	OutputJSON
)

// Default terminal size when stdout is not a terminal.
const (
	defaultWidth  = 120
	defaultHeight = 40
)

// DetectOutputMode picks the mode for a format flag. Interactive output
// needs table format, no --plain, and a terminal on stdout.
func DetectOutputMode(format string, plain bool, out *os.File) OutputMode {
	if format == "json" {
		return OutputJSON
	}
	if plain || out == nil || !term.IsTerminal(int(out.Fd())) {
		return OutputPlain
	}
	return OutputInteractive
}

// TerminalSize returns the size of out, or the defaults when it is not a
// terminal.
func TerminalSize(out *os.File) (int, int) {
	if out == nil {
		return defaultWidth, defaultHeight
	}
	w, h, err := term.GetSize(int(out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

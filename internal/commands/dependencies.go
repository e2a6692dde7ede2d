package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/ixview/internal/config"
	"github.com/diogo/ixview/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsPipe reports whether a transcript can be read from stdin.
	StdinIsPipe func() bool
	// StdoutIsTTY reports whether stdout is a terminal; when false output
	// is plain.
	StdoutIsTTY func() bool
	// TerminalWidth returns the width of the terminal in columns.
	TerminalWidth func() int

	// LoadConfig loads the user configuration.
	LoadConfig func() (config.Config, error)
	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
	// RunViewer runs the interactive viewer.
	RunViewer func(tui.Options) error
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		StdinIsPipe:   stdinIsPipe,
		StdoutIsTTY:   isStdoutTTY,
		TerminalWidth: getTerminalWidth,
		LoadConfig:    config.LoadConfig,
		Clipboard:     clipboard.WriteAll,
		RunViewer:     tui.Run,
	}
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// stdinIsPipe returns true when stdin is not a terminal
func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode.
type Mode int

const (
	// ModeNonInteractive is used for CI, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// EnvNonInteractive forces non-interactive mode when set to "1".
const EnvNonInteractive = "SCRIPTFS_NON_INTERACTIVE"

// DetectMode determines whether to run interactively.
//
// Returns ModeNonInteractive if:
//   - SCRIPTFS_NON_INTERACTIVE=1 is set
//   - CI or NO_COLOR is set
//   - stdin or stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirm asks a yes/no question on out and reads the answer from in.
// Non-interactive sessions get def without prompting.
func Confirm(in io.Reader, out io.Writer, question string, def bool) bool {
	if !IsInteractive() {
		return def
	}
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s: ", question, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ProgressDisplay prints download progress. Interactive sessions redraw a
// single line; others print one line per 25% step.
type ProgressDisplay struct {
	out         io.Writer
	interactive bool

	mu       sync.Mutex
	label    string
	lastStep int
}

func NewProgressDisplay(out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{out: out, interactive: IsInteractive(), lastStep: -1}
}

func (p *ProgressDisplay) Start(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
	p.lastStep = -1
	fmt.Fprintf(p.out, "%s %s\n", SymbolSpinner, label)
}

// Update reports percent complete; negative means unknown.
func (p *ProgressDisplay) Update(percent int) {
	if percent < 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive {
		fmt.Fprintf(p.out, "\r  %3d%%", percent)
		return
	}
	if step := percent / 25; step > p.lastStep {
		p.lastStep = step
		fmt.Fprintf(p.out, "  %d%%\n", step*25)
	}
}

func (p *ProgressDisplay) Success(message string) {
	p.finish(SymbolCheck, message)
}

func (p *ProgressDisplay) Error(message string) {
	p.finish(SymbolCross, message)
}

func (p *ProgressDisplay) finish(symbol, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive {
		fmt.Fprint(p.out, "\r")
	}
	fmt.Fprintf(p.out, "%s %s\n", symbol, message)
}

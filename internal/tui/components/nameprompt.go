package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NamePrompt is a single-line name input validated on every keystroke.
// The initial value is not validated until the user edits it, so a rename
// prompt pre-filled with the current name starts without an error.
type NamePrompt struct {
	label     string
	suffix    string
	input     textinput.Model
	validator func(string) error
	err       error
	edited    bool
	styles    promptStyles
}

type promptStyles struct {
	Label  lipgloss.Style
	Input  lipgloss.Style
	Suffix lipgloss.Style
	Error  lipgloss.Style
}

func defaultPromptStyles() promptStyles {
	return promptStyles{
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Input:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Suffix: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NewNamePrompt creates a focused prompt. suffix is shown after the input,
// typically the extension that will be appended.
func NewNamePrompt(label, value, suffix string, validator func(string) error) NamePrompt {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 255
	ti.Width = 40
	ti.SetValue(value)
	ti.Focus()

	return NamePrompt{
		label:     label,
		suffix:    suffix,
		input:     ti,
		validator: validator,
		styles:    defaultPromptStyles(),
	}
}

// Update implements tea.Model.
func (p NamePrompt) Update(msg tea.Msg) (NamePrompt, tea.Cmd) {
	before := p.input.Value()

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	if p.input.Value() != before {
		p.edited = true
	}
	if p.edited && p.validator != nil {
		p.err = p.validator(p.input.Value())
	}
	return p, cmd
}

// View implements tea.Model.
func (p NamePrompt) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Label.Render(p.label))
	b.WriteString("\n")
	b.WriteString(p.styles.Input.Render(p.input.View()))
	if p.suffix != "" {
		b.WriteString(p.styles.Suffix.Render(p.suffix))
	}
	if p.err != nil {
		b.WriteString("\n")
		b.WriteString(p.styles.Error.Render(p.err.Error()))
	}
	return b.String()
}

// Value returns the current input.
func (p NamePrompt) Value() string {
	return p.input.Value()
}

// Error returns the current validation error.
func (p NamePrompt) Error() error {
	return p.err
}

// Submit validates the value. The prompt may only be accepted when it
// returns nil.
func (p *NamePrompt) Submit() error {
	if p.validator != nil {
		p.err = p.validator(p.input.Value())
	}
	return p.err
}

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the directory browser.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Parent    key.Binding
	NewScript key.Binding
	NewDir    key.Binding
	Rename    key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "open"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace", "left", "h"),
			key.WithHelp("⌫", "parent"),
		),
		NewScript: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new script"),
		),
		NewDir: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new folder"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpText returns the browser help line.
func (k KeyMap) HelpText() string {
	return "↑/↓ move • enter open • ⌫ parent • n script • N folder • r rename • d delete • R refresh • q quit"
}

// PromptHelpText returns help text for the name prompt.
func (k KeyMap) PromptHelpText() string {
	return "enter confirm • esc cancel"
}

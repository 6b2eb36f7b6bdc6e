package components

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTaken = errors.New("taken")

func validator(s string) error {
	if s == "" {
		return errors.New("empty")
	}
	if s == "a" {
		return errTaken
	}
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNamePrompt_ValidatesOnEdit(t *testing.T) {
	p := NewNamePrompt("Name", "", ".js", validator)
	assert.NoError(t, p.Error(), "no error before editing")

	p, _ = p.Update(runes("a"))
	assert.Equal(t, "a", p.Value())
	assert.ErrorIs(t, p.Error(), errTaken)
	assert.Contains(t, p.View(), "taken")

	p, _ = p.Update(runes("b"))
	assert.NoError(t, p.Error())
	assert.NoError(t, p.Submit())
}

func TestNamePrompt_PrefilledValueStartsClean(t *testing.T) {
	p := NewNamePrompt("Rename", "a", ".js", validator)
	assert.NoError(t, p.Error())

	require.ErrorIs(t, p.Submit(), errTaken)
}

func TestNamePrompt_Backspace(t *testing.T) {
	p := NewNamePrompt("Name", "x", "", validator)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", p.Value())
	assert.EqualError(t, p.Error(), "empty")
}

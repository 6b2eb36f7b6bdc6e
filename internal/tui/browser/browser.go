// Package browser is an interactive directory browser over a
// StorageFileProvider. The model subscribes to the provider, so changes
// made by any other view sharing the provider appear immediately.
package browser

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/scriptfs/internal/operations"
	"github.com/vvka-141/scriptfs/internal/provider"
	"github.com/vvka-141/scriptfs/internal/tui"
	"github.com/vvka-141/scriptfs/internal/tui/components"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

type mode int

const (
	modeList mode = iota
	modePrompt
	modeConfirmDelete
)

type promptAction int

const (
	actionNewScript promptAction = iota
	actionNewDir
	actionRename
)

// changeMsg carries a provider event into the update loop.
type changeMsg scriptfs.ChangeEvent

// Model is the browser's tea.Model.
type Model struct {
	provider *provider.StorageFileProvider
	ops      *operations.ScriptOperations
	watcher  *watcher

	dir     string
	entries []scriptfs.Entry
	cursor  int

	mode   mode
	action promptAction
	prompt components.NamePrompt
	target scriptfs.Entry

	status    string
	statusErr bool

	keys   tui.KeyMap
	height int
}

// New creates a browser rooted at the provider's initial directory and
// subscribes it to the provider. Call Close when done.
func New(p *provider.StorageFileProvider, ops *operations.ScriptOperations) Model {
	m := Model{
		provider: p,
		ops:      ops,
		watcher:  newWatcher(),
		dir:      p.InitialDirectory(),
		keys:     tui.DefaultKeyMap(),
		height:   24,
	}
	p.Subscribe(m.watcher)
	m.entries = slices.Collect(p.ListInitialDirectory())
	return m
}

// Close unsubscribes the browser from its provider.
func (m Model) Close() {
	m.provider.Unsubscribe(m.watcher)
}

// Dir returns the directory being shown.
func (m Model) Dir() string { return m.dir }

// Entries returns the entries being shown.
func (m Model) Entries() []scriptfs.Entry { return m.entries }

// Selected returns the entry under the cursor.
func (m Model) Selected() (scriptfs.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return scriptfs.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.watcher.wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case changeMsg:
		m.applyChange(scriptfs.ChangeEvent(msg))
		return m, m.watcher.wait()

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.Selected(); ok && e.IsDir {
			m.navigate(e.Path)
		}
	case key.Matches(msg, m.keys.Parent):
		if parent := filepath.Dir(m.dir); parent != m.dir {
			from := m.dir
			m.navigate(parent)
			m.selectPath(from)
		}
	case key.Matches(msg, m.keys.NewScript):
		return m.openPrompt(actionNewScript, scriptfs.Entry{})
	case key.Matches(msg, m.keys.NewDir):
		return m.openPrompt(actionNewDir, scriptfs.Entry{})
	case key.Matches(msg, m.keys.Rename):
		if e, ok := m.Selected(); ok {
			return m.openPrompt(actionRename, e)
		}
	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.Selected(); ok {
			m.target = e
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Refresh):
		m.provider.RefreshAll()
	}
	return m, nil
}

func (m Model) openPrompt(action promptAction, target scriptfs.Entry) (tea.Model, tea.Cmd) {
	ops := m.ops.In(m.dir)
	m.action = action
	m.target = target
	m.mode = modePrompt

	switch action {
	case actionNewScript:
		m.prompt = components.NewNamePrompt("New script", "", scriptfs.DefaultScriptExtension, func(s string) error {
			return ops.ValidateName(s, scriptfs.DefaultScriptExtension, "")
		})
	case actionNewDir:
		m.prompt = components.NewNamePrompt("New folder", "", "", func(s string) error {
			return ops.ValidateName(s, "", "")
		})
	case actionRename:
		excluded := target.SimplifiedName()
		m.prompt = components.NewNamePrompt("Rename "+target.Name, excluded, target.Ext(), func(s string) error {
			return ops.ValidateName(s, target.Ext(), excluded)
		})
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		return m, nil
	case tea.KeyEnter:
		if err := m.prompt.Submit(); err != nil {
			return m, nil
		}
		m.mode = modeList
		m.runPromptAction(m.prompt.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) runPromptAction(name string) {
	ops := m.ops.In(m.dir)

	var (
		entry scriptfs.Entry
		err   error
	)
	switch m.action {
	case actionNewScript:
		entry, err = ops.NewScriptFile(name, "")
	case actionNewDir:
		entry, err = ops.NewDirectory(name)
	case actionRename:
		entry, err = ops.Rename(m.target, name)
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.reload()
	m.selectPath(entry.Path)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if err := m.ops.In(m.dir).Delete(m.target); err != nil {
			m.setError(err)
		}
		m.reload()
		m.mode = modeList
	case key.Matches(msg, m.keys.Cancel), msg.String() == "n":
		m.mode = modeList
	}
	return m, nil
}

// applyChange reloads the view when the event concerns the shown directory
// or when events were lost.
func (m *Model) applyChange(ev scriptfs.ChangeEvent) {
	if ev.Dir != m.dir && ev != overflowEvent {
		return
	}
	var selected string
	if e, ok := m.Selected(); ok {
		selected = e.Path
	}
	m.reload()
	if ev.Kind == scriptfs.ChangeModify && selected == ev.Old.Path {
		selected = ev.New.Path
	}
	m.selectPath(selected)
	m.status = ev.String()
	if ev == overflowEvent {
		m.status = "reloaded " + m.dir
	}
	m.statusErr = false
}

func (m *Model) navigate(dir string) {
	m.dir = dir
	m.cursor = 0
	m.reload()
}

func (m *Model) reload() {
	m.entries = m.provider.Entries(m.dir)
	m.clampCursor()
}

func (m *Model) selectPath(path string) {
	for i, e := range m.entries {
		if e.Path == path {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setError(err error) {
	m.statusErr = true
	switch {
	case errors.Is(err, scriptfs.ErrFileExists):
		m.status = "file exists"
	case errors.Is(err, scriptfs.ErrNameEmpty):
		m.status = "name should not be empty"
	default:
		m.status = err.Error()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("scriptfs"))
	b.WriteString("\n")
	b.WriteString(tui.PathStyle.Render(m.dir))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(tui.EmptyStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	start, shown := m.visible()
	for i, e := range shown {
		b.WriteString(m.renderEntry(start+i, e))
		b.WriteString("\n")
	}

	switch m.mode {
	case modePrompt:
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
		b.WriteString(tui.HelpStyle.Render("\n" + m.keys.PromptHelpText()))
		return b.String()
	case modeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("Delete %s? [y/N]", m.target.Name)))
		return b.String()
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(tui.ErrorStyle.Render(tui.SymbolCross + " " + m.status))
		} else {
			b.WriteString(tui.SuccessStyle.Render(m.status))
		}
	}
	b.WriteString(tui.HelpStyle.Render("\n" + m.keys.HelpText()))
	return b.String()
}

// visible returns the window of entries that fits the terminal and the
// index of its first entry.
func (m Model) visible() (int, []scriptfs.Entry) {
	rows := max(m.height-8, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.entries))
	return start, m.entries[start:end]
}

func (m Model) renderEntry(i int, e scriptfs.Entry) string {
	symbol, style := tui.SymbolFile, tui.FileStyle
	if e.IsDir {
		symbol, style = tui.SymbolDir, tui.DirStyle
	}
	line := symbol + " " + e.Name
	if i == m.cursor {
		return tui.SelectedStyle.Render(line)
	}
	return style.Render(line)
}

// Run shows the browser until the user quits.
func Run(p *provider.StorageFileProvider, ops *operations.ScriptOperations) error {
	m := New(p, ops)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package browser

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/files/scanner"
	"github.com/vvka-141/scriptfs/internal/operations"
	"github.com/vvka-141/scriptfs/internal/provider"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

const home = "/sdcard/Scripts"

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

// typeText feeds each rune as its own key press, the way a terminal does.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

// deliver feeds every queued provider event to the model.
func deliver(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case ev := <-m.watcher.events:
			next, _ := m.Update(changeMsg(m.watcher.settle(ev)))
			m = next.(Model)
		default:
			return m
		}
	}
}

type fixture struct {
	fs       *filesystem.MemoryFileSystem
	provider *provider.StorageFileProvider
	ops      *operations.ScriptOperations
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fs := filesystem.NewMemoryFileSystem(home)
	fs.AddFile("a.js", "")
	fs.AddFile("lib/util.js", "")
	fs.AddFile("b.js", "")

	p, err := provider.New(provider.DefaultConfig(home), scanner.NewScannerWithFS(fs), nil)
	require.NoError(t, err)
	return fixture{fs: fs, provider: p, ops: operations.New(fs, p, home, operations.WithTempDir("/tmp"))}
}

func names(m Model) []string {
	var out []string
	for _, e := range m.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestBrowser_ListsInitialDirectory(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	assert.Equal(t, home, m.Dir())
	assert.Equal(t, []string{"a.js", "lib", "b.js"}, names(m))
	assert.Contains(t, m.View(), "a.js")
}

func TestBrowser_NavigateIntoAndBack(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "down", "enter")
	assert.Equal(t, home+"/lib", m.Dir())
	assert.Equal(t, []string{"util.js"}, names(m))

	m = press(t, m, "backspace")
	assert.Equal(t, home, m.Dir())
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "lib", sel.Name, "cursor returns to the directory we left")
}

func TestBrowser_OpenOnFileDoesNothing(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "enter")
	assert.Equal(t, home, m.Dir())
}

func TestBrowser_NewScript(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "n")
	m = typeText(t, m, "c")
	m = press(t, m, "enter")
	m = deliver(t, m)

	assert.Equal(t, []string{"c.js", "a.js", "lib", "b.js"}, names(m))
	sel, _ := m.Selected()
	assert.Equal(t, "c.js", sel.Name)
	assert.Equal(t, "create "+home+": c.js", m.Status())
	assert.True(t, f.fs.Exists(home+"/c.js"))
}

func TestBrowser_NewScriptRejectsExistingName(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "n")
	m = typeText(t, m, "a")
	assert.Contains(t, m.View(), "file exists")

	m = press(t, m, "enter")
	assert.Equal(t, modePrompt, m.mode, "invalid name keeps the prompt open")

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"a.js", "lib", "b.js"}, names(m))
}

func TestBrowser_NewDirectory(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "N")
	m = typeText(t, m, "ui")
	m = press(t, m, "enter")

	assert.Equal(t, []string{"ui", "a.js", "lib", "b.js"}, names(m))
	assert.True(t, m.Entries()[0].IsDir)
}

func TestBrowser_Rename(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "r")
	assert.Equal(t, "a", m.prompt.Value())
	m = press(t, m, "backspace")
	m = typeText(t, m, "alpha")
	m = press(t, m, "enter")
	m = deliver(t, m)

	assert.Equal(t, []string{"alpha.js", "lib", "b.js"}, names(m))
	sel, _ := m.Selected()
	assert.Equal(t, "alpha.js", sel.Name)
}

func TestBrowser_DeleteConfirmAndCancel(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	m = press(t, m, "d")
	assert.Contains(t, m.View(), "Delete a.js?")
	m = press(t, m, "n")
	assert.Equal(t, []string{"a.js", "lib", "b.js"}, names(m))

	m = press(t, m, "d", "y")
	assert.Equal(t, []string{"lib", "b.js"}, names(m))
	assert.False(t, f.fs.Exists(home+"/a.js"))
}

func TestBrowser_SeesChangesFromOtherViews(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	other := New(f.provider, f.ops)
	defer other.Close()

	_, err := f.ops.NewScriptFile("shared", "")
	require.NoError(t, err)

	m = deliver(t, m)
	other = deliver(t, other)
	assert.Equal(t, names(m), names(other))
	assert.Equal(t, "shared.js", names(m)[0])
}

func TestBrowser_IgnoresOtherDirectories(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	f.provider.Entries(home + "/lib")
	_, err := f.ops.In(home+"/lib").NewScriptFile("x", "")
	require.NoError(t, err)

	m = deliver(t, m)
	assert.Equal(t, []string{"a.js", "lib", "b.js"}, names(m))
	assert.Empty(t, m.Status())
}

func TestBrowser_RefreshAllRescans(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	// written behind the provider's back
	f.fs.AddFile("late.js", "")
	m = deliver(t, m)
	assert.NotContains(t, names(m), "late.js")

	m = press(t, m, "R")
	m = deliver(t, m)
	assert.Contains(t, names(m), "late.js")
}

func TestBrowser_CloseUnsubscribes(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	m.Close()

	f.provider.NotifyDirectoryChanged(home)
	assert.Empty(t, m.watcher.events)
}

func TestWatcher_NeverBlocks(t *testing.T) {
	w := newWatcher()
	for i := 0; i < watcherBuffer*2; i++ {
		w.OnDirectoryChanged(scriptfs.NewFileEvent(scriptfs.ChangeCreate, home, scriptfs.NewEntry(home+"/x.js", false)))
	}
	assert.Len(t, w.events, watcherBuffer)
	assert.True(t, w.overflowed.Load())

	msg := w.wait()()
	assert.Equal(t, changeMsg(overflowEvent), msg)
	assert.False(t, w.overflowed.Load())
}

func TestBrowser_OverflowReloadsShownDirectory(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	// the event for the shown directory is the one that does not fit
	for i := 0; i < watcherBuffer; i++ {
		f.provider.NotifyDirectoryChanged("/elsewhere")
	}
	_, err := f.ops.NewScriptFile("late", "")
	require.NoError(t, err)
	require.Len(t, m.watcher.events, watcherBuffer)

	m = deliver(t, m)
	assert.Equal(t, "late.js", names(m)[0])
	assert.Equal(t, "reloaded "+home, m.Status())
}

func TestBrowser_QuitReturnsQuitCmd(t *testing.T) {
	f := newFixture(t)
	m := New(f.provider, f.ops)
	defer m.Close()

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

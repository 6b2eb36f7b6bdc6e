package browser

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

const watcherBuffer = 64

// overflowEvent tells the model that events were dropped. It carries no
// directory and makes the shown directory reload whatever it is.
var overflowEvent = scriptfs.NewRefreshEvent("")

// watcher forwards provider events to the update loop. Delivery never
// blocks the publisher: when the buffer is full the event is dropped and
// the next event taken from the buffer is replaced by overflowEvent.
type watcher struct {
	events     chan scriptfs.ChangeEvent
	overflowed atomic.Bool
}

func newWatcher() *watcher {
	return &watcher{events: make(chan scriptfs.ChangeEvent, watcherBuffer)}
}

func (w *watcher) OnDirectoryChanged(ev scriptfs.ChangeEvent) {
	select {
	case w.events <- ev:
	default:
		// the buffer is full, so wait has something to wake up on
		w.overflowed.Store(true)
	}
}

// settle returns ev, or overflowEvent when events were dropped since the
// last call.
func (w *watcher) settle(ev scriptfs.ChangeEvent) scriptfs.ChangeEvent {
	if w.overflowed.Swap(false) {
		return overflowEvent
	}
	return ev
}

// wait returns a command that blocks until the next event.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		return changeMsg(w.settle(<-w.events))
	}
}

var _ scriptfs.Observer = (*watcher)(nil)

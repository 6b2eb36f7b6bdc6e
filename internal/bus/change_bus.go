// Package bus delivers directory change events to registered observers.
package bus

import (
	"slices"
	"sync"

	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// ChangeBus is a typed observer list for scriptfs.ChangeEvent.
// Safe for concurrent use by multiple goroutines.
type ChangeBus struct {
	mu        sync.Mutex
	observers []scriptfs.Observer
	logger    scriptfs.Logger
}

// New creates an empty bus. A nil logger discards recovered panics.
func New(logger scriptfs.Logger) *ChangeBus {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &ChangeBus{logger: logger}
}

// Subscribe registers o. Subscribing an already registered observer is a no-op.
// Observers are compared with ==, so o must have a comparable dynamic type
// (typically a pointer).
func (b *ChangeBus) Subscribe(o scriptfs.Observer) {
	if o == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if slices.Contains(b.observers, o) {
		return
	}
	b.observers = append(b.observers, o)
}

// Unsubscribe removes o. Unknown observers are ignored.
func (b *ChangeBus) Unsubscribe(o scriptfs.Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.Index(b.observers, o); i >= 0 {
		// copy so snapshots taken by in-flight publishes stay intact
		b.observers = slices.Delete(slices.Clone(b.observers), i, i+1)
	}
}

// Publish delivers event synchronously, in registration order, to the
// observers registered when Publish was called. Observers run outside the
// registry lock and may subscribe or unsubscribe from their callback.
func (b *ChangeBus) Publish(event scriptfs.ChangeEvent) {
	b.mu.Lock()
	observers := b.observers
	b.mu.Unlock()

	for _, o := range observers {
		b.deliver(o, event)
	}
}

// Len returns the number of registered observers.
func (b *ChangeBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers)
}

func (b *ChangeBus) deliver(o scriptfs.Observer, event scriptfs.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("observer panicked handling %s: %v", event, r)
		}
	}()
	o.OnDirectoryChanged(event)
}

var _ scriptfs.DirectoryWatcher = (*ChangeBus)(nil)

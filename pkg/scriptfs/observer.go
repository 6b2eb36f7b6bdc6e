package scriptfs

// Observer receives directory change events.
// Implementations must be idempotent with respect to refreshes: an observer
// may miss an event while unsubscribing, or see a refresh it already applied.
type Observer interface {
	OnDirectoryChanged(event ChangeEvent)
}

// ObserverFunc adapts a function to the Observer interface.
// Register it by pointer so that Subscribe and Unsubscribe can compare it.
type ObserverFunc func(event ChangeEvent)

// OnDirectoryChanged calls f(event).
func (f *ObserverFunc) OnDirectoryChanged(event ChangeEvent) {
	(*f)(event)
}

// NewObserverFunc returns fn as a comparable Observer.
func NewObserverFunc(fn func(ChangeEvent)) *ObserverFunc {
	f := ObserverFunc(fn)
	return &f
}

// DirectoryWatcher is the subscription surface exposed to observers.
type DirectoryWatcher interface {
	Subscribe(o Observer)
	Unsubscribe(o Observer)
}

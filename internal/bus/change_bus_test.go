package bus

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

type recorder struct {
	mu     sync.Mutex
	name   string
	events []scriptfs.ChangeEvent
	log    *[]string
}

func (r *recorder) OnDirectoryChanged(ev scriptfs.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestChangeBus_DeliversInRegistrationOrder(t *testing.T) {
	b := New(nil)
	var order []string
	first := &recorder{name: "first", log: &order}
	second := &recorder{name: "second", log: &order}
	b.Subscribe(first)
	b.Subscribe(second)

	ev := scriptfs.NewRefreshEvent("/scripts")
	b.Publish(ev)

	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, first.events, 1)
	assert.Equal(t, ev, first.events[0])
}

func TestChangeBus_SubscribeIsIdempotent(t *testing.T) {
	b := New(nil)
	r := &recorder{}
	b.Subscribe(r)
	b.Subscribe(r)

	b.Publish(scriptfs.NewRefreshEvent("/a"))

	assert.Equal(t, 1, r.count())
	assert.Equal(t, 1, b.Len())
}

func TestChangeBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := New(nil)
	r := &recorder{}
	other := &recorder{}

	b.Unsubscribe(r)
	b.Subscribe(r)
	b.Unsubscribe(r)
	b.Unsubscribe(r)
	b.Unsubscribe(other)

	b.Publish(scriptfs.NewRefreshEvent("/a"))
	assert.Equal(t, 0, r.count())
	assert.Equal(t, 0, b.Len())
}

func TestChangeBus_ObserverFunc(t *testing.T) {
	b := New(nil)
	var got []string
	fn := scriptfs.NewObserverFunc(func(ev scriptfs.ChangeEvent) { got = append(got, ev.Dir) })

	b.Subscribe(fn)
	b.Subscribe(fn)
	b.Publish(scriptfs.NewRefreshEvent("/a"))
	b.Unsubscribe(fn)
	b.Publish(scriptfs.NewRefreshEvent("/b"))

	assert.Equal(t, []string{"/a"}, got)
}

func TestChangeBus_NilObserverIgnored(t *testing.T) {
	b := New(nil)
	b.Subscribe(nil)
	assert.Equal(t, 0, b.Len())
	b.Publish(scriptfs.NewRefreshEvent("/a"))
}

type selfRemoving struct {
	bus   *ChangeBus
	calls int
}

func (s *selfRemoving) OnDirectoryChanged(scriptfs.ChangeEvent) {
	s.calls++
	s.bus.Unsubscribe(s)
}

func TestChangeBus_UnsubscribeDuringPublish(t *testing.T) {
	b := New(nil)
	s := &selfRemoving{bus: b}
	after := &recorder{}
	b.Subscribe(s)
	b.Subscribe(after)

	b.Publish(scriptfs.NewRefreshEvent("/a"))
	b.Publish(scriptfs.NewRefreshEvent("/b"))

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 2, after.count(), "later observers still receive the in-flight event")
}

func TestChangeBus_PanickingObserverDoesNotBreakFanOut(t *testing.T) {
	var buf bytes.Buffer
	b := New(logging.NewWriterLogger(&buf, false))
	b.Subscribe(scriptfs.NewObserverFunc(func(scriptfs.ChangeEvent) { panic("boom") }))
	r := &recorder{}
	b.Subscribe(r)

	b.Publish(scriptfs.NewRefreshEvent("/a"))

	assert.Equal(t, 1, r.count())
	assert.True(t, strings.Contains(buf.String(), "boom"), "panic should be logged, got %q", buf.String())
}

func TestChangeBus_ConcurrentPublishSubscribe(t *testing.T) {
	b := New(nil)
	stable := &recorder{}
	b.Subscribe(stable)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r := &recorder{}
			b.Subscribe(r)
			b.Unsubscribe(r)
		}()
		go func() {
			defer wg.Done()
			b.Publish(scriptfs.NewRefreshEvent("/a"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, stable.count())
	assert.Equal(t, 1, b.Len())
}

package notify

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeCounter struct {
	calls atomic.Int64
	value atomic.Int64
	err   atomic.Value // error
}

func (f *fakeCounter) PendingRequestsCount(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	if err, ok := f.err.Load().(error); ok && err != nil {
		return 0, err
	}
	return f.value.Load(), nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRegistry_PollsWhileRunning(t *testing.T) {
	counter := &fakeCounter{}
	counter.value.Store(3)
	registry := NewRegistry(counter, 5*time.Millisecond, zerolog.Nop())
	defer registry.StopAll()

	registry.Start("sid-1", "tok")

	waitFor(t, time.Second, func() bool { return counter.calls.Load() >= 3 })

	count, ok := registry.Count("sid-1")
	if !ok || count != 3 {
		t.Fatalf("Count = (%d, %v), want (3, true)", count, ok)
	}
}

func TestRegistry_NoRequestsAfterStop(t *testing.T) {
	counter := &fakeCounter{}
	registry := NewRegistry(counter, 5*time.Millisecond, zerolog.Nop())

	registry.Start("sid-1", "tok")
	waitFor(t, time.Second, func() bool { return counter.calls.Load() >= 2 })

	registry.Stop("sid-1")

	// Let any in-flight iteration drain, then confirm the call count froze.
	time.Sleep(20 * time.Millisecond)
	stopped := counter.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := counter.calls.Load(); got != stopped {
		t.Fatalf("polls continued after Stop: %d -> %d", stopped, got)
	}

	if _, ok := registry.Count("sid-1"); ok {
		t.Fatal("Count still primed after Stop")
	}
}

func TestRegistry_CountUnprimedUntilFirstSuccess(t *testing.T) {
	counter := &fakeCounter{}
	counter.err.Store(context.DeadlineExceeded)
	registry := NewRegistry(counter, 5*time.Millisecond, zerolog.Nop())
	defer registry.StopAll()

	registry.Start("sid-1", "tok")
	waitFor(t, time.Second, func() bool { return counter.calls.Load() >= 2 })

	if _, ok := registry.Count("sid-1"); ok {
		t.Fatal("Count primed despite every poll failing")
	}
}

func TestRegistry_EnsureStartsOnlyWhenAbsent(t *testing.T) {
	counter := &fakeCounter{}
	counter.value.Store(2)
	registry := NewRegistry(counter, time.Hour, zerolog.Nop())
	defer registry.StopAll()

	registry.Ensure("sid-1", "tok")
	waitFor(t, time.Second, func() bool {
		_, ok := registry.Count("sid-1")
		return ok
	})

	// A second Ensure must leave the running poller alone: the primed count
	// stays visible instead of being reset by a replacement.
	registry.Ensure("sid-1", "tok")
	if count, ok := registry.Count("sid-1"); !ok || count != 2 {
		t.Fatalf("Count = (%d, %v) after second Ensure, want (2, true)", count, ok)
	}

	if got := counter.calls.Load(); got != 1 {
		t.Fatalf("polls = %d, want 1 (one poller, long interval)", got)
	}
}

func TestRegistry_StartReplacesPreviousPoller(t *testing.T) {
	counter := &fakeCounter{}
	counter.value.Store(7)
	registry := NewRegistry(counter, 5*time.Millisecond, zerolog.Nop())
	defer registry.StopAll()

	registry.Start("sid-1", "tok-old")
	registry.Start("sid-1", "tok-new")

	waitFor(t, time.Second, func() bool {
		count, ok := registry.Count("sid-1")
		return ok && count == 7
	})

	registry.Stop("sid-1")
	if _, ok := registry.Count("sid-1"); ok {
		t.Fatal("Count survived Stop after restart")
	}
}

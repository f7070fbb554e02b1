package asynchook

import (
	"errors"
	"sync"
	"testing"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) FetchError(string, error)       { r.add("fetch") }
func (r *recorder) SelfHeal(string, string)        { r.add("heal") }
func (r *recorder) PopulateRejected(string, error) { r.add("populate") }
func (r *recorder) InvalidateError(string, error)  { r.add("invalidate") }

func TestEventsDeliveredBeforeClose(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 2, 16)

	err := errors.New("boom")
	h.FetchError("k1", err)
	h.SelfHeal("k2", "decode")
	h.PopulateRejected("k3", nil)
	h.InvalidateError("k4", err)

	// Close waits for the queue to drain.
	h.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 4 {
		t.Fatalf("expected 4 events, got %v", rec.events)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	h := New(&recorder{}, 1, 1)
	h.Close()
	h.Close()
}

func TestFullQueueDrops(t *testing.T) {
	// A sink that blocks until released, so the tiny queue fills up.
	block := make(chan struct{})
	rec := &recorder{}
	blocking := &blockingHooks{inner: rec, release: block}

	h := New(blocking, 1, 1)
	for i := 0; i < 50; i++ {
		h.SelfHeal("k", "decode")
	}
	close(block)
	h.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) > 2 {
		t.Fatalf("expected most events dropped, got %d", len(rec.events))
	}
}

type blockingHooks struct {
	inner   *recorder
	release chan struct{}
	once    sync.Once
}

func (b *blockingHooks) wait() {
	b.once.Do(func() { <-b.release })
}

func (b *blockingHooks) FetchError(k string, err error) { b.wait(); b.inner.FetchError(k, err) }
func (b *blockingHooks) SelfHeal(k, r string)           { b.wait(); b.inner.SelfHeal(k, r) }
func (b *blockingHooks) PopulateRejected(k string, err error) {
	b.wait()
	b.inner.PopulateRejected(k, err)
}
func (b *blockingHooks) InvalidateError(k string, err error) {
	b.wait()
	b.inner.InvalidateError(k, err)
}

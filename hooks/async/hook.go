// Package asynchook decouples hook sinks from the request path: events
// are queued and delivered by background workers, and dropped when the
// queue is full.
package asynchook

import (
	"sync"

	"github.com/fluxmart/catalog"
)

type Hooks struct {
	inner catalog.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ catalog.Hooks = (*Hooks)(nil)

func New(inner catalog.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) FetchError(k string, err error) {
	h.try(func() { h.inner.FetchError(k, err) })
}
func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) PopulateRejected(k string, err error) {
	h.try(func() { h.inner.PopulateRejected(k, err) })
}
func (h *Hooks) InvalidateError(k string, err error) {
	h.try(func() { h.inner.InvalidateError(k, err) })
}

// Package sloghook logs catalog cache events through log/slog, with
// sampling for the flood-prone ones (a dead backend emits a fetch error
// per read).
package sloghook

import (
	"log/slog"
	"sync/atomic"

	"github.com/fluxmart/catalog"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	FetchErrorEvery       uint64
	PopulateRejectedEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	fetchErrCtr atomic.Uint64
	populateCtr atomic.Uint64
}

var _ catalog.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) FetchError(key string, err error) {
	if h.l == nil || !sample(h.opts.FetchErrorEvery, &h.fetchErrCtr) {
		return
	}
	h.l.Warn("catalog.cache_fetch_error",
		"key", key,
		"err", err)
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("catalog.cache_self_heal",
		"key", key,
		"reason", reason)
}

func (h *Hooks) PopulateRejected(key string, err error) {
	if h.l == nil || !sample(h.opts.PopulateRejectedEvery, &h.populateCtr) {
		return
	}
	h.l.Warn("catalog.cache_populate_rejected",
		"key", key,
		"err", err)
}

func (h *Hooks) InvalidateError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("catalog.cache_invalidate_error",
		"key", key,
		"err", err)
}

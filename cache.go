package catalog

import (
	"context"
	"time"

	c "github.com/fluxmart/catalog/codec"
	pr "github.com/fluxmart/catalog/provider"
)

// entryCache is the cache backend boundary. Every provider or codec
// failure stops here: reads degrade to a miss, writes and removes to a
// no-op. Nothing below this type ever fails a catalog operation.
//
// All provider calls run under a short timeout so a slow backend cannot
// stall the request path.
type entryCache struct {
	ns        string
	provider  pr.Provider
	codec     c.Codec[Product]
	ttl       time.Duration
	opTimeout time.Duration
	enabled   bool
	log       Logger
	hooks     Hooks
}

func (ec *entryCache) key(id string) string {
	// Key derives from the identifier only, so it is stable across
	// updates.
	return ec.ns + ":" + id
}

// fetch returns the cached product for id, or ok=false on miss, backend
// failure, or an undecodable entry. Undecodable entries are deleted so
// the next read repopulates from the store.
func (ec *entryCache) fetch(ctx context.Context, id string) (Product, bool) {
	var zero Product
	if !ec.enabled {
		return zero, false
	}
	k := ec.key(id)

	opCtx, cancel := context.WithTimeout(ctx, ec.opTimeout)
	defer cancel()

	raw, ok, err := ec.provider.Get(opCtx, k)
	if err != nil {
		ec.log.Warn("cache fetch failed; treating as miss", Fields{"key": k, "err": err})
		ec.hooks.FetchError(k, err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	p, err := ec.codec.Decode(raw)
	if err != nil {
		ec.log.Warn("undecodable cache entry; removing", Fields{"key": k, "err": err})
		ec.hooks.SelfHeal(k, "decode")
		ec.remove(ctx, id)
		return zero, false
	}
	return p, true
}

// populate best-effort stores p under key(id). The write runs on a
// context detached from the caller: a request cancelled after its store
// read must not abort a populate that is already safe to complete. It
// stays bounded by the op timeout.
func (ec *entryCache) populate(ctx context.Context, id string, p Product) {
	if !ec.enabled {
		return
	}
	k := ec.key(id)

	b, err := ec.codec.Encode(p)
	if err != nil {
		ec.log.Error("cache encode failed; entry not stored", Fields{"key": k, "err": err})
		return
	}

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ec.opTimeout)
	defer cancel()

	ok, err := ec.provider.Set(opCtx, k, b, ec.ttl)
	if err != nil {
		ec.log.Warn("cache populate failed", Fields{"key": k, "err": err})
		ec.hooks.PopulateRejected(k, err)
		return
	}
	if !ok {
		ec.log.Debug("cache populate rejected by provider (pressure)", Fields{"key": k})
		ec.hooks.PopulateRejected(k, nil)
	}
}

// remove best-effort deletes the entry for id. Removing a missing key is
// a no-op; a failed remove is logged and left to TTL expiry.
func (ec *entryCache) remove(ctx context.Context, id string) {
	if !ec.enabled {
		return
	}
	k := ec.key(id)

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ec.opTimeout)
	defer cancel()

	if err := ec.provider.Del(opCtx, k); err != nil {
		ec.log.Warn("cache invalidate failed; entry expires at TTL", Fields{"key": k, "err": err})
		ec.hooks.InvalidateError(k, err)
	}
}

// available probes backend liveness within the op timeout.
func (ec *entryCache) available(ctx context.Context) bool {
	if !ec.enabled {
		return false
	}
	opCtx, cancel := context.WithTimeout(ctx, ec.opTimeout)
	defer cancel()
	return ec.provider.Ping(opCtx) == nil
}

func (ec *entryCache) close(ctx context.Context) error {
	if ec.provider == nil {
		return nil
	}
	return ec.provider.Close(ctx)
}

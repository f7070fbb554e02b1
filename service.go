package catalog

import (
	"context"
)

// Service is the cache-aside orchestrator. It holds no locks and
// serializes nothing itself; consistency relies on the store's per-record
// atomicity and the backend's atomic per-key operations, so it is safe
// for concurrent use by many request handlers.
type Service struct {
	store ProductStore
	cache *entryCache
	log   Logger
}

// Get returns the product for id. Cache hit short-circuits the store;
// a miss (absent, backend failure, undecodable entry) falls back to the
// store and best-effort repopulates the cache. Negative results are
// never cached. The returned value is always store-authoritative data:
// entries are written from the store's own rows, never from caller input.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if p, ok := s.cache.fetch(ctx, id); ok {
		s.log.Debug("cache hit", Fields{"id": id})
		return p, nil
	}
	s.log.Debug("cache miss", Fields{"id": id})

	p, err := s.store.Find(ctx, id)
	if err != nil {
		return Product{}, err
	}
	s.cache.populate(ctx, id, p)
	return p, nil
}

// Create validates and inserts a new product. It never writes to the
// cache: the entry appears on the first read, which avoids caching a
// record the caller may never re-read and avoids racing a concurrent
// read's populate with pre-commit data.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p, err := s.store.Insert(ctx, in)
	if err != nil {
		return Product{}, err
	}
	s.log.Info("product created", Fields{"id": p.ID})
	return p, nil
}

// Update applies only the set fields of patch, then invalidates the
// cache entry. It invalidates rather than refreshes: refreshing could
// let a slow populate from a concurrent stale read overwrite the fresh
// value; with invalidation the next read repopulates correctly.
func (s *Service) Update(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	if err := patch.Validate(); err != nil {
		return Product{}, err
	}
	p, err := s.store.ApplyPatch(ctx, id, patch)
	if err != nil {
		return Product{}, err
	}
	s.cache.remove(ctx, id)
	s.log.Info("product updated", Fields{"id": id})
	return p, nil
}

// Delete removes the product and invalidates its cache entry. The store
// delete commits first; a crash in between leaves a stale entry that
// expires at TTL.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.cache.remove(ctx, id)
	s.log.Info("product deleted", Fields{"id": id})
	return nil
}

// CacheAvailable reports backend liveness for health surfaces. An
// unavailable cache means degraded, not failed: all operations keep
// working against the store.
func (s *Service) CacheAvailable(ctx context.Context) bool {
	return s.cache.available(ctx)
}

// Close releases the cache backend. The store is owned by the caller.
func (s *Service) Close(ctx context.Context) error {
	return s.cache.close(ctx)
}

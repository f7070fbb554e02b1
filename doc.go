// Package catalog implements a product catalog service with a cache-aside
// read path. Point lookups go through a cache backend first; misses fall
// back to the authoritative store and repopulate the cache best-effort.
// Writes never touch the cache except to invalidate.
//
// Components:
//   - ProductStore: durable, authoritative record storage (e.g. SQLite).
//   - Provider: byte store with TTL fronting the cache (Redis, BigCache,
//     Ristretto).
//   - Codec[V]: (de)serializes Product <-> []byte for cache entries.
//
// Keys:
//
//	product:<id> - one cache entry per record identifier
//
// The cache is always optional. Every backend failure - connection error,
// timeout, undecodable entry - is absorbed at the cache boundary and
// reported as a miss or no-op; it never fails the operation. Store errors
// are the opposite: they always propagate.
package catalog

// Package provider defines the cache storage abstraction consumed by
// catalog.
//
// Implementations MUST be byte-for-byte transparent: Get must return
// exactly the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Set.
//
// A plain miss is not an error: Get returns (nil, false, nil). An error
// return means the backend itself failed; the catalog cache boundary
// absorbs those and degrades to the authoritative store.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent
// use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. Returns ok=false when the
	// store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key. Deleting a missing key is a no-op.
	Del(ctx context.Context, key string) error

	// Ping reports backend liveness.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

package catalog

import "context"

// ProductStore is the authoritative record store. Implementations must
// provide per-record atomicity: a partial field write is never visible.
//
// Lookup-style methods return ErrNotFound (possibly wrapped) when the
// identifier does not exist. Any other error means the store itself
// failed and is fatal to the operation.
type ProductStore interface {
	// Insert persists a new product and returns it with its generated
	// identifier.
	Insert(ctx context.Context, in ProductInput) (Product, error)

	// Find returns the product for id, or ErrNotFound.
	Find(ctx context.Context, id string) (Product, error)

	// ApplyPatch updates only the set fields of patch and returns the
	// resulting product, or ErrNotFound.
	ApplyPatch(ctx context.Context, id string, patch ProductPatch) (Product, error)

	// Remove deletes the product for id, or returns ErrNotFound.
	Remove(ctx context.Context, id string) error
}

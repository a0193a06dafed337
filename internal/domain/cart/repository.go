package cart

import "context"

// Repository persists cart snapshots under a fixed logical key
// Only (productID, flavorID, quantity) triples are stored; product details
// re-resolve from the catalog on load.
//
// Load returns an empty cart when no snapshot exists or the stored payload
// fails to parse - a broken snapshot must never break the session.
// Save is best effort; the in-memory cart stays the source of truth and a
// failed write is never rolled back.
type Repository interface {
	Load(ctx context.Context, key string) (Cart, error)
	Save(ctx context.Context, key string, c Cart) error
}

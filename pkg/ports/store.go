package ports

import (
	"context"

	"github.com/aretw0/bigroot/pkg/domain"
)

// ResultStore caches computed square roots.
// Keys are opaque strings built by the caller (see bigroot.CacheKey).
type ResultStore interface {
	// Save persists a result under key, replacing any previous value.
	Save(ctx context.Context, key string, res *domain.SquareRootResult) error

	// Load retrieves a result.
	// Returns domain.ErrResultNotFound if the key is absent or expired.
	Load(ctx context.Context, key string) (*domain.SquareRootResult, error)

	// Delete removes a result. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently held.
	List(ctx context.Context) ([]string, error)
}

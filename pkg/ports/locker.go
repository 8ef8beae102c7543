package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker serialises work on a key, possibly across processes sharing a cache.
// The calculator holds it around "load, compute, save" so that concurrent
// requests for the same root are computed once.
type Locker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The ttl bounds how long a crashed holder can keep the key (implementation specific).
	// The returned UnlockFunc MUST be called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/bigroot/pkg/ports"
)

// LockerContractTest is a reusable test suite that verifies if an adapter complies with ports.Locker.
func LockerContractTest(t *testing.T, locker ports.Locker) {
	t.Helper()

	t.Run("Lock_Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "contract-a", 5*time.Second)
		if err != nil {
			t.Fatalf("unexpected error locking: %v", err)
		}
		if err := unlock(context.Background()); err != nil {
			t.Fatalf("unexpected error unlocking: %v", err)
		}

		// the key is free again
		unlock, err = locker.Lock(context.Background(), "contract-a", 5*time.Second)
		if err != nil {
			t.Fatalf("relock failed: %v", err)
		}
		_ = unlock(context.Background())
	})

	t.Run("Independent_Keys", func(t *testing.T) {
		u1, err := locker.Lock(context.Background(), "contract-b", 5*time.Second)
		if err != nil {
			t.Fatalf("lock b: %v", err)
		}
		defer func() { _ = u1(context.Background()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		u2, err := locker.Lock(ctx, "contract-c", 5*time.Second)
		if err != nil {
			t.Fatalf("a held key blocked another key: %v", err)
		}
		_ = u2(context.Background())
	})

	t.Run("Contention_Respects_Context", func(t *testing.T) {
		u1, err := locker.Lock(context.Background(), "contract-d", 5*time.Second)
		if err != nil {
			t.Fatalf("lock d: %v", err)
		}
		defer func() { _ = u1(context.Background()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer cancel()
		if _, err := locker.Lock(ctx, "contract-d", 5*time.Second); err == nil {
			t.Fatal("expected the second Lock to fail while the key is held")
		}
	})

	t.Run("Mutual_Exclusion", func(t *testing.T) {
		var inside, maxInside int32
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(context.Background(), "contract-e", 5*time.Second)
				if err != nil {
					t.Errorf("lock e: %v", err)
					return
				}
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				_ = unlock(context.Background())
			}()
		}
		wg.Wait()
		if maxInside != 1 {
			t.Errorf("expected one holder at a time, saw %d", maxInside)
		}
	})
}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/internal/config"
	"github.com/aretw0/bigroot/pkg/adapters/memory"
	"github.com/aretw0/bigroot/pkg/adapters/redis"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/aretw0/bigroot/pkg/observability"
	"github.com/aretw0/bigroot/pkg/ports"
)

// Cache bundles the configured result store with its locker.
// Store is nil when caching is disabled.
type Cache struct {
	Store  ports.ResultStore
	Locker ports.Locker
	close  func() error
}

// Close releases backend connections.
func (c *Cache) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// OpenCache builds the store selected by cfg.Driver. The Redis driver is
// pinged up front so a wrong address fails fast.
func OpenCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (*Cache, error) {
	switch cfg.Driver {
	case "", "none":
		return &Cache{}, nil
	case "memory":
		return &Cache{Store: memory.NewStore(), Locker: memory.NewLocker()}, nil
	case "redis":
		store := redis.New(cfg.Addr, cfg.Password, cfg.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Prefix),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
		}
		logger.Info("Using redis cache", "addr", cfg.Addr, "prefix", store.Prefix(), "ttl", cfg.TTL)
		return &Cache{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), store.Prefix()),
			close:  store.Close,
		}, nil
	}
	return nil, fmt.Errorf("cache driver %q: %w", cfg.Driver, domain.ErrInvalidArgument)
}

// NewCalculator wires a Calculator from cfg. Extra hooks (progress, metrics)
// run after the logging hooks.
func NewCalculator(cfg config.Config, cache *Cache, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*bigroot.Calculator, error) {
	all := append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, hooks...)

	opts := []bigroot.Option{
		bigroot.WithShiftBits(cfg.ShiftBits),
		bigroot.WithLogger(logger),
		bigroot.WithTrailingZeros(!cfg.Trim),
		bigroot.WithLifecycleHooks(domain.MergeHooks(all...)),
	}
	if cache != nil && cache.Store != nil {
		opts = append(opts, bigroot.WithStore(cache.Store))
		if cache.Locker != nil {
			opts = append(opts, bigroot.WithLocker(cache.Locker))
		}
	}
	return bigroot.New(opts...)
}

// Template turns the configured precision and mode into a query without input.
func Template(cfg config.Config) domain.Query {
	return domain.Query{
		FractionalBits: cfg.FractionalBits(),
		Base:           cfg.Base,
		Golden:         cfg.Golden,
	}
}

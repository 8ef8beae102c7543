package bigroot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/internal/runtime"
	"github.com/aretw0/bigroot/pkg/convert"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/aretw0/bigroot/pkg/ports"
)

// lockTTL bounds how long a crashed replica can hold a computation lock.
const lockTTL = 5 * time.Minute

// maxPlainKeyBits is the largest input spelled out verbatim in cache keys.
const maxPlainKeyBits = 1024

// Calculator is the high-level entry point of the library.
// It wraps the internal engine and converter, adding precision rounding,
// result caching and lifecycle hooks. Safe for concurrent use.
type Calculator struct {
	engine    *runtime.Engine
	shift     uint
	store     ports.ResultStore
	locker    ports.Locker
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	keepZeros bool
}

// Option defines a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithShiftBits sets the digit-group width (domain.SupportedShiftBits).
func WithShiftBits(shift uint) Option {
	return func(c *Calculator) {
		c.shift = shift
	}
}

// WithStore caches results in store.
func WithStore(store ports.ResultStore) Option {
	return func(c *Calculator) {
		c.store = store
	}
}

// WithLocker serialises computation of the same key. Only useful with WithStore.
func WithLocker(locker ports.Locker) Option {
	return func(c *Calculator) {
		c.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Calculator) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithTrailingZeros keeps insignificant trailing zeros in rendered fractions.
func WithTrailingZeros(keep bool) Option {
	return func(c *Calculator) {
		c.keepZeros = keep
	}
}

// New initializes a Calculator.
func New(opts ...Option) (*Calculator, error) {
	c := &Calculator{shift: domain.DefaultShiftBits}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	engine, err := runtime.NewEngine(
		runtime.WithShiftBits(c.shift),
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	c.engine = engine
	return c, nil
}

// ShiftBits returns the digit-group width in use.
func (c *Calculator) ShiftBits() uint {
	return c.shift
}

// CacheKey identifies the result of sqrt(n) at the given (already rounded)
// precision and group width. Large inputs are hashed.
func CacheKey(n *big.Int, bits uint64, shift uint) string {
	id := n.Text(16)
	if n.BitLen() > maxPlainKeyBits {
		sum := sha256.Sum256(n.Bytes())
		id = "h" + hex.EncodeToString(sum[:])
	}
	return fmt.Sprintf("s%d:b%d:%s", shift, bits, id)
}

// Sqrt computes sqrt(n) with at least bits fractional bits. bits is rounded up
// to a multiple of ShiftBits.
func (c *Calculator) Sqrt(ctx context.Context, n *big.Int, bits uint64) (*domain.SquareRootResult, error) {
	res, _, err := c.sqrt(ctx, n, domain.RoundBits(bits, c.shift))
	return res, err
}

func (c *Calculator) sqrt(ctx context.Context, n *big.Int, bits uint64) (*domain.SquareRootResult, bool, error) {
	if err := domain.ValidateInput(n); err != nil {
		return nil, false, err
	}
	if c.store == nil {
		res, err := c.engine.Sqrt(ctx, n, bits)
		return res, false, err
	}

	key := CacheKey(n, bits, c.shift)
	if res, ok := c.lookup(ctx, key); ok {
		return res, true, nil
	}

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, key, lockTTL)
		if err != nil {
			return nil, false, fmt.Errorf("failed to acquire lock for %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("Failed to release lock (will expire via TTL)", "key", key, "err", err)
			}
		}()

		// another holder may have filled the cache while we waited
		if res, ok := c.lookup(ctx, key); ok {
			return res, true, nil
		}
	}

	res, err := c.engine.Sqrt(ctx, n, bits)
	if err != nil {
		return nil, false, err
	}
	if err := c.store.Save(ctx, key, res); err != nil {
		c.logger.Warn("Failed to cache result", "key", key, "err", err)
	}
	return res, false, nil
}

// lookup reads the cache. Store errors other than a miss are logged, not returned.
func (c *Calculator) lookup(ctx context.Context, key string) (*domain.SquareRootResult, bool) {
	res, err := c.store.Load(ctx, key)
	switch {
	case err == nil:
		c.logger.Debug("cache hit", "key", key)
		return res, true
	case errors.Is(err, domain.ErrResultNotFound):
		return nil, false
	default:
		c.logger.Warn("Failed to read cache", "key", key, "err", err)
		return nil, false
	}
}

// Render converts a non-perfect result to digits in base.
func (c *Calculator) Render(res *domain.SquareRootResult, base int) (string, error) {
	if res == nil || res.IntegerPart == nil {
		return "", fmt.Errorf("render: missing result: %w", domain.ErrInvalidArgument)
	}
	return convert.Render(res.IntegerPart, res.Fraction(), res.FractionalBitWidth, base,
		convert.WithTrailingZeros(c.keepZeros))
}

// Compute runs a full query: root, optional golden-ratio transform and rendering.
// Perfect squares are reported without digits; Golden is ignored for them.
func (c *Calculator) Compute(ctx context.Context, q domain.Query) (*domain.Report, error) {
	if q.Base == 0 {
		q.Base = domain.DefaultBase
	}
	if err := domain.ValidateBase(q.Base); err != nil {
		return nil, err
	}
	if err := domain.ValidateInput(q.Input); err != nil {
		return nil, err
	}

	start := time.Now()
	bits := domain.RoundBits(q.FractionalBits, c.shift)
	// golden mode renders one bit more
	if _, err := convert.FractionDigits(bits+1, q.Base); err != nil {
		return nil, err
	}
	res, cached, err := c.sqrt(ctx, q.Input, bits)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Input:     q.Input,
		Bits:      bits,
		ShiftBits: c.shift,
		Base:      q.Base,
		Result:    res,
		Cached:    cached,
	}
	if !res.IsPerfectSquare {
		if q.Golden {
			if report.Result, err = domain.Golden(res); err != nil {
				return nil, err
			}
			report.Golden = true
		}
		if report.Digits, err = c.Render(report.Result, q.Base); err != nil {
			return nil, err
		}
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

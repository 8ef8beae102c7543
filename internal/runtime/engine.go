package runtime

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
)

// Engine computes square roots digit by digit using only integer arithmetic.
//
// It works in radix 2^(shift/2): every shift-bit group of the input yields one
// root digit. Each digit is found by subtracting consecutive odd numbers, since
// the sum of the first k odd numbers is k².
type Engine struct {
	shift  uint
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// NewEngine creates an engine. The default digit-group width is domain.DefaultShiftBits.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		shift:  domain.DefaultShiftBits,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := domain.ValidateShiftBits(e.shift); err != nil {
		return nil, err
	}
	return e, nil
}

// ShiftBits returns the digit-group width.
func (e *Engine) ShiftBits() uint {
	return e.shift
}

// extractor holds the three accumulators of the restoring square root.
type extractor struct {
	shift uint
	half  uint

	accu   *big.Int // remainder
	step   *big.Int // next odd number to subtract
	result *big.Int // root digits found so far

	two   *big.Int
	digit *big.Int
}

func newExtractor(shift uint) *extractor {
	return &extractor{
		shift:  shift,
		half:   shift / 2,
		accu:   new(big.Int),
		step:   big.NewInt(1),
		result: new(big.Int),
		two:    big.NewInt(2),
		digit:  new(big.Int),
	}
}

// next consumes one digit group and appends one digit to the result.
func (x *extractor) next(group uint64) {
	x.accu.Lsh(x.accu, x.shift)
	if group != 0 {
		x.accu.Add(x.accu, x.digit.SetUint64(group))
	}

	var d uint64
	for x.step.Cmp(x.accu) <= 0 {
		x.accu.Sub(x.accu, x.step)
		x.step.Add(x.step, x.two)
		d++
	}

	x.result.Lsh(x.result, x.half)
	if d != 0 {
		x.result.Add(x.result, x.digit.SetUint64(d))
	}

	// next subtrahend: 2 * result * radix + 1
	x.step.Lsh(x.result, x.half+1)
	x.step.SetBit(x.step, 0, 1)
}

// Sqrt computes the square root of n with fractionalBits bits after the binary point.
//
// Callers normally round fractionalBits up to a multiple of ShiftBits first
// (domain.RoundBits); the engine itself produces ceil(fractionalBits/(ShiftBits/2))
// fractional digits. Perfect squares never enter the fractional phase.
func (e *Engine) Sqrt(ctx context.Context, n *big.Int, fractionalBits uint64) (*domain.SquareRootResult, error) {
	if err := domain.ValidateInput(n); err != nil {
		return nil, err
	}

	start := time.Now()
	e.logger.Debug("sqrt started", "input_bits", n.BitLen(), "fractional_bits", fractionalBits, "shift_bits", e.shift)
	if e.hooks.OnStart != nil {
		e.hooks.OnStart(ctx, &domain.ComputeEvent{
			EventBase:      domain.EventBase{Timestamp: start, Type: domain.EventComputeStart},
			InputBits:      n.BitLen(),
			FractionalBits: fractionalBits,
			ShiftBits:      e.shift,
		})
	}

	x := newExtractor(e.shift)

	groups := bigint.GroupCount(n, e.shift)
	for i := 0; i < groups; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x.next(bigint.Group(n, i, e.shift))
	}

	integer := new(big.Int).Set(x.result)

	if x.accu.Sign() == 0 {
		res := &domain.SquareRootResult{
			IntegerPart:     integer,
			IsPerfectSquare: true,
		}
		e.complete(ctx, n, fractionalBits, 0, true, start)
		return res, nil
	}

	iterations := (fractionalBits + uint64(x.half) - 1) / uint64(x.half)
	progress := newProgressTracker(iterations)
	for i := uint64(0); i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x.next(0)

		if e.hooks.OnProgress != nil {
			if ev, changed := progress.advance(i + 1); changed {
				e.hooks.OnProgress(ctx, ev)
			}
		}
	}

	width := iterations * uint64(x.half)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(width))
	mask.Sub(mask, big.NewInt(1))

	res := &domain.SquareRootResult{
		IntegerPart:        integer,
		FractionalPart:     mask.And(x.result, mask),
		FractionalBitWidth: width,
	}
	e.complete(ctx, n, fractionalBits, iterations, false, start)
	return res, nil
}

func (e *Engine) complete(ctx context.Context, n *big.Int, fractionalBits, iterations uint64, perfect bool, start time.Time) {
	elapsed := time.Since(start)
	e.logger.Debug("sqrt complete", "perfect", perfect, "iterations", iterations, "elapsed", elapsed)
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(ctx, &domain.ComputeEvent{
			EventBase:      domain.EventBase{Timestamp: time.Now(), Type: domain.EventComputeComplete},
			InputBits:      n.BitLen(),
			FractionalBits: fractionalBits,
			ShiftBits:      e.shift,
			Iterations:     iterations,
			Perfect:        perfect,
			Elapsed:        elapsed,
		})
	}
}

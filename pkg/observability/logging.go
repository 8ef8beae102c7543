package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/bigroot/pkg/domain"
)

// LoggingHooks logs computation start and completion at info level.
// Progress is not logged; it is far too chatty for a log stream.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStart: func(ctx context.Context, e *domain.ComputeEvent) {
			logger.InfoContext(ctx, "compute_start",
				"input_bits", e.InputBits,
				"fractional_bits", e.FractionalBits,
				"shift_bits", e.ShiftBits,
			)
		},
		OnComplete: func(ctx context.Context, e *domain.ComputeEvent) {
			logger.InfoContext(ctx, "compute_complete",
				"perfect", e.Perfect,
				"iterations", e.Iterations,
				"elapsed", e.Elapsed,
			)
		},
	}
}

package runtime

import (
	"log/slog"

	"github.com/aretw0/bigroot/pkg/domain"
)

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithShiftBits sets the digit-group width (2, 4, 8 or 16 bits).
func WithShiftBits(shift uint) EngineOption {
	return func(e *Engine) {
		e.shift = shift
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

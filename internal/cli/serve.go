package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/internal/config"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/internal/presentation/tui"
	httpAdapter "github.com/aretw0/bigroot/pkg/adapters/http"
	"github.com/aretw0/bigroot/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout is how long in-flight requests get after a signal.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server command.
type ServeOptions struct {
	Config  config.Config
	MaxBits uint64
	Debug   bool
	Quiet   bool
	Stderr  io.Writer
}

// NewServerHandler wires the calculator, cache and metrics registry into the
// HTTP handler. Metrics cover the Go runtime as well as the engine.
func NewServerHandler(cfg config.Config, cache *Cache, maxBits uint64, logger *slog.Logger) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	calc, err := NewCalculator(cfg, cache, logger, metrics.Hooks())
	if err != nil {
		return nil, err
	}

	opts := []httpAdapter.Option{
		httpAdapter.WithGatherer(registry),
		httpAdapter.WithLogger(logger),
	}
	if maxBits > 0 {
		opts = append(opts, httpAdapter.WithMaxBits(maxBits))
	}
	if cache != nil && cache.Store != nil {
		opts = append(opts, httpAdapter.WithStore(cache.Store))
	}
	return httpAdapter.NewHandler(calc, opts...), nil
}

// Serve runs the HTTP server until ctx is done, then drains it.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	logger, err := logging.FromLevelName(opts.Stderr, cfg.Log.Level, opts.Debug)
	if err != nil {
		return err
	}

	cache, err := OpenCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	handler, err := NewServerHandler(cfg, cache, opts.MaxBits, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}

	if !opts.Quiet {
		tui.PrintBanner(opts.Stderr, bigroot.Version)
		printSystemMessage(opts.Stderr, "Listening on %s (cache: %s)", ln.Addr(), cfg.Cache.Driver)
	}
	return serveListener(ctx, ln, handler, logger)
}

func serveListener(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		return nil
	}
}

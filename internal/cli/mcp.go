package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/bigroot/internal/config"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the MCP server command.
type MCPOptions struct {
	Config    config.Config
	Transport string
	Port      int
	MaxBits   uint64
	Debug     bool
	Stderr    io.Writer
}

// ServeMCP runs the MCP server. With stdio, stdout belongs to the JSON-RPC
// stream, so every diagnostic goes to Stderr.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	if opts.Transport != TransportStdio && opts.Transport != TransportSSE {
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}

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

	calc, err := NewCalculator(cfg, cache, logger)
	if err != nil {
		return err
	}

	serverOpts := []mcp.Option{mcp.WithLogger(logger)}
	if opts.MaxBits > 0 {
		serverOpts = append(serverOpts, mcp.WithMaxBits(opts.MaxBits))
	}
	srv := mcp.NewServer(calc, serverOpts...)

	if opts.Transport == TransportStdio {
		logger.Info("Starting bigroot MCP Server (Stdio)")
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server execution failed: %w", err)
		}
		return nil
	}

	logger.Info("Starting bigroot MCP Server (SSE)", "port", opts.Port)
	if err := srv.ServeSSE(ctx, opts.Port); err != nil {
		return fmt.Errorf("MCP server execution failed: %w", err)
	}
	logger.Info("MCP Server stopped gracefully")
	return nil
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultMaxBits caps the precision of one tool call.
const DefaultMaxBits = 1 << 18

// InfoURI is the resource describing the calculator.
const InfoURI = "bigroot://info"

// Calculator is the part of bigroot.Calculator the server needs.
type Calculator interface {
	Compute(ctx context.Context, q domain.Query) (*domain.Report, error)
	ShiftBits() uint
}

// Server exposes a Calculator as an MCP server.
type Server struct {
	calc      Calculator
	maxBits   uint64
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMaxBits sets the precision limit per call.
func WithMaxBits(bits uint64) Option {
	return func(s *Server) {
		s.maxBits = bits
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(calc Calculator, opts ...Option) *Server {
	s := &Server{
		calc:      calc,
		maxBits:   DefaultMaxBits,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("bigroot-mcp", strings.TrimSpace(bigroot.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	tool := mcp.NewTool("sqrt",
		mcp.WithDescription("Compute the square root of a non-negative integer to a given precision, "+
			"rendered in base 2..36. Perfect squares return \"N = R^2\"."),
		mcp.WithString("n", mcp.Required(), mcp.Description("Decimal integer; exponent notation like 1e30 is accepted")),
		mcp.WithNumber("bits", mcp.Description("Fractional bits (rounded up to the digit-group width)")),
		mcp.WithNumber("digits", mcp.Description("Fractional digits in the output base; used when bits is absent")),
		mcp.WithNumber("base", mcp.Description("Output base, 2..36 (default 10)")),
		mcp.WithBoolean("golden", mcp.Description("Return (1 + sqrt(n)) / 2; sqrt(5) gives the golden ratio")),
	)
	s.mcpServer.AddTool(tool, s.HandleSqrt)
}

// HandleSqrt is the "sqrt" tool handler. Invalid arguments become tool errors.
func (s *Server) HandleSqrt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := s.query(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.calc.Compute(ctx, q)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return mcp.NewToolResultError(fmt.Sprintf("sqrt failed: %v", err)), nil
	}
	s.logger.Debug("sqrt tool served", "bits", report.Bits, "cached", report.Cached)

	if report.Perfect() {
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s^2", report.Input, report.Result.IntegerPart)), nil
	}
	return mcp.NewToolResultText(report.Digits), nil
}

func (s *Server) query(args map[string]any) (domain.Query, error) {
	raw, ok := args["n"]
	if !ok {
		return domain.Query{}, fmt.Errorf("missing argument n: %w", domain.ErrInvalidArgument)
	}
	n, err := bigint.Parse(fmt.Sprint(raw))
	if err != nil {
		return domain.Query{}, err
	}

	bits, err := uintArg(args, "bits")
	if err != nil {
		return domain.Query{}, err
	}
	digits, err := uintArg(args, "digits")
	if err != nil {
		return domain.Query{}, err
	}
	baseArg, err := uintArg(args, "base")
	if err != nil {
		return domain.Query{}, err
	}
	base := domain.DefaultBase
	if baseArg != 0 {
		if baseArg > domain.MaxBase {
			return domain.Query{}, fmt.Errorf("base %d above %d: %w", baseArg, domain.MaxBase, domain.ErrInvalidArgument)
		}
		base = int(baseArg)
	}
	if err := domain.ValidateBase(base); err != nil {
		return domain.Query{}, err
	}

	golden, _ := args["golden"].(bool)

	fb := domain.ResolveBits(bits, digits, base)
	if fb > s.maxBits {
		return domain.Query{}, fmt.Errorf("%d bits exceed the limit of %d: %w", fb, s.maxBits, domain.ErrInvalidArgument)
	}
	return domain.Query{Input: n, FractionalBits: fb, Base: base, Golden: golden}, nil
}

// uintArg reads a non-negative whole number. JSON numbers arrive as float64.
func uintArg(args map[string]any, key string) (uint64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	bad := fmt.Errorf("argument %s=%v is not a non-negative integer: %w", key, v, domain.ErrInvalidArgument)
	switch x := v.(type) {
	case float64:
		if x < 0 || x != float64(uint64(x)) {
			return 0, bad
		}
		return uint64(x), nil
	case int:
		if x < 0 {
			return 0, bad
		}
		return uint64(x), nil
	case json.Number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			return 0, bad
		}
		return n, nil
	case string:
		n, err := strconv.ParseUint(x, 10, 64)
		if err != nil {
			return 0, bad
		}
		return n, nil
	}
	return 0, bad
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(InfoURI, "Calculator settings",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		info, err := json.Marshal(map[string]any{
			"version":    strings.TrimSpace(bigroot.Version),
			"shift_bits": s.calc.ShiftBits(),
			"min_base":   domain.MinBase,
			"max_base":   domain.MaxBase,
			"max_bits":   s.maxBits,
		})
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      InfoURI,
				MIMEType: "application/json",
				Text:     string(info),
			},
		}, nil
	})
}

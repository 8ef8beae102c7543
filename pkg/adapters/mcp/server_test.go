package mcp_test

import (
	"context"
	"testing"

	"github.com/aretw0/bigroot"
	mcpadapter "github.com/aretw0/bigroot/pkg/adapters/mcp"
	"github.com/aretw0/bigroot/pkg/adapters/memory"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...mcpadapter.Option) *mcpadapter.Server {
	t.Helper()
	calc, err := bigroot.New(bigroot.WithStore(memory.NewStore()))
	require.NoError(t, err)
	return mcpadapter.NewServer(calc, opts...)
}

func call(t *testing.T, s *mcpadapter.Server, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "sqrt"
	req.Params.Arguments = args

	res, err := s.HandleSqrt(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestHandleSqrt(t *testing.T) {
	s := newServer(t)

	text, isErr := call(t, s, map[string]any{"n": "2", "bits": float64(64)})
	assert.False(t, isErr)
	assert.Equal(t, "1.41421356237309504876", text)

	text, isErr = call(t, s, map[string]any{"n": "999999999999999989", "bits": float64(64), "base": float64(16)})
	assert.False(t, isErr)
	assert.Equal(t, "3b9ac9ff.ffffffe860afa0ca", text)

	text, isErr = call(t, s, map[string]any{"n": "5", "bits": float64(64), "golden": true})
	assert.False(t, isErr)
	assert.Equal(t, "1.618033988749894848180104975354787200103", text)

	text, isErr = call(t, s, map[string]any{"n": "1e6"})
	assert.False(t, isErr)
	assert.Equal(t, "1000000 = 1000^2", text)

	text, isErr = call(t, s, map[string]any{"n": "2", "digits": "2", "base": float64(16)})
	assert.False(t, isErr)
	assert.Equal(t, "1.6a", text)
}

func TestHandleSqrt_ToolErrors(t *testing.T) {
	s := newServer(t, mcpadapter.WithMaxBits(1024))

	for _, tt := range []struct {
		name string
		args map[string]any
	}{
		{"missing n", map[string]any{}},
		{"negative", map[string]any{"n": "-4"}},
		{"not a number", map[string]any{"n": "two"}},
		{"fractional bits", map[string]any{"n": "2", "bits": 1.5}},
		{"negative bits", map[string]any{"n": "2", "bits": float64(-8)}},
		{"base too big", map[string]any{"n": "2", "base": float64(64)}},
		{"base too small", map[string]any{"n": "2", "base": float64(1)}},
		{"bits over limit", map[string]any{"n": "2", "bits": float64(2048)}},
		{"wrong type", map[string]any{"n": "2", "bits": true}},
	} {
		_, isErr := call(t, s, tt.args)
		assert.True(t, isErr, tt.name)
	}
}

type cancelled struct{}

func (cancelled) Compute(context.Context, domain.Query) (*domain.Report, error) {
	return nil, context.Canceled
}
func (cancelled) ShiftBits() uint { return 8 }

func TestHandleSqrt_Cancelled(t *testing.T) {
	s := mcpadapter.NewServer(cancelled{})
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"n": "2"}

	_, err := s.HandleSqrt(context.Background(), req)
	assert.ErrorIs(t, err, context.Canceled)
}

package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/aretw0/bigroot/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	calc, err := bigroot.New(bigroot.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = calc.Sqrt(ctx, big.NewInt(4), 64)
	require.NoError(t, err)
	_, err = calc.Sqrt(ctx, big.NewInt(2), 64)
	require.NoError(t, err)
	_, err = calc.Sqrt(ctx, big.NewInt(3), 64)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations.WithLabelValues(observability.OutcomePerfect)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Computations.WithLabelValues(observability.OutcomeApproximate)))
	// 64 bits at 4 root bits per iteration, twice
	assert.Equal(t, 32.0, testutil.ToFloat64(m.Iterations))

	count, err := testutil.GatherAndCount(reg, "bigroot_compute_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP bigroot_fraction_iterations_total Fractional digit iterations performed
# TYPE bigroot_fraction_iterations_total counter
bigroot_fraction_iterations_total 32
`), "bigroot_fraction_iterations_total")
	assert.NoError(t, err)
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var progress int
	hooks := domain.MergeHooks(
		observability.LoggingHooks(logger),
		domain.LifecycleHooks{OnProgress: func(context.Context, *domain.ProgressEvent) { progress++ }},
	)
	calc, err := bigroot.New(bigroot.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	_, err = calc.Sqrt(context.Background(), big.NewInt(2), 64)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"compute_start"`)
	assert.Contains(t, out, `"msg":"compute_complete"`)
	assert.Contains(t, out, `"iterations":16`)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Equal(t, 16, progress)
}

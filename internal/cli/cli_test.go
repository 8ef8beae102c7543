package cli

import (
	"bytes"
	"context"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/bigroot/internal/config"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", config.DefaultPath, "")
	fs.Uint64P("bits", "b", 0, "")
	fs.IntP("base", "o", 10, "")
	fs.BoolP("list", "l", false, "")
	fs.BoolP("progress", "p", false, "")
	fs.Bool("keep-zeros", false, "")
	fs.String("cache", "", "")
	fs.String("redis-addr", "", "")
	fs.Duration("cache-ttl", 0, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoadConfig_Flags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigroot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: 16\nbits: 128\ncache:\n  driver: memory\n"), 0644))

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--config", path,
		"-b", "64", "-l", "-p", "--keep-zeros",
		"--redis-addr", "cache:6380", "--cache-ttl", "90s", "--log-level", "warn",
	}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Base, "unset flags keep the file value")
	assert.Equal(t, uint64(64), cfg.Bits)
	assert.Equal(t, "list", cfg.Format)
	assert.Equal(t, "text", cfg.Progress)
	assert.False(t, cfg.Trim)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "cache:6380", cfg.Cache.Addr)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}))
	_, err := LoadConfig(fs)
	assert.Error(t, err, "explicit config must exist")

	// Parsing nothing relies on the default path, which may be absent.
	fs = testFlags()
	require.NoError(t, fs.Parse(nil))
	dir := t.TempDir()
	t.Chdir(dir)
	cfg, err := LoadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--config", writeFile(t, ""), "-o", "1"}))
	_, err := LoadConfig(fs)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	fs = testFlags()
	require.NoError(t, fs.Parse([]string{"--config", writeFile(t, ""), "--cache", "memcached"}))
	_, err = LoadConfig(fs)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSetPath(t *testing.T) {
	raw := map[string]any{}
	setPath(raw, "base", "16")
	setPath(raw, "cache.driver", "redis")
	setPath(raw, "cache.addr", "x:1")
	assert.Equal(t, map[string]any{
		"base":  "16",
		"cache": map[string]any{"driver": "redis", "addr": "x:1"},
	}, raw)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bigroot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	cache, err := OpenCache(ctx, config.CacheConfig{Driver: "none"}, logger)
	require.NoError(t, err)
	assert.Nil(t, cache.Store)
	assert.NoError(t, cache.Close())

	cache, err = OpenCache(ctx, config.CacheConfig{Driver: "memory"}, logger)
	require.NoError(t, err)
	assert.NotNil(t, cache.Store)
	assert.NotNil(t, cache.Locker)

	mr := miniredis.RunT(t)
	cache, err = OpenCache(ctx, config.CacheConfig{Driver: "redis", Addr: mr.Addr(), Prefix: "t:"}, logger)
	require.NoError(t, err)
	defer cache.Close()

	calc, err := NewCalculator(config.Default(), cache, logger)
	require.NoError(t, err)
	_, err = calc.Compute(ctx, domain.Query{Input: big.NewInt(2), FractionalBits: 8})
	require.NoError(t, err)
	assert.True(t, mr.Exists("t:s8:b8:2"))

	_, err = OpenCache(ctx, config.CacheConfig{Driver: "redis", Addr: "127.0.0.1:1"}, logger)
	assert.Error(t, err, "unreachable redis fails fast")

	_, err = OpenCache(ctx, config.CacheConfig{Driver: "etcd"}, logger)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRunCompute(t *testing.T) {
	cfg := config.Default()
	cfg.Bits = 8
	cfg.Progress = "text"

	var stdout, stderr bytes.Buffer
	err := RunCompute(context.Background(), ComputeOptions{
		Config: cfg,
		Args:   []string{"2"},
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, "sqrt(2) = 1.4140625\n", stdout.String())
	assert.Contains(t, stderr.String(), "Calculating sqrt(2) for 8 bits")
	assert.Contains(t, stderr.String(), "complete")
}

func TestRunCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Bits = 1 << 16
	err := RunCompute(ctx, ComputeOptions{
		Config: cfg,
		Args:   []string{"2"},
		Quiet:  true,
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	require.ErrorIs(t, err, context.Canceled)

	var stderr bytes.Buffer
	assert.NoError(t, HandleExecutionError(&stderr, err, os.Interrupt))
	assert.Contains(t, stderr.String(), "[CTRL+C]")
	assert.Contains(t, stderr.String(), ">>> Interrupted.")

	other := assert.AnError
	assert.Equal(t, other, HandleExecutionError(&stderr, other, nil))
}

func TestServerHandler(t *testing.T) {
	cache, err := OpenCache(context.Background(), config.CacheConfig{Driver: "memory"}, logging.NewNop())
	require.NoError(t, err)

	handler, err := NewServerHandler(config.Default(), cache, 0, logging.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sqrt?n=2&bits=8")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"digits":"1.4140625"`)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `bigroot_computations_total{outcome="approximate"} 1`)
	assert.Contains(t, string(body), "go_goroutines")

	resp, err = http.Get(ts.URL + "/cache")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "s8:b8:2")
}

func TestServeListener_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, ln, http.NotFoundHandler(), logging.NewNop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

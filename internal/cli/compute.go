package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/internal/config"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/internal/presentation/format"
	"github.com/aretw0/bigroot/internal/presentation/tui"
	"github.com/aretw0/bigroot/pkg/domain"
)

// markdownWrap is the glamour word-wrap width for markdown output.
const markdownWrap = 100

// ComputeOptions contains everything the root command needs.
type ComputeOptions struct {
	Config config.Config
	Args   []string
	Debug  bool
	// Quiet suppresses the header and status lines on Stderr.
	Quiet bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunCompute prints the root of every argument, or of every Stdin line when
// there are none. Results go to Stdout; headers, progress and logs to Stderr.
func RunCompute(ctx context.Context, opts ComputeOptions) error {
	cfg := opts.Config
	logger, err := logging.FromLevelName(opts.Stderr, cfg.Log.Level, opts.Debug)
	if err != nil {
		return err
	}

	render := tui.NewPlainRenderer(markdownWrap)
	if tui.IsTerminal(opts.Stdout) {
		render = tui.NewRenderer(markdownWrap)
	}
	formatter, err := format.New(cfg.Format, render)
	if err != nil {
		return err
	}

	progress, err := tui.NewProgressHooks(cfg.Progress, opts.Stderr)
	if err != nil {
		return err
	}

	cache, err := OpenCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	calc, err := NewCalculator(cfg, cache, logger, progress)
	if err != nil {
		return err
	}

	runner := bigroot.NewRunner(opts.Stdin, opts.Stdout)
	runner.Renderer = bigroot.ReportRenderer(formatter)
	if !opts.Quiet {
		runner.BeforeCompute = func(q domain.Query) {
			fmt.Fprintln(opts.Stderr, format.Header(q.Input, domain.RoundBits(q.FractionalBits, calc.ShiftBits())))
		}
	}

	logger.Debug("Starting computation", "format", cfg.Format, "base", cfg.Base, "args", len(opts.Args))
	return runner.Run(ctx, calc, Template(cfg), opts.Args)
}

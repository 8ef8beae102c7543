package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress modes accepted by NewProgressHooks.
const (
	ModeOff  = "off"
	ModeText = "text"
	ModeBar  = "bar"
	ModeAuto = "auto"
)

// Reporter displays fractional-phase progress.
type Reporter interface {
	Progress(e *domain.ProgressEvent)
	Complete()
}

// Hooks adapts a Reporter to engine lifecycle hooks.
// Complete is only called when progress was shown, so perfect squares stay silent.
func Hooks(r Reporter) domain.LifecycleHooks {
	started := false
	return domain.LifecycleHooks{
		OnStart: func(context.Context, *domain.ComputeEvent) {
			started = false
		},
		OnProgress: func(_ context.Context, e *domain.ProgressEvent) {
			started = true
			r.Progress(e)
		},
		OnComplete: func(context.Context, *domain.ComputeEvent) {
			if started {
				r.Complete()
			}
		},
	}
}

// NewProgressHooks builds hooks for mode, writing to w (normally stderr).
// ModeAuto picks the bar on a terminal and text otherwise.
func NewProgressHooks(mode string, w io.Writer) (domain.LifecycleHooks, error) {
	switch mode {
	case "", ModeOff:
		return domain.LifecycleHooks{}, nil
	case ModeText:
		return Hooks(NewTextProgress(w)), nil
	case ModeBar:
		return Hooks(NewBarProgress(w)), nil
	case ModeAuto:
		if IsTerminal(w) {
			return Hooks(NewBarProgress(w)), nil
		}
		return Hooks(NewTextProgress(w)), nil
	}
	return domain.LifecycleHooks{}, fmt.Errorf("progress mode %q: %w", mode, domain.ErrInvalidArgument)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TextProgress rewrites one status line: "underway: X.YY%" and finally "complete".
type TextProgress struct {
	w   io.Writer
	out *termenv.Output
}

// NewTextProgress creates a text reporter.
func NewTextProgress(w io.Writer) *TextProgress {
	return &TextProgress{w: w, out: termenv.NewOutput(w)}
}

func (p *TextProgress) Progress(e *domain.ProgressEvent) {
	label := p.out.String("underway:").Foreground(p.out.Color("#a78bfa"))
	fmt.Fprintf(p.w, "\r%s %d.%02d%%", label, e.Hundredths/100, e.Hundredths%100)
}

func (p *TextProgress) Complete() {
	fmt.Fprintf(p.w, "\r%s\n", p.out.String("complete").Foreground(p.out.Color("#22c55e")))
}

// BarProgress draws a progress bar over 10000 hundredths of a percent.
type BarProgress struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	last int
}

// NewBarProgress creates a bar reporter.
func NewBarProgress(w io.Writer) *BarProgress {
	return &BarProgress{w: w}
}

func (p *BarProgress) Progress(e *domain.ProgressEvent) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(10000,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionFullWidth(),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionSetDescription("underway"),
		)
		p.last = 0
	}
	if d := e.Hundredths - p.last; d > 0 {
		_ = p.bar.Add(d)
		p.last = e.Hundredths
	}
}

func (p *BarProgress) Complete() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	fmt.Fprintln(p.w)
}

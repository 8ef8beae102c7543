package bigroot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
)

// Runner drives a Calculator over a batch of numbers using the provided IO.
// This allows the same loop to serve CLI arguments, piped input and tests.
type Runner struct {
	// Input supplies one number per line when Run gets no arguments.
	Input io.Reader
	// Output receives the rendered reports.
	Output io.Writer
	// Renderer formats each report. Defaults to "sqrt(N) = DIGITS".
	Renderer ReportRenderer
	// BeforeCompute is called with each parsed query, e.g. to print a header.
	BeforeCompute func(q domain.Query)
}

// ReportRenderer transforms a report into its textual form.
// This keeps display modes out of the core package.
type ReportRenderer func(*domain.Report) (string, error)

// NewRunner creates a Runner writing to out.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run computes every number in args, or every line of Input when args is empty.
// template supplies precision, base and golden mode; its Input is ignored.
// Lines reading "exit" or "quit" end the input early. The first error stops the run.
func (r *Runner) Run(ctx context.Context, calc *Calculator, template domain.Query, args []string) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := r.one(ctx, calc, template, arg); err != nil {
				return err
			}
		}
		return nil
	}

	if r.Input == nil {
		return fmt.Errorf("no numbers given and no input reader set")
	}
	lines := bufio.NewReader(r.Input)
	for {
		text, err := lines.ReadString('\n')
		clean, sanitizeErr := SanitizeInput(text)
		if sanitizeErr != nil {
			return sanitizeErr
		}
		line := strings.TrimSpace(clean)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line != "" {
			if err := r.one(ctx, calc, template, line); err != nil {
				return err
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
	}
}

func (r *Runner) one(ctx context.Context, calc *Calculator, template domain.Query, arg string) error {
	n, err := bigint.Parse(arg)
	if err != nil {
		return err
	}
	q := template
	q.Input = n

	if r.BeforeCompute != nil {
		r.BeforeCompute(q)
	}
	report, err := calc.Compute(ctx, q)
	if err != nil {
		return fmt.Errorf("sqrt(%s): %w", arg, err)
	}

	render := r.Renderer
	if render == nil {
		render = defaultRenderer
	}
	out, err := render(report)
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	_, err = fmt.Fprintln(r.Output, strings.TrimRight(out, "\n"))
	return err
}

func defaultRenderer(rep *domain.Report) (string, error) {
	if rep.Perfect() {
		return fmt.Sprintf("%s = %s^2", rep.Input, rep.Result.IntegerPart), nil
	}
	return fmt.Sprintf("sqrt(%s) = %s", rep.Input, rep.Digits), nil
}

// Package format renders computed reports in the CLI display modes.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/dustin/go-humanize"
)

// Display modes.
const (
	ModePlain    = "plain"
	ModeList     = "list"
	ModeWrap     = "wrap"
	ModeJSON     = "json"
	ModeMarkdown = "markdown"
)

// Wrap geometry: the first line is indented by two spaces.
const (
	wrapIndent = "  "
	wrapFirst  = 78
	wrapWidth  = 80
)

// Formatter turns a report into text, without a trailing newline.
type Formatter func(*domain.Report) (string, error)

// MarkdownRenderer post-processes markdown, e.g. into ANSI for a terminal.
type MarkdownRenderer func(string) (string, error)

// New returns the formatter for mode. render is only used by ModeMarkdown;
// nil leaves the markdown raw.
func New(mode string, render MarkdownRenderer) (Formatter, error) {
	switch mode {
	case "", ModePlain:
		return wrapString(Plain), nil
	case ModeList:
		return wrapString(List), nil
	case ModeWrap:
		return wrapString(Wrap), nil
	case ModeJSON:
		return JSON, nil
	case ModeMarkdown:
		return func(r *domain.Report) (string, error) {
			md := Markdown(r)
			if render == nil {
				return md, nil
			}
			out, err := render(md)
			if err != nil {
				return "", err
			}
			return strings.TrimRight(out, "\n"), nil
		}, nil
	}
	return nil, fmt.Errorf("display mode %q: %w", mode, domain.ErrInvalidArgument)
}

func wrapString(f func(*domain.Report) string) Formatter {
	return func(r *domain.Report) (string, error) {
		return f(r), nil
	}
}

// Header is the line announced before each computation.
func Header(n *big.Int, bits uint64) string {
	return fmt.Sprintf("Calculating sqrt(%s) for %s bits", n, humanBits(bits))
}

func humanBits(bits uint64) string {
	if bits > math.MaxInt64 {
		return fmt.Sprint(bits)
	}
	return humanize.Comma(int64(bits))
}

// perfect renders "N = R^2". Every mode uses it for perfect squares.
func perfect(r *domain.Report) string {
	return fmt.Sprintf("%s = %s^2", r.Input, r.Result.IntegerPart)
}

// Plain renders "sqrt(N) = DIGITS".
func Plain(r *domain.Report) string {
	if r.Perfect() {
		return perfect(r)
	}
	return fmt.Sprintf("sqrt(%s) = %s", r.Input, r.Digits)
}

// List renders one "<index> <digit>" line per digit. The point is skipped
// and does not take an index.
func List(r *domain.Report) string {
	if r.Perfect() {
		return perfect(r)
	}
	var sb strings.Builder
	sb.Grow(len(r.Digits) * 6)
	n := 0
	for i := 0; i < len(r.Digits); i++ {
		if r.Digits[i] == '.' {
			continue
		}
		n++
		if n > 1 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d %c", n, r.Digits[i])
	}
	return sb.String()
}

// Wrap renders the digits indented by two spaces and wrapped at 80 columns.
func Wrap(r *domain.Report) string {
	if r.Perfect() {
		return perfect(r)
	}
	d := r.Digits
	var sb strings.Builder
	sb.Grow(len(d) + len(d)/wrapWidth + 4)

	first := min(len(d), wrapFirst)
	sb.WriteString(wrapIndent)
	sb.WriteString(d[:first])
	for offs := first; offs < len(d); offs += wrapWidth {
		sb.WriteByte('\n')
		sb.WriteString(d[offs:min(len(d), offs+wrapWidth)])
	}
	return sb.String()
}

// JSON renders the report as indented JSON.
func JSON(r *domain.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Markdown renders a short summary document.
func Markdown(r *domain.Report) string {
	var sb strings.Builder
	title := "sqrt"
	if r.Golden {
		title = "(1 + sqrt) / 2 of"
	}
	fmt.Fprintf(&sb, "# %s %s\n\n", title, r.Input)

	sb.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Base | %d |\n", r.Base)
	fmt.Fprintf(&sb, "| Fraction bits | %s |\n", humanBits(r.Bits))
	fmt.Fprintf(&sb, "| Digit group | %d bits |\n", r.ShiftBits)
	fmt.Fprintf(&sb, "| Perfect square | %s |\n", yesNo(r.Perfect()))
	fmt.Fprintf(&sb, "| Cached | %s |\n", yesNo(r.Cached))
	sb.WriteString("\n")

	if r.Perfect() {
		fmt.Fprintf(&sb, "`%s`\n", perfect(r))
	} else {
		fmt.Fprintf(&sb, "```\n%s\n```\n", r.Digits)
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

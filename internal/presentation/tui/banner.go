package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{`  _     _                       _   `, "#818cf8"},
	{` | |__ (_) __ _ _ __ ___   ___ | |_ `, "#a78bfa"},
	{` | '_ \| |/ _' | '__/ _ \ / _ \| __|`, "#c084fc"},
	{` | |_) | | (_| | | | (_) | (_) | |_ `, "#e879f9"},
	{` |_.__/|_|\__, |_|  \___/ \___/ \__|`, "#f472b6"},
	{`          |___/                     `, "#fb7185"},
}

// PrintBanner writes the ASCII art banner and version to w.
// Colors are dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintf(w, " %s\n\n", out.String("v"+strings.TrimSpace(version)).Faint())
}

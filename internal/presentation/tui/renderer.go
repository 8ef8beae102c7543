package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects a light or dark background; wrap <= 0 disables word wrapping.
// If the renderer cannot be built, markdown is returned unchanged.
func NewRenderer(wrap int) func(string) (string, error) {
	return newRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(max(wrap, 0)))
}

// NewPlainRenderer renders markdown without colors, for pipes and files.
func NewPlainRenderer(wrap int) func(string) (string, error) {
	return newRenderer(glamour.WithStandardStyle("notty"), glamour.WithWordWrap(max(wrap, 0)))
}

func newRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Package tui holds the terminal presentation helpers for the CLI player.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders story text through glamour,
// picking a style that matches the terminal background. Paragraphs are
// plain markdown, so authors get emphasis and lists for free.
func NewRenderer(width int) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to raw text; the player stays usable on odd terminals.
		return func(text string) (string, error) { return text + "\n", nil }
	}
	return func(text string) (string, error) {
		return r.Render(text)
	}
}

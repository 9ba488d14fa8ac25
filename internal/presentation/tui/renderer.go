package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a markdown renderer for replies and menus. When glamour
// cannot build a renderer the text is passed through unchanged.
func NewRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithEmoji(),
			glamour.WithWordWrap(80),
		}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return plain
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown, err
		}
		return strings.TrimRight(out, "\n") + "\n", nil
	}
}

func plain(markdown string) (string, error) {
	return markdown, nil
}

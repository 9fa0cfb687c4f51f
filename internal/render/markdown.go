package render

import (
	"github.com/charmbracelet/glamour"
)

// Markdown renders a Markdown document for the terminal. Callers should
// fall back to the raw text if rendering fails.
func Markdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

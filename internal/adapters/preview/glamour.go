package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

// Renderer implements ports.Previewer with glamour markdown rendering
type Renderer struct {
	style string
	width int
}

// NewRenderer creates a renderer. An empty style picks light or dark from
// the terminal background; "notty" renders plain text.
func NewRenderer(style string, width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{style: style, width: width}
}

// Render renders the note as markdown under a heading with its label
func (r *Renderer) Render(label, text string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	tr, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(r.width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	var md strings.Builder
	if label != "" {
		fmt.Fprintf(&md, "# %s\n\n", label)
	}
	md.WriteString(text)

	out, err := tr.Render(md.String())
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

package render

import "github.com/charmbracelet/lipgloss"

// styles are bound to a renderer so output written to a pipe or a buffer
// carries no escape codes.
type styles struct {
	header  lipgloss.Style
	pinned  lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	muted   lipgloss.Style
	danger  lipgloss.Style
	warning lipgloss.Style
	value   lipgloss.Style
	doc     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		pinned: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		done: r.NewStyle().
			Foreground(lipgloss.Color("42")),
		pending: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		danger: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		value: r.NewStyle().
			Bold(true),
		doc: r.NewStyle().Padding(0, 1),
	}
}

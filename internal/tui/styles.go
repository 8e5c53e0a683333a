package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App         lipgloss.Style
	Pane        lipgloss.Style
	Title       lipgloss.Style
	Header      lipgloss.Style
	Row         lipgloss.Style
	RowFocused  lipgloss.Style
	Gutter      lipgloss.Style
	Detail      lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	Empty       lipgloss.Style
	HintKey     lipgloss.Style // Key portion of hints (e.g., "j/k")
	HintDesc    lipgloss.Style // Description portion of hints (e.g., "scroll")
	Prompt      lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Header: lipgloss.NewStyle().
			Foreground(subtle),

		Row: lipgloss.NewStyle().
			Foreground(primary),

		RowFocused: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Gutter: lipgloss.NewStyle().
			Foreground(subtle),

		Detail: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Placeholder: lipgloss.NewStyle().
			Foreground(border),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Prompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}

package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Viewport ViewportConfig
	Input    InputConfig
	Text     TextConfig
}

// ViewportConfig holds the dimensions around the scrolling list.
type ViewportConfig struct {
	// HeightReduction is subtracted from terminal height for the list body.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum body height.
	MinHeight int

	// WidthReduction is subtracted from terminal width for row content.
	// Accounts for: app padding (4) + pane borders (2) + pane padding (2) = 8
	WidthReduction int

	// MinWidth is the minimum row width.
	MinWidth int

	// GutterWidth is the width of the index column in front of each row.
	GutterWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	JumpCharLimit int
	JumpWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Viewport: ViewportConfig{
			HeightReduction: 7, // app padding (1) + header (1) + pane borders (2) + help bar (3)
			MinHeight:       1,
			WidthReduction:  8,
			MinWidth:        10,
			GutterWidth:     6,
		},
		Input: InputConfig{
			JumpCharLimit: 100,
			JumpWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}

package pager

// Config configures the pager Model.
type Config struct {
	// Source is the display name shown in the status bar.
	Source string

	// Scrolloff is the minimum number of rows kept between the focused
	// content and the screen edges.
	Scrolloff int

	// Rendering options.
	ShowLineNums bool
	Style        Style

	KeyMap KeyMap
}

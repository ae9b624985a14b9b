package bookchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int // user message accent
	Assistant int // assistant message text
	Error     int // error banner
	Success   int // booking confirmation accents
	Muted     int // status bar, placeholders
	Accent    int // confirmation panel headings
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: -1,
		Error:     1,
		Success:   2,
		Muted:     8,
		Accent:    5,
	}
}

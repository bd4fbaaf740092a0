package consult

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Accent  int // headings, section titles
	Preview int // streamed narration preview
	Error   int // failure messages
	Success int // completion indicators
	Muted   int // status bar, hints
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent:  5,
		Preview: 6,
		Error:   1,
		Success: 2,
		Muted:   8,
	}
}

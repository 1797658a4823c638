package snapio

import (
	"github.com/fatih/color"
)

// Style is a set of SGR attributes applied together.
type Style []color.Attribute

// Theme maps the semantic roles used by usage text, errors and the logger to
// styles.
type Theme struct {
	Header  Style
	Flag    Style
	Error   Style
	Warning Style
	Success Style
	Info    Style
	Debug   Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Header:  Style{color.Bold},
		Flag:    Style{color.FgCyan},
		Error:   Style{color.FgRed, color.Bold},
		Warning: Style{color.FgYellow},
		Success: Style{color.FgGreen},
		Info:    Style{color.FgBlue},
		Debug:   Style{color.FgMagenta},
	}
}

// Paint renders s with style when m supports color, otherwise returns s.
func (m *IOManager) Paint(style Style, s string) string {
	if len(style) == 0 || !m.SupportsColor() {
		return s
	}
	c := color.New(style...)
	// fatih/color decides on its own from os.Stdout; the manager has already
	// made that decision for its writers.
	c.EnableColor()
	return c.Sprint(s)
}

// Bold returns s in bold when color is supported.
func (m *IOManager) Bold(s string) string { return m.Paint(Style{color.Bold}, s) }

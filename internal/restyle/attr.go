package restyle

import "github.com/charmbracelet/lipgloss"

// FontFamily is a font family hint carried by a resolved style. Terminal
// backends are effectively always monospaced; the hint exists for backends
// that can distinguish families.
type FontFamily int

const (
	FontNone FontFamily = iota
	FontMono
	FontSans
	FontSerif
)

func (f FontFamily) String() string {
	switch f {
	case FontMono:
		return "mono"
	case FontSans:
		return "sans"
	case FontSerif:
		return "serif"
	default:
		return "none"
	}
}

// Attr is the resolved visual style for one token type under one chroma
// style: the concrete attributes a widget applies over a character range.
type Attr struct {
	FontFamily FontFamily
	Bold       bool
	Italic     bool
	Underline  bool
	Foreground string // hex color such as "#0000ff"; empty means unset
}

// Lipgloss converts the attr into a lipgloss style for terminal rendering.
func (a Attr) Lipgloss() lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(a.Bold).
		Italic(a.Italic).
		Underline(a.Underline)
	if a.Foreground != "" {
		s = s.Foreground(lipgloss.Color(a.Foreground))
	}
	return s
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thiagokokada/guit-go/internal/config"
)

// Styles holds every style the view uses.
type Styles struct {
	Title        lipgloss.Style
	Normal       lipgloss.Style
	Dim          lipgloss.Style
	Hash         lipgloss.Style
	Author       lipgloss.Style
	Highlighted  lipgloss.Style
	Error        lipgloss.Style
	Border       lipgloss.Style
	ActiveBorder lipgloss.Style
}

// NewStyles builds the styles for a palette and applies the overrides from
// the configuration file on top.
func NewStyles(p colorPalette, overrides config.Styles) Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	s := Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(p.Title),
		Normal:       lipgloss.NewStyle().Foreground(p.Text),
		Dim:          lipgloss.NewStyle().Foreground(p.Dim),
		Hash:         lipgloss.NewStyle().Foreground(p.Hash),
		Author:       lipgloss.NewStyle().Foreground(p.Author),
		Highlighted:  lipgloss.NewStyle().Bold(true).Foreground(p.HighlightFG).Background(p.HighlightBG),
		Error:        lipgloss.NewStyle().Foreground(p.Error),
		Border:       box.BorderForeground(p.Border),
		ActiveBorder: box.BorderForeground(p.ActiveBorder),
	}
	s.Title = applyStyle(s.Title, overrides.Title)
	s.Normal = applyStyle(s.Normal, overrides.Normal)
	s.Highlighted = applyStyle(s.Highlighted, overrides.Highlighted)
	s.Error = applyStyle(s.Error, overrides.Error)
	if o := overrides.ActiveBorder; o != nil && o.FG != "" {
		s.ActiveBorder = s.ActiveBorder.BorderForeground(parseColor(o.FG))
	}
	return s
}

func applyStyle(base lipgloss.Style, o *config.Style) lipgloss.Style {
	if o == nil {
		return base
	}
	if o.FG != "" {
		base = base.Foreground(parseColor(o.FG))
	}
	if o.BG != "" {
		base = base.Background(parseColor(o.BG))
	}
	for _, mod := range o.Modifiers {
		switch mod {
		case "bold":
			base = base.Bold(true)
		case "italic":
			base = base.Italic(true)
		case "underlined":
			base = base.Underline(true)
		case "reversed":
			base = base.Reverse(true)
		}
	}
	return base
}

// ANSI numbers of the basic terminal colors.
var namedColors = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"magenta":      "5",
	"cyan":         "6",
	"gray":         "7",
	"darkgray":     "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"white":        "15",
}

func parseColor(raw string) lipgloss.Color {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(raw))
	if ansi, ok := namedColors[key]; ok {
		return lipgloss.Color(ansi)
	}
	return lipgloss.Color(strings.TrimSpace(raw))
}

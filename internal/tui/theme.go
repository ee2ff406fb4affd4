package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	darkmode "github.com/thiagokokada/dark-mode-go"
)

type ThemePreference int

const (
	ThemeAuto ThemePreference = iota
	ThemeLight
	ThemeDark
)

func (p ThemePreference) String() string {
	switch p {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

type colorPalette struct {
	name         string
	Text         lipgloss.Color
	Dim          lipgloss.Color
	Hash         lipgloss.Color
	Author       lipgloss.Color
	Title        lipgloss.Color
	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
	HighlightFG  lipgloss.Color
	HighlightBG  lipgloss.Color
	Error        lipgloss.Color
}

var (
	lightPalette = colorPalette{
		name:         "light",
		Text:         lipgloss.Color("#1f1f1f"),
		Dim:          lipgloss.Color("#7a7a7a"),
		Hash:         lipgloss.Color("#9a6700"),
		Author:       lipgloss.Color("#0969da"),
		Title:        lipgloss.Color("#1f1f1f"),
		Border:       lipgloss.Color("#b0b0b0"),
		ActiveBorder: lipgloss.Color("#1e90ff"),
		HighlightFG:  lipgloss.Color("#000000"),
		HighlightBG:  lipgloss.Color("#8fd694"),
		Error:        lipgloss.Color("#cf222e"),
	}
	darkPalette = colorPalette{
		name:         "dark",
		Text:         lipgloss.Color("#e6e6e6"),
		Dim:          lipgloss.Color("#8b8b8b"),
		Hash:         lipgloss.Color("#e5c07b"),
		Author:       lipgloss.Color("#87cefa"),
		Title:        lipgloss.Color("#ffffff"),
		Border:       lipgloss.Color("#5c5c5c"),
		ActiveBorder: lipgloss.Color("#87cefa"),
		HighlightFG:  lipgloss.Color("#000000"),
		HighlightBG:  lipgloss.Color("#2e8b57"),
		Error:        lipgloss.Color("#ff6b6b"),
	}
	detectDarkMode = darkmode.IsDarkMode
)

func ThemePreferenceFromString(raw string) ThemePreference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeDark.String():
		return ThemeDark
	case ThemeLight.String():
		return ThemeLight
	default:
		return ThemeAuto
	}
}

func paletteForPreference(pref ThemePreference) colorPalette {
	switch pref {
	case ThemeDark:
		return darkPalette
	case ThemeLight:
		return lightPalette
	default:
		if detectDarkMode != nil {
			dark, err := detectDarkMode()
			if err != nil {
				slog.Debug("detect dark-mode", slog.Any("error", err))
				return darkPalette
			}
			if !dark {
				return lightPalette
			}
		}
		return darkPalette
	}
}

// Package ui provides the visual styling for the linguacart terminal chat:
// a small light/dark theme and the lipgloss styles derived from it.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by both themes.
var (
	lightForeground = lipgloss.Color("#1d2733")
	lightAccent     = lipgloss.Color("#2e7d32")
	lightMuted      = lipgloss.Color("#8a94a1")
	lightBorder     = lipgloss.Color("#d6dae0")

	darkForeground = lipgloss.Color("#e8eaed")
	darkAccent     = lipgloss.Color("#81c784")
	darkMuted      = lipgloss.Color("#5f6b7a")
	darkBorder     = lipgloss.Color("#2a3850")

	errorColor   = lipgloss.Color("#e53935")
	warningColor = lipgloss.Color("#ffc107")
)

// Theme holds the active color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Accent:     lightAccent,
		Muted:      lightMuted,
		Border:     lightBorder,
	}
}

// DarkTheme returns the dark scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Accent:     darkAccent,
		Muted:      darkMuted,
		Border:     darkBorder,
		IsDark:     true,
	}
}

// ResolveTheme picks a theme by name: "light", "dark", or "auto" (terminal
// background detection via COLORFGBG, defaulting to dark).
func ResolveTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		if bg := os.Getenv("COLORFGBG"); bg != "" {
			parts := strings.Split(bg, ";")
			last := parts[len(parts)-1]
			// COLORFGBG backgrounds 0-6 and 8 are dark.
			if last == "7" || last == "15" {
				return LightTheme()
			}
		}
		return DarkTheme()
	}
}

// Styles bundles the lipgloss styles the chat and tables use.
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Assistant lipgloss.Style
	User      lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Prompt    lipgloss.Style
	Divider   lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme:     t,
		Title:     lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Body:      lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Bold:      lipgloss.NewStyle().Foreground(t.Foreground).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(t.Accent),
		User:      lipgloss.NewStyle().Foreground(t.Foreground).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(errorColor),
		Warning:   lipgloss.NewStyle().Foreground(warningColor),
		Prompt:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Divider:   lipgloss.NewStyle().Foreground(t.Border),
	}
}

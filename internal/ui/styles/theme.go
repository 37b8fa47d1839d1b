// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Containers
	App    lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style
	Brand  lipgloss.Style

	// Content
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	Tag          lipgloss.Style
	BackLink     lipgloss.Style

	// Forms
	Label      lipgloss.Style
	FieldError lipgloss.Style
	FormError  lipgloss.Style
	Success    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Feedback
	Muted   lipgloss.Style
	Spinner lipgloss.Style
}

// NewTheme builds a theme for the detected terminal. mode is "dark",
// "light", or "auto".
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}

	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Background(Navy).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(Navy).
		Bold(true)

	t.Brand = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardSelected = t.Card.
		BorderForeground(Navy)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Tag = lipgloss.NewStyle().
		Background(TagBg).
		Foreground(TagFg).
		Padding(0, 1)

	t.BackLink = lipgloss.NewStyle().
		Foreground(Navy).
		Underline(true)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Navy)

	return t
}

// Resize records the current terminal dimensions on the theme.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
}

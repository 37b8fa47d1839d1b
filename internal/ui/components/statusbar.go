// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/universeapp/universe-tui/internal/ui/styles"
	"github.com/universeapp/universe-tui/internal/util"
)

// Shortcut is one key hint rendered in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: identity on the left, shortcuts on the
// right.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar creates a status bar bound to the theme.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// Render renders the bar at the given width.
func (b StatusBar) Render(width int, identity string, shortcuts []Shortcut) string {
	var hints []string
	for _, sc := range shortcuts {
		hints = append(hints,
			b.theme.ShortcutKey.Render(sc.Key)+" "+b.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	left := identity
	if left == "" {
		left = "not logged in"
	}

	// Truncate the identity first; shortcuts are the more useful half.
	avail := width - util.StringWidth(right) - 4
	if avail < 0 {
		avail = 0
	}
	left = util.TruncateWidth(left, avail)

	gap := width - util.StringWidth(left) - util.StringWidth(right) - 2
	if gap < 1 {
		gap = 1
	}

	return b.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

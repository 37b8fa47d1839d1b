// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/universeapp/universe-tui/internal/ui/styles"
	"github.com/universeapp/universe-tui/internal/util"
)

// Card is one selectable entry in a list view: a class, a discussion, or a
// recently viewed item.
type Card struct {
	Title    string
	Meta     string
	Snippet  string
	Tags     []string
	Selected bool
}

// Render renders the card at the given width.
func (c Card) Render(theme *styles.Theme, width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var sb strings.Builder
	sb.WriteString(theme.CardTitle.Render(util.TruncateWidth(c.Title, inner)))
	if c.Meta != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.CardMeta.Render(util.TruncateWidth(c.Meta, inner)))
	}
	if c.Snippet != "" {
		sb.WriteString("\n")
		sb.WriteString(util.TruncateWidth(util.FirstLine(c.Snippet), inner))
	}
	if len(c.Tags) > 0 {
		var pills []string
		for _, tag := range c.Tags {
			pills = append(pills, theme.Tag.Render(tag))
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Join(pills, " "))
	}

	style := theme.Card
	if c.Selected {
		style = theme.CardSelected
	}
	return style.Width(width - 2).Render(sb.String())
}

// RenderCardList renders cards stacked vertically.
func RenderCardList(theme *styles.Theme, width int, cards []Card) string {
	var parts []string
	for _, c := range cards {
		parts = append(parts, c.Render(theme, width))
	}
	return strings.Join(parts, "\n")
}

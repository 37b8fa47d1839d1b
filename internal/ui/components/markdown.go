// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders discussion and reply bodies as terminal markdown.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer for the given wrap width and theme
// mode ("dark", "light", or "auto").
func NewMarkdownRenderer(width int, mode string) (*MarkdownRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	}
	switch mode {
	case "dark":
		opts = append(opts, glamour.WithStandardStyle("dark"))
	case "light":
		opts = append(opts, glamour.WithStandardStyle("light"))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r, width: width}, nil
}

// Render renders markdown source. On renderer failure the raw source is
// returned; a body must never disappear because styling failed.
func (m *MarkdownRenderer) Render(source string) string {
	if m == nil || m.renderer == nil {
		return source
	}
	out, err := m.renderer.Render(source)
	if err != nil {
		return source
	}
	return out
}

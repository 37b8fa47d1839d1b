// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/ui/styles"
)

// Field is a labeled text input with an inline validation error.
type Field struct {
	Input textinput.Model
	Label string
	Err   string
}

// NewField creates a field with the given label and placeholder.
func NewField(label, placeholder string) Field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	return Field{Input: in, Label: label}
}

// NewPasswordField creates a field that masks its input.
func NewPasswordField(label string) Field {
	f := NewField(label, "")
	f.Input.EchoMode = textinput.EchoPassword
	f.Input.EchoCharacter = '*'
	return f
}

// Value returns the trimmed input value.
func (f Field) Value() string {
	return strings.TrimSpace(f.Input.Value())
}

// Update forwards messages to the underlying input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return f, cmd
}

// Render renders the label, input, and any validation error.
func (f Field) Render(theme *styles.Theme) string {
	var sb strings.Builder
	sb.WriteString(theme.Label.Render(f.Label))
	sb.WriteString("\n")
	sb.WriteString(f.Input.View())
	if f.Err != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.FieldError.Render(f.Err))
	}
	return sb.String()
}

// Form is an ordered set of fields with one focused at a time.
type Form struct {
	Fields  []Field
	focused int

	// Err is the form-level error, rendered above the fields. It holds the
	// last operation failure verbatim.
	Err string
}

// NewForm creates a form and focuses the first field.
func NewForm(fields ...Field) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
	return f
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focused
}

// Next moves focus to the next field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.focus((f.focused + 1) % len(f.Fields))
}

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.focus((f.focused - 1 + len(f.Fields)) % len(f.Fields))
}

func (f *Form) focus(i int) tea.Cmd {
	f.Fields[f.focused].Input.Blur()
	f.focused = i
	return f.Fields[f.focused].Input.Focus()
}

// Update forwards messages to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	var cmd tea.Cmd
	f.Fields[f.focused], cmd = f.Fields[f.focused].Update(msg)
	return f, cmd
}

// ClearErrors clears the form-level and all field-level errors.
func (f *Form) ClearErrors() {
	f.Err = ""
	for i := range f.Fields {
		f.Fields[i].Err = ""
	}
}

// HasFieldErrors reports whether any field failed validation.
func (f Form) HasFieldErrors() bool {
	for _, field := range f.Fields {
		if field.Err != "" {
			return true
		}
	}
	return false
}

// Render renders the form-level error followed by every field.
func (f Form) Render(theme *styles.Theme) string {
	var parts []string
	if f.Err != "" {
		parts = append(parts, theme.FormError.Render(f.Err))
	}
	for _, field := range f.Fields {
		parts = append(parts, field.Render(theme))
	}
	return strings.Join(parts, "\n\n")
}

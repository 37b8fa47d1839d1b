// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// loginResultMsg carries the outcome of an async login attempt.
type loginResultMsg struct {
	token string
	res   session.Result
}

// LoginView is the email/password login form.
type LoginView struct {
	deps    Deps
	form    components.Form
	spinner components.Spinner
	busy    bool
	token   string
}

// NewLoginView creates the login view.
func NewLoginView(deps Deps) *LoginView {
	return &LoginView{
		deps: deps,
		form: components.NewForm(
			components.NewField("Email", "you@university.edu"),
			components.NewPasswordField("Password"),
		),
		spinner: components.NewSpinner("Signing in"),
	}
}

// Init focuses the form.
func (v *LoginView) Init() tea.Cmd {
	return nil
}

// Update handles form input and submission.
func (v *LoginView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.busy = false
		v.spinner.Stop()
		if !msg.res.OK {
			v.form.Err = msg.res.Err
			return v, nil
		}
		return v, navigate(NavigateMsg{To: nav.RouteHome, Replace: true})

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			return v, v.form.Next()
		case "shift+tab", "up":
			return v, v.form.Prev()
		case "enter":
			return v, v.submit()
		case "ctrl+s":
			return v, navigate(NavigateMsg{To: nav.RouteSignup, Replace: true})
		}
	}

	var cmd tea.Cmd
	if v.busy {
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// submit validates locally, then fires the login request.
func (v *LoginView) submit() tea.Cmd {
	v.form.ClearErrors()

	email := v.form.Fields[0].Value()
	password := v.form.Fields[1].Input.Value()
	if email == "" {
		v.form.Fields[0].Err = "Email is required"
	}
	if password == "" {
		v.form.Fields[1].Err = "Password is required"
	}
	if v.form.HasFieldErrors() {
		return nil
	}

	v.busy = true
	v.token = newToken()
	token := v.token
	sessions := v.deps.Sessions

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		res := sessions.Login(context.Background(), email, password)
		return loginResultMsg{token: token, res: res}
	})
}

// View renders the form.
func (v *LoginView) View() string {
	theme := v.deps.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Log in to UniVerse"))
	sb.WriteString("\n\n")
	sb.WriteString(v.form.Render(theme))
	sb.WriteString("\n\n")
	if v.busy {
		sb.WriteString(v.spinner.View())
	} else {
		sb.WriteString(theme.Muted.Render("enter submit · ctrl+s sign up · esc back"))
	}
	return sb.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// profileResultMsg carries the outcome of an async profile update.
type profileResultMsg struct {
	token string
	res   session.Result
}

// ProfileView shows the authenticated user's profile and lets them change
// their display name or password. Logging out also lives here.
type ProfileView struct {
	deps    Deps
	form    components.Form
	spinner components.Spinner
	busy    bool
	token   string
	saved   bool
}

// NewProfileView creates the profile view, prefilled from the session.
func NewProfileView(deps Deps) *ProfileView {
	name := components.NewField("Display name", "")
	if s, ok := deps.Sessions.Current(); ok {
		name.Input.SetValue(s.Name)
	}
	password := components.NewPasswordField("New password (blank to keep)")

	return &ProfileView{
		deps:    deps,
		form:    components.NewForm(name, password),
		spinner: components.NewSpinner("Saving"),
	}
}

// Init is a no-op; the profile renders from the session snapshot.
func (v *ProfileView) Init() tea.Cmd {
	return nil
}

// Update handles edits, submission, and logout.
func (v *ProfileView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case profileResultMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.busy = false
		v.spinner.Stop()
		if !msg.res.OK {
			v.form.Err = msg.res.Err
			return v, nil
		}
		v.saved = true
		v.form.Fields[1].Input.SetValue("")
		return v, nil

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
		case "ctrl+l":
			v.deps.Sessions.Logout()
			return v, navigate(NavigateMsg{To: nav.RouteLogin, Replace: true})
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

// submit validates and fires the update request for the session owner.
func (v *ProfileView) submit() tea.Cmd {
	v.form.ClearErrors()
	v.saved = false

	current, ok := v.deps.Sessions.Current()
	if !ok {
		v.form.Err = "You must be logged in to update your profile."
		return nil
	}

	name := v.form.Fields[0].Value()
	password := v.form.Fields[1].Input.Value()

	if name == "" {
		v.form.Fields[0].Err = "Name cannot be empty"
	}
	if password != "" && len(password) < 6 {
		v.form.Fields[1].Err = "Password must be at least 6 characters"
	}
	if v.form.HasFieldErrors() {
		return nil
	}

	upd := api.ProfileUpdate{Password: password}
	if name != current.Name {
		upd.Name = name
	}
	if upd.Name == "" && upd.Password == "" {
		return nil
	}

	v.busy = true
	v.token = newToken()
	token := v.token
	sessions := v.deps.Sessions
	userID := current.ID

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		res := sessions.UpdateProfile(context.Background(), userID, upd)
		return profileResultMsg{token: token, res: res}
	})
}

// View renders the profile.
func (v *ProfileView) View() string {
	theme := v.deps.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Your profile"))
	sb.WriteString("\n\n")

	if s, ok := v.deps.Sessions.Current(); ok {
		sb.WriteString(theme.Label.Render("Email") + "  " + s.Email + "\n")
		if s.University != "" {
			sb.WriteString(theme.Label.Render("University") + "  " + s.University + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(v.form.Render(theme))
	sb.WriteString("\n\n")
	if v.saved {
		sb.WriteString(theme.Success.Render("Profile updated."))
		sb.WriteString("\n")
	}
	if v.busy {
		sb.WriteString(v.spinner.View())
	} else {
		sb.WriteString(theme.Muted.Render("enter save · ctrl+l log out · esc back"))
	}
	return sb.String()
}

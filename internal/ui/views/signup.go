// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/model"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// universitiesMsg carries the university list for the picker.
type universitiesMsg struct {
	token string
	unis  []model.University
	err   error
}

// signupResultMsg carries the outcome of an async signup attempt.
type signupResultMsg struct {
	token string
	res   session.Result
}

// SignupView is the account creation form: name, email, password, and a
// university picker.
type SignupView struct {
	deps    Deps
	form    components.Form
	spinner components.Spinner
	busy    bool
	token   string

	unis     []model.University
	uniIndex int
	loadErr  string
}

// NewSignupView creates the signup view and starts loading universities.
func NewSignupView(deps Deps) *SignupView {
	return &SignupView{
		deps: deps,
		form: components.NewForm(
			components.NewField("Name", "Ada Lovelace"),
			components.NewField("Email", "you@university.edu"),
			components.NewPasswordField("Password"),
		),
		spinner: components.NewSpinner("Loading universities"),
	}
}

// Init fires the university list load.
func (v *SignupView) Init() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		unis, err := client.ListUniversities(context.Background(), "")
		return universitiesMsg{token: token, unis: unis, err: err}
	})
}

// Update handles picker data, form input, and submission.
func (v *SignupView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case universitiesMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.spinner.Stop()
		if msg.err != nil {
			v.loadErr = session.GenericNetworkError
			if apiErr, ok := api.APIError(msg.err); ok {
				v.loadErr = apiErr.Message
			}
			return v, nil
		}
		v.unis = msg.unis
		return v, nil

	case signupResultMsg:
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
		case "left":
			if len(v.unis) > 0 {
				v.uniIndex = (v.uniIndex - 1 + len(v.unis)) % len(v.unis)
			}
			return v, nil
		case "right":
			if len(v.unis) > 0 {
				v.uniIndex = (v.uniIndex + 1) % len(v.unis)
			}
			return v, nil
		case "enter":
			return v, v.submit()
		case "ctrl+s":
			return v, navigate(NavigateMsg{To: nav.RouteLogin, Replace: true})
		}
	}

	var cmd tea.Cmd
	if v.spinner.IsActive() {
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// submit validates locally, then fires the signup request.
func (v *SignupView) submit() tea.Cmd {
	v.form.ClearErrors()

	name := v.form.Fields[0].Value()
	email := v.form.Fields[1].Value()
	password := v.form.Fields[2].Input.Value()

	if name == "" {
		v.form.Fields[0].Err = "Name is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		v.form.Fields[1].Err = "A valid email is required"
	}
	if len(password) < 6 {
		v.form.Fields[2].Err = "Password must be at least 6 characters"
	}
	if v.form.HasFieldErrors() {
		return nil
	}
	if len(v.unis) == 0 {
		v.form.Err = "Choose a university first"
		return nil
	}

	universityID := v.unis[v.uniIndex].ID

	v.busy = true
	v.token = newToken()
	token := v.token
	sessions := v.deps.Sessions
	v.spinner.SetMessage("Creating account")

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		res := sessions.Signup(context.Background(), name, email, password, universityID)
		return signupResultMsg{token: token, res: res}
	})
}

// View renders the form with the university picker.
func (v *SignupView) View() string {
	theme := v.deps.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Join UniVerse"))
	sb.WriteString("\n\n")
	if v.loadErr != "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n\n")
	}
	sb.WriteString(v.form.Render(theme))

	sb.WriteString("\n\n")
	sb.WriteString(theme.Label.Render("University"))
	sb.WriteString("\n")
	if len(v.unis) == 0 {
		sb.WriteString(theme.Muted.Render("loading..."))
	} else {
		uni := v.unis[v.uniIndex]
		sb.WriteString("< " + theme.Brand.Render(uni.Name) + " >")
	}

	sb.WriteString("\n\n")
	if v.busy || v.spinner.IsActive() {
		sb.WriteString(v.spinner.View())
	} else {
		sb.WriteString(theme.Muted.Render("enter submit · left/right pick university · ctrl+s log in"))
	}
	return sb.String()
}

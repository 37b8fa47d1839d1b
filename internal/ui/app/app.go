// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the root Bubble Tea model: the view stack, the access
// gate, and the status bar.
package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/gate"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/components"
	"github.com/universeapp/universe-tui/internal/ui/views"
)

// SessionChangedMsg is posted into the program whenever the session manager
// commits a state transition. The app re-evaluates the gate for the current
// view when it arrives.
type SessionChangedMsg struct{}

// hydratedMsg signals that the startup store read finished.
type hydratedMsg struct{}

// entry is one element of the view stack.
type entry struct {
	route nav.Route
	view  views.View
}

// Model is the root application model.
type Model struct {
	deps      views.Deps
	statusBar components.StatusBar
	stack     []entry

	// pending holds a navigation deferred while the session state was
	// still unresolved.
	pending *views.NavigateMsg

	hydrated bool
	quitting bool
}

// New creates the root model. The session manager must not be hydrated yet;
// the model drives hydration from Init.
func New(deps views.Deps) *Model {
	return &Model{
		deps:      deps,
		statusBar: components.NewStatusBar(deps.Theme),
	}
}

// Init hydrates the session and then lands on home, which the gate may turn
// into a login redirect.
func (m *Model) Init() tea.Cmd {
	sessions := m.deps.Sessions
	return func() tea.Msg {
		sessions.Hydrate()
		return hydratedMsg{}
	}
}

// Update routes messages to the top view and handles navigation.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hydratedMsg:
		m.hydrated = true
		return m, m.navigate(views.NavigateMsg{To: nav.RouteHome, Replace: true})

	case SessionChangedMsg:
		return m, m.reconcile()

	case views.NavigateMsg:
		return m, m.navigate(msg)

	case views.BackMsg:
		m.pop()
		return m, nil

	case views.QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.deps.Width = msg.Width
		m.deps.Height = msg.Height
		m.deps.Theme.Resize(msg.Width, msg.Height)
		return m, m.forward(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			// Views that want esc (composers) see it first.
			if _, cmd, handled := m.forwardKey(msg); handled {
				return m, cmd
			}
			m.pop()
			return m, nil
		}
		return m, m.forward(msg)
	}

	return m, m.forward(msg)
}

// navigate builds the target view, gates protected routes, and pushes or
// replaces the stack entry.
func (m *Model) navigate(msg views.NavigateMsg) tea.Cmd {
	if isProtected(msg.To) {
		switch gate.Decide(m.deps.Sessions.State()) {
		case gate.Wait:
			// Not resolved yet; hold the navigation instead of flashing the
			// login screen at a user who may well be authenticated.
			m.pending = &msg
			return nil
		case gate.Redirect:
			log.Printf("gate: redirecting %s to login", msg.To)
			m.pending = nil
			login := views.NewLoginView(m.deps)
			m.replace(entry{route: nav.RouteLogin, view: login})
			return login.Init()
		}
	}

	view := m.build(msg)
	e := entry{route: msg.To, view: view}
	if msg.Replace || len(m.stack) == 0 {
		m.replace(e)
	} else {
		m.stack = append(m.stack, e)
	}
	return view.Init()
}

// build constructs the view for a navigation.
func (m *Model) build(msg views.NavigateMsg) views.View {
	switch msg.To {
	case nav.RouteLogin:
		return views.NewLoginView(m.deps)
	case nav.RouteSignup:
		return views.NewSignupView(m.deps)
	case nav.RouteProfile:
		return views.NewProfileView(m.deps)
	case nav.RouteExplore:
		return views.NewExploreView(m.deps)
	case nav.RouteGroup:
		return views.NewGroupView(m.deps, msg.ClassID)
	case nav.RouteClass:
		return views.NewClassView(m.deps, msg.ClassID, msg.Ctx)
	case nav.RouteDiscussion:
		return views.NewDiscussionView(m.deps, msg.DiscussionID)
	default:
		return views.NewHomeView(m.deps)
	}
}

// reconcile re-evaluates the gate after a session change.
func (m *Model) reconcile() tea.Cmd {
	// A deferred navigation can proceed once the state resolves.
	if m.pending != nil && m.deps.Sessions.State() != session.StateUnresolved {
		msg := *m.pending
		m.pending = nil
		return m.navigate(msg)
	}

	// Logging out while on a protected view bounces to login.
	if len(m.stack) > 0 {
		top := m.stack[len(m.stack)-1]
		if isProtected(top.route) && gate.Decide(m.deps.Sessions.State()) == gate.Redirect {
			return m.navigate(views.NavigateMsg{To: top.route, Replace: true})
		}
	}
	return nil
}

// replace swaps the top stack entry (or seeds an empty stack).
func (m *Model) replace(e entry) {
	if len(m.stack) == 0 {
		m.stack = []entry{e}
		return
	}
	m.stack[len(m.stack)-1] = e
}

// pop removes the top entry; the stack floor is home or login, never empty.
func (m *Model) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// forward sends a message to the top view.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if len(m.stack) == 0 {
		return nil
	}
	top := len(m.stack) - 1
	view, cmd := m.stack[top].view.Update(msg)
	m.stack[top].view = view
	return cmd
}

// forwardKey sends esc to the top view and reports whether it consumed it
// (a composer closing, for example, returns a non-nil model change only it
// knows about). Views signal consumption by returning a command.
func (m *Model) forwardKey(msg tea.KeyMsg) (views.View, tea.Cmd, bool) {
	if len(m.stack) == 0 {
		return nil, nil, false
	}
	top := len(m.stack) - 1
	if !wantsEsc(m.stack[top].view) {
		return nil, nil, false
	}
	view, cmd := m.stack[top].view.Update(msg)
	m.stack[top].view = view
	return view, cmd, true
}

// escCapable is implemented by views that use esc internally (composers).
type escCapable interface {
	WantsEsc() bool
}

func wantsEsc(v views.View) bool {
	if ec, ok := v.(escCapable); ok {
		return ec.WantsEsc()
	}
	return false
}

// isProtected reports whether a route requires authentication.
func isProtected(route nav.Route) bool {
	switch route {
	case nav.RouteHome, nav.RouteProfile:
		return true
	default:
		return false
	}
}

// View renders the current screen between the header and the status bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.deps.Theme
	width := m.deps.Width
	if width <= 0 {
		width = 80
	}

	header := theme.Header.Width(width).Render("UniVerse")

	var body string
	if len(m.stack) == 0 {
		body = theme.Muted.Render("Loading...")
	} else {
		body = m.stack[len(m.stack)-1].view.View()
	}

	identity := ""
	if s, ok := m.deps.Sessions.Current(); ok {
		identity = s.Name
		if s.University != "" {
			identity += " · " + s.University
		}
	}
	bar := m.statusBar.Render(width, identity, []components.Shortcut{
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	})

	return header + "\n" + theme.App.Render(body) + "\n" + bar
}

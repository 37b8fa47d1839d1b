// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/store"
	"github.com/universeapp/universe-tui/internal/ui/styles"
	"github.com/universeapp/universe-tui/internal/ui/views"
)

func testDeps(t *testing.T, st session.Store) (views.Deps, *session.Manager) {
	t.Helper()
	client := api.NewClient("http://127.0.0.1:1")
	sessions := session.NewManager(client, st)
	deps := views.Deps{
		Client:    client,
		Sessions:  sessions,
		Theme:     styles.NewTheme("dark"),
		ThemeMode: "dark",
		Width:     80,
		Height:    24,
	}
	return deps, sessions
}

func (m *Model) topRoute() nav.Route {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1].route
}

func TestApp_AnonymousStartRedirectsToLogin(t *testing.T) {
	deps, _ := testDeps(t, store.NewMemoryStore())
	m := New(deps)

	// Startup: hydrate resolves to anonymous, home is gated to login.
	msg := m.Init()()
	require.IsType(t, hydratedMsg{}, msg)
	m.Update(msg)

	require.Equal(t, nav.RouteLogin, m.topRoute())
	require.Contains(t, m.View(), "Log in")
}

func TestApp_AuthenticatedStartLandsOnHome(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada", Email: "ada@example.edu"}))

	deps, _ := testDeps(t, st)
	m := New(deps)

	msg := m.Init()()
	m.Update(msg)

	require.Equal(t, nav.RouteHome, m.topRoute())
	require.Contains(t, m.View(), "Ada")
}

func TestApp_NavigationWaitsForResolution(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada", Email: "ada@example.edu"}))

	deps, sessions := testDeps(t, st)
	m := New(deps)

	// A protected navigation before hydration is held, not redirected.
	m.Update(views.NavigateMsg{To: nav.RouteProfile})
	require.Empty(t, m.stack)
	require.Contains(t, m.View(), "Loading")

	// Resolution releases the pending navigation.
	sessions.Hydrate()
	m.Update(SessionChangedMsg{})
	require.Equal(t, nav.RouteProfile, m.topRoute())
}

func TestApp_LogoutBouncesProtectedView(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada", Email: "ada@example.edu"}))

	deps, sessions := testDeps(t, st)
	m := New(deps)
	m.Update(m.Init()())
	require.Equal(t, nav.RouteHome, m.topRoute())

	sessions.Logout()
	m.Update(SessionChangedMsg{})
	require.Equal(t, nav.RouteLogin, m.topRoute())
}

func TestApp_PublicRoutesSkipTheGate(t *testing.T) {
	deps, _ := testDeps(t, store.NewMemoryStore())
	m := New(deps)
	m.Update(m.Init()())

	m.Update(views.NavigateMsg{To: nav.RouteExplore})
	require.Equal(t, nav.RouteExplore, m.topRoute())
	require.Contains(t, m.View(), "Explore")
}

func TestApp_BackPopsButNeverEmpties(t *testing.T) {
	deps, _ := testDeps(t, store.NewMemoryStore())
	m := New(deps)
	m.Update(m.Init()())

	m.Update(views.NavigateMsg{To: nav.RouteExplore})
	m.Update(views.NavigateMsg{To: nav.RouteClass, ClassID: "c-1", Ctx: nav.FromExplore()})
	require.Equal(t, nav.RouteClass, m.topRoute())

	m.Update(views.BackMsg{})
	require.Equal(t, nav.RouteExplore, m.topRoute())

	m.Update(views.BackMsg{})
	m.Update(views.BackMsg{})
	require.NotEmpty(t, m.stack)
}

func TestApp_ClassViewShowsOriginBackLabel(t *testing.T) {
	deps, _ := testDeps(t, store.NewMemoryStore())
	m := New(deps)
	m.Update(m.Init()())

	m.Update(views.NavigateMsg{
		To:      nav.RouteClass,
		ClassID: "c-1",
		Ctx:     nav.FromGroup("g-1", "CS Fundamentals"),
	})

	view := m.View()
	require.True(t, strings.Contains(view, "Back to CS Fundamentals"), view)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views contains the screens of the universe TUI.
//
// Every view follows the same shape: a constructor taking shared Deps, an
// Init that kicks off data loading, and an Update that drops stale
// responses. Views never talk to each other directly; navigation intent is
// expressed as messages the app model interprets.
package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/history"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/styles"
)

// View is the interface every screen implements.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
}

// Deps is the shared dependency set passed to every view constructor.
type Deps struct {
	Client   *api.Client
	Sessions *session.Manager
	History  *history.Store
	Theme    *styles.Theme
	// ThemeMode is the configured theme ("dark", "light", "auto"), used by
	// the markdown renderer.
	ThemeMode string
	Width     int
	Height    int
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// NavigateMsg asks the app to switch views. Replace swaps the current stack
// entry instead of pushing, so backing out does not return to the replaced
// view.
type NavigateMsg struct {
	To      nav.Route
	Replace bool

	ClassID      string
	GroupID      string
	DiscussionID string

	// Ctx is the origin context attached by the navigating view.
	Ctx nav.Context
}

// BackMsg asks the app to pop the view stack.
type BackMsg struct{}

// QuitMsg asks the app to exit.
type QuitMsg struct{}

// navigate wraps a NavigateMsg in a command.
func navigate(msg NavigateMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// goBack wraps a BackMsg in a command.
func goBack() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// =============================================================================
// REQUEST TOKENS
// =============================================================================

// newToken mints a request token. A view records the token when it starts a
// load and drops any response carrying a different one, so a stale response
// can never overwrite newer state after the user navigated on.
func newToken() string {
	return uuid.NewString()
}

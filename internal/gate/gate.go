// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate decides whether a protected view may render.
//
// The decision is a pure function of the authentication state. It is total:
// every state maps to exactly one decision, there is no error path.
package gate

import "github.com/universeapp/universe-tui/internal/session"

// Decision is the outcome of an access check on a protected view.
type Decision int

const (
	// Wait means the state is not yet resolved. The view shows a neutral
	// loading indicator and checks again after hydration; redirecting here
	// would bounce an authenticated user to the login screen on startup.
	Wait Decision = iota

	// Redirect means the user is known to be anonymous. The caller replaces
	// the current view with the login screen; replacement matters so that
	// backing out of login does not land on the protected view again.
	Redirect

	// Render means the user is authenticated and the view may proceed.
	Render
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decide maps an authentication state to an access decision.
func Decide(state session.State) Decision {
	switch state {
	case session.StateAuthenticated:
		return Render
	case session.StateAnonymous:
		return Redirect
	default:
		return Wait
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gate

import (
	"testing"

	"github.com/universeapp/universe-tui/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		want  Decision
	}{
		{"unresolved waits", session.StateUnresolved, Wait},
		{"anonymous redirects", session.StateAnonymous, Redirect},
		{"authenticated renders", session.StateAuthenticated, Render},
		{"unknown state waits", session.State(99), Wait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.state); got != tt.want {
				t.Errorf("Decide(%v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	if Wait.String() != "wait" || Redirect.String() != "redirect" || Render.String() != "render" {
		t.Error("decision names changed")
	}
	if Decision(42).String() != "unknown" {
		t.Error("out-of-range decision should stringify as unknown")
	}
}

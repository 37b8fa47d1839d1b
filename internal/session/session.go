// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the client-side authentication state machine.
//
// The Manager is the single source of truth for who the current user is.
// Every identity mutation (login, signup, profile update, logout) passes
// through it; everything else only reads snapshots.
package session

import "errors"

// ErrNoSession indicates the persistent slot is empty: no stored session, or
// contents that do not parse. Callers treat both the same way.
var ErrNoSession = errors.New("no stored session")

// Session is the authenticated identity projection held client-side. Only
// non-sensitive profile fields exist; no credential is ever held or stored.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	University   string `json:"university,omitempty"`
	UniversityID string `json:"university_id,omitempty"`
}

// Valid reports whether the session carries the required identity fields.
func (s Session) Valid() bool {
	return s.ID != "" && s.Name != "" && s.Email != ""
}

// State is the authentication state exposed to the rest of the application.
//
// The three-way split matters: Unresolved means "not yet known", which is
// distinct from "known to be anonymous". Protected views must not redirect
// while the state is still Unresolved, or an authenticated user would flash
// to the login page on every restart.
type State int

const (
	// StateUnresolved is the initial state, before store hydration completes.
	StateUnresolved State = iota

	// StateAnonymous means hydration completed and no valid session exists.
	StateAnonymous

	// StateAuthenticated means a valid session is present.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store is the durable single-slot session storage the Manager writes
// through to. Only the Manager writes; implementations live in
// internal/store.
type Store interface {
	// Load returns the stored session, or an error wrapping ErrNoSession if
	// the slot is empty or unreadable.
	Load() (Session, error)

	// Save replaces the slot contents with the given session.
	Save(Session) error

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear() error
}

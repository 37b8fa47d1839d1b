// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log"
	"sync"

	"github.com/universeapp/universe-tui/internal/api"
)

// GenericNetworkError is the one user-facing message for all transport
// failures. Always recoverable by retry.
const GenericNetworkError = "Network error. Please try again."

// AuthClient is the slice of the API client the Manager needs. Defined here
// so tests can substitute a stub without a server.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (api.AuthUser, error)
	CreateUser(ctx context.Context, req api.SignupRequest) (api.AuthUser, error)
	UpdateUser(ctx context.Context, userID string, upd api.ProfileUpdate) error
}

// Result is the discriminated outcome of an identity operation. Operations
// never panic or return raw errors to callers; forms render Err inline.
type Result struct {
	OK  bool
	Err string
}

func success() Result {
	return Result{OK: true}
}

func failure(msg string) Result {
	return Result{OK: false, Err: msg}
}

// resultFromErr maps an operation error onto user-facing text: transport
// failures collapse to the generic retry message, API-reported errors pass
// through verbatim.
func resultFromErr(err error) Result {
	if apiErr, ok := api.APIError(err); ok {
		return failure(apiErr.Message)
	}
	return failure(GenericNetworkError)
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the authentication state machine. It is the single writer of
// both the in-memory state and the persistent store; any number of readers
// may take snapshots concurrently.
type Manager struct {
	mu      sync.Mutex
	state   State
	current Session

	client AuthClient
	store  Store

	// onChange is invoked after every committed state transition, outside
	// the lock. The TUI uses it to post a refresh message into the program.
	onChange func()
}

// NewManager creates a Manager in StateUnresolved. Call Hydrate before
// consulting the state for access decisions.
func NewManager(client AuthClient, st Store) *Manager {
	return &Manager{
		state:  StateUnresolved,
		client: client,
		store:  st,
	}
}

// OnChange registers a callback fired after each committed transition.
// At most one callback is supported; registering replaces the previous one.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns the current state and, when authenticated, a copy of the
// session. The copy is immutable from the caller's perspective; mutation
// happens only through Manager operations.
func (m *Manager) Snapshot() (State, Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.current
}

// Current returns the authenticated session, or ok=false otherwise.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return Session{}, false
	}
	return m.current, true
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Hydrate performs the one-shot startup read of the persistent store and
// resolves the state machine: a valid stored session transitions to
// Authenticated, anything else to Anonymous.
//
// Hydrate never fails visibly. Malformed store contents are self-healed by
// erasing the slot; the incident is logged for diagnostics only.
func (m *Manager) Hydrate() {
	s, err := m.store.Load()
	if err != nil {
		// Missing and malformed are treated identically: no session. Clear
		// the slot so a corrupt payload is not re-parsed on every start.
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Printf("session store clear failed during hydrate: %v", clearErr)
		}
		log.Printf("session hydrate: no valid stored session (%v)", err)
		m.transition(StateAnonymous, Session{})
		return
	}

	log.Printf("session hydrate: restored session for user %s", s.ID)
	m.transition(StateAuthenticated, s)
}

// Login authenticates against the backend. On success the state becomes
// Authenticated and the session is written through to the store; on any
// failure the state is left exactly as it was.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	user, err := m.client.Login(ctx, email, password)
	if err != nil {
		return resultFromErr(err)
	}

	s := sessionFromUser(user)
	if !s.Valid() {
		// Backend accepted the login but returned an unusable profile.
		log.Printf("login response missing identity fields for %q", email)
		return failure(GenericNetworkError)
	}

	m.commit(s)
	return success()
}

// Signup registers a new account and treats success as an implicit login:
// no second round-trip, the state transitions straight to Authenticated.
func (m *Manager) Signup(ctx context.Context, name, email, password, universityID string) Result {
	user, err := m.client.CreateUser(ctx, api.SignupRequest{
		Name:         name,
		Email:        email,
		Password:     password,
		UniversityID: universityID,
	})
	if err != nil {
		return resultFromErr(err)
	}

	s := sessionFromUser(user)
	// The signup response omits the university id; the caller chose it, so
	// carry it forward for class-creation scoping.
	if s.UniversityID == "" {
		s.UniversityID = universityID
	}
	if !s.Valid() {
		log.Printf("signup response missing identity fields for %q", email)
		return failure(GenericNetworkError)
	}

	m.commit(s)
	return success()
}

// UpdateProfile updates the authenticated user's name and/or password.
//
// The acting user is always the session owner: userID must match the
// current session's id, otherwise the call is rejected locally without
// touching the backend. On success a name change is merged into the
// in-memory session and re-persisted; passwords are never held client-side,
// so a password change leaves the session untouched.
func (m *Manager) UpdateProfile(ctx context.Context, userID string, upd api.ProfileUpdate) Result {
	current, ok := m.Current()
	if !ok {
		return failure("You must be logged in to update your profile.")
	}
	if userID != current.ID {
		log.Printf("profile update rejected: id %s does not match session owner %s", userID, current.ID)
		return failure("You can only update your own profile.")
	}

	if err := m.client.UpdateUser(ctx, userID, upd); err != nil {
		return resultFromErr(err)
	}

	if upd.Name != "" {
		m.mu.Lock()
		// Re-check under the lock; a concurrent logout wins over a late
		// update response.
		if m.state == StateAuthenticated && m.current.ID == userID {
			m.current.Name = upd.Name
			s := m.current
			m.mu.Unlock()
			m.persist(s)
			m.notify()
			return success()
		}
		m.mu.Unlock()
		log.Printf("profile update for %s arrived after logout; dropped", userID)
	}
	return success()
}

// Logout clears the in-memory state and erases the store entry. It is
// synchronous, cannot fail, and is idempotent: logging out twice is the
// same as logging out once.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		log.Printf("session store clear failed during logout: %v", err)
	}
	m.transition(StateAnonymous, Session{})
}

// =============================================================================
// INTERNAL
// =============================================================================

// sessionFromUser builds the client-side identity projection from an API
// user payload.
func sessionFromUser(u api.AuthUser) Session {
	return Session{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		University:   u.University,
		UniversityID: u.UniversityID,
	}
}

// commit installs an authenticated session and writes it through to the
// store.
func (m *Manager) commit(s Session) {
	m.persist(s)
	m.transition(StateAuthenticated, s)
}

// persist mirrors committed state to the store. A persistence failure is
// logged but does not fail the operation: the in-memory session remains
// authoritative for this process, only the next restart loses it.
func (m *Manager) persist(s Session) {
	if err := m.store.Save(s); err != nil {
		log.Printf("session store save failed: %v", err)
	}
}

// transition replaces the whole state under the lock and notifies outside
// it.
func (m *Manager) transition(state State, s Session) {
	m.mu.Lock()
	m.state = state
	m.current = s
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

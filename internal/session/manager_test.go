// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/store"
)

// stubClient implements session.AuthClient with pluggable behavior.
type stubClient struct {
	loginFn  func(email, password string) (api.AuthUser, error)
	signupFn func(req api.SignupRequest) (api.AuthUser, error)
	updateFn func(userID string, upd api.ProfileUpdate) error
}

func (s *stubClient) Login(_ context.Context, email, password string) (api.AuthUser, error) {
	if s.loginFn == nil {
		return api.AuthUser{}, errors.New("login not stubbed")
	}
	return s.loginFn(email, password)
}

func (s *stubClient) CreateUser(_ context.Context, req api.SignupRequest) (api.AuthUser, error) {
	if s.signupFn == nil {
		return api.AuthUser{}, errors.New("signup not stubbed")
	}
	return s.signupFn(req)
}

func (s *stubClient) UpdateUser(_ context.Context, userID string, upd api.ProfileUpdate) error {
	if s.updateFn == nil {
		return errors.New("update not stubbed")
	}
	return s.updateFn(userID, upd)
}

func testUser() api.AuthUser {
	return api.AuthUser{
		ID:         "u-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.edu",
		University: "Analytical U",
	}
}

// failingStore always errors, for exercising the self-heal paths.
type failingStore struct{}

func (failingStore) Load() (session.Session, error) {
	return session.Session{}, fmt.Errorf("%w: unexpected token", session.ErrNoSession)
}
func (failingStore) Save(session.Session) error { return errors.New("disk full") }
func (failingStore) Clear() error               { return nil }

func TestManager_StartsUnresolved(t *testing.T) {
	m := session.NewManager(&stubClient{}, store.NewMemoryStore())
	require.Equal(t, session.StateUnresolved, m.State())

	_, ok := m.Current()
	require.False(t, ok)
}

func TestManager_HydrateEmptyStore(t *testing.T) {
	m := session.NewManager(&stubClient{}, store.NewMemoryStore())
	m.Hydrate()

	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_HydrateValidSession(t *testing.T) {
	st := store.NewMemoryStore()
	saved := session.Session{ID: "u-9", Name: "Grace", Email: "grace@example.edu"}
	require.NoError(t, st.Save(saved))

	m := session.NewManager(&stubClient{}, st)
	m.Hydrate()

	require.Equal(t, session.StateAuthenticated, m.State())
	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, saved, got)
}

func TestManager_HydrateMalformedStoreSelfHeals(t *testing.T) {
	m := session.NewManager(&stubClient{}, failingStore{})
	m.Hydrate()

	// Malformed contents resolve to anonymous, never to an error surface.
	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_LoginSuccess(t *testing.T) {
	st := store.NewMemoryStore()
	client := &stubClient{
		loginFn: func(email, password string) (api.AuthUser, error) {
			require.Equal(t, "ada@example.edu", email)
			require.Equal(t, "secret", password)
			return testUser(), nil
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.Login(context.Background(), "ada@example.edu", "secret")
	require.True(t, res.OK)
	require.Empty(t, res.Err)
	require.Equal(t, session.StateAuthenticated, m.State())

	// Write-through: the store holds the session immediately.
	persisted, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, "u-1", persisted.ID)
	require.Equal(t, "Ada Lovelace", persisted.Name)
}

func TestManager_LoginAPIErrorVerbatim(t *testing.T) {
	client := &stubClient{
		loginFn: func(string, string) (api.AuthUser, error) {
			return api.AuthUser{}, &api.Error{Status: 401, Message: "Invalid email or password"}
		},
	}

	m := session.NewManager(client, store.NewMemoryStore())
	m.Hydrate()

	res := m.Login(context.Background(), "ada@example.edu", "wrong")
	require.False(t, res.OK)
	require.Equal(t, "Invalid email or password", res.Err)
	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_LoginNetworkErrorGenericMessage(t *testing.T) {
	client := &stubClient{
		loginFn: func(string, string) (api.AuthUser, error) {
			return api.AuthUser{}, fmt.Errorf("%w: connection refused", api.ErrNetwork)
		},
	}

	m := session.NewManager(client, store.NewMemoryStore())
	m.Hydrate()

	res := m.Login(context.Background(), "ada@example.edu", "secret")
	require.False(t, res.OK)
	require.Equal(t, session.GenericNetworkError, res.Err)
	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_FailedLoginKeepsExistingSession(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-9", Name: "Grace", Email: "grace@example.edu"}))

	client := &stubClient{
		loginFn: func(string, string) (api.AuthUser, error) {
			return api.AuthUser{}, &api.Error{Status: 401, Message: "Invalid email or password"}
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()
	require.Equal(t, session.StateAuthenticated, m.State())

	res := m.Login(context.Background(), "other@example.edu", "wrong")
	require.False(t, res.OK)

	// The standing session survives a failed re-login attempt.
	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "u-9", got.ID)
}

func TestManager_SignupImplicitLogin(t *testing.T) {
	st := store.NewMemoryStore()
	client := &stubClient{
		signupFn: func(req api.SignupRequest) (api.AuthUser, error) {
			require.Equal(t, "uni-3", req.UniversityID)
			return api.AuthUser{ID: "u-2", Name: req.Name, Email: req.Email, University: "State U"}, nil
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.Signup(context.Background(), "Alan", "alan@example.edu", "secret", "uni-3")
	require.True(t, res.OK)
	require.Equal(t, session.StateAuthenticated, m.State())

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "u-2", got.ID)
	// The response omits the university id; the chosen one is carried forward.
	require.Equal(t, "uni-3", got.UniversityID)

	persisted, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, got, persisted)
}

func TestManager_SignupFailureLeavesAnonymous(t *testing.T) {
	client := &stubClient{
		signupFn: func(api.SignupRequest) (api.AuthUser, error) {
			return api.AuthUser{}, &api.Error{Status: 409, Message: "Email already registered"}
		},
	}

	m := session.NewManager(client, store.NewMemoryStore())
	m.Hydrate()

	res := m.Signup(context.Background(), "Alan", "alan@example.edu", "secret", "uni-3")
	require.False(t, res.OK)
	require.Equal(t, "Email already registered", res.Err)
	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_UpdateProfileMergesName(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada Lovelace", Email: "ada@example.edu"}))

	client := &stubClient{
		updateFn: func(userID string, upd api.ProfileUpdate) error {
			require.Equal(t, "u-1", userID)
			require.Equal(t, "Ada King", upd.Name)
			return nil
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.UpdateProfile(context.Background(), "u-1", api.ProfileUpdate{Name: "Ada King"})
	require.True(t, res.OK)

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "Ada King", got.Name)
	require.Equal(t, "ada@example.edu", got.Email)

	// The merge is re-persisted: a fresh manager sees the new name.
	fresh := session.NewManager(client, st)
	fresh.Hydrate()
	refreshed, ok := fresh.Current()
	require.True(t, ok)
	require.Equal(t, "Ada King", refreshed.Name)
}

func TestManager_UpdateProfilePasswordOnlyKeepsSession(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada Lovelace", Email: "ada@example.edu"}))

	client := &stubClient{
		updateFn: func(string, api.ProfileUpdate) error { return nil },
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.UpdateProfile(context.Background(), "u-1", api.ProfileUpdate{Password: "new-secret"})
	require.True(t, res.OK)

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "Ada Lovelace", got.Name)
}

func TestManager_UpdateProfileRequiresAuthentication(t *testing.T) {
	called := false
	client := &stubClient{
		updateFn: func(string, api.ProfileUpdate) error {
			called = true
			return nil
		},
	}

	m := session.NewManager(client, store.NewMemoryStore())
	m.Hydrate()

	res := m.UpdateProfile(context.Background(), "u-1", api.ProfileUpdate{Name: "X"})
	require.False(t, res.OK)
	require.NotEmpty(t, res.Err)
	require.False(t, called)
}

func TestManager_UpdateProfileRejectsForeignID(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada", Email: "ada@example.edu"}))

	called := false
	client := &stubClient{
		updateFn: func(string, api.ProfileUpdate) error {
			called = true
			return nil
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.UpdateProfile(context.Background(), "u-other", api.ProfileUpdate{Name: "X"})
	require.False(t, res.OK)
	require.False(t, called)
}

func TestManager_UpdateProfileFailureKeepsName(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada Lovelace", Email: "ada@example.edu"}))

	client := &stubClient{
		updateFn: func(string, api.ProfileUpdate) error {
			return &api.Error{Status: 400, Message: "Name cannot be empty"}
		},
	}

	m := session.NewManager(client, st)
	m.Hydrate()

	res := m.UpdateProfile(context.Background(), "u-1", api.ProfileUpdate{Name: "  "})
	require.False(t, res.OK)
	require.Equal(t, "Name cannot be empty", res.Err)

	got, _ := m.Current()
	require.Equal(t, "Ada Lovelace", got.Name)
}

func TestManager_LogoutIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(session.Session{ID: "u-1", Name: "Ada", Email: "ada@example.edu"}))

	m := session.NewManager(&stubClient{}, st)
	m.Hydrate()
	require.Equal(t, session.StateAuthenticated, m.State())

	m.Logout()
	require.Equal(t, session.StateAnonymous, m.State())
	_, err := st.Load()
	require.ErrorIs(t, err, session.ErrNoSession)

	// Logging out twice is the same as once.
	m.Logout()
	require.Equal(t, session.StateAnonymous, m.State())
}

func TestManager_SavePersistenceFailureDoesNotFailLogin(t *testing.T) {
	client := &stubClient{
		loginFn: func(string, string) (api.AuthUser, error) {
			return testUser(), nil
		},
	}

	m := session.NewManager(client, failingStore{})
	m.Hydrate()

	res := m.Login(context.Background(), "ada@example.edu", "secret")
	require.True(t, res.OK)
	require.Equal(t, session.StateAuthenticated, m.State())
}

func TestManager_OnChangeFiresPerTransition(t *testing.T) {
	st := store.NewMemoryStore()
	client := &stubClient{
		loginFn: func(string, string) (api.AuthUser, error) {
			return testUser(), nil
		},
	}

	m := session.NewManager(client, st)

	var fired int
	m.OnChange(func() { fired++ })

	m.Hydrate()
	require.Equal(t, 1, fired)

	m.Login(context.Background(), "ada@example.edu", "secret")
	require.Equal(t, 2, fired)

	m.Logout()
	require.Equal(t, 3, fired)
}

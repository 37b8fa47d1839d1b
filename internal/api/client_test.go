// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_LoginDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Login successful","user":{"id":"u-1","name":"Ada","email":"ada@example.edu","university":"Analytical U"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	user, err := client.Login(context.Background(), "ada@example.edu", "secret")
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "Analytical U", user.University)
}

func TestClient_ErrorEnvelopeVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid email or password"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "ada@example.edu", "wrong")
	require.Error(t, err)

	apiErr, ok := APIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid email or password", apiErr.Message)
	require.False(t, IsNetworkError(err))
}

func TestClient_ErrorEnvelopeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetClass(context.Background(), "missing")
	apiErr, ok := APIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusText(http.StatusNotFound), apiErr.Message)
}

func TestClient_ConnectionFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL).WithMaxRetries(1)
	_, err := client.Login(context.Background(), "ada@example.edu", "secret")
	require.Error(t, err)
	require.True(t, IsNetworkError(err))

	_, isAPI := APIError(err)
	require.False(t, isAPI)
}

func TestClient_GetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error":"upstream down"}`))
			return
		}
		w.Write([]byte(`[{"id":"uni-1","name":"State U"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(3)
	unis, err := client.ListUniversities(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, unis, 1)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_GetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad filter"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(3)
	_, err := client.ListUniversities(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_PostNeverRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(3)
	_, err := client.Login(context.Background(), "ada@example.edu", "secret")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_GarbledSuccessBodyIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(1)
	_, err := client.GetDiscussion(context.Background(), "d-1")
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
}

func TestClient_UpdateUserSendsOnlySetFields(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/u-1", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"message":"User updated successfully"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.UpdateUser(context.Background(), "u-1", ProfileUpdate{Name: "Ada King"})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Ada King"}`, string(body))
}

func TestBackoffCapsAtMaxDelay(t *testing.T) {
	require.Equal(t, retryBaseDelay, backoff(1))
	require.Equal(t, 2*retryBaseDelay, backoff(2))
	require.Equal(t, retryMaxDelay, backoff(20))
}

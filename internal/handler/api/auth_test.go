// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "manager@example.com",
		Password: "manager-secret-1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login LoginResponse
	decodeData(t, rec, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "manager", login.Role)
	assert.Positive(t, login.ExpiresIn)

	// The issued token works against protected routes.
	rec = ts.request(t, http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	decodeData(t, rec, &me)
	assert.Equal(t, "manager@example.com", me.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "manager@example.com", "nope"},
		{"unknown user", "ghost@example.com", "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			// Same status and message either way so callers cannot probe
			// which emails exist.
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMeRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
}

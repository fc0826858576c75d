// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
)

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
	Role      string `json:"role"`
}

// Login handles POST /api/v1/auth/login.
// Invalid email and wrong password produce the same response so the
// endpoint cannot be used to probe for accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to look up user")
			return
		}
		h.logger.Warn("login failed", "category", model.EventCategoryAuth,
			"email", email, "remote_addr", r.RemoteAddr)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	match, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		h.logger.Warn("login failed", "category", model.EventCategoryAuth,
			"email", email, "remote_addr", r.RemoteAddr)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		WriteInternalError(w, "Failed to issue token")
		return
	}

	h.logger.Info("login succeeded", "category", model.EventCategoryAuth, "user_id", user.ID)
	WriteSuccess(w, LoginResponse{
		Token:     token,
		ExpiresIn: int64(auth.TokenTTL.Seconds()),
		Role:      user.Role,
	}, nil)
}

// MeResponse describes the authenticated user.
type MeResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteUnauthorized(w, "User no longer exists")
		} else {
			WriteInternalError(w, "Failed to retrieve user")
		}
		return
	}

	WriteSuccess(w, MeResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil)
}

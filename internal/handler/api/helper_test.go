// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/cache"
	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/imaging"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/testutil"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// testServer bundles everything an API test needs.
type testServer struct {
	handler      *Handler
	queries      *store.Queries
	router       http.Handler
	adminToken   string
	managerToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	testutil.SeedLanguages(t, db)

	queries := store.New(db)

	registry, err := i18n.LoadRegistry(context.Background(), queries)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	tokens := auth.NewTokenManager(testJWTSecret)

	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	h := NewHandler(Config{
		DB:        db,
		Registry:  registry,
		Tokens:    tokens,
		Catalog:   cache.NewCatalogCache(mem, time.Minute),
		Processor: imaging.NewProcessor(t.TempDir()),
		Logger:    testutil.TestLogger(),
	})

	ts := &testServer{
		handler: h,
		queries: queries,
		router:  h.Routes(),
	}
	ts.adminToken = ts.createUser(t, "admin@example.com", "admin-secret-1", "admin")
	ts.managerToken = ts.createUser(t, "manager@example.com", "manager-secret-1", "manager")
	return ts
}

func (ts *testServer) createUser(t *testing.T, email, password, role string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := ts.queries.CreateUser(t.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         role,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := ts.handler.tokens.Issue(user.ID, user.Role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential; a non-nil body is JSON encoded.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" member of a response envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v\nbody: %s", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decoding data: %v\nbody: %s", err, rec.Body.String())
	}
}

func decodeMeta(t *testing.T, rec *httptest.ResponseRecorder) *Meta {
	t.Helper()

	var envelope struct {
		Meta *Meta `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope.Meta
}

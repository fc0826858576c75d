package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func issueToken(t *testing.T, tm *auth.TokenManager, userID int64, role string) string {
	t.Helper()
	token, err := tm.Issue(userID, role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	tm := auth.NewTokenManager(testSecret)
	other := auth.NewTokenManager("ffffffffffffffffffffffffffffffff")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID int64
	}{
		{name: "valid token", authHeader: "Bearer " + issueToken(t, tm, 42, model.RoleAdmin), wantStatus: http.StatusOK, wantUserID: 42},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", authHeader: "Bearer " + issueToken(t, other, 42, model.RoleAdmin), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			handler := RequireAuth(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = GetUserID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != tt.wantUserID {
				t.Errorf("user ID = %d, want %d", gotUserID, tt.wantUserID)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
					t.Errorf("WWW-Authenticate = %q, want Bearer", got)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tm := auth.NewTokenManager(testSecret)

	tests := []struct {
		name       string
		role       string
		minRole    string
		wantStatus int
	}{
		{name: "admin passes admin check", role: model.RoleAdmin, minRole: model.RoleAdmin, wantStatus: http.StatusOK},
		{name: "admin passes manager check", role: model.RoleAdmin, minRole: model.RoleManager, wantStatus: http.StatusOK},
		{name: "manager passes manager check", role: model.RoleManager, minRole: model.RoleManager, wantStatus: http.StatusOK},
		{name: "manager fails admin check", role: model.RoleManager, minRole: model.RoleAdmin, wantStatus: http.StatusForbidden},
		{name: "unknown role fails", role: "guest", minRole: model.RoleManager, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAuth(tm)(RequireRole(tt.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

			req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, 7, tt.role))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	handler := RequireRole(model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestGetClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetClaims(req) != nil {
		t.Error("GetClaims without middleware should return nil")
	}
	if GetUserID(req) != 0 {
		t.Error("GetUserID without middleware should return 0")
	}
	if GetUserIDPtr(req) != nil {
		t.Error("GetUserIDPtr without middleware should return nil")
	}
}

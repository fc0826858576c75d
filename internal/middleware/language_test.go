package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/store"
)

func testRegistry(t *testing.T) *i18n.Registry {
	t.Helper()
	registry, err := i18n.NewRegistry([]store.Language{
		{ID: 1, Code: "en", Name: "English", NativeName: "English", IsDefault: true, IsActive: true, Direction: "ltr"},
		{ID: 2, Code: "es", Name: "Spanish", NativeName: "Español", IsActive: true, Direction: "ltr"},
		{ID: 3, Code: "ar", Name: "Arabic", NativeName: "العربية", IsActive: true, Direction: "rtl"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func TestLanguageMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		acceptHeader string
		wantCode     string
	}{
		{name: "no preference uses default", url: "/menu", wantCode: "en"},
		{name: "query param wins", url: "/menu?lang=es", acceptHeader: "ar", wantCode: "es"},
		{name: "query param case insensitive", url: "/menu?lang=ES", wantCode: "es"},
		{name: "unsupported query param falls through to header", url: "/menu?lang=de", acceptHeader: "ar", wantCode: "ar"},
		{name: "accept-language exact match", url: "/menu", acceptHeader: "es", wantCode: "es"},
		{name: "accept-language regional variant", url: "/menu", acceptHeader: "es-MX,es;q=0.9,en;q=0.8", wantCode: "es"},
		{name: "accept-language unsupported", url: "/menu", acceptHeader: "de-DE,de;q=0.9", wantCode: "en"},
	}

	registry := testRegistry(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			var gotInfo *LanguageInfo
			handler := Language(registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCode = GetLanguageCode(r, "")
				gotInfo = GetLanguage(r)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.acceptHeader != "" {
				req.Header.Set("Accept-Language", tt.acceptHeader)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotCode != tt.wantCode {
				t.Errorf("language code = %q, want %q", gotCode, tt.wantCode)
			}
			if gotInfo == nil {
				t.Fatal("GetLanguage returned nil")
			}
			if gotInfo.Code != tt.wantCode {
				t.Errorf("LanguageInfo.Code = %q, want %q", gotInfo.Code, tt.wantCode)
			}
		})
	}
}

func TestLanguageMiddlewareDirection(t *testing.T) {
	registry := testRegistry(t)

	var gotInfo *LanguageInfo
	handler := Language(registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInfo = GetLanguage(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/menu?lang=ar", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotInfo == nil {
		t.Fatal("GetLanguage returned nil")
	}
	if gotInfo.Direction != "rtl" {
		t.Errorf("Direction = %q, want rtl", gotInfo.Direction)
	}
}

func TestGetLanguageCodeFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	if got := GetLanguageCode(req, "en"); got != "en" {
		t.Errorf("GetLanguageCode without middleware = %q, want en", got)
	}
	if GetLanguage(req) != nil {
		t.Error("GetLanguage without middleware should return nil")
	}
}

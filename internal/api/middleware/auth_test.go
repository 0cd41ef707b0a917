package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authHandler(keys []string, identity *string) http.Handler {
	return APIKeyAuth(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*identity = Identity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAPIKeyAuthNoKeysConfigured(t *testing.T) {
	var identity string
	handler := authHandler(nil, &identity)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if identity != PublicIdentity {
		t.Errorf("identity = %q, want %q", identity, PublicIdentity)
	}
}

func TestAPIKeyAuthWithKeys(t *testing.T) {
	keys := []string{"key-one", "key-two"}

	tests := []struct {
		name         string
		header       string
		value        string
		wantStatus   int
		wantIdentity string
	}{
		{"missing key", "", "", http.StatusUnauthorized, ""},
		{"invalid bearer key", "Authorization", "Bearer wrong", http.StatusForbidden, ""},
		{"valid bearer key", "Authorization", "Bearer key-one", http.StatusOK, "key-one"},
		{"valid api-key header", "api-key", "key-two", http.StatusOK, "key-two"},
		{"malformed authorization header", "Authorization", "key-one", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var identity string
			handler := authHandler(keys, &identity)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if identity != tt.wantIdentity {
				t.Errorf("identity = %q, want %q", identity, tt.wantIdentity)
			}
		})
	}
}

func TestAPIKeyAuthSkipsPreflight(t *testing.T) {
	var identity string
	handler := authHandler([]string{"key-one"}, &identity)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze/text", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
}

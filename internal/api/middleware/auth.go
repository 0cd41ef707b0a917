package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is a type for context keys
type ContextKey string

// ContextKeyIdentity is the context key for the authenticated caller
// identity (the presented API key, or "public" when no keys are
// configured).
const ContextKeyIdentity ContextKey = "identity"

// PublicIdentity is the caller identity when the service runs without
// configured API keys
const PublicIdentity = "public"

// APIKeyAuth returns middleware that validates the caller against the
// configured key set. Keys are accepted from an "Authorization: Bearer"
// header or a plain "api-key" header. With no keys configured every
// request passes as the public identity.
func APIKeyAuth(keys []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed[k] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight never carries credentials
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if len(allowed) == 0 {
				ctx := context.WithValue(r.Context(), ContextKeyIdentity, PublicIdentity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			key := extractKey(r)
			if key == "" {
				http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
				return
			}
			if !allowed[key] {
				http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractKey pulls the API key from the request headers. The Bearer
// scheme wins over the api-key header when both are present.
func extractKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(r.Header.Get("api-key"))
}

// Identity returns the caller identity from context
func Identity(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyIdentity).(string); ok {
		return id
	}
	return ""
}

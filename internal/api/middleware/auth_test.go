package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiContext "nexus/internal/api/context"
	"nexus/internal/platform/auth"
	"nexus/internal/platform/config"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour})
	valid, err := tokens.GenerateAccessToken("u1", "admin", "")
	require.NoError(t, err)

	var seen *auth.Claims
	h := NewAuthMiddleware(tokens).Handle(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(apiContext.Claims).(*auth.Claims)
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Role)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

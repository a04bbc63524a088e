package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expensy-server/src/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantUser != "" {
			id, ok := IdentityFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, wantUser, id.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"missing", "", "", false},
		{"no token", "Bearer ", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"no space", "Bearerabc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			got, err := bearerToken(req)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer(strings.Repeat("k", 32), time.Hour)
	token, err := tokens.Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	other := auth.NewTokenIssuer(strings.Repeat("o", 32), time.Hour)
	foreign, err := other.Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"foreign signature", "Bearer " + foreign, http.StatusForbidden},
		{"garbage", "Bearer nope", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := JWTAuthMiddleware(tokens)(okHandler(t, "user-1"))
			req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("listed origin is echoed", func(t *testing.T) {
		h := CORSMiddleware([]string{"http://localhost:3000"})(okHandler(t, ""))
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no allow header", func(t *testing.T) {
		h := CORSMiddleware([]string{"http://localhost:3000"})(okHandler(t, ""))
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := CORSMiddleware([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("preflight reached the handler")
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/budget", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func TestDemoModeMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		demo   bool
		method string
		path   string
		status int
	}{
		{"off allows writes", false, http.MethodPost, "/api/budget", http.StatusOK},
		{"get allowed", true, http.MethodGet, "/api/transactions", http.StatusOK},
		{"login allowed", true, http.MethodPost, "/api/auth/login", http.StatusOK},
		{"register allowed", true, http.MethodPost, "/api/auth/register", http.StatusOK},
		{"post blocked", true, http.MethodPost, "/api/transactions", http.StatusForbidden},
		{"put blocked", true, http.MethodPut, "/api/user/profile", http.StatusForbidden},
		{"delete blocked", true, http.MethodDelete, "/api/transactions/x", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := DemoModeMiddleware(tt.demo)(okHandler(t, ""))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

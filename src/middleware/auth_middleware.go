package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"expensy-server/src/auth"
	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/models"
	"expensy-server/src/util"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	userContextKey     contextKey = "user"
)

var errMissingToken = errors.New("missing token")

// Identity is what a verified bearer token proves about the caller.
type Identity struct {
	UserID string
	Email  string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// UserFromContext returns the user loaded by LoadUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// JWTAuthMiddleware rejects requests without a token (401) or with an
// invalid or expired one (403) before any handler runs.
func JWTAuthMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			token, err := bearerToken(r)
			if err != nil {
				logger.Warn("no token provided", logging.FieldPath, r.URL.Path)
				util.WriteMessage(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn("invalid token", logging.FieldError, err)
				util.WriteMessage(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Email: claims.Email})
			ctx = logging.NewContext(ctx, logger.With(logging.FieldUserID, claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadUser re-fetches the authenticated user for routes that need the full
// profile. A user that no longer exists is treated as unauthenticated.
func LoadUser(store db.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				util.WriteMessage(w, http.StatusUnauthorized, "Access token required")
				return
			}

			user, err := store.GetUserByID(r.Context(), identity.UserID)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					util.WriteMessage(w, http.StatusUnauthorized, "User not found")
					return
				}
				logging.FromContext(r.Context()).Error("failed to load user", logging.FieldError, err)
				util.WriteMessage(w, http.StatusInternalServerError, "Server error")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensy-server/src/middleware"
	"expensy-server/src/util"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeValidationError answers 400 for a util.ValidationErrors and reports
// whether err was one.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var verrs util.ValidationErrors
	if errors.As(err, &verrs) {
		util.WriteValidation(w, verrs)
		return true
	}
	return false
}

// requireIdentity returns the caller identity set by JWTAuthMiddleware.
func requireIdentity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		util.WriteMessage(w, http.StatusUnauthorized, "Access token required")
	}
	return id, ok
}

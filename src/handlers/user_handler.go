package handlers

import (
	"context"
	"errors"
	"net/http"

	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/middleware"
	"expensy-server/src/models"
	"expensy-server/src/util"
)

type profileResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// GetProfile returns the user loaded by middleware.LoadUser.
func GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			util.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		util.WriteJSON(w, http.StatusOK, user)
	}
}

// UpdateProfile changes the full name only.
func UpdateProfile(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Warn("failed to decode update profile request body", logging.FieldError, err)
			util.WriteMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}
		if err := util.ValidateProfileUpdate(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := store.UpdateUserFullName(context.WithoutCancel(r.Context()), identity.UserID, req.FullName)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteMessage(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Error("failed to update user profile", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		logger.Info("user profile updated")
		util.WriteJSON(w, http.StatusOK, profileResponse{Message: "Profile updated successfully", User: user})
	}
}

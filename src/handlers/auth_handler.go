package handlers

import (
	"context"
	"errors"
	"net/http"

	"expensy-server/src/auth"
	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/models"
	"expensy-server/src/util"
)

const invalidCredentials = "Invalid email or password"

func Register(store db.Store, tokens *auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		ctx := context.WithoutCancel(r.Context())

		var req models.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Warn("failed to decode register request body", logging.FieldError, err)
			util.WriteMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if err := util.ValidateRegister(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		if _, err := store.GetUserByEmail(ctx, req.Email); err == nil {
			logger.Info("registration rejected, email already exists")
			util.WriteMessage(w, http.StatusBadRequest, "User with this email already exists")
			return
		} else if !errors.Is(err, db.ErrNotFound) {
			logger.Error("failed to look up user during registration", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			logger.Error("failed to hash password", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		user, err := store.CreateUser(ctx, req.FullName, req.Email, hashedPassword)
		if err != nil {
			if errors.Is(err, db.ErrDuplicateEmail) {
				util.WriteMessage(w, http.StatusBadRequest, "User with this email already exists")
				return
			}
			logger.Error("failed to create user", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			logger.Error("failed to generate token", logging.FieldUserID, user.ID, logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		logger.Info("user registered", logging.FieldUserID, user.ID)
		util.WriteJSON(w, http.StatusCreated, models.AuthResponse{
			Message: "User created successfully",
			Token:   token,
			User:    user.Summary(),
		})
	}
}

// Login answers the same 400 for an unknown email and a wrong password.
func Login(store db.Store, tokens *auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())

		var req models.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Warn("failed to decode login request body", logging.FieldError, err)
			util.WriteMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}

		email := util.NormalizeEmail(req.Email)
		if email == "" || req.Password == "" {
			util.WriteMessage(w, http.StatusBadRequest, invalidCredentials)
			return
		}

		user, err := store.GetUserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				auth.CheckPasswordUnknownUser(req.Password)
				logger.Info("login failed, unknown email")
				util.WriteMessage(w, http.StatusBadRequest, invalidCredentials)
				return
			}
			logger.Error("failed to look up user during login", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during login")
			return
		}

		if !auth.CheckPassword(req.Password, user.PasswordHash) {
			logger.Info("login failed, wrong password", logging.FieldUserID, user.ID, logging.FieldRemoteAddr, r.RemoteAddr)
			util.WriteMessage(w, http.StatusBadRequest, invalidCredentials)
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			logger.Error("failed to generate token", logging.FieldUserID, user.ID, logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error during login")
			return
		}

		logger.Info("user logged in", logging.FieldUserID, user.ID)
		util.WriteJSON(w, http.StatusOK, models.AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    user.Summary(),
		})
	}
}

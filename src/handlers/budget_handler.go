package handlers

import (
	"context"
	"errors"
	"net/http"

	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/models"
	"expensy-server/src/util"
)

type budgetResponse struct {
	Message string         `json:"message"`
	Budget  *models.Budget `json:"budget"`
}

// GetBudget returns the stored budget, or {"amount":0} when none was set.
func GetBudget(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		budget, err := store.GetBudget(r.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				util.WriteJSON(w, http.StatusOK, map[string]float64{"amount": 0})
				return
			}
			logging.FromContext(r.Context()).Error("failed to get budget", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		util.WriteJSON(w, http.StatusOK, budget)
	}
}

// SetBudget upserts the caller's single budget record.
func SetBudget(store db.Store, cache *db.SummaryCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req models.SetBudgetRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Warn("failed to decode set budget request body", logging.FieldError, err)
			util.WriteMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}
		if err := util.ValidateBudget(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		budget, err := store.UpsertBudget(context.WithoutCancel(r.Context()), identity.UserID, *req.Amount)
		if err != nil {
			logger.Error("failed to set budget", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		cache.Invalidate(identity.UserID)

		logger.Info("budget set", logging.FieldAmount, budget.Amount)
		util.WriteJSON(w, http.StatusOK, budgetResponse{Message: "Budget updated successfully", Budget: budget})
	}
}

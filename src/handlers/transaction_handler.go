package handlers

import (
	"context"
	"errors"
	"net/http"

	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/models"
	"expensy-server/src/util"

	"github.com/go-chi/chi/v5"
)

type transactionResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}

type transactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func CreateTransaction(store db.Store, cache *db.SummaryCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req models.CreateTransactionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			logger.Warn("failed to decode create transaction request body", logging.FieldError, err)
			util.WriteMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}
		if err := util.ValidateTransaction(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		created, err := store.CreateTransaction(context.WithoutCancel(r.Context()), &models.Transaction{
			UserID:      identity.UserID,
			Type:        req.Type,
			Description: req.Description,
			Category:    req.Category,
			Amount:      *req.Amount,
		})
		if err != nil {
			logger.Error("failed to create transaction", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		cache.Invalidate(identity.UserID)

		logger.Info("transaction created", logging.FieldTransactionID, created.ID, logging.FieldTransactionType, created.Type, logging.FieldAmount, created.Amount)
		util.WriteJSON(w, http.StatusCreated, transactionResponse{Message: "Transaction created successfully", Transaction: created})
	}
}

// GetTransactions lists the caller's transactions, newest first.
func GetTransactions(store db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		transactions, err := store.ListTransactions(r.Context(), identity.UserID)
		if err != nil {
			logging.FromContext(r.Context()).Error("failed to list transactions", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		util.WriteJSON(w, http.StatusOK, transactionsResponse{Transactions: transactions})
	}
}

// DeleteTransaction answers 404 both for absent ids and for ids owned by
// someone else.
func DeleteTransaction(store db.Store, cache *db.SummaryCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		transactionID := chi.URLParam(r, "transaction_id")

		err := store.DeleteTransaction(context.WithoutCancel(r.Context()), identity.UserID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				logger.Info("transaction not found for deletion", logging.FieldTransactionID, transactionID)
				util.WriteMessage(w, http.StatusNotFound, "Transaction not found")
				return
			}
			logger.Error("failed to delete transaction", logging.FieldTransactionID, transactionID, logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		cache.Invalidate(identity.UserID)

		logger.Info("transaction deleted", logging.FieldTransactionID, transactionID)
		util.WriteMessage(w, http.StatusOK, "Transaction deleted successfully")
	}
}

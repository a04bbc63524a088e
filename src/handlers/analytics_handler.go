package handlers

import (
	"errors"
	"net/http"
	"slices"

	"expensy-server/src/analytics"
	"expensy-server/src/db"
	"expensy-server/src/logging"
	"expensy-server/src/models"
	"expensy-server/src/util"

	"golang.org/x/sync/errgroup"
)

// GetSummary aggregates the caller's full transaction set. Budget and
// transactions are loaded concurrently.
func GetSummary(store db.Store, cache *db.SummaryCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithComponent(logging.FromContext(r.Context()), logging.ComponentAnalytic)
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if summary, hit := cache.Get(identity.UserID); hit {
			util.WriteJSON(w, http.StatusOK, summary)
			return
		}

		generation := cache.Generation(identity.UserID)

		var (
			transactions []models.Transaction
			budget       float64
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			transactions, err = store.ListTransactions(ctx, identity.UserID)
			return err
		})
		g.Go(func() error {
			b, err := store.GetBudget(ctx, identity.UserID)
			if errors.Is(err, db.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			budget = b.Amount
			return nil
		})
		if err := g.Wait(); err != nil {
			logger.Error("failed to load analytics data", logging.FieldError, err)
			util.WriteMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		// Listing is newest first; categories are discovered oldest first.
		slices.Reverse(transactions)
		summary := analytics.WithBudget(analytics.Summarize(transactions), budget)
		cache.Set(identity.UserID, generation, summary)

		util.WriteJSON(w, http.StatusOK, summary)
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"expensy-server/src/db"
	"expensy-server/src/util"
)

type healthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database,omitempty"`
	Env       string `json:"env,omitempty"`
}

func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, healthResponse{
			Message:   "Expensy API is running!",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// Health reports process liveness plus database reachability. It answers 200
// even when the database is down so the body can say so.
func Health(store db.Store, env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "connected"
		if err := store.Ping(ctx); err != nil {
			status = "disconnected"
		}

		util.WriteJSON(w, http.StatusOK, healthResponse{
			Message:   "Server is running!",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Database:  status,
			Env:       env,
		})
	}
}

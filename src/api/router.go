package api

import (
	"log/slog"
	"net/http"

	"expensy-server/src/auth"
	"expensy-server/src/db"
	"expensy-server/src/handlers"
	"expensy-server/src/logging"
	"expensy-server/src/middleware"
	"expensy-server/src/util"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AllowedOrigins []string
	DemoMode       bool
	Env            string
}

func NewRouter(store db.Store, tokens *auth.TokenIssuer, cache *db.SummaryCache, logger *slog.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(opts.DemoMode))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		util.WriteMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", handlers.Root())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health(store, opts.Env))
		r.Post("/auth/register", handlers.Register(store, tokens))
		r.Post("/auth/login", handlers.Login(store, tokens))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(tokens)).Group(func(r chi.Router) {
			// User
			r.With(middleware.LoadUser(store)).Get("/user/profile", handlers.GetProfile())
			r.Put("/user/profile", handlers.UpdateProfile(store))

			// Budget
			r.Get("/budget", handlers.GetBudget(store))
			r.Post("/budget", handlers.SetBudget(store, cache))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(store))
			r.Post("/transactions", handlers.CreateTransaction(store, cache))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(store, cache))

			// Analytics
			r.Get("/analytics/summary", handlers.GetSummary(store, cache))
		})
	})

	return r
}

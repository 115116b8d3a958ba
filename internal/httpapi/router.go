package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New builds the dashboard API router.
func New(stores *Stores, allowedOrigins []string, logger *slog.Logger) http.Handler {
	h := &Handler{stores: stores, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/accounts", h.listAccounts)
		r.Get("/accounts/tree", h.accountTree)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.listContacts)
			r.Get("/tree", h.contactTree)
			r.With(middleware.AllowContentType("application/json")).
				Post("/duplicate-check", h.duplicateCheck)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.listTransactions)
			r.With(middleware.AllowContentType("application/json")).
				Post("/validate", h.validateTransaction)
		})

		r.Get("/reports/trial-balance", h.trialBalance)
	})

	return router
}

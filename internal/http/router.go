package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/aapnaincom/internal/http/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/authn"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/catalog"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/dashboard"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/export"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/importcsv"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/stream"
	"github.com/MrJamesThe3rd/aapnaincom/internal/http/transaction"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Auth         *auth.Handler
	Catalog      *catalog.Handler
	Dashboard    *dashboard.Handler
	Transactions *transaction.Handler
	Accounts     *account.Handler
	Import       *importcsv.Handler
	Categorize   *categorize.Handler
	Export       *export.Handler
	Stream       *stream.Handler
}

func New(opts Options, verifier authn.Verifier, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAuth := authn.Middleware(verifier)

	router.Route("/api/v1", func(r chi.Router) {
		// The stream is long-lived and must stay outside the request timeout.
		r.With(requireAuth).Get("/sync", h.Stream.Stream)

		r.Group(func(r chi.Router) {
			if opts.Timeout > 0 {
				r.Use(middleware.Timeout(opts.Timeout))
			}

			r.Route("/auth", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Auth.Routes(r)
				r.With(requireAuth).Get("/me", h.Auth.Me)
			})

			r.Get("/banks", h.Catalog.Banks)
			r.Get("/demo", h.Dashboard.Demo)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Catalog.Categories)

				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					h.Categorize.Routes(r)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Get("/summary", h.Dashboard.Summary)

				r.Route("/transactions", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					h.Transactions.Routes(r)
				})

				r.Route("/accounts", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.AllowContentType("application/json"))
						h.Accounts.Routes(r)
					})

					r.Route("/{id}/import", h.Import.Routes)
				})

				r.Route("/export", h.Export.Routes)
			})
		})
	})

	return router
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	acqmiddleware "github.com/MrJamesThe3rd/acquitrack/internal/http/middleware"
	prhttp "github.com/MrJamesThe3rd/acquitrack/internal/http/purchaserequest"
	reporthttp "github.com/MrJamesThe3rd/acquitrack/internal/http/report"
	"github.com/MrJamesThe3rd/acquitrack/internal/http/respond"
	vendorhttp "github.com/MrJamesThe3rd/acquitrack/internal/http/vendor"
	"github.com/MrJamesThe3rd/acquitrack/internal/metrics"
)

// Options carries the cross-cutting pieces of the router. Zero values disable them.
type Options struct {
	CORSOrigins []string
	JWTSecret   string
	DefaultUser actor.Actor
	Idempotency acqmiddleware.IdempotencyStore
	Metrics     *metrics.Recorder
}

func New(
	purchaseRequestsV1 *prhttp.Handler,
	vendorsV1 *vendorhttp.Handler,
	reportsV1 *reporthttp.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(acqmiddleware.RequestLogger)
	router.Use(middleware.Recoverer)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", acqmiddleware.HeaderIdempotencyKey},
			ExposedHeaders:   []string{"Content-Disposition", acqmiddleware.HeaderReplayed},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	defaultUser := opts.DefaultUser
	if defaultUser.ID == "" {
		defaultUser = actor.System
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(acqmiddleware.Authenticate(opts.JWTSecret, defaultUser))

		if opts.Idempotency != nil {
			r.Use(acqmiddleware.Idempotency(opts.Idempotency))
		}

		r.Route("/purchase-requests", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchaseRequestsV1.Routes(r)
		})

		purchaseRequestsV1.ReferenceRoutes(r)

		r.Route("/vendors", vendorsV1.Routes)

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			reportsV1.Routes(r)
		})
	})

	return router
}

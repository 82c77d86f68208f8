// Package http assembles the HTTP interface: route tree, middleware
// stack, and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/prometheus"
	"github.com/BackCheck/justice-unveiled/internal/interfaces/http/handlers"
	"github.com/BackCheck/justice-unveiled/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	ClaimHandler    *handlers.ClaimHandler
	AnalysisHandler *handlers.AnalysisHandler
	CatalogHandler  *handlers.CatalogHandler
	DocumentHandler *handlers.DocumentHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORS    *middleware.CORSConfig
	Logging *middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration.  Nil handlers leave their routes unmounted, which keeps
// partial wiring usable in tests.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Logger != nil {
		lc := middleware.DefaultLoggingConfig()
		if cfg.Logging != nil {
			lc = *cfg.Logging
		}
		r.Use(middleware.RequestLogging(cfg.Logger, lc))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.RequestMetrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerCaseRoutes(api, cfg)
		registerClaimRoutes(api, cfg.ClaimHandler)
		registerCatalogRoutes(api, cfg.CatalogHandler)
		registerDocumentRoutes(api, cfg.DocumentHandler)
	})

	return r
}

// registerCaseRoutes mounts the case-scoped collection endpoints.
func registerCaseRoutes(r chi.Router, cfg RouterConfig) {
	r.Route("/cases/{caseID}", func(cr chi.Router) {
		if h := cfg.ClaimHandler; h != nil {
			cr.Get("/claims", h.List)
			cr.Post("/claims", h.Create)
			cr.Get("/links", h.ListLinks)
			cr.Get("/fulfillments", h.ListFulfillments)
		}
		if h := cfg.AnalysisHandler; h != nil {
			cr.Get("/analysis", h.Analyze)
			cr.Get("/exhibits/tree", h.ExhibitTree)
		}
		if h := cfg.DocumentHandler; h != nil {
			cr.Get("/documents", h.List)
			cr.Post("/documents", h.Upload)
			cr.Get("/events", h.Events)
		}
	})
}

// registerClaimRoutes mounts the claim-scoped mutation endpoints.
func registerClaimRoutes(r chi.Router, h *handlers.ClaimHandler) {
	if h == nil {
		return
	}
	r.Post("/claims/{claimID}/links", h.CreateLink)
	r.Put("/claims/{claimID}/requirements/{requirementID}/fulfillment", h.SetFulfillment)
	r.Delete("/links/{linkID}", h.DeleteLink)
}

// registerCatalogRoutes mounts the read-only catalog endpoints.
func registerCatalogRoutes(r chi.Router, h *handlers.CatalogHandler) {
	if h == nil {
		return
	}
	r.Get("/catalog/sections", h.Sections)
	r.Get("/requirements", h.Requirements)
}

// registerDocumentRoutes mounts the document-scoped endpoints.
func registerDocumentRoutes(r chi.Router, h *handlers.DocumentHandler) {
	if h == nil {
		return
	}
	r.Get("/documents/{documentID}/download", h.Download)
	r.Post("/documents/{documentID}/extract", h.Extract)
}

// Package api provides the HTTP API for FindCare.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/api/handler"
	"github.com/findcare/findcare/internal/api/middleware"
	"github.com/findcare/findcare/internal/availability"
	"github.com/findcare/findcare/internal/booking"
	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/mcp"
	"github.com/findcare/findcare/internal/provider/resilience"
	"github.com/findcare/findcare/internal/search"
	"github.com/findcare/findcare/internal/triage"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version             string
	BuildTime           string
	Logger              zerolog.Logger
	ServiceName         string
	Metrics             *middleware.Metrics
	Directory           *directory.Service
	Registry            *resilience.Registry
	TriageService       *triage.Service
	SearchService       *search.Service
	AvailabilityService *availability.Service
	BookingService      *booking.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "findcare-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Directory, cfg.Registry)
	triageHandler := handler.NewTriageHandler(cfg.TriageService)
	facilityHandler := handler.NewFacilityHandler(cfg.SearchService)
	availabilityHandler := handler.NewAvailabilityHandler(cfg.AvailabilityService)
	bookingHandler := handler.NewBookingHandler(cfg.BookingService)

	mcpServer := mcp.NewServer(mcp.ServerConfig{
		Triage:       cfg.TriageService,
		Search:       cfg.SearchService,
		Availability: cfg.AvailabilityService,
		Booking:      cfg.BookingService,
		Version:      cfg.Version,
		Logger:       cfg.Logger,
	})

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Triage - cheap compute, standard rate limiting
		r.With(standardRateLimit).Post("/triage", triageHandler.Triage)

		// Facility search walks the whole directory per request
		r.With(expensiveRateLimit).Post("/facilities:search", facilityHandler.SearchFacilities)

		// Availability can call out to the live scheduling provider
		r.With(expensiveRateLimit).Post("/availability", availabilityHandler.GetAvailability)

		r.With(standardRateLimit).Post("/book", bookingHandler.Book)
	})

	// JSON-RPC tool surface for assistant clients
	r.With(expensiveRateLimit).Post("/mcp", mcpServer.ServeHTTP)

	return r
}

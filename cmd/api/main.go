// Package main provides the entrypoint for the FindCare API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/api"
	"github.com/findcare/findcare/internal/api/middleware"
	"github.com/findcare/findcare/internal/availability"
	"github.com/findcare/findcare/internal/availability/kyruus"
	"github.com/findcare/findcare/internal/booking"
	"github.com/findcare/findcare/internal/database"
	"github.com/findcare/findcare/internal/directory"
	"github.com/findcare/findcare/internal/insurance"
	"github.com/findcare/findcare/internal/location"
	"github.com/findcare/findcare/internal/location/zippopotam"
	"github.com/findcare/findcare/internal/provider/resilience"
	"github.com/findcare/findcare/internal/search"
	"github.com/findcare/findcare/internal/telemetry"
	"github.com/findcare/findcare/internal/triage"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "findcare-api"

	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FindCare API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Facility directory. The embedded dataset is the default primary;
	// a database takes over when configured.
	var primary directory.Source = directory.NewEmbeddedSource()
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		primary = directory.NewPostgresSource(pool)
	}

	partnerDataPath := os.Getenv("PARTNER_DATA_PATH")
	if partnerDataPath == "" {
		partnerDataPath = "data/kyruus.locations.json"
	}
	partner := directory.NewFileSource("kyruus", partnerDataPath)

	dir := directory.NewService(directory.ServiceConfig{
		Primary: primary,
		Partner: partner,
		Logger:  log,
	})
	if err := dir.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load facility directory")
	}
	log.Info().Int("facilities", len(dir.All())).Msg("facility directory loaded")

	// Provider registry for ops status reporting
	registry := resilience.NewRegistry()

	geocodeClient := resilience.NewClient(resilience.ClientConfig{
		Name:            zippopotam.ProviderName,
		Timeout:         5 * time.Second,
		MaxRetries:      1,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     1 * time.Second,
	})
	registry.Register(zippopotam.ProviderName, geocodeClient)
	geocoder := zippopotam.NewClient(zippopotam.ClientConfig{
		BaseURL:    os.Getenv("ZIPPOPOTAM_BASE_URL"),
		HTTPClient: geocodeClient,
	})

	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder: geocoder,
		Logger:   log,
	})

	schedulingClient := resilience.NewClient(resilience.ClientConfig{
		Name:            kyruus.ProviderName,
		Timeout:         5 * time.Second,
		MaxRetries:      1,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     1 * time.Second,
	})
	registry.Register(kyruus.ProviderName, schedulingClient)
	scheduling := kyruus.NewClient(kyruus.ClientConfig{
		BaseURL:    os.Getenv("KYRUUS_BASE_URL"),
		HTTPClient: schedulingClient,
	})

	overridesPath := os.Getenv("KYRUUS_OVERRIDES_PATH")
	if overridesPath == "" {
		overridesPath = "data/kyruus.overrides.json"
	}
	overrides, err := kyruus.LoadOverrides(overridesPath)
	if err != nil {
		log.Warn().Err(err).Str("path", overridesPath).Msg("ignoring unreadable location code overrides")
	} else if len(overrides.LocationCodeOverrides) > 0 {
		log.Info().Int("overrides", len(overrides.LocationCodeOverrides)).Msg("location code overrides loaded")
	}

	triageService := triage.NewService(triage.ServiceConfig{Logger: log})
	searchService := search.NewService(search.ServiceConfig{
		Directory:  dir,
		Resolver:   resolver,
		Normalizer: insurance.NewNormalizer(insurance.NormalizerConfig{}),
		Logger:     log,
	})
	availabilityService := availability.NewService(availability.ServiceConfig{
		Directory:         dir,
		Live:              scheduling,
		LocationOverrides: overrides.LocationCodeOverrides,
		Logger:            log,
	})
	bookingService := booking.NewService(booking.ServiceConfig{
		PortalBaseURL: os.Getenv("BOOKING_PORTAL_URL"),
	})
	log.Info().Msg("services initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		Directory:           dir,
		Registry:            registry,
		TriageService:       triageService,
		SearchService:       searchService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

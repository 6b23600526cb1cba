package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eventflow/marketplace/internal/adapters/cache"
	"github.com/eventflow/marketplace/internal/adapters/database"
	"github.com/eventflow/marketplace/internal/adapters/events"
	"github.com/eventflow/marketplace/internal/adapters/search"
	"github.com/eventflow/marketplace/internal/api/handlers"
	"github.com/eventflow/marketplace/internal/api/routes"
	"github.com/eventflow/marketplace/internal/application/services"
	"github.com/eventflow/marketplace/internal/domain/providers"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/postgres"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/redis"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/typesense"
	"github.com/eventflow/marketplace/internal/infrastructure/observability"
	"github.com/eventflow/marketplace/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Database is mandatory; everything else degrades gracefully.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and event bus")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, catalog will use the database")
		typesenseClient = nil
	}

	// Adapters
	bookingAdapter := database.NewBookingAdapter(pgClient)
	eventAdapter := database.NewEventAdapter(pgClient)
	vendorAdapter := database.NewVendorAdapter(pgClient)
	serviceAdapter := database.NewServiceAdapter(pgClient)
	paymentAdapter := database.NewPaymentAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		go consumeBookingEvents(ctx, eventBus)
	}

	var searchProvider providers.SearchProvider
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchProvider = adapter
	}

	// Services
	paymentService := services.NewPaymentService(paymentAdapter)
	bookingService := services.NewBookingService(
		bookingAdapter,
		eventAdapter,
		serviceAdapter,
		vendorAdapter,
		paymentService,
		eventBus,
		metrics,
	)
	reviewService := services.NewReviewService(reviewAdapter, bookingAdapter)
	eventService := services.NewEventService(eventAdapter)
	vendorService := services.NewVendorService(vendorAdapter, serviceAdapter, searchProvider)
	catalogService := services.NewCatalogService(vendorAdapter, serviceAdapter, reviewAdapter, searchProvider, cacheProvider, metrics)
	statsService := services.NewStatsService(pgClient.DBX())

	// Handlers and router
	router := routes.NewRouter(
		handlers.NewBookingHandler(bookingService, reviewService),
		handlers.NewEventHandler(eventService),
		handlers.NewVendorHandler(vendorService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewAdminHandler(statsService),
		cfg.Auth.JWTSecret,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}

// consumeBookingEvents tails the firehose channel and writes an audit
// line per lifecycle event. The subscription ends with the process
// context; the bus closes the channel when it does.
func consumeBookingEvents(ctx context.Context, bus providers.EventBus) {
	bookingEvents, err := bus.Subscribe(ctx, providers.EventChannelBookingUpdates)
	if err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to booking events")
		return
	}

	for event := range bookingEvents {
		log.Info().
			Str("event_id", event.ID).
			Str("type", string(event.Type)).
			Str("booking_id", event.BookingID).
			Str("from_status", string(event.FromStatus)).
			Str("to_status", string(event.ToStatus)).
			Msg("booking event")
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	crisishandler "github.com/smartlabel/smartlabel-backend/internal/crisis/handler"
	crisisservice "github.com/smartlabel/smartlabel-backend/internal/crisis/service"
	"github.com/smartlabel/smartlabel-backend/internal/label/events"
	"github.com/smartlabel/smartlabel-backend/internal/label/generator"
	"github.com/smartlabel/smartlabel-backend/internal/label/handler"
	"github.com/smartlabel/smartlabel-backend/internal/label/service"
	"github.com/smartlabel/smartlabel-backend/internal/label/store"
	"github.com/smartlabel/smartlabel-backend/pkg/config"
	"github.com/smartlabel/smartlabel-backend/pkg/database"
	"github.com/smartlabel/smartlabel-backend/pkg/httputil"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
	"github.com/smartlabel/smartlabel-backend/pkg/messaging"
	"github.com/smartlabel/smartlabel-backend/pkg/retry"
	"github.com/smartlabel/smartlabel-backend/pkg/translation"
)

const version = "1.2.0"

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("label-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("label-service", cfg.Server.Environment)
	log.Info().Msg("starting Label Service")

	translator, err := translation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load translation dictionaries")
	}

	// Select label store backend
	gateway, cleanup, err := newGateway(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize label store")
	}
	if cleanup != nil {
		defer cleanup()
	}
	log.Info().Str("backend", cfg.Store.Backend).Msg("label store ready")

	// Connect to RabbitMQ. Event publishing is best-effort; label generation
	// keeps working without a broker.
	var labelEvents *events.LabelEventPublisher
	var crisisEvents crisisservice.EventPublisher
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, events disabled")
	} else {
		defer rmq.Close()
		labelEvents, err = events.NewLabelEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create label event publisher")
		}
		crisisPublisher, err := messaging.NewPublisher(rmq, messaging.ExchangeLabelEvents, "label-service", log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create crisis event publisher")
		}
		crisisEvents = crisisPublisher
	}

	// Initialize the Bedrock generation capability
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Bedrock.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}
	capability := generator.NewBedrockCapability(awsCfg, &cfg.Bedrock)

	gen := generator.New(capability, translator, retry.DefaultPolicy(), cfg.Generation.Timeout, log)

	// Initialize services
	var labelPublisher service.EventPublisher
	if labelEvents != nil {
		labelPublisher = labelEvents
	}
	labelService := service.New(gen, gateway, labelPublisher, log)
	crisisService := crisisservice.New(crisisEvents, log)

	// Initialize handlers
	labelHandler := handler.New(labelService, log)
	crisisHandler := crisishandler.New(crisisService, log)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		health := map[string]interface{}{
			"status":    "healthy",
			"service":   "label-service",
			"version":   version,
			"store":     gateway.Health(req.Context()),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API routes
	r.Route("/api/v1", func(api chi.Router) {
		labelHandler.RegisterRoutes(api)
		crisisHandler.RegisterRoutes(api)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newGateway builds the configured store backend. The returned cleanup
// closes any underlying connection and may be nil.
func newGateway(cfg *config.Config, log *logger.Logger) (store.Gateway, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return store.NewMemory(), nil, nil

	case config.StoreDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Store.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return store.NewDynamoDB(awsCfg, cfg.Store.Table), nil, nil

	case config.StorePostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}
		return store.NewPostgres(db.DB), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

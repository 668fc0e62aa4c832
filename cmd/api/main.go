package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unify-edu/unify-backend/internal/adapters/cache"
	"github.com/unify-edu/unify-backend/internal/adapters/database"
	"github.com/unify-edu/unify-backend/internal/adapters/modelstore"
	"github.com/unify-edu/unify-backend/internal/api/handlers"
	"github.com/unify-edu/unify-backend/internal/api/middleware"
	"github.com/unify-edu/unify-backend/internal/api/routes"
	"github.com/unify-edu/unify-backend/internal/application/services"
	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/gemini"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/postgres"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/redis"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
	"github.com/unify-edu/unify-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Load the trained accommodation model. The model is a hard dependency:
	// without it the engine cannot encode profiles at all.
	store := modelstore.NewFileStore(cfg.Model.ArtifactPath)
	model, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load model artifact: %v", err)
	}
	vocabulary := entities.NewVocabulary(model.Version, model.Labels)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize the Gemini recommender. Optional: without it the cascade
	// runs its deterministic tiers only.
	var generative providers.GenerativeRecommender
	if cfg.Gemini.APIKey == "" {
		log.Println("Warning: GEMINI_API_KEY is not set; AI recommendation tier disabled")
	} else {
		geminiClient, err := gemini.NewClient(ctx, &cfg.Gemini, metrics)
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini client: %v", err)
		} else {
			defer geminiClient.Close()
			generative = geminiClient
			log.Println("Gemini client initialized successfully")
		}
	}

	// Load the university catalog. Also a hard dependency: an empty catalog
	// would put every request on the fallback path.
	catalog := services.NewCatalogService(database.NewUniversityAdapter(pgClient))
	if err := catalog.Reload(ctx); err != nil {
		log.Fatalf("Failed to load university catalog: %v", err)
	}
	if catalog.Size() == 0 {
		log.Fatalf("University catalog is empty; run the seed script first")
	}

	// Initialize services
	scorer := services.NewUniversityScorer(cfg.Engine.RatingWeight, cfg.Engine.OverlapWeight)
	engine := services.NewRecommendationService(
		services.NewProfileEncoder(model),
		services.NewAccommodationPredictor(model, vocabulary, cfg.Engine.PredictionThreshold, cfg.Engine.PredictionTopK),
		scorer,
		catalog,
		vocabulary,
		generative,
		services.NewDefaultRecommendationService(scorer, vocabulary),
		cacheProvider,
		metrics,
		cfg.Engine,
		cfg.Gemini.Timeout,
	)
	verifier := services.NewVerificationService(engine)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(engine, verifier, catalog)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		recommendationHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}

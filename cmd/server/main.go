package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questdeck/internal/cache"
	"questdeck/internal/config"
	"questdeck/internal/repository"
	"questdeck/internal/service"
	"questdeck/internal/transport/rest"
	"questdeck/internal/transport/ws"
)

// @title QuestDeck API
// @version 1.0
// @description Question-type decision and generation service for authored passages
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Generate: %s", aiConfig.Models.Generate)
	log.Printf("  Batch:    %s", aiConfig.Models.Batch)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (using mock generator)")
	}
	if cfg.StrictOperators {
		log.Println("Operator mode: strict (unknown operators fail closed)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepo(db)
	passageRepo := repository.NewPassageRepo(db)
	generationRepo := repository.NewGenerationRepo(db)

	// Initialize caches
	featureCache := cache.NewFeatureCache(rdb)
	generationCache := cache.NewGenerationCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	catalogSvc := service.NewCatalogService(catalogRepo)
	passageSvc := service.NewPassageService(passageRepo, featureCache)
	decisionSvc := service.NewDecisionService(catalogSvc, passageRepo, featureCache, cfg.StrictOperators)
	generatorSvc := service.NewGeneratorService(generationRepo, generationCache)

	// Load the policy catalog once at startup (defaults fallback inside)
	if err := catalogSvc.Load(ctx); err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	// Inject broadcaster (wsHub implements service.Broadcaster)
	decisionSvc.SetBroadcaster(wsHub)
	generatorSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		CatalogService:  catalogSvc,
		DecisionService: decisionSvc,
		PassageService:  passageSvc,
		Generator:       generatorSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Host auth: username=%s", os.Getenv("HOST_USERNAME"))
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/catalog/types")
		log.Println("  POST /v1/catalog/reload")
		log.Println("  POST /v1/decisions")
		log.Println("  POST/GET /v1/passages")
		log.Println("  POST/GET /v1/passages/{textId}/questions")
		log.Println("  WS   /v1/ws/events")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

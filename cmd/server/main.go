package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cartwise/backend/config"
	httpDelivery "github.com/cartwise/backend/internal/delivery/http"
	"github.com/cartwise/backend/internal/domain"
	"github.com/cartwise/backend/internal/infrastructure/cache"
	"github.com/cartwise/backend/internal/infrastructure/catalog"
	"github.com/cartwise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CartWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	catalogCache := cache.NewCatalogCache(cfg.Cache.TTL, cfg.Cache.MaxStores)

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerMinute)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	log.Printf("Catalog service: %s (%d req/min)", cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerMinute)

	// Initialize the decision engine
	engine := usecase.NewEngine(usecase.EngineConfig{
		MultiStoreEnabled:          cfg.Engine.MultiStoreEnabled,
		AssumeSatisfiedWhenUnknown: cfg.Engine.AssumeSatisfiedWhenUnknown,
		MinRelevance:               cfg.Engine.MinRelevance,
		EnableFuzzyMatching:        cfg.Engine.EnableFuzzyMatching,
		FuzzyEditDistance:          cfg.Engine.FuzzyEditDistance,
		EnableDebugLogging:         cfg.Engine.EnableDebugLogging,
	})

	log.Printf("Engine: multi_store=%v, min_relevance=%.2f, fuzzy=%v",
		cfg.Engine.MultiStoreEnabled,
		cfg.Engine.MinRelevance,
		cfg.Engine.EnableFuzzyMatching)

	// Known store roster for scope filtering
	knownStores := make([]domain.StoreInfo, 0, len(cfg.Stores))
	for _, store := range cfg.Stores {
		knownStores = append(knownStores, domain.StoreInfo{Name: store.Name, Location: store.Location})
	}
	log.Printf("Known stores: %d", len(knownStores))

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		catalogCache,
		catalogClient,
		engine,
		knownStores,
		cfg.Engine.EnableDebugLogging,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

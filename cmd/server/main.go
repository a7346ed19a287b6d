package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopmate/backend/config"
	httpDelivery "github.com/shopmate/backend/internal/delivery/http"
	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/infrastructure/cache"
	"github.com/shopmate/backend/internal/infrastructure/catalog"
	"github.com/shopmate/backend/internal/infrastructure/extractor"
	"github.com/shopmate/backend/internal/usecase"
)

func main() {
	// Load .env first so the extractor API key is visible to viper
	if err := godotenv.Load(); err == nil {
		log.Printf(".env file loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopMate Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the catalog once; a missing catalog degrades to an empty engine
	// rather than a crash.
	products, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Printf("WARNING: %v - serving with an empty catalog", err)
		products = nil
	}

	vocab := usecase.BuildVocabulary(products)
	log.Printf("Vocabulary: %d categories, %d brands, %d colors",
		len(vocab.Categories), len(vocab.Brands), len(vocab.Colors))

	// Optional external extraction capability
	var intentExtractor domain.IntentExtractor
	if cfg.Extractor.Provider == "openai" {
		client := extractor.NewClient(cfg.Extractor.APIKey, cfg.Extractor.BaseURL, cfg.Extractor.Model, cfg.Extractor.Timeout)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		intentExtractor = client
		log.Printf("Extractor: %s (%s)", cfg.Extractor.Provider, cfg.Extractor.Model)
	} else {
		log.Printf("Extractor: disabled, rule-based resolution only")
	}

	// Initialize usecase layer
	rules := usecase.NewRuleBasedResolver(vocab, cfg.Matching.EnableDebugLogging)
	resolver := usecase.NewFallbackResolver(intentExtractor, rules, cfg.Matching.EnableDebugLogging)
	pipeline := usecase.NewFilterPipeline(products, cfg.Matching.EnableDebugLogging)

	assistant := usecase.NewAssistantService(resolver, pipeline, cache.NewMemoryCache(), usecase.AssistantConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(assistant)

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

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/flipradar/backend/config"
	httpDelivery "github.com/flipradar/backend/internal/delivery/http"
	"github.com/flipradar/backend/internal/domain"
	"github.com/flipradar/backend/internal/infrastructure/amazon"
	"github.com/flipradar/backend/internal/infrastructure/cache"
	"github.com/flipradar/backend/internal/infrastructure/retail"
	"github.com/flipradar/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FlipRadar Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	lookupCache := cache.NewBoundedCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	log.Printf("Cache: ttl=%s max=%d", cfg.Cache.TTL, cfg.Cache.MaxEntries)

	amazonClient := amazon.NewClient(cfg.Amazon.BaseURL)
	retailClient := retail.NewClient(cfg.Retailers.Endpoints())

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		amazonClient.SetDebug(true)
		retailClient.SetDebug(true)
	}

	log.Printf("Amazon lookup: %s", cfg.Amazon.BaseURL)
	log.Printf("Retailers: %v", retailClient.Retailers())

	// Initialize usecase layer
	matcher := usecase.NewMatcher(usecase.MatcherConfig{
		MinScore:           cfg.Matching.MinScore,
		MinPriceRatio:      cfg.Matching.MinPriceRatio,
		MaxPriceRatio:      cfg.Matching.MaxPriceRatio,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	analyzer := usecase.NewDealAnalyzer(usecase.AnalyzerConfig{
		FeeRate: cfg.Analysis.FeeRate,
		SOP: domain.SOPCriteria{
			MinPrice:        cfg.Analysis.MinPrice,
			MinROI:          cfg.Analysis.MinROI,
			MinMonthlySales: cfg.Analysis.MinMonthlySales,
		},
	})

	analysisService := usecase.NewAnalysisService(
		lookupCache,
		amazonClient,
		retailClient,
		matcher,
		analyzer,
		usecase.AnalysisServiceConfig{
			Workers:            cfg.Analysis.Workers,
			SearchLimit:        cfg.Amazon.SearchLimit,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: minScore=%.2f band=[%.2f, %.2f] debug=%v",
		cfg.Matching.MinScore,
		cfg.Matching.MinPriceRatio,
		cfg.Matching.MaxPriceRatio,
		cfg.Matching.EnableDebugLogging)
	log.Printf("Analysis: workers=%d feeRate=%.2f minROI=%.0f%%",
		cfg.Analysis.Workers, cfg.Analysis.FeeRate, cfg.Analysis.MinROI)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, matcher)

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

package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/grocertrack/backend/config"
	httpDelivery "github.com/grocertrack/backend/internal/delivery/http"
	"github.com/grocertrack/backend/internal/domain"
	"github.com/grocertrack/backend/internal/infrastructure/cache"
	"github.com/grocertrack/backend/internal/infrastructure/gemini"
	"github.com/grocertrack/backend/internal/infrastructure/store"
	"github.com/grocertrack/backend/internal/usecase"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting grocertrack backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Persistence: Supabase when configured, otherwise an in-memory store
	// that only survives the process.
	var repo domain.ItemRepository
	if cfg.Store.SupabaseURL != "" {
		repo = store.NewSupabaseStore(store.SupabaseConfig{
			URL:    cfg.Store.SupabaseURL,
			APIKey: cfg.Store.SupabaseKey,
			Table:  cfg.Store.Table,
		}, logger)
		logger.Info("using supabase store", zap.String("table", cfg.Store.Table))
	} else {
		repo = store.NewMemoryStore()
		logger.Warn("no supabase url configured, items will not persist")
	}

	classifier := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, logger)
	if cfg.Gemini.APIKey == "" {
		logger.Warn("no gemini api key configured, assistant falls back to keyword matching only")
	}

	matcher := usecase.NewMatchingService(usecase.MatcherConfig{
		Threshold:      cfg.Matching.Threshold,
		MaxDistance:    cfg.Matching.MaxDistance,
		MinMatchLength: cfg.Matching.MinMatchLength,
		Logger:         logger,
	})
	ingestion := usecase.NewIngestionService(repo, matcher, logger)
	assistant := usecase.NewAssistantService(classifier, cache.NewMemoryCache(), cfg.Cache.TTL, logger)

	handler := httpDelivery.NewHandler(matcher, ingestion, assistant, repo, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

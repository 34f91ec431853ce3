// Command support-engine-api serves the customer support chat HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lookog/scoot-assist-ai/internal/cache"
	"github.com/lookog/scoot-assist-ai/internal/config"
	"github.com/lookog/scoot-assist-ai/internal/engine"
	"github.com/lookog/scoot-assist-ai/internal/genai"
	"github.com/lookog/scoot-assist-ai/internal/knowledge"
	"github.com/lookog/scoot-assist-ai/internal/match"
	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/routing"
	"github.com/lookog/scoot-assist-ai/internal/storage"
	"github.com/lookog/scoot-assist-ai/internal/suggest"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "support-engine-api",
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, storage.OpenConfig{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.DatabaseDSN(),
		MaxOpenConns: cfg.Database.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Database.Postgres.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
			cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}
	defer cacheClient.Close()

	faqRepo := storage.NewFaqRepository(db)
	patternRepo := storage.NewIntentPatternRepository(db)
	messageRepo := storage.NewMessageRepository(db)

	loader := knowledge.NewLoader(logger, faqRepo, patternRepo, cacheClient, knowledge.LoaderConfig{
		FallbackToCache: cfg.Cache.SnapshotFallback,
		CacheTTL:        cfg.Cache.TTL,
	})

	matcher := match.NewMatcher(logger, match.Config{
		LexicalWeight:    cfg.Matching.LexicalWeight,
		KeywordWeight:    cfg.Matching.KeywordWeight,
		SemanticWeight:   cfg.Matching.SemanticWeight,
		SynonymScore:     cfg.Matching.SynonymScore,
		SubstringScore:   cfg.Matching.SubstringScore,
		ModelBoost:       cfg.Matching.ModelBoost,
		DifferenceBoost:  cfg.Matching.DifferenceBoost,
		TypesBoost:       cfg.Matching.TypesBoost,
		SubstringMinSize: cfg.Matching.SubstringMinSize,
	})

	var completer genai.Completer
	if cfg.GenAI.APIKey != "" {
		completer = genai.NewClient(genai.ClientConfig{
			BaseURL:    cfg.GenAI.BaseURL,
			APIKey:     cfg.GenAI.APIKey,
			Model:      cfg.GenAI.Model,
			MaxRetries: cfg.GenAI.MaxRetries,
			Timeout:    cfg.GenAI.Timeout,
		})
	} else {
		logger.Warn().Msg("GENAI_API_KEY not set, generative fallback disabled")
	}

	router := routing.NewRouter(logger, completer, faqRepo, routing.Config{
		ConfidenceThreshold: cfg.Routing.ConfidenceThreshold,
		MaxRelatedEntries:   cfg.Routing.MaxRelatedEntries,
		MaxPromptEntries:    cfg.Routing.MaxPromptEntries,
		FallbackTimeout:     cfg.Routing.FallbackTimeout,
	})

	eng := engine.New(logger, loader, matcher, router, suggest.NewGenerator(nil), messageRepo)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newHTTPRouter(logger, eng, db),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/studyforge/studyforge/internal/api"
	"github.com/studyforge/studyforge/internal/cache"
	"github.com/studyforge/studyforge/internal/config"
	"github.com/studyforge/studyforge/internal/events"
	"github.com/studyforge/studyforge/internal/generation"
	"github.com/studyforge/studyforge/internal/platform/gemini"
	"github.com/studyforge/studyforge/internal/platform/ollama"
	"github.com/studyforge/studyforge/internal/platform/postgres"
	"github.com/studyforge/studyforge/internal/retrieval"
	"github.com/studyforge/studyforge/internal/search"
	"github.com/studyforge/studyforge/internal/service"
	"github.com/studyforge/studyforge/internal/task"
	"github.com/studyforge/studyforge/internal/workflow"
)

// application holds the long-lived components and owns their lifecycle.
type application struct {
	cfg    *config.Config
	logger *slog.Logger

	server *http.Server
	queue  *task.Queue
	runner *task.Runner

	memCache    *cache.MemoryCache
	redisClient *redis.Client
	pool        *pgxpool.Pool
}

// newApplication wires every component from configuration. Construction
// is explicit and ordered: platform clients first, then workflows, then
// the orchestrator and HTTP surface.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	// Response cache
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var responseCache cache.ResponseCache
	switch cfg.Cache.Backend {
	case "redis":
		app.redisClient = redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		responseCache = cache.NewRedisCache(app.redisClient, ttl, logger)
	default:
		sweep := time.Duration(cfg.Cache.SweepIntervalSeconds) * time.Second
		app.memCache = cache.NewMemoryCache(ttl, sweep, logger)
		responseCache = app.memCache
	}

	// Generation backends
	remote, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote generator: %w", err)
	}

	var local generation.TextGenerator
	var embedder retrieval.Embedder
	if cfg.Ollama.BaseURL != "" {
		ollamaClient := ollama.NewClient(cfg.Ollama.BaseURL)
		if cfg.Ollama.Model != "" {
			localGen, genErr := ollama.NewGenerator(ollamaClient, cfg.Ollama.Model)
			if genErr != nil {
				return nil, fmt.Errorf("failed to create local generator: %w", genErr)
			}
			local = localGen
		}
		if cfg.Ollama.EmbedModel != "" {
			ollamaEmbedder, embErr := ollama.NewEmbedder(ollamaClient, cfg.Ollama.EmbedModel)
			if embErr != nil {
				return nil, fmt.Errorf("failed to create embedder: %w", embErr)
			}
			embedder = ollamaEmbedder
		}
	}

	adapter := generation.NewTextAdapter(&generation.RuntimeRouter{Remote: remote, Local: local})

	// Web search enrichment
	var searcher search.Searcher
	if cfg.Search.SerperAPIKey != "" {
		serper, searchErr := search.NewSerperClient(cfg.Search.SerperAPIKey, cfg.Search.MaxResults)
		if searchErr != nil {
			return nil, fmt.Errorf("failed to create search client: %w", searchErr)
		}
		searcher = serper
	} else {
		logger.Warn("no search API key configured, fallback synthesis runs without web results")
	}
	searchService := search.NewSoftService(searcher, logger)

	// Persistence and retrieval index
	var storage service.Storage
	var index retrieval.Index
	if cfg.Database.URL != "" {
		if err := runMigrations(cfg.Database.URL); err != nil {
			return nil, err
		}
		pool, poolErr := pgxpool.New(ctx, cfg.Database.URL)
		if poolErr != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", poolErr)
		}
		app.pool = pool
		storage = postgres.NewStudyStore(pool, logger)
		index = postgres.NewChunkStore(pool, logger, 0)
	} else {
		logger.Warn("no database configured, history is in-memory only")
		storage = service.NewMemoryStorage()
		index = retrieval.NewMemoryIndex()
	}

	retriever := retrieval.NewRetriever(embedder, index, logger, cfg.Retrieval.MaxContextChars)

	// Workflows
	fallbackGraph := workflow.NewFallbackGraph(adapter, searchService, logger)
	ragPipeline := workflow.NewRAGPipeline(retriever, adapter, logger, cfg.Retrieval.TopK)

	// Background job machinery
	jobStore := task.NewJobStore()
	app.queue = task.NewQueue(cfg.Queue.Size, logger)
	app.runner = task.NewRunner(app.queue, task.RunnerConfig{WorkerCount: cfg.Queue.WorkerCount}, logger)

	emitter := events.NewInMemoryEmitter(logger)

	orchestrator, err := service.NewStudyOrchestrator(
		responseCache, adapter, fallbackGraph, ragPipeline, retriever,
		jobStore, app.queue, emitter, storage, logger,
		service.OrchestratorConfig{Async: cfg.Queue.Async},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	emitter.RegisterHandler(orchestrator)

	// HTTP surface
	router := api.NewRouter(api.NewStudyHandler(orchestrator))
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// Start launches the worker pool and the HTTP server. It blocks until
// the server stops.
func (app *application) Start() error {
	app.runner.Start()

	app.logger.Info("server listening", "addr", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the components in reverse construction order: stop
// accepting requests, drain the workers, then release platform clients.
func (app *application) Shutdown(ctx context.Context) {
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
	}

	app.queue.Close()
	app.runner.Stop()

	if app.memCache != nil {
		app.memCache.Stop()
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Warn("failed to close redis client", "error", err)
		}
	}
	if app.pool != nil {
		app.pool.Close()
	}

	app.logger.Info("shutdown complete")
}

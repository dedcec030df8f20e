package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/studytube-app/studytube/internal/api"
	"github.com/studytube-app/studytube/internal/config"
	"github.com/studytube-app/studytube/internal/database"
	"github.com/studytube-app/studytube/internal/gemini"
	mw "github.com/studytube-app/studytube/internal/middleware"
	"github.com/studytube-app/studytube/internal/notes"
	"github.com/studytube-app/studytube/internal/quota"
	iredis "github.com/studytube-app/studytube/internal/redis"
	"github.com/studytube-app/studytube/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("validating config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Quota store. With no backend configured the ledger admits everything;
	// config.Validate already warned about that at startup.
	var (
		store     quota.Store
		rateLimit func(http.Handler) http.Handler
	)

	switch cfg.Quota.Store {
	case config.QuotaStorePostgres:
		if err := database.RunMigrations(cfg.DB.DSN(), "migrations"); err != nil {
			slog.Error("running migrations", "error", err)
			os.Exit(1)
		}
		pool, err := database.NewPostgresPool(ctx, cfg.DB)
		if err != nil {
			slog.Error("connecting to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = quota.NewPostgresStore(pool)

	case config.QuotaStoreRedis:
		client, err := iredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Error("connecting to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		store = quota.NewRedisStore(client)
		if cfg.RateLimit.MaxRequests > 0 {
			rateLimit = mw.NewRateLimiter(client, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec).Middleware
		}
	}

	ledger := quota.NewLedger(store, cfg.Quota.FreeDailyLimit)

	// Model client
	llm, err := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		slog.Error("creating gemini client", "error", err)
		os.Exit(1)
	}

	// Generation pipeline
	generator := notes.NewGenerator(llm, cfg.Gemini.Timeout)
	svc := notes.NewService(generator, ledger)
	handler := notes.NewHandler(svc)

	var storeHealthy func(*http.Request) error
	if store != nil {
		storeHealthy = func(r *http.Request) error { return store.Ping(r.Context()) }
	}

	router := api.NewRouter(api.RouterConfig{
		CORSAllowedOrigins:  cfg.CORS.AllowedOrigins,
		GenerateRateLimiter: rateLimit,
		StoreHealthy:        storeHealthy,
	}, api.HandlerSet{
		GenerateNotes: handler.Generate,
		QuotaStatus:   handler.QuotaStatus,
	})

	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

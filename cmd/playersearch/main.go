package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fundguard/playersearch/internal/cache"
	"github.com/fundguard/playersearch/internal/config"
	"github.com/fundguard/playersearch/internal/domain/names"
	"github.com/fundguard/playersearch/internal/es/elastic"
	logpkg "github.com/fundguard/playersearch/internal/logger"
	"github.com/fundguard/playersearch/internal/metrics"
	indexrepo "github.com/fundguard/playersearch/internal/repository/index"
	"github.com/fundguard/playersearch/internal/repository/players"
	searchrepo "github.com/fundguard/playersearch/internal/repository/search"
	chiTransport "github.com/fundguard/playersearch/internal/transport/chi"
	healthuc "github.com/fundguard/playersearch/internal/usecase/health"
	indexuc "github.com/fundguard/playersearch/internal/usecase/index"
	searchuc "github.com/fundguard/playersearch/internal/usecase/search"
	"github.com/fundguard/playersearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting playersearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("elastic_addrs", cfg.Elastic.Addresses),
		zap.String("index", cfg.Search.IndexName),
	)

	store, err := elastic.NewStore(elastic.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search backend not ready", zap.Error(err))
	}
	logger.Info("Connected to search backend")

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Name variant table: built-in defaults, optionally extended from file.
	table := names.Default()
	if cfg.Names.VariantsFile != "" {
		table, err = names.Load(cfg.Names.VariantsFile)
		if err != nil {
			logger.Fatal("Failed to load name variants", zap.Error(err))
		}
		logger.Info("Loaded name variants", zap.String("file", cfg.Names.VariantsFile))
	}

	// Optional result cache.
	var resultCache *cache.Cache
	if len(cfg.Cache.Addrs) > 0 {
		resultCache, err = cache.New(cache.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
			TTL:      time.Duration(cfg.Cache.TTLSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create result cache", zap.Error(err))
		}
		defer resultCache.Close()
		logger.Info("Result cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Optional relational player source; required for indexing endpoints.
	var playerDB *sql.DB
	var playerRepo *players.Repo
	if cfg.Postgres.DSN != "" {
		playerDB, err = players.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Fatal("Failed to connect to postgres", zap.Error(err))
		}
		defer playerDB.Close()
		playerRepo = players.New(playerDB)
		logger.Info("Connected to player store")
	}

	writer := indexrepo.NewWriter(store, cfg.Search.IndexName, table, logger)
	searchRepo := searchrepo.New(store, cfg.Search.IndexName)

	// Pass nil interface (not typed nil pointer!) when a component is not
	// configured. Go gotcha: (*cache.Cache)(nil) wrapped in ResultCache != nil.
	var rc searchuc.ResultCache
	if resultCache != nil {
		rc = resultCache
	}
	searchSvc := searchuc.New(searchRepo, table, rc, searchuc.Config{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	})

	var source indexuc.PlayerSource
	if playerRepo != nil {
		source = playerRepo
	}
	indexSvc := indexuc.New(writer, source, indexuc.Config{
		BatchSize: cfg.Search.ReindexBatch,
	})

	var dbPinger, cachePinger healthuc.Pinger
	if playerDB != nil {
		dbPinger = sqlPinger{playerDB}
	}
	if resultCache != nil {
		cachePinger = resultCache
	}
	healthSvc := healthuc.New(store, dbPinger, cachePinger)

	// Create the index on start so first searches never hit a missing index.
	if err := indexSvc.EnsureIndex(ctx); err != nil {
		logger.Warn("Index not ready on start, continuing degraded", zap.Error(err))
	}

	server := chiTransport.NewServer(searchSvc, indexSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// sqlPinger adapts *sql.DB to the health Pinger contract.
type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

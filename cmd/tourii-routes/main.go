package main

import (
	"context"
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

	"github.com/sx-tane/tourii-backend-sub002/internal/config"
	dbRedis "github.com/sx-tane/tourii-backend-sub002/internal/db/redis"
	logpkg "github.com/sx-tane/tourii-backend-sub002/internal/logger"
	"github.com/sx-tane/tourii-backend-sub002/internal/metrics"
	"github.com/sx-tane/tourii-backend-sub002/internal/repository/imagecache"
	routerepo "github.com/sx-tane/tourii-backend-sub002/internal/repository/route"
	spotrepo "github.com/sx-tane/tourii-backend-sub002/internal/repository/spot"
	chiTransport "github.com/sx-tane/tourii-backend-sub002/internal/transport/chi"
	openaiGen "github.com/sx-tane/tourii-backend-sub002/internal/transport/openai"
	"github.com/sx-tane/tourii-backend-sub002/internal/transport/wikimedia"
	clusteruc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/cluster"
	contentuc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/content"
	healthuc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/health"
	regionuc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/region"
	routesuc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/routes"
	"github.com/sx-tane/tourii-backend-sub002/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tourii routes API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterGenerationMetrics()

	// Text-generation provider. An empty api_key disables it and the
	// pipeline runs in fallback-only mode.
	var provider contentuc.TextGenerationProvider
	var healthGen healthuc.GenerationChecker
	if cfg.Generation.APIKey != "" {
		gen := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:      cfg.Generation.APIKey,
			BaseURL:     cfg.Generation.BaseURL,
			Model:       cfg.Generation.Model,
			Temperature: cfg.Generation.Temperature,
			MaxTokens:   cfg.Generation.MaxTokens,
			Provider:    "openai",
			Logger:      logger,
		})
		provider = gen
		healthGen = gen
		logger.Info("Text-generation provider created", zap.String("model", cfg.Generation.Model))
	} else {
		logger.Warn("No generation api key configured, running fallback-only")
	}

	var images routesuc.ImageProvider
	if cfg.Images.Enabled {
		lookup := wikimedia.NewImageProvider(&wikimedia.Config{
			BaseURL:   cfg.Images.BaseURL,
			UserAgent: cfg.Images.UserAgent,
			Timeout:   time.Duration(cfg.Images.TimeoutSec) * time.Second,
			Logger:    logger,
		})
		images = imagecache.New(
			lookup, store,
			time.Duration(cfg.Images.CacheTTLHours)*time.Hour,
			metrics.ImageCacheTotal, logger,
		)
	}

	// Repositories
	spots := spotrepo.New(store)
	routes := routerepo.New(store)

	// Pipeline services — composition root
	classifier := regionuc.New(regionuc.DefaultTable(), cfg.Region.DefaultRegion)
	clusterer := clusteruc.New(classifier)
	generator := contentuc.New(provider, contentuc.Config{
		MaxNameLength: cfg.Content.MaxNameLength,
		MaxDescLength: cfg.Content.MaxDescLength,
		Timeout:       time.Duration(cfg.Generation.TimeoutSec) * time.Second,
	}, logger)
	assembler := routesuc.NewAssembler(routes, images, logger)
	recommender := routesuc.New(spots, clusterer, generator, assembler, logger)

	healthSvc := healthuc.New(store, healthGen)

	server := chiTransport.NewServer(recommender, routes, healthSvc, logger)

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

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := logpkg.ContextWithLogger(r.Context(), logger.With(zap.String("request_id", requestID)))
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info("http request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

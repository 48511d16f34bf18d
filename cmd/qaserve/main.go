package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/qaserve/internal/application/offload"
	"github.com/aescanero/qaserve/internal/application/qa"
	"github.com/aescanero/qaserve/internal/config"
	"github.com/aescanero/qaserve/pkg/adapters/inference"
	"github.com/aescanero/qaserve/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/qaserve/pkg/adapters/storage/memory"
	redisstorage "github.com/aescanero/qaserve/pkg/adapters/storage/redis"
	"github.com/aescanero/qaserve/pkg/api/grpc"
	"github.com/aescanero/qaserve/pkg/api/http"
	"github.com/aescanero/qaserve/pkg/ports"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting QA server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Metrics registry
	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	metricsCollector, err := prometheus.NewCollector(registry)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	// Inference engine, shared by every worker
	engine, err := inference.NewEngine(&inference.Config{
		Provider:       cfg.Inference.Provider,
		APIKey:         cfg.Inference.APIKey,
		Model:          cfg.Inference.Model,
		RequestTimeout: cfg.Inference.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("failed to create inference engine", zap.Error(err))
	}
	logger.Info("inference engine ready", zap.String("engine", engine.Name()))

	answerCache := newAnswerCache(cfg, logger)

	// Initialize application components
	pool := offload.NewPool(
		cfg.Workers.PoolSize,
		cfg.Workers.QueueSize,
		metricsCollector,
		logger,
		cfg.Workers.HealthCheckInterval,
	)

	if err := pool.Start(); err != nil {
		logger.Fatal("failed to start offload pool", zap.Error(err))
	}

	service := qa.NewService(
		pool,
		engine,
		answerCache,
		metricsCollector,
		qa.NewValidator(cfg.Limits.MaxQuestionBytes, cfg.Limits.MaxContextBytes),
		logger,
		cfg.Timeouts.Inference,
	)

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:              cfg.HTTPPort,
		ReadHeaderTimeout: cfg.Timeouts.ReadHeaderTimeout,
		Service:           service,
		Health:            pool.Health(),
		Metrics:           metricsCollector,
		Gatherer:          registry,
		Logger:            logger,
	})

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Port:   cfg.GRPCPort,
			Health: pool.Health(),
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	grpcAddr := "disabled"
	if cfg.GRPCEnabled() {
		grpcAddr = cfg.GetGRPCAddr()
	}

	logger.Info("QA server started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.String("grpc_addr", grpcAddr),
		zap.Int("worker_pool_size", pool.Size()),
		zap.String("cache_backend", cfg.Cache.Backend))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Error("offload pool shutdown error", zap.Error(err))
	}

	if answerCache != nil {
		if err := answerCache.Close(); err != nil {
			logger.Error("answer cache close error", zap.Error(err))
		}
	}

	logger.Info("QA server shut down complete")
}

// newAnswerCache builds the configured cache backend, or nil when disabled
func newAnswerCache(cfg *config.Config, logger *zap.Logger) ports.AnswerCache {
	switch cfg.Cache.Backend {
	case "memory":
		logger.Info("using in-memory answer cache",
			zap.Int("max_entries", cfg.Cache.MaxEntries),
			zap.Duration("ttl", cfg.Cache.TTL))
		return memory.NewAnswerCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	case "redis":
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		return redisstorage.NewAnswerCache(redisClient, cfg.Cache.TTL, logger)

	default:
		return nil
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}

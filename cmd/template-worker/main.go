package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-langjson/internal/config"
	"github.com/aescanero/dago-node-langjson/internal/eval/cel"
	"github.com/aescanero/dago-node-langjson/internal/eval/handlebars"
	"github.com/aescanero/dago-node-langjson/internal/eval/llm"
	"github.com/aescanero/dago-node-langjson/internal/eval/template"
	"github.com/aescanero/dago-node-langjson/internal/extensions"
	"github.com/aescanero/dago-node-langjson/internal/store"
	"github.com/aescanero/dago-node-langjson/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
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
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting template worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Initialize template engine and extension helpers
	engine := template.NewEngine(
		template.WithLogger(logger.Named("template")),
		template.WithMaxDepth(cfg.MaxDepth),
	)
	opts := extensions.Options{
		Handlebars: handlebars.NewEngine(),
		LLM:        initLLMClient(cfg, logger),
		Logger:     logger,
	}
	if cfg.CELEnabled {
		evaluator, err := cel.NewEvaluator()
		if err != nil {
			logger.Fatal("failed to initialize cel evaluator", zap.Error(err))
		}
		opts.CEL = evaluator
	}
	registered := extensions.Register(engine, opts)
	logger.Info("template engine initialized",
		zap.Int("helpers", len(engine.Helpers())),
		zap.Int("extensions", len(registered)),
	)

	// Initialize template store
	templates := store.NewRedisTemplateStore(redisClient, cfg.TemplatePrefix, logger)

	// Initialize worker
	w := worker.NewWorker(cfg, redisClient, engine, templates, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, engine, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("template worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	select {
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing exit")
	default:
		logger.Info("worker stopped gracefully")
	}
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
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

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// initLLMClient initializes the client behind the llm helpers. It returns nil
// when no API key is configured or the provider cannot be created.
func initLLMClient(cfg *config.Config, logger *zap.Logger) *llm.Client {
	if !cfg.LLMEnabled() {
		logger.Warn("llm api key not provided (llm helpers will not be available)")
		return nil
	}

	provider, err := llm.NewProvider(cfg.LLMProvider, cfg.LLMAPIKey, logger.Named("llm"))
	if err != nil {
		logger.Warn("failed to initialize llm client (llm helpers will not be available)",
			zap.Error(err),
		)
		return nil
	}

	logger.Info("llm client initialized",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.LLMModel),
	)
	return llm.NewClient(llm.FromPort(provider, cfg.LLMModel), cfg.LLMTimeout, logger.Named("llm"))
}

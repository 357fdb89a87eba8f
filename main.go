package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/adapters/datasource"
	"github.com/plantops/tripchat-engine/pkg/audit"
	"github.com/plantops/tripchat-engine/pkg/config"
	"github.com/plantops/tripchat-engine/pkg/handlers"
	"github.com/plantops/tripchat-engine/pkg/llm"
	"github.com/plantops/tripchat-engine/pkg/logging"
	"github.com/plantops/tripchat-engine/pkg/middleware"
	"github.com/plantops/tripchat-engine/pkg/nlg"
	"github.com/plantops/tripchat-engine/pkg/nlu"
	"github.com/plantops/tripchat-engine/pkg/services"
	"github.com/plantops/tripchat-engine/pkg/session"
	sqlpost "github.com/plantops/tripchat-engine/pkg/sql"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("trip_db", cfg.TripDB.Database),
		zap.String("llm_endpoint", cfg.LLM.Endpoint),
		zap.String("sqlgen_model", cfg.LLM.SQLGenModel),
		zap.Bool("narrative_enabled", cfg.LLM.NarrativeEnabled),
	)

	store := session.NewStore(cfg.SessionIdleTTL(), logger)
	defer store.Close()

	sqlGen, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.LLM.Endpoint,
		Model:    cfg.LLM.SQLGenModel,
		APIKey:   cfg.LLM.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("failed to build sql generation client", zap.Error(err))
	}

	var narrative *nlg.NarrativeGenerator
	if cfg.LLM.NarrativeEnabled {
		narrativeClient, err := llm.NewClient(&llm.Config{
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.NarrativeModel,
			APIKey:   cfg.LLM.APIKey,
		}, logger)
		if err != nil {
			logger.Fatal("failed to build narrative client", zap.Error(err))
		}
		narrative = nlg.NewNarrativeGenerator(narrativeClient, logger)
	}

	executor, err := datasource.NewMySQLExecutor(cfg.TripDB.DSN(), logger)
	if err != nil {
		logger.Fatal("failed to connect to trip database", zap.Error(err))
	}
	defer func() { _ = executor.Close() }()

	recorder, err := audit.NewFileRecorder(cfg.AuditLogPath, logger)
	if err != nil {
		logger.Fatal("failed to open audit log", zap.Error(err))
	}
	defer func() { _ = recorder.Close() }()

	svc := services.NewChatService(services.Config{
		Store:      store,
		Extractor:  nlu.NewExtractor(logger),
		Post:       sqlpost.NewPostProcessor(logger),
		SQLGen:     sqlGen,
		Executor:   executor,
		Narrative:  narrative,
		Recorder:   recorder,
		LLMTimeout: cfg.LLM.Timeout(),
	}, logger)

	mux := http.NewServeMux()
	handlers.NewChatHandler(svc, cfg.SessionSecret, logger).RegisterRoutes(mux)
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting tripchat-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

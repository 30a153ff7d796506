package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/docuforge/docuforge/internal/common"
	"github.com/docuforge/docuforge/internal/convert"
	"github.com/docuforge/docuforge/internal/extract"
	"github.com/docuforge/docuforge/internal/gateway"
	"github.com/docuforge/docuforge/internal/orchestrator"
	"github.com/docuforge/docuforge/internal/repository"
	"github.com/docuforge/docuforge/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded configuration from .env")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.HealthCheck(ctx, cfg.Database); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database health OK")

	jobs := repository.NewJobRepository(db, logger)
	usage := repository.NewUsageRepository(db, logger)

	extractor := extract.NewExtractor(cfg.OCR, logger)
	ai := gateway.NewClient(cfg.Gateway, logger)
	converter := convert.NewConverter(cfg.Convert, logger)
	orch := orchestrator.New(extractor, ai, converter, jobs, usage, logger)

	srv := server.NewServer(server.Deps{
		Config:       cfg,
		Orchestrator: orch,
		DB:           db,
		Users:        repository.NewUserRepository(db, logger),
		Documents:    repository.NewDocumentRepository(db, logger),
		Jobs:         jobs,
		Chat:         repository.NewChatRepository(db, logger),
		Usage:        usage,
		Logger:       logger,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
	logger.Info("stopped")
}

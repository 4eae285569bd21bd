package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/pix_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/pix_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/pix_simulator/internal/core/services"
	"github.com/SscSPs/pix_simulator/internal/handlers"
	"github.com/SscSPs/pix_simulator/internal/platform/clock"
	"github.com/SscSPs/pix_simulator/internal/platform/config"
	"github.com/SscSPs/pix_simulator/internal/repositories/memory"
	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	seed, err := loadSeed(cfg)
	if err != nil {
		logger.Error("Failed to load seed", slog.String("error", err.Error()))
		return err
	}
	store, err := memory.NewLedgerStore(seed)
	if err != nil {
		logger.Error("Failed to initialize ledger", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Ledger initialized", slog.Int("accounts", len(seed)), slog.String("timezone", cfg.Location.String()))

	svc := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{LedgerRepo: store}, clock.NewReal(cfg.Location))

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handlers.NewRouter(cfg, logger, svc, analytics)
	if err != nil {
		logger.Error("Failed to build router", slog.String("error", err.Error()))
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func loadSeed(cfg *config.Config) ([]domain.Account, error) {
	if cfg.SeedFile == "" {
		return memory.DefaultSeed(), nil
	}
	return memory.LoadSeedFile(cfg.SeedFile)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"todoey/internal/config"
	"todoey/internal/database"
	"todoey/internal/logger"
	"todoey/internal/router"
	"todoey/internal/scheduler"
	"todoey/internal/services"
	"todoey/internal/validator"
)

// @title           Todoey API
// @version         1.0
// @description     Todoey keeps categorised to-do lists in a local store.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const (
	shutdownTimeout = 10 * time.Second
	jobTimeout      = time.Minute
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	store := services.NewStore(dbManager.DB())
	engine := router.New(store, router.Options{
		APIKey:    cfg.APIKey,
		Swagger:   cfg.Env != "production",
		AccessLog: true,
	})

	jobs := scheduler.New(jobTimeout)
	if cfg.JournalRetention > 0 {
		if _, err := jobs.Every(cfg.JournalPruneInterval, "prune_journal",
			scheduler.PruneJournal(store.ChangeServicer, cfg.JournalRetention)); err != nil {
			return fmt.Errorf("failed to schedule journal pruning: %w", err)
		}
	}
	jobs.Start()
	defer jobs.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Todoey server on port %s (%s store)", cfg.Port, cfg.Database.Driver)
		if cfg.APIKey == "" {
			log.Warn("API_KEY is not set; /api/v1 is open")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensy-server/src/api"
	"expensy-server/src/auth"
	"expensy-server/src/config"
	"expensy-server/src/db"
	"expensy-server/src/db/postgres"
	"expensy-server/src/db/sqlite"
	"expensy-server/src/logging"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("DB connection failed", logging.FieldDriver, cfg.DatabaseDriver, logging.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	cache, err := db.NewSummaryCache(cfg.SummaryCacheTTL)
	if err != nil {
		logger.Error("cache initialization failed", logging.FieldError, err)
		os.Exit(1)
	}
	defer cache.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Router
	router := api.NewRouter(store, tokens, cache, logger, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		DemoMode:       cfg.DemoMode,
		Env:            cfg.Env,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API server running", logging.FieldPort, cfg.Port, logging.FieldDriver, cfg.DatabaseDriver, logging.FieldDemoMode, cfg.DemoMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", logging.FieldError, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		return postgres.Connect(ctx, cfg.DatabaseURL)
	case "sqlite":
		return sqlite.Open(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

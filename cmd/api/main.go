// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/travelbook/internal/config"
	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/export"
	"github.com/pkordes/travelbook/internal/geocode"
	"github.com/pkordes/travelbook/internal/handler"
	"github.com/pkordes/travelbook/internal/middleware"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/internal/service"
)

func main() {
	// A missing .env file is fine: the environment may already be populated.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	kv, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	// --- Services ---------------------------------------------------------
	state := service.NewState(repo.NewStateStore(kv))
	prefs := repo.NewPreferenceStore(kv, currency.Pivot)

	if cfg.RatesAPIKey == "" {
		slog.Warn("RATES_API_KEY not set; amounts are shown unconverted")
	}
	rates := currency.NewRateService(
		currency.NewClient(cfg.RatesAPIURL, cfg.RatesAPIKey, cfg.RatesTimeout),
		repo.NewRateStore(kv),
		cfg.RatesTTL,
		currency.WithLogger(logger),
	)

	var capture export.MapCapturer
	if cfg.StaticMapURL != "" {
		capture = export.NewStaticMapCapturer(cfg.StaticMapURL, 0)
	}

	locations := geocode.NewSessions(
		geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderLanguage, 0),
		geocode.DefaultDebounce,
		geocode.DefaultSessionTTL,
		logger,
	)

	api := handler.NewServer(handler.Services{
		Trips:     service.NewTripService(state),
		Days:      service.NewDayService(state),
		Notes:     service.NewNoteService(state),
		Expenses:  service.NewExpenseService(state),
		Budget:    service.NewBudgetService(state, prefs, rates),
		Export:    service.NewExportService(state, prefs, rates, capture, logger),
		Locations: locations,
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// CORS answers preflights before the body limit is checked.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for an export that waits on the map service.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore opens the configured key-value backend, applying migrations for
// the SQL ones. The returned func releases the underlying connections.
func openStore(ctx context.Context, cfg config.Config) (repo.KV, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return repo.NewMemoryKV(), func() {}, nil

	case config.BackendPostgres:
		// New() does not open connections immediately; the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		if err := repo.Migrate(ctx, db, goose.DialectPostgres); err != nil {
			db.Close()
			pool.Close()
			return nil, nil, err
		}
		return repo.NewPostgresKV(pool), func() {
			db.Close()
			pool.Close()
		}, nil

	default:
		db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewSQLiteKV(db), func() { db.Close() }, nil
	}
}

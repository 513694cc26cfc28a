package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/verdict-labs/verdict/internal/api"
	"github.com/verdict-labs/verdict/internal/config"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/taxonomy"
	"github.com/verdict-labs/verdict/pkg/database"
	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/lifecycle"
)

func run(logger *slog.Logger) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}
	if err := db.Start(lc); err != nil {
		return err
	}

	tax, err := taxonomy.Load(cfg.Analysis.TaxonomyPath)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}

	infra := infrastructure.New(lc, logger, db, tax)
	a := api.New(cfg, infra)

	registerProbes(a, lc)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	lc.WaitForStartup()
	logger.Info("startup complete")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	return lc.Shutdown(cfg.Server.ShutdownTimeoutDuration())
}

func registerProbes(a *api.API, lc *lifecycle.Coordinator) {
	a.Router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	a.Router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !lc.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/myusername/match-report-scraper/internal/config"
	"github.com/myusername/match-report-scraper/internal/server"
	"github.com/myusername/match-report-scraper/internal/store"
	"github.com/myusername/match-report-scraper/pkg/parser"
)

// serve runs the upload service until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, cfg config.Config, extractor *parser.Extractor, db *store.Store, logger *slog.Logger) error {
	params := server.Params{
		Extractor: extractor,
		Logger:    logger,
		MaxPages:  cfg.MaxPages,
		MaxBytes:  cfg.MaxUploadBytes,
	}
	if db != nil {
		params.Saver = db
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(params),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting upload service", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"anime-tracker/internal/adapters/storage"
	"anime-tracker/internal/platform/config"
	"anime-tracker/internal/platform/logger"
	"anime-tracker/internal/router"
)

// @title			Anime Tracker API
// @version		1.0
// @description	Lista personal de animes: estado, progreso y nota.
// @BasePath		/
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	store, err := storage.Open(storage.Options{
		URI:            cfg.DB.URI,
		Database:       cfg.DB.Name,
		ConnectTimeout: cfg.DB.ConnectTimeout,
		Log:            log,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing storage", map[string]any{"error": err.Error()})
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.NewRouter(router.Options{Repo: store.Repo, Logger: log}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "backend": store.Backend})
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

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

/*
main.go - Server entrypoint

PURPOSE:
  Wires configuration, storage, the work-model catalog, the HTTP router
  and the day-close scheduler, then runs until SIGINT/SIGTERM with a
  graceful shutdown.

STARTUP SEQUENCE:
  1. Structured logging (zerolog console writer)
  2. Load configuration (.env + environment)
  3. Open SQLite store and run migrations
  4. Load stored work models into the catalog
  5. Start day-close scheduler
  6. Serve HTTP
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cuidaemprego/timeclock/api"
	"github.com/cuidaemprego/timeclock/config"
	"github.com/cuidaemprego/timeclock/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	handler := api.NewHandler(store)
	if err := handler.LoadModels(context.Background()); err != nil {
		return fmt.Errorf("load models: %w", err)
	}

	scheduler := api.NewDayCloseScheduler(handler)
	scheduler.CheckInterval = cfg.DayCloseInterval
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler, cfg.AllowOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("timeclock API listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Package main is the entry point for the universe-backtest demo host: a
// thin HTTP wrapper around the portfolio selection and backtest engine in
// internal/backtest, backed by a local sqlite price/membership store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/universe-backtest/internal/config"
	"github.com/aristath/universe-backtest/internal/httpapi"
	"github.com/aristath/universe-backtest/internal/universe"
	"github.com/aristath/universe-backtest/pkg/logger"
)

func main() {
	serverCfg, engineCfg := config.Load()

	log := logger.New(logger.Config{
		Level:  serverCfg.LogLevel,
		Pretty: serverCfg.DevMode,
	})

	if err := engineCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid engine configuration")
	}

	log.Info().Msg("starting universe-backtest")

	store, err := universe.Open(serverCfg.SQLiteDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open universe store")
	}
	defer store.Close()

	srv := httpapi.New(httpapi.Config{
		Log:        log,
		DataSource: store,
		EngineCfg:  engineCfg,
		Port:       serverCfg.Port,
		DevMode:    serverCfg.DevMode,
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("stopped")
}

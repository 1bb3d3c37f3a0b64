// Package config provides configuration management functionality.
//
// This package handles loading configuration from environment variables
// (.env file first, then the process environment). There is no settings
// database in this engine's scope, so unlike the original config package
// there is no second, higher-precedence loading stage.
//
// Configuration Loading Order:
// 1. Load from .env file (if exists)
// 2. Load from environment variables
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/universe-backtest/internal/backtest"
)

// ServerConfig holds the demo host's own configuration: nothing about the
// backtest engine itself (that's EngineConfig), just how to serve it.
type ServerConfig struct {
	Port      int    // HTTP server port (default: 8001)
	SQLiteDSN string // path to the sqlite price/membership database
	LogLevel  string // zerolog level name (debug, info, warn, error)
	DevMode   bool   // enables pretty console logging instead of JSON
}

// Load reads ServerConfig and the backtest engine's EngineConfig from
// environment variables, loading a .env file first if one exists.
func Load() (*ServerConfig, backtest.EngineConfig) {
	_ = godotenv.Load()

	server := &ServerConfig{
		Port:      getEnvAsInt("GO_PORT", 8001),
		SQLiteDSN: getEnv("UNIVERSE_DB_PATH", "./data/universe.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DevMode:   getEnvAsBool("DEV_MODE", false),
	}

	engine := backtest.DefaultEngineConfig()
	engine.LookbackMonths = getEnvAsInt("LOOKBACK_MONTHS", engine.LookbackMonths)
	engine.MinMonths = getEnvAsInt("MIN_MONTHS", engine.MinMonths)
	engine.TopN = getEnvAsInt("TOP_N", engine.TopN)
	engine.KFinal = getEnvAsInt("K_FINAL", engine.KFinal)
	engine.RiskFreeRate = getEnvAsFloat("RISK_FREE_RATE", engine.RiskFreeRate)
	engine.WMin = getEnvAsFloat("W_MIN", engine.WMin)
	engine.WMax = getEnvAsFloat("W_MAX", engine.WMax)
	engine.Ridge = getEnvAsFloat("RIDGE", engine.Ridge)
	engine.UseRawMeanForOptimizer = getEnvAsBool("USE_RAW_MEAN_FOR_OPTIMIZER", engine.UseRawMeanForOptimizer)

	return server, engine
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

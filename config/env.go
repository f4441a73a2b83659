package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEngineConfig reads BTCPERP_SYMBOL / BTCPERP_START_BALANCE from the
// environment (loading a .env file first, if one is present), falling back
// to DefaultEngineConfig for anything unset. This is wired only into
// cmd/papertrader — the engine and strategy packages never touch the
// environment.
func LoadEngineConfig() EngineConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using system environment")
	}

	cfg := DefaultEngineConfig()
	cfg.Symbol = getEnv("BTCPERP_SYMBOL", cfg.Symbol)
	cfg.StartBalance = getEnvFloat("BTCPERP_START_BALANCE", cfg.StartBalance)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %v", key, v, defaultValue)
		return defaultValue
	}
	return f
}

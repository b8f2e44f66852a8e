package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIAddress      string
	CredentialsFile string
	RequestTimeout  time.Duration
	LogLevel        string
}

func Parse() *Config {
	cfg := Config{
		// Defaults
		APIAddress:     "http://localhost:5240/api",
		RequestTimeout: 15 * time.Second,
		LogLevel:       "warn",
	}
	cfg.updateFromEnv()
	return &cfg
}

func (cfg *Config) updateFromEnv() {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	if addr, ok := os.LookupEnv("PRODUTOS_API_ADDRESS"); ok {
		cfg.APIAddress = addr
	}
	if file, ok := os.LookupEnv("PRODUTOS_CREDENTIALS_FILE"); ok {
		cfg.CredentialsFile = file
	}
	if timeout, ok := os.LookupEnv("PRODUTOS_TIMEOUT"); ok {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = lvl
	}
}

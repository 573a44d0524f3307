package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Environment      string
	MaxHorizonMonths int
	CacheTTL         time.Duration
	BodyLimitBytes   int
	RateLimitPerMin  int
}

func Load() *Config {
	// Best effort: a missing .env is fine, env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "production"),
		MaxHorizonMonths: getEnvInt("MAX_HORIZON_MONTHS", 24),
		CacheTTL:         time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		BodyLimitBytes:   getEnvInt("BODY_LIMIT_BYTES", 4*1024*1024),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 100),
	}

	if cfg.MaxHorizonMonths < 1 {
		log.Printf("MAX_HORIZON_MONTHS %d invalid, falling back to 24", cfg.MaxHorizonMonths)
		cfg.MaxHorizonMonths = 24
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("%s=%q is not an integer, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

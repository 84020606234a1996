package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	RateLimit   float64 // requests per second per client, 0 disables
	RateBurst   int
	CORSOrigins []string
}

type DatabaseConfig struct {
	// DSN enables the measurement-history store; empty disables it.
	DSN           string
	MaxConns      int
	MinConns      int
	RetentionDays int
}

type RedisConfig struct {
	// Addr enables the report cache; empty disables it.
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			RateLimit:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateBurst:   getEnvAsInt("RATE_LIMIT_BURST", 10),
			CORSOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DB_DSN", ""),
			MaxConns:      getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:      getEnvAsInt("DB_MIN_CONNS", 2),
			RetentionDays: getEnvAsInt("HISTORY_RETENTION_DAYS", 90),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.RetentionDays <= 0 {
		return fmt.Errorf("HISTORY_RETENTION_DAYS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

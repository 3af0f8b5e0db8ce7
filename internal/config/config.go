package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Player PlayerConfig
	Redis  RedisConfig
	Sim    SimConfig
}

// PlayerConfig holds the identity of the simulated player
type PlayerConfig struct {
	ID      string
	ClassID string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL      string // Takes precedence when set; repositories fall back to memory when empty
	Addr     string
	Password string
	DB       int
}

// SimConfig holds tick-loop configuration for the demo harness
type SimConfig struct {
	TickRateHz int
	Duration   int // Seconds of simulated play
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Player: PlayerConfig{
			ID:      getEnvOrDefault("PLAYER_ID", "player-local"),
			ClassID: getEnvOrDefault("CLASS_ID", "stormcaller"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Sim: SimConfig{
			TickRateHz: getEnvAsIntOrDefault("TICK_RATE_HZ", 60),
			Duration:   getEnvAsIntOrDefault("SIM_DURATION_SECONDS", 10),
		},
	}

	if cfg.Sim.TickRateHz <= 0 {
		return nil, fmt.Errorf("TICK_RATE_HZ must be positive, got %d", cfg.Sim.TickRateHz)
	}
	if cfg.Player.ClassID == "" {
		return nil, fmt.Errorf("CLASS_ID is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

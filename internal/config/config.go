package config

import (
	"os"
	"strconv"
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/constants"
)

type Config struct {
	DBDriver             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	RedisHost            string
	RedisPort            string
	SessionSecret        string
	GinMode              string
	Port                 string
	ArchiveSweepInterval time.Duration
}

func Load() *Config {
	return &Config{
		DBDriver:             getEnv("DB_DRIVER", "mysql"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "3306"),
		DBUser:               getEnv("DB_USER", "synapse"),
		DBPassword:           getEnv("DB_PASSWORD", "synapse"),
		DBName:               getEnv("DB_NAME", "synapse"),
		RedisHost:            getEnv("REDIS_HOST", "localhost"),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		SessionSecret:        getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		Port:                 getEnv("PORT", "8080"),
		ArchiveSweepInterval: getDurationEnv("ARCHIVE_SWEEP_INTERVAL", constants.DefaultArchiveSweepInterval),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

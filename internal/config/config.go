package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	AdminPassword string
	SessionTTL    time.Duration
}

// LoadConfig loads configuration from environment variables or uses default values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ListenPort:    getenv("LISTEN_PORT", "8080"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "medrecords"),
		DBPassword:    getenv("DB_PASSWORD", "medrecords"),
		DBName:        getenv("DB_NAME", "medrecords"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),
	}

	ttlHours := getenv("SESSION_TTL_HOURS", "24")
	hours, err := strconv.Atoi(ttlHours)
	if err != nil || hours < 1 {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS %q", ttlHours)
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour

	return cfg, nil
}

// DSN builds the postgres connection string from the DB_* settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

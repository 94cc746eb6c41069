package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port                     string
	DBConn                   string
	LogLevel                 string
	CORSOrigin               string
	EnableGlobalErrorLogging bool
	PoolStatsSchedule        string
	SMTPHost                 string
	SMTPPort                 string
	SMTPUsername             string
	SMTPPassword             string
	SenderEmail              string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                     getEnv("PORT", "5000"),
		DBConn:                   getEnv("DB_CONN", "host=localhost port=5432 user=courses password=courses dbname=courses sslmode=disable"),
		LogLevel:                 getEnv("LOG_LEVEL", "INFO"),
		CORSOrigin:               getEnv("CORS_ORIGIN", "http://localhost:5171"),
		EnableGlobalErrorLogging: getEnv("ENABLE_GLOBAL_ERROR_LOGGING", "") == "true",
		PoolStatsSchedule:        getEnv("POOL_STATS_SCHEDULE", ""),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 getEnv("SMTP_PORT", "587"),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		SenderEmail:              getEnv("SENDER_EMAIL", "no-reply@courses.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}

	return cfg, nil
}

// SMTPConfigured reports whether outbound mail is set up.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	JWTSecret string

	AllowedOrigins []string

	// Follow-up scanner cron spec and reservation sweeper tick.
	ScanSpec      string
	SweepInterval time.Duration
}

// Load reads configuration from environment variables and .env file (if
// present). godotenv.Load will not override existing env variables.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg.Port = getEnv("PORT", "8080")
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))

	cfg.RabbitUser = getEnv("RABBITMQ_USER", "guest")
	cfg.RabbitPass = getEnv("RABBITMQ_PASS", "guest")
	cfg.RabbitHost = getEnv("RABBITMQ_HOST", "localhost")
	cfg.RabbitPort = getEnv("RABBITMQ_PORT", "5672")

	cfg.MailHost = os.Getenv("MAIL_HOST")
	cfg.MailUser = os.Getenv("MAIL_USER")
	cfg.MailPass = os.Getenv("MAIL_PASS")
	cfg.MailFrom = getEnv("MAIL_FROM", "nao-responda@barsaude.com.br")

	mailPortStr := getEnv("MAIL_PORT", "587")
	mailPort, err := strconv.Atoi(mailPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_PORT: %w", err)
	}
	cfg.MailPort = mailPort

	origins := getEnv("ALLOWED_ORIGINS", "*")
	cfg.AllowedOrigins = strings.Split(origins, ",")

	cfg.ScanSpec = getEnv("FOLLOWUP_SCAN_SPEC", "@every 60s")

	sweepStr := getEnv("RESERVATION_SWEEP_INTERVAL", "1m")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RESERVATION_SWEEP_INTERVAL: %w", err)
	}
	cfg.SweepInterval = sweep

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

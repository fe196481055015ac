// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment. A missing AMQP_URL
// puts the scheduler into degraded (direct send) mode; a missing
// TELEGRAM_BOT_TOKEN disables the scheduler entirely.
type Config struct {
	HTTPAddr string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	AMQPURL string

	TelegramBotToken string

	SchedulerInterval  time.Duration
	SchedulerBatchSize int
	SendConcurrency    int
	SendBatchDelay     time.Duration

	TextAPIURL    string
	TextAPIKey    string
	TextModel     string
	ImageAPIURL   string
	ImageAPIKey   string
	SpeechAPIURL  string
	SpeechAPIKey  string
	BillingSecret string

	LogLevel string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASSWORD", ""),
		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "brandcast"),

		AMQPURL: os.Getenv("AMQP_URL"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		SchedulerInterval:  getDuration("SCHEDULER_INTERVAL", time.Minute),
		SchedulerBatchSize: getInt("SCHEDULER_BATCH_SIZE", 50),
		SendConcurrency:    getInt("SEND_CONCURRENCY", 5),
		SendBatchDelay:     getDuration("SEND_BATCH_DELAY", 200*time.Millisecond),

		TextAPIURL:    getEnv("TEXT_API_URL", "https://api.openai.com/v1/chat/completions"),
		TextAPIKey:    os.Getenv("TEXT_API_KEY"),
		TextModel:     getEnv("TEXT_MODEL", "gpt-4o-mini"),
		ImageAPIURL:   getEnv("IMAGE_API_URL", "https://api.openai.com/v1/images/generations"),
		ImageAPIKey:   os.Getenv("IMAGE_API_KEY"),
		SpeechAPIURL:  getEnv("SPEECH_API_URL", "https://api.openai.com/v1/audio/speech"),
		SpeechAPIKey:  os.Getenv("SPEECH_API_KEY"),
		BillingSecret: os.Getenv("BILLING_WEBHOOK_SECRET"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DatabaseURL assembles the Postgres DSN. DATABASE_URL wins if set.
func (c Config) DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

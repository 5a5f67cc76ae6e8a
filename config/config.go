package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	TelegramToken    string
	WebhookURL       string
	ServerPort       string
	HebcalLang       string
	DatabasePath     string
	DigestHour       string // hour of day for the morning digest, cron field syntax
	Timezone         *time.Location
}

func Load() (*Config, error) {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "meta-llama/llama-4-scout:free"
	}

	lang := os.Getenv("HEBCAL_LANG")
	if lang == "" {
		lang = "ru"
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Jerusalem"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/sefariabot.db"
	}

	digestHour := os.Getenv("DIGEST_HOUR")
	if digestHour == "" {
		digestHour = "8"
	}

	return &Config{
		OpenRouterAPIKey: apiKey,
		OpenRouterModel:  model,
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		ServerPort:       serverPort,
		HebcalLang:       lang,
		DatabasePath:     dbPath,
		DigestHour:       digestHour,
		Timezone:         tz,
	}, nil
}

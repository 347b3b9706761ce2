package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminChatID      int64  `env:"ADMIN_CHAT_ID"`

	// Weather providers
	WeatherAPIKey     string `env:"WEATHER_TOKEN"`
	ArmavirAPIKey     string `env:"ARMAVIR_API_KEY"`
	PohvistnevoAPIKey string `env:"POHVISTNEVO_API_KEY"`

	// pogodaiklimat.ru credentials for the summary page
	PikLogin    string `env:"PIK_LOGIN"`
	PikPassword string `env:"PIK_PASSWORD"`

	// Storage
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"data/db.sqlite3"`
	CityCatalogPath string `env:"CITY_CATALOG_PATH" envDefault:"data/cities.json"`
	ImagesDir       string `env:"IMAGES_DIR" envDefault:"images"`

	// Anti-spam gate
	LimitInterval time.Duration `env:"LIMIT_INTERVAL" envDefault:"10s"`
	MaxRequests   int           `env:"MAX_REQUESTS" envDefault:"5"`
	MaxViolations int           `env:"MAX_VIOLATIONS" envDefault:"3"`
	BanTime       time.Duration `env:"BAN_TIME" envDefault:"5m"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

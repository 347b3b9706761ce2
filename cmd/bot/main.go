package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"meteo-explorer/internal/antispam"
	"meteo-explorer/internal/config"
	"meteo-explorer/internal/meteogram"
	"meteo-explorer/internal/pik"
	"meteo-explorer/internal/scheduler"
	"meteo-explorer/internal/station"
	"meteo-explorer/internal/storage"
	"meteo-explorer/internal/telegram"
	"meteo-explorer/internal/weather"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	bans := storage.NewBans(db)
	users := storage.NewUsers(db)

	weatherCl := weather.NewClient(cfg.WeatherAPIKey)

	stationCl := station.NewClient([]station.Station{
		{Key: "армавир", StationID: "IARMAV7", APIKey: cfg.ArmavirAPIKey, Display: "Армавире"},
		{Key: "похвистнево", StationID: "IPOKHV1", APIKey: cfg.PohvistnevoAPIKey, Display: "Похвистнево"},
	})

	pikCl, err := pik.NewClient(cfg.PikLogin, cfg.PikPassword)
	if err != nil {
		log.Fatalf("failed to init pogodaiklimat client: %v", err)
	}

	catalog, err := meteogram.LoadCatalog(cfg.CityCatalogPath)
	if err != nil {
		log.Printf("city catalog unavailable at %s: %v", cfg.CityCatalogPath, err)
		catalog = &meteogram.Catalog{}
	}
	fetcher, err := meteogram.NewFetcher(cfg.ImagesDir)
	if err != nil {
		log.Fatalf("failed to init meteogram fetcher: %v", err)
	}

	gateCfg := antispam.Config{
		LimitInterval: cfg.LimitInterval,
		MaxRequests:   cfg.MaxRequests,
		MaxViolations: cfg.MaxViolations,
		BanTime:       cfg.BanTime,
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		cfg.AdminChatID,
		gateCfg,
		bans,
		users,
		weatherCl,
		stationCl,
		pikCl,
		catalog,
		fetcher,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	sched.SetSweepFunction(func(ctx context.Context) error {
		n, err := bans.PurgeExpired(ctx, time.Now())
		if err != nil {
			return err
		}
		dropped := bot.Gate().Tracker().PruneIdle(time.Now(), cfg.LimitInterval)
		log.Printf("🧹 Maintenance sweep: %d expired bans purged, %d idle windows dropped", n, dropped)
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(context.Background())
}

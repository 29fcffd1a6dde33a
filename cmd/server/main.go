package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/dedup"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/server"
	"go-hrmos-automation/internal/telegram"
)

func main() {
	cfg := config.Load()
	tracker := progress.NewTracker()
	srv := server.New(cfg, tracker)

	//optional scheduled listing scrape
	if cfg.ScheduleCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.ScheduleCron, func() { scheduledScrape(cfg, srv) }); err != nil {
			log.Fatalf("❌ Invalid schedule_cron %q: %v", cfg.ScheduleCron, err)
		}
		c.Start()
		log.Printf("⏰ Scheduled listing scrape registered: %s", cfg.ScheduleCron)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s", port)
	if err := srv.Router().Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// scheduledScrape is the cron body: scrape listings with env credentials
// and announce never-before-seen ones on Telegram when a bot is configured.
func scheduledScrape(cfg *config.Config, srv *server.Server) {
	creds := cfg.Credentials()
	if err := creds.Validate(); err != nil {
		log.Printf("⚠️ Scheduled scrape skipped: %v", err)
		return
	}

	listings, err := srv.ScrapeListings(creds)
	if err != nil {
		log.Printf("❌ Scheduled scrape failed: %v", err)
		return
	}
	log.Printf("📦 Scheduled scrape collected %d listings", len(listings))

	cache := dedup.NewListingCache(cfg.CachePath)
	fresh := cache.Unseen(listings)
	log.Printf("🔍 Deduplication: %d total -> %d unseen listings", len(listings), len(fresh))
	if len(fresh) == 0 {
		return
	}

	var urls []string
	for _, l := range fresh {
		urls = append(urls, l.URL)
	}
	cache.MarkSeen(urls)

	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return
	}
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Failed to init Telegram Bot: %v", err)
		return
	}
	for _, l := range fresh {
		if err := bot.SendListing(l); err != nil {
			log.Printf("⚠️ Failed to send listing to Telegram: %v", err)
		}
		//1 second delay to avoid 429
		time.Sleep(1 * time.Second)
	}
	if err := bot.SendStatus(fmt.Sprintf("新着求人 %d 件を送信しました", len(fresh))); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

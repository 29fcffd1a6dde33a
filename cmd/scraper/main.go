package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/dedup"
	"go-hrmos-automation/internal/export"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/scraper/hrmos"
	"go-hrmos-automation/internal/telegram"
)

func main() {
	mode := flag.String("mode", "listing", "what to scrape: listing, details, candidates or all")
	flag.Parse()

	//load config
	cfg := config.Load()
	tracker := progress.NewTracker()

	log.Println("🚀 Starting HRMOS Automation (Go version)...")

	//browser options from config, with saved cookies when present
	opts := browser.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.NavigationTimeoutMs = cfg.NavigationTimeoutMs
	opts.DefaultTimeoutMs = cfg.DefaultTimeoutMs
	if cookies, err := browser.LoadCookies(cfg.CookiesPath); err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
	} else {
		opts.Cookies = cookies
	}

	sess, err := browser.Start(opts)
	if err != nil {
		log.Fatalf("❌ Failed to start browser: %v", err)
	}
	defer sess.Close()

	h := hrmos.New(cfg, sess, tracker)
	if err := h.Login(cfg.Credentials()); err != nil {
		log.Fatalf("❌ Login aborted: %v", err)
	}

	switch *mode {
	case "listing":
		runListing(cfg, h)
	case "details":
		runDetails(cfg, h)
	case "candidates":
		runCandidates(cfg, h)
	case "all":
		runListing(cfg, h)
		runDetails(cfg, h)
		runCandidates(cfg, h)
	default:
		log.Fatalf("❌ Unknown mode: %s", *mode)
	}

	log.Println("🏁 Execution finished.")
}

func runListing(cfg *config.Config, h *hrmos.Scraper) {
	listings, err := h.ListJobs()
	if err != nil {
		log.Fatalf("❌ Listing scrape failed: %v", err)
	}
	log.Printf("📦 Total listings collected: %d", len(listings))

	if err := export.WriteJobListings(filepath.Join(cfg.OutputDir, "hrmos_jobs.csv"), listings); err != nil {
		log.Printf("⚠️ Failed to write CSV: %v", err)
	}
	saveResults("job-listings", listings)

	//cross-run dedup, then announce only never-seen listings
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
	log.Printf("💾 Marked %d listings as seen", len(urls))

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

func runDetails(cfg *config.Config, h *hrmos.Scraper) {
	details, err := h.AllJobDetails()
	if err != nil {
		log.Fatalf("❌ Detail scrape failed: %v", err)
	}
	log.Printf("📦 Total details collected: %d", len(details))

	if err := export.WriteJobDetails(filepath.Join(cfg.OutputDir, "hrmos_job_details.csv"), details); err != nil {
		log.Printf("⚠️ Failed to write CSV: %v", err)
	}
	saveResults("job-details", details)
}

func runCandidates(cfg *config.Config, h *hrmos.Scraper) {
	candidates, err := h.AllCandidates()
	if err != nil {
		log.Fatalf("❌ Candidate scrape failed: %v", err)
	}
	log.Printf("📦 Total candidates collected: %d", len(candidates))

	if err := export.WriteCandidates(filepath.Join(cfg.OutputDir, "hrmos_candidates.csv"), candidates); err != nil {
		log.Printf("⚠️ Failed to write CSV: %v", err)
	}
	saveResults("candidates", candidates)
}

// saveResults mirrors every run's records to a dated JSON file under logs/
// for later inspection.
func saveResults(name string, v any) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.json", name, time.Now().Format("2006-01-02"))
	filePath := filepath.Join(logDir, filename)

	data, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal results to JSON: %v", err)
		return
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write results file: %v", err)
		return
	}
	log.Printf("📁 Results saved to %s", filePath)
}

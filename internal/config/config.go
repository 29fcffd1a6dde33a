// Load envs from .env
// Load YAML config
// Override with env vars, fill defaults

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-hrmos-automation/internal/scraper"
)

type Config struct {
	// Target site
	BaseURL string `yaml:"base_url"`

	// Login credentials, env only (never stored in YAML)
	Email    string `yaml:"-"`
	Password string `yaml:"-"`

	// Browser behavior
	Headless            bool    `yaml:"headless"`
	NavigationTimeoutMs float64 `yaml:"navigation_timeout_ms"`
	DefaultTimeoutMs    float64 `yaml:"default_timeout_ms"`
	SelectorTimeoutMs   float64 `yaml:"selector_timeout_ms"`
	// Fixed settle delay after navigation (client-side rendering keeps
	// painting after network idle)
	SettleDelayMs int `yaml:"settle_delay_ms"`
	// Longer settle used on the listing root before the first scan
	RenderDelayMs int `yaml:"render_delay_ms"`

	// Paths
	OutputDir   string `yaml:"output_dir"`
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`

	// Optional Telegram notification of new listings
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	// Optional cron expression for scheduled listing scrapes (server only)
	ScheduleCron string `yaml:"schedule_cron"`
}

// Credentials is the explicit login secret pair handed to the Authenticator.
// Credentials are never stashed into process-wide state mid-request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports ErrMissingCredentials when either half is empty.
func (c Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return scraper.ErrMissingCredentials
	}
	return nil
}

// Credentials returns the env-sourced login pair. Absence is not an error
// here; callers validate right before a scrape is triggered.
func (cfg *Config) Credentials() Credentials {
	return Credentials{Email: cfg.Email, Password: cfg.Password}
}

// Load reads .env, configs/config.yaml and the environment, in that order.
func Load() *Config {
	return LoadFrom("configs/config.yaml")
}

func LoadFrom(yamlPath string) *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", yamlPath, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", yamlPath, err)
		}
	}

	// Override with env vars
	cfg.Email = os.Getenv("HRMOS_EMAIL")
	cfg.Password = os.Getenv("HRMOS_PASSWORD")

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}
	if base := os.Getenv("HRMOS_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	// Defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hrmos.co/agent"
	}
	if cfg.NavigationTimeoutMs == 0 {
		cfg.NavigationTimeoutMs = 60000
	}
	if cfg.DefaultTimeoutMs == 0 {
		cfg.DefaultTimeoutMs = 90000
	}
	if cfg.SelectorTimeoutMs == 0 {
		cfg.SelectorTimeoutMs = 10000
	}
	if cfg.SettleDelayMs == 0 {
		cfg.SettleDelayMs = 3000
	}
	if cfg.RenderDelayMs == 0 {
		cfg.RenderDelayMs = 8000
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "public"
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}

	// YAML zero value means "not set" for headless, so flip the default on
	// through an env escape hatch instead
	if os.Getenv("HRMOS_HEADFUL") == "" {
		cfg.Headless = true
	}

	return cfg
}

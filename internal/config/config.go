// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL      string `yaml:"redis_url" env:"REDIS_URL"`

	// LinkedIn credentials, used only by the login flow
	LinkedInEmail    string `yaml:"linkedin_email" env:"LINKEDIN_EMAIL"`
	LinkedInPassword string `yaml:"linkedin_password" env:"LINKEDIN_PASSWORD"`

	// Optional cover-letter generation; disabled when the key is empty
	GroqAPIKey     string `yaml:"groq_api_key" env:"GROQ_API_KEY"`
	ProfileSummary string `yaml:"profile_summary"`

	// Companion websocket service for live job updates
	BroadcastURL string `yaml:"broadcast_url"`

	// Feed crawl destination; 0 disables the feed crawl
	FeedChannelChatID int64 `yaml:"feed_channel_chat_id"`
	CrawlFeed         bool  `yaml:"crawl_feed"`

	// Paths
	CookiesPath string `yaml:"cookies_path"`

	// Scheduling
	CrawlIntervalMinutes int  `yaml:"crawl_interval_minutes"`
	QueueWorkers         int  `yaml:"queue_workers"`
	Headless             bool `yaml:"headless"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if email := os.Getenv("LINKEDIN_EMAIL"); email != "" {
		cfg.LinkedInEmail = email
	}
	if password := os.Getenv("LINKEDIN_PASSWORD"); password != "" {
		cfg.LinkedInPassword = password
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}
	if chatID := os.Getenv("FEED_CHANNEL_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid FEED_CHANNEL_CHAT_ID: %v", err)
		}
		cfg.FeedChannelChatID = id
	}

	//Set default values if not set
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies/cookies-linkedin.json"
	}
	if cfg.CrawlIntervalMinutes == 0 {
		cfg.CrawlIntervalMinutes = 60
	}
	if cfg.QueueWorkers == 0 {
		cfg.QueueWorkers = 4
	}

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL is required")
	}

	return cfg
}

package main

import (
	"context"
	"log"

	"linkedin-radar/internal/browser"
	"linkedin-radar/internal/config"
	"linkedin-radar/internal/langdetect"
)

// Interactive login. Runs headed so a security challenge can be solved by
// hand; the resulting cookies are what the crawler runs on.
func main() {
	cfg := config.Load()
	if cfg.LinkedInEmail == "" || cfg.LinkedInPassword == "" {
		log.Fatal("LINKEDIN_EMAIL and LINKEDIN_PASSWORD are required")
	}

	manager, err := browser.NewManager(cfg.CookiesPath, langdetect.New(), false)
	if err != nil {
		log.Fatalf("❌ Failed to start browser: %v", err)
	}
	defer manager.Close()

	ctx := context.Background()
	if err := browser.Login(ctx, manager, cfg.LinkedInEmail, cfg.LinkedInPassword, cfg.CookiesPath); err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	log.Printf("✅ Logged in, cookies saved to %s", cfg.CookiesPath)
}

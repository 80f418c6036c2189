package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"linkedin-radar/internal/ai"
	"linkedin-radar/internal/browser"
	"linkedin-radar/internal/config"
	"linkedin-radar/internal/crawler"
	"linkedin-radar/internal/dedup"
	"linkedin-radar/internal/langdetect"
	"linkedin-radar/internal/lock"
	"linkedin-radar/internal/notify"
	"linkedin-radar/internal/queue"
	"linkedin-radar/internal/scheduler"
	"linkedin-radar/internal/store"
)

// sessions adapts the browser manager to the crawler's session source.
type sessions struct {
	manager *browser.Manager
}

func (s sessions) Acquire(ctx context.Context) (crawler.Session, error) {
	session, err := s.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	detector := langdetect.New()

	manager, err := browser.NewManager(cfg.CookiesPath, detector, cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to start browser: %v", err)
	}
	defer manager.Close()

	telegram, err := notify.NewTelegram(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Telegram bot: %v", err)
	}

	var coverLetters ai.Generator
	if cfg.GroqAPIKey != "" {
		coverLetters = ai.NewGroqClient(cfg.GroqAPIKey)
		log.Println("✍️ Cover letter generation enabled")
	}

	q := queue.New(cfg.QueueWorkers)
	q.Start(ctx)

	c := crawler.New(crawler.Config{
		Store:          repo,
		Sessions:       sessions{manager: manager},
		Dedup:          dedup.NewRedisChecker(rdb),
		Locker:         lock.NewRedisLocker(rdb),
		Notifier:       telegram,
		Broadcaster:    notify.NewBroadcaster(cfg.BroadcastURL),
		Scheduler:      q,
		Detector:       detector,
		CoverLetters:   coverLetters,
		ProfileSummary: cfg.ProfileSummary,
		FeedChatID:     cfg.FeedChannelChatID,
		PageSettle:     5 * time.Second,
		MessageDelay:   time.Second,
	})

	feedEnabled := cfg.CrawlFeed && cfg.FeedChannelChatID != 0
	sched := scheduler.New(repo, c, q, cfg.CrawlIntervalMinutes, feedEnabled)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}

	log.Println("🚀 Crawler is running, press Ctrl+C to stop")
	<-ctx.Done()

	log.Println("👋 Shutting down")
	sched.Stop()
	q.Stop()
}

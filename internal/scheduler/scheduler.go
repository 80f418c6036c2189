// Package scheduler turns stored search configurations into periodic
// crawl tasks on the worker queue.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"linkedin-radar/internal/models"
	"linkedin-radar/internal/queue"
)

// Lister enumerates the enabled crawl configurations.
type Lister interface {
	ListEnabledJobSearches(ctx context.Context) ([]models.JobSearch, error)
	ListEnabledExpressionSearches(ctx context.Context) ([]models.ExpressionSearch, error)
	ListSocialChannels(ctx context.Context) ([]models.SocialChannel, error)
}

// Crawls are the crawl entry points a cycle enqueues.
type Crawls interface {
	CrawlJobPage(ctx context.Context, searchID int64, ignoreRepetitive bool, start int)
	CrawlExpressionSearch(ctx context.Context, searchID int64)
	CrawlFeed(ctx context.Context)
	CrawlChannel(ctx context.Context, channelID int64)
	ScanIgnoredJobTags(ctx context.Context, limit int)
}

// tagScanLimit caps how many recent rejected records each cycle re-scans.
const tagScanLimit = 50

// Scheduler runs a crawl cycle for every enabled search on a fixed
// interval. Cycles only enqueue; the queue's workers do the crawling, so a
// slow cycle never blocks the cron goroutine.
type Scheduler struct {
	lister Lister
	crawls Crawls
	queue  *queue.Queue
	cron   *cron.Cron

	intervalMinutes int
	feedEnabled     bool
}

func New(lister Lister, crawls Crawls, q *queue.Queue, intervalMinutes int, feedEnabled bool) *Scheduler {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	return &Scheduler{
		lister:          lister,
		crawls:          crawls,
		queue:           q,
		cron:            cron.New(),
		intervalMinutes: intervalMinutes,
		feedEnabled:     feedEnabled,
	}
}

// Start registers the periodic cycle and runs one immediately, so a fresh
// process does not idle until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %dm", s.intervalMinutes)
	if _, err := s.cron.AddFunc(spec, func() { s.Cycle(ctx) }); err != nil {
		return fmt.Errorf("register crawl cycle: %w", err)
	}
	s.cron.Start()
	log.Printf("⏰ Crawl cycle scheduled every %d minutes", s.intervalMinutes)

	s.queue.Schedule(0, func(ctx context.Context) { s.Cycle(ctx) })
	return nil
}

// Cycle enqueues one crawl task per enabled configuration. Job searches go
// first, in priority order; each starts at page offset zero and paginates
// itself from there.
func (s *Scheduler) Cycle(ctx context.Context) {
	log.Println("🔄 Starting crawl cycle")

	searches, err := s.lister.ListEnabledJobSearches(ctx)
	if err != nil {
		log.Printf("❌ Failed to list job searches: %v", err)
	}
	for _, search := range searches {
		searchID := search.ID
		s.queue.Schedule(0, func(ctx context.Context) {
			s.crawls.CrawlJobPage(ctx, searchID, true, 0)
		})
	}

	expressions, err := s.lister.ListEnabledExpressionSearches(ctx)
	if err != nil {
		log.Printf("❌ Failed to list expression searches: %v", err)
	}
	for _, search := range expressions {
		searchID := search.ID
		s.queue.Schedule(0, func(ctx context.Context) {
			s.crawls.CrawlExpressionSearch(ctx, searchID)
		})
	}

	channels, err := s.lister.ListSocialChannels(ctx)
	if err != nil {
		log.Printf("❌ Failed to list social channels: %v", err)
	}
	for _, channel := range channels {
		channelID := channel.ID
		s.queue.Schedule(0, func(ctx context.Context) {
			s.crawls.CrawlChannel(ctx, channelID)
		})
	}

	if s.feedEnabled {
		s.queue.Schedule(0, func(ctx context.Context) {
			s.crawls.CrawlFeed(ctx)
		})
	}

	s.queue.Schedule(0, func(ctx context.Context) {
		s.crawls.ScanIgnoredJobTags(ctx, tagScanLimit)
	})

	log.Printf("📋 Cycle enqueued %d job searches, %d expression searches, %d channels",
		len(searches), len(expressions), len(channels))
}

// Stop halts the cron loop. Already enqueued tasks still run.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

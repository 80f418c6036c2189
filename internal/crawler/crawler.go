// Package crawler drives search configurations end-to-end: navigate,
// paginate, extract, dedupe, filter, persist, notify.
package crawler

import (
	"context"
	"time"

	"linkedin-radar/internal/ai"
	"linkedin-radar/internal/dedup"
	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/langdetect"
	"linkedin-radar/internal/lock"
	"linkedin-radar/internal/models"
	"linkedin-radar/internal/notify"
	"linkedin-radar/internal/queue"
)

const (
	linkedInURL = "https://www.linkedin.com/"

	// browserSlot names the one automation session; the single-flight lock
	// on it keeps two crawl tasks from acquiring the browser concurrently.
	browserSlot = "browser1"

	// lockTimeout must exceed the worst-case single-page crawl, or
	// concurrent schedules steal the slot mid-crawl.
	lockTimeout = time.Minute

	// pageSize is LinkedIn's fixed result-page size; pagination offsets
	// advance in its multiples.
	pageSize = 25

	// keywordRescanDelay defers the description re-scan until the stored
	// row has settled.
	keywordRescanDelay = 10 * time.Second
)

// Store is the persistence surface the crawler writes through.
type Store interface {
	GetJobSearch(ctx context.Context, id int64) (*models.JobSearch, error)
	UpdateJobSearchCrawl(ctx context.Context, id int64, at time.Time, count int) error
	UpsertJob(ctx context.Context, job *models.Job) (id int64, created bool, err error)
	SetMatchedKeywords(ctx context.Context, jobID int64, keywordIDs []int64) error
	UpdateFoundKeywords(ctx context.Context, jobID int64, found string) error
	GetJobKeywordScan(ctx context.Context, jobID int64) (string, []models.Keyword, error)
	CreateIgnoredJob(ctx context.Context, ig *models.IgnoredJob) error
	RecentIgnoredJobs(ctx context.Context, limit int) ([]models.IgnoredJob, error)
	ListTagNames(ctx context.Context) ([]string, error)

	GetExpressionSearch(ctx context.Context, id int64) (*models.ExpressionSearch, error)
	UpdateExpressionSearchCrawl(ctx context.Context, id int64, at time.Time) error

	GetSocialChannel(ctx context.Context, id int64) (*models.SocialChannel, error)
	UpdateSocialChannelCrawl(ctx context.Context, id int64, at time.Time) error
	UpsertPost(ctx context.Context, post *models.Post) error
}

// Session is one exclusive browser context over the automation endpoint.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Scroll(times int)
	JobCards(ctx context.Context) ([]extract.Card, error)
	ExpressionCards(ctx context.Context) ([]extract.PostCard, error)
	FeedCards(ctx context.Context) ([]extract.PostCard, error)
	ChannelCards(ctx context.Context) ([]extract.PostCard, error)
	Release()
}

// Sessions acquires browser sessions.
type Sessions interface {
	Acquire(ctx context.Context) (Session, error)
}

// Notifier delivers rendered messages to output channels.
type Notifier interface {
	SendToChannel(chatID int64, text string, html bool) error
}

// Broadcaster emits best-effort real-time events.
type Broadcaster interface {
	BroadcastJob(ctx context.Context, job notify.JobData) error
}

// Scheduler enqueues continuation and deferred tasks.
type Scheduler interface {
	Schedule(delay time.Duration, task queue.Task)
}

// Config wires a Crawler's collaborators.
type Config struct {
	Store       Store
	Sessions    Sessions
	Dedup       dedup.Checker
	Locker      lock.Locker
	Notifier    Notifier
	Broadcaster Broadcaster // optional
	Scheduler   Scheduler
	Detector    langdetect.Detector

	// CoverLetters is optional; nil means notifications carry no letter.
	CoverLetters   ai.Generator
	ProfileSummary string

	// FeedChatID receives feed-crawl messages; 0 disables the feed crawl.
	FeedChatID int64

	// PageSettle is the fixed wait after page transitions, a concession to
	// the automation target's rate limits. MessageDelay spaces outgoing
	// messages. Tests run both at zero.
	PageSettle   time.Duration
	MessageDelay time.Duration
}

type Crawler struct {
	cfg Config
}

func New(cfg Config) *Crawler {
	return &Crawler{cfg: cfg}
}

func (c *Crawler) settle() {
	if c.cfg.PageSettle > 0 {
		time.Sleep(c.cfg.PageSettle)
	}
}

func (c *Crawler) messagePause() {
	if c.cfg.MessageDelay > 0 {
		time.Sleep(c.cfg.MessageDelay)
	}
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linkedin-radar/internal/models"
	"linkedin-radar/internal/queue"
)

type fakeLister struct {
	searches    []models.JobSearch
	expressions []models.ExpressionSearch
	channels    []models.SocialChannel
	searchErr   error
}

func (f *fakeLister) ListEnabledJobSearches(context.Context) ([]models.JobSearch, error) {
	return f.searches, f.searchErr
}

func (f *fakeLister) ListEnabledExpressionSearches(context.Context) ([]models.ExpressionSearch, error) {
	return f.expressions, nil
}

func (f *fakeLister) ListSocialChannels(context.Context) ([]models.SocialChannel, error) {
	return f.channels, nil
}

type recordedCrawls struct {
	mu          sync.Mutex
	jobSearches []int64
	starts      []int
	expressions []int64
	channels    []int64
	tagScans    []int
	feedRuns    int
}

func (r *recordedCrawls) CrawlJobPage(_ context.Context, searchID int64, _ bool, start int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobSearches = append(r.jobSearches, searchID)
	r.starts = append(r.starts, start)
}

func (r *recordedCrawls) CrawlExpressionSearch(_ context.Context, searchID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expressions = append(r.expressions, searchID)
}

func (r *recordedCrawls) CrawlFeed(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedRuns++
}

func (r *recordedCrawls) CrawlChannel(_ context.Context, channelID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, channelID)
}

func (r *recordedCrawls) ScanIgnoredJobTags(_ context.Context, limit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagScans = append(r.tagScans, limit)
}

func runCycle(t *testing.T, lister *fakeLister, crawls *recordedCrawls, feedEnabled bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.New(1)
	q.Start(ctx)
	defer q.Stop()

	s := New(lister, crawls, q, 60, feedEnabled)
	s.Cycle(ctx)

	// Single worker drains in order; give it a moment.
	time.Sleep(50 * time.Millisecond)
}

func TestCycleEnqueuesEveryEnabledSearch(t *testing.T) {
	lister := &fakeLister{
		searches: []models.JobSearch{
			{ID: 3, Priority: 9},
			{ID: 1, Priority: 5},
		},
		expressions: []models.ExpressionSearch{{ID: 8}},
		channels:    []models.SocialChannel{{ID: 4}},
	}
	crawls := &recordedCrawls{}

	runCycle(t, lister, crawls, true)

	assert.Equal(t, []int64{3, 1}, crawls.jobSearches, "listing order is preserved")
	assert.Equal(t, []int{0, 0}, crawls.starts, "cycles always start at the first page")
	assert.Equal(t, []int64{8}, crawls.expressions)
	assert.Equal(t, []int64{4}, crawls.channels)
	assert.Equal(t, 1, crawls.feedRuns)
	assert.Equal(t, []int{50}, crawls.tagScans)
}

func TestCycleSkipsFeedWhenDisabled(t *testing.T) {
	crawls := &recordedCrawls{}
	runCycle(t, &fakeLister{}, crawls, false)
	assert.Equal(t, 0, crawls.feedRuns)
}

func TestCycleSurvivesListFailure(t *testing.T) {
	lister := &fakeLister{
		searchErr:   errors.New("connection refused"),
		expressions: []models.ExpressionSearch{{ID: 8}},
	}
	crawls := &recordedCrawls{}

	runCycle(t, lister, crawls, false)

	assert.Empty(t, crawls.jobSearches)
	assert.Equal(t, []int64{8}, crawls.expressions, "other search kinds still run")
}

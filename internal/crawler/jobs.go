package crawler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"linkedin-radar/internal/dedup"
	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/filter"
	"linkedin-radar/internal/models"
	"linkedin-radar/internal/notify"
)

// CrawlJobPage crawls one result page of a job search: every card is
// extracted, deduped, filtered and persisted, eligible cards are notified,
// and a continuation task is scheduled until the page budget is exhausted.
//
// A card-level error skips that card only; a page-load failure aborts this
// attempt and leaves the last-crawl stats unset. The browser session is
// released on every path.
func (c *Crawler) CrawlJobPage(ctx context.Context, searchID int64, ignoreRepetitive bool, start int) {
	release, ok := c.cfg.Locker.Acquire(ctx, browserSlot, lockTimeout)
	if !ok {
		log.Printf("⏳ Browser slot busy, skipping job search %d (start=%d)", searchID, start)
		return
	}
	defer release()

	search, err := c.cfg.Store.GetJobSearch(ctx, searchID)
	if err != nil {
		log.Printf("❌ Job search %d: %v", searchID, err)
		return
	}

	session, err := c.cfg.Sessions.Acquire(ctx)
	if err != nil {
		log.Printf("❌ Could not acquire browser session: %v", err)
		return
	}

	counter, pageOK := c.crawlPage(ctx, session, search, ignoreRepetitive, start)
	if !pageOK {
		return
	}

	log.Printf("✅ Found %d jobs in search %d with starting-job %d", counter, searchID, start)
	if err := c.cfg.Store.UpdateJobSearchCrawl(ctx, searchID, time.Now(), counter); err != nil {
		log.Printf("⚠️ Failed to update crawl stats for search %d: %v", searchID, err)
	}

	c.scheduleNextPage(search, ignoreRepetitive, start)
}

// crawlPage loads and processes one page. The session is released here, on
// success and on failure alike.
func (c *Crawler) crawlPage(ctx context.Context, session Session, search *models.JobSearch, ignoreRepetitive bool, start int) (counter int, pageOK bool) {
	defer session.Release()

	url := fmt.Sprintf("%s&start=%d", search.URL, start)
	if err := session.Navigate(ctx, url); err != nil {
		log.Printf("❌ Failed to load job page %s: %v", url, err)
		return 0, false
	}
	c.settle()

	cards, err := session.JobCards(ctx)
	if err != nil {
		log.Printf("❌ Failed to collect job cards: %v", err)
		return 0, false
	}
	log.Printf("📄 Search %d: %d potential jobs at start=%d", search.ID, len(cards), start)

	for _, card := range cards {
		if eligible := c.processJobCard(ctx, search, card, ignoreRepetitive); eligible {
			counter++
		}
	}
	return counter, true
}

// scheduleNextPage schedules the continuation crawl unless the page budget
// is exhausted. Each page is its own task, so the scheduler can interleave
// searches fairly.
func (c *Crawler) scheduleNextPage(search *models.JobSearch, ignoreRepetitive bool, start int) {
	if search.PageCount <= 1 {
		return
	}
	if start == (search.PageCount-1)*pageSize {
		return
	}
	searchID, next := search.ID, start+pageSize
	c.cfg.Scheduler.Schedule(0, func(ctx context.Context) {
		c.CrawlJobPage(ctx, searchID, ignoreRepetitive, next)
	})
}

// processJobCard runs one card through the pipeline. It reports whether the
// card was eligible; skipped and rejected cards return false.
func (c *Crawler) processJobCard(ctx context.Context, search *models.JobSearch, card extract.Card, ignoreRepetitive bool) bool {
	networkID, ok := card.NativeID().Get()
	if !ok {
		return false
	}
	if ignoreRepetitive && c.cfg.Dedup.Seen(ctx, networkID) {
		return false
	}
	c.cfg.Dedup.MarkSeen(ctx, networkID, dedup.JobTTL)

	if err := card.Open(ctx); err != nil {
		log.Printf("⚠️ Could not open job card %s: %v", networkID, err)
		return false
	}
	detail := card.Detail()

	if company, ok := detail.Company.Get(); ok &&
		filter.MatchesIgnoredAccount(company, search.IgnoredAccounts) {
		log.Printf("🚫 Skipping job %s due to ignored company: %s", networkID, company)
		c.storeIgnored(ctx, detail, "ignored_company")
		return false
	}

	eligible, reason := filter.Evaluate(detail, search.JustEasyApply, search.IgnoreFilters)

	job := buildJob(detail, networkID, search.ID, eligible, reason)
	jobID, created, err := c.cfg.Store.UpsertJob(ctx, job)
	if err != nil {
		log.Printf("⚠️ Failed to store job %s: %v", networkID, err)
		return false
	}
	c.attachMatchedKeywords(ctx, jobID, detail, search.Keywords)
	c.cfg.Scheduler.Schedule(keywordRescanDelay, func(ctx context.Context) {
		c.RescanJobKeywords(ctx, jobID)
	})

	if !eligible {
		log.Printf("🚫 Job %s is not eligible, reason: %s", networkID, reason)
		c.storeIgnored(ctx, detail, reason)
		return false
	}

	// Only a first-time creation notifies; re-crawls of the same identifier
	// update the row silently.
	if created {
		c.notifyJob(ctx, search, jobID, job, detail)
	}
	c.messagePause()
	return true
}

func (c *Crawler) attachMatchedKeywords(ctx context.Context, jobID int64, detail extract.CardDetail, keywords []models.Keyword) {
	matched := filter.MatchedKeywords(detail, keywords)
	ids := make([]int64, len(matched))
	for i, k := range matched {
		ids[i] = k.ID
	}
	if err := c.cfg.Store.SetMatchedKeywords(ctx, jobID, ids); err != nil {
		log.Printf("⚠️ Failed to attach matched keywords to job %d: %v", jobID, err)
	}
}

func (c *Crawler) notifyJob(ctx context.Context, search *models.JobSearch, jobID int64, job *models.Job, detail extract.CardDetail) {
	data := notify.JobData{
		ID:          jobID,
		NetworkID:   job.NetworkID,
		URL:         job.URL,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		Language:    job.Language,
		CompanySize: job.CompanySize,
		EasyApply:   job.EasyApply,
	}

	if search.OutputChannel == nil {
		log.Printf("⚠️ Search %d has no output channel, skipping notification", search.ID)
	} else {
		message := notify.RenderJobMessage(search.Message, data, search.KeywordTokens(), c.coverLetter(ctx, detail))
		if err := c.cfg.Notifier.SendToChannel(search.OutputChannel.ChatID, message, true); err != nil {
			log.Printf("⚠️ Failed to send job %d to channel %d: %v", jobID, search.OutputChannel.ChatID, err)
		}
	}

	if c.cfg.Broadcaster != nil {
		if err := c.cfg.Broadcaster.BroadcastJob(ctx, data); err != nil {
			log.Printf("⚠️ Failed to broadcast job %d: %v", jobID, err)
		}
	}
}

// coverLetter asks the configured generator for a letter; no generator or
// a generation error yields the empty string and the notification goes out
// without one.
func (c *Crawler) coverLetter(ctx context.Context, detail extract.CardDetail) string {
	if c.cfg.CoverLetters == nil {
		return ""
	}
	description, ok := detail.Description.Get()
	if !ok {
		return ""
	}
	letter, err := c.cfg.CoverLetters.Generate(ctx, c.cfg.ProfileSummary, description)
	if err != nil {
		log.Printf("⚠️ Cover letter generation failed: %v", err)
		return ""
	}
	return letter
}

func (c *Crawler) storeIgnored(ctx context.Context, detail extract.CardDetail, reason string) {
	ig := &models.IgnoredJob{
		URL:         detail.URL.Or(""),
		Title:       notify.TelegramTextPurify(detail.Title.Or("")),
		Company:     notify.TelegramTextPurify(detail.Company.Or("")),
		Location:    notify.TelegramTextPurify(detail.Location.Or("")),
		Description: detail.Description.Or(""),
		Language:    detail.Language.Or(""),
		Reason:      reason,
	}
	if err := c.cfg.Store.CreateIgnoredJob(ctx, ig); err != nil {
		log.Printf("⚠️ Failed to store ignored job: %v", err)
	}
}

// RescanJobKeywords searches the stored job's description for its search's
// keyword tokens and records the hits. Runs as a deferred task after the
// upsert settles.
func (c *Crawler) RescanJobKeywords(ctx context.Context, jobID int64) {
	description, keywords, err := c.cfg.Store.GetJobKeywordScan(ctx, jobID)
	if err != nil {
		log.Printf("⚠️ Keyword rescan for job %d: %v", jobID, err)
		return
	}
	if description == "" || len(keywords) == 0 {
		return
	}
	found := filter.FoundInDescription(description, keywords)
	if err := c.cfg.Store.UpdateFoundKeywords(ctx, jobID, found); err != nil {
		log.Printf("⚠️ Failed to update found keywords for job %d: %v", jobID, err)
	}
}

// ScanIgnoredJobTags reports tag names appearing in recently rejected
// cards. Informational: matches are only logged.
func (c *Crawler) ScanIgnoredJobTags(ctx context.Context, limit int) {
	tags, err := c.cfg.Store.ListTagNames(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to list tags: %v", err)
		return
	}
	if len(tags) == 0 {
		return
	}
	ignored, err := c.cfg.Store.RecentIgnoredJobs(ctx, limit)
	if err != nil {
		log.Printf("⚠️ Failed to list ignored jobs: %v", err)
		return
	}

	for _, ig := range ignored {
		haystack := strings.ToLower(ig.Title + " " + ig.Description)
		var matched []string
		for _, tag := range tags {
			if tag != "" && strings.Contains(haystack, strings.ToLower(tag)) {
				matched = append(matched, tag)
			}
		}
		if len(matched) > 0 {
			log.Printf("🏷 Ignored job %d matched tags: %s | url=%s", ig.ID, strings.Join(matched, ", "), ig.URL)
		}
	}
}

// buildJob flattens an extracted card into the persisted record. Missing
// fields become empty strings; the private eligibility decision travels
// with the row.
func buildJob(detail extract.CardDetail, networkID string, searchID int64, eligible bool, reason string) *models.Job {
	return &models.Job{
		NetworkID:      networkID,
		URL:            detail.URL.Or(""),
		Title:          notify.TelegramTextPurify(detail.Title.Or("")),
		Company:        notify.TelegramTextPurify(detail.Company.Or("")),
		Location:       notify.TelegramTextPurify(detail.Location.Or("")),
		Description:    detail.Description.Or(""),
		Language:       detail.Language.Or(""),
		CompanySize:    detail.CompanySize.Or(""),
		EasyApply:      detail.EasyApply.Or(false),
		SearchID:       &searchID,
		Eligible:       eligible,
		RejectedReason: reason,
	}
}

package crawler

import (
	"context"
	"fmt"
	"log"
	"time"

	"linkedin-radar/internal/dedup"
	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/filter"
	"linkedin-radar/internal/models"
	"linkedin-radar/internal/notify"
)

const expressionWordLimit = 50

// CrawlExpressionSearch crawls one post-search results page and forwards
// matching posts to the search's output channel.
func (c *Crawler) CrawlExpressionSearch(ctx context.Context, searchID int64) {
	release, ok := c.cfg.Locker.Acquire(ctx, browserSlot, lockTimeout)
	if !ok {
		log.Printf("⏳ Browser slot busy, skipping expression search %d", searchID)
		return
	}
	defer release()

	search, err := c.cfg.Store.GetExpressionSearch(ctx, searchID)
	if err != nil {
		log.Printf("❌ Expression search %d: %v", searchID, err)
		return
	}
	if search.OutputChannel == nil {
		log.Printf("⚠️ Expression search %d has no output channel, skipping", searchID)
		return
	}

	session, err := c.cfg.Sessions.Acquire(ctx)
	if err != nil {
		log.Printf("❌ Could not acquire browser session: %v", err)
		return
	}
	if !c.crawlExpressionPage(ctx, session, search) {
		return
	}

	if err := c.cfg.Store.UpdateExpressionSearchCrawl(ctx, searchID, time.Now()); err != nil {
		log.Printf("⚠️ Failed to update crawl stats for expression search %d: %v", searchID, err)
	}
}

func (c *Crawler) crawlExpressionPage(ctx context.Context, session Session, search *models.ExpressionSearch) bool {
	defer session.Release()

	if err := session.Navigate(ctx, search.URL); err != nil {
		log.Printf("❌ Failed to load expression search %s: %v", search.URL, err)
		return false
	}
	c.settle()
	// Post search results lazy-load aggressively; scroll deep before collecting.
	session.Scroll(8)

	cards, err := session.ExpressionCards(ctx)
	if err != nil {
		log.Printf("❌ Failed to collect post cards: %v", err)
		return false
	}
	log.Printf("📄 Expression search %d: %d posts", search.ID, len(cards))

	for _, card := range cards {
		c.processPost(ctx, search, card)
	}
	return true
}

func (c *Crawler) processPost(ctx context.Context, search *models.ExpressionSearch, card extract.PostCard) {
	id, ok := card.ID().Get()
	if !ok {
		return
	}
	poster := card.Poster().Or("")
	if filter.MatchesIgnoredAccount(poster, search.IgnoredAccounts) {
		log.Printf("🚫 Skipping post %s from ignored account %s", id, poster)
		return
	}
	if c.cfg.Dedup.Seen(ctx, id) {
		return
	}
	c.cfg.Dedup.MarkSeen(ctx, id, dedup.JobTTL)

	body, ok := card.Body().Get()
	if !ok {
		return
	}
	body = notify.CollapseNewlines(notify.StripAccessibilityHashtagLabels(body), 1)

	if kw, found := filter.ContainsIgnoredKeyword(body, search.IgnoredKeywords); found {
		log.Printf("🚫 Skipping post %s due to ignored keyword: %s", id, kw)
		return
	}

	lang, err := c.cfg.Detector.Detect(body)
	if err != nil || (lang != "en" && lang != "fa") {
		return
	}

	excerpt := notify.LimitWords(body, expressionWordLimit)
	header := search.Name
	if poster != "" {
		if header != "" {
			header += " | "
		}
		header += poster
	}
	if header != "" {
		excerpt = header + ":\n" + excerpt
	}
	message := excerpt + "\n\n" + notify.HTMLLink(postURL(id), "View post")

	if err := c.cfg.Notifier.SendToChannel(search.OutputChannel.ChatID, message, true); err != nil {
		log.Printf("⚠️ Failed to send post %s to channel %d: %v", id, search.OutputChannel.ChatID, err)
	}
	c.messagePause()
}

// postURL builds the permalink of a post from its activity urn.
func postURL(activityID string) string {
	return fmt.Sprintf("%sfeed/update/%s/", linkedInURL, activityID)
}

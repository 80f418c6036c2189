package crawler

import (
	"context"
	"log"
	"time"

	"linkedin-radar/internal/dedup"
	"linkedin-radar/internal/models"
	"linkedin-radar/internal/notify"
)

// CrawlFeed reads the home feed and forwards unseen posts to the feed chat.
// Feed ids rotate quickly, so the short dedup TTL applies.
func (c *Crawler) CrawlFeed(ctx context.Context) {
	if c.cfg.FeedChatID == 0 {
		return
	}
	release, ok := c.cfg.Locker.Acquire(ctx, browserSlot, lockTimeout)
	if !ok {
		log.Println("⏳ Browser slot busy, skipping feed crawl")
		return
	}
	defer release()

	session, err := c.cfg.Sessions.Acquire(ctx)
	if err != nil {
		log.Printf("❌ Could not acquire browser session: %v", err)
		return
	}
	defer session.Release()

	if err := session.Navigate(ctx, linkedInURL+"feed/"); err != nil {
		log.Printf("❌ Failed to load feed: %v", err)
		return
	}
	c.settle()
	session.Scroll(3)

	cards, err := session.FeedCards(ctx)
	if err != nil {
		log.Printf("❌ Failed to collect feed cards: %v", err)
		return
	}
	log.Printf("📄 Feed: %d posts", len(cards))

	for _, card := range cards {
		id, ok := card.ID().Get()
		if !ok {
			continue
		}
		if c.cfg.Dedup.Seen(ctx, id) {
			continue
		}
		c.cfg.Dedup.MarkSeen(ctx, id, dedup.FeedTTL)

		body, ok := card.Body().Get()
		if !ok {
			continue
		}
		body = notify.CollapseNewlines(notify.StripAccessibilityHashtagLabels(body), 1)
		message := notify.TelegramTextPurify(body) + "\n\n" + postURL(id)

		if err := c.cfg.Notifier.SendToChannel(c.cfg.FeedChatID, message, false); err != nil {
			log.Printf("⚠️ Failed to send feed post %s: %v", id, err)
		}
		c.messagePause()
	}
}

// CrawlChannel stores the current posts of one followed page. Posts are
// upserted by network id, so repeated crawls refresh their counters.
func (c *Crawler) CrawlChannel(ctx context.Context, channelID int64) {
	release, ok := c.cfg.Locker.Acquire(ctx, browserSlot, lockTimeout)
	if !ok {
		log.Printf("⏳ Browser slot busy, skipping channel %d", channelID)
		return
	}
	defer release()

	channel, err := c.cfg.Store.GetSocialChannel(ctx, channelID)
	if err != nil {
		log.Printf("❌ Social channel %d: %v", channelID, err)
		return
	}

	session, err := c.cfg.Sessions.Acquire(ctx)
	if err != nil {
		log.Printf("❌ Could not acquire browser session: %v", err)
		return
	}
	c.crawlChannelPage(ctx, session, channel)

	// Stats update even after a failed page load, so a dead page does not
	// pin the channel at the head of the crawl order.
	if err := c.cfg.Store.UpdateSocialChannelCrawl(ctx, channelID, time.Now()); err != nil {
		log.Printf("⚠️ Failed to update crawl stats for channel %d: %v", channelID, err)
	}
}

func (c *Crawler) crawlChannelPage(ctx context.Context, session Session, channel *models.SocialChannel) {
	defer session.Release()

	if err := session.Navigate(ctx, channel.URL); err != nil {
		log.Printf("❌ Failed to load channel %s: %v", channel.URL, err)
		return
	}
	c.settle()
	session.Scroll(1)

	cards, err := session.ChannelCards(ctx)
	if err != nil {
		log.Printf("❌ Failed to collect channel cards: %v", err)
		return
	}
	log.Printf("📄 Channel %s: %d posts", channel.Name, len(cards))

	for _, card := range cards {
		id, ok := card.ID().Get()
		if !ok {
			continue
		}
		body, ok := card.Body().Get()
		if !ok {
			continue
		}
		counts := card.Counts()
		post := &models.Post{
			ChannelID:  channel.ID,
			NetworkID:  id,
			Body:       notify.CollapseNewlines(notify.StripAccessibilityHashtagLabels(body), 1),
			ShareCount: counts.Shares,
			ViewsCount: counts.Views(),
		}
		if err := c.cfg.Store.UpsertPost(ctx, post); err != nil {
			log.Printf("⚠️ Failed to store post %s: %v", id, err)
		}
	}
}

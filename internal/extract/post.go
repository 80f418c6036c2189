// Feed and expression-search post extraction.

package extract

import (
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

const activityPrefix = "urn:li:activity:"

// SocialCounts are the reaction numbers shown under a post.
type SocialCounts struct {
	Reactions int
	Comments  int
	Shares    int
}

// Views is the aggregate used for stored posts.
func (s SocialCounts) Views() int {
	return s.Reactions + s.Comments + s.Shares
}

// PostCard is one feed or search-result post element.
type PostCard interface {
	// ID is the activity urn of the post.
	ID() Extracted[string]

	// Poster is the account name that published the post.
	Poster() Extracted[string]

	// Body is the post text.
	Body() Extracted[string]

	// Counts are the post's social statistics, zero when unreadable.
	Counts() SocialCounts
}

// ExpressionCards returns the post cards of an expression-search results page.
func (c *Collector) ExpressionCards(page playwright.Page) ([]PostCard, error) {
	return c.postCards(page, ".artdeco-card")
}

// FeedCards returns the post cards of the feed page.
func (c *Collector) FeedCards(page playwright.Page) ([]PostCard, error) {
	return c.postCards(page, `div[data-id^="urn:li:activity:"]`)
}

// ChannelCards returns the post cards of a company/profile activity page.
func (c *Collector) ChannelCards(page playwright.Page) ([]PostCard, error) {
	return c.postCards(page, ".feed-shared-update-v2")
}

func (c *Collector) postCards(page playwright.Page, selector string) ([]PostCard, error) {
	items, err := page.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	cards := make([]PostCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, &postCard{el: item})
	}
	return cards, nil
}

type postCard struct {
	el playwright.Locator
}

// ID tries the element's own data-urn/data-id attributes first, then
// descendant nodes carrying them.
func (pc *postCard) ID() Extracted[string] {
	for _, attr := range []string{"data-urn", "data-id"} {
		if v, err := pc.el.GetAttribute(attr); err == nil && strings.HasPrefix(v, activityPrefix) {
			return Present(v)
		}
	}
	for _, sel := range []string{`div[data-urn^="urn:li:activity:"]`, `div[data-id^="urn:li:activity:"]`} {
		child := pc.el.Locator(sel).First()
		if count, err := child.Count(); err != nil || count == 0 {
			continue
		}
		attr := "data-urn"
		if strings.Contains(sel, "data-id") {
			attr = "data-id"
		}
		if v, err := child.GetAttribute(attr); err == nil && v != "" {
			return Present(v)
		}
	}
	return Missing[string]()
}

func (pc *postCard) Poster() Extracted[string] {
	actor := pc.el.Locator(".update-components-actor__single-line-truncate").First()
	if count, err := actor.Count(); err != nil || count == 0 {
		return Missing[string]()
	}
	// The aria-hidden span holds the clean name; the full element text
	// duplicates it for screen readers.
	hidden := actor.Locator(`span[aria-hidden="true"]`).First()
	if count, err := hidden.Count(); err == nil && count > 0 {
		if text, err := hidden.InnerText(); err == nil && strings.TrimSpace(text) != "" {
			return Present(strings.TrimSpace(text))
		}
	}
	text, err := actor.InnerText()
	if err != nil {
		return Missing[string]()
	}
	for _, part := range strings.Split(text, "\n") {
		if cleaned := strings.TrimSpace(part); cleaned != "" {
			return Present(cleaned)
		}
	}
	return Missing[string]()
}

func (pc *postCard) Body() Extracted[string] {
	selectors := []string{
		".feed-shared-update-v2__description",
		".feed-shared-update-v2__commentary",
		".update-components-text",
		".break-words",
	}
	for _, sel := range selectors {
		if text := innerText(pc.el.Locator(sel).First()); text.IsPresent() {
			return text
		}
	}
	return Missing[string]()
}

func (pc *postCard) Counts() SocialCounts {
	list := pc.el.Locator("ul.social-details-social-counts li")
	items, err := list.All()
	if err != nil {
		return SocialCounts{}
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, err := item.GetAttribute("aria-label")
		if err != nil || label == "" {
			// Some counters carry the label on a nested button instead.
			label, err = item.Locator("button").First().GetAttribute("aria-label")
			if err != nil {
				continue
			}
		}
		labels = append(labels, label)
	}
	return ParseSocialCounts(labels)
}

// ParseSocialCounts reads accessibility labels like "1,024 reactions",
// "37 comments" or "5 shares" into counts. Unparsable labels are skipped.
func ParseSocialCounts(labels []string) SocialCounts {
	var counts SocialCounts
	for _, label := range labels {
		fields := strings.Fields(label)
		if len(fields) < 2 {
			continue
		}
		value, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
		if err != nil {
			continue
		}
		switch fields[1] {
		case "reactions", "reaction":
			counts.Reactions = value
		case "comments", "comment":
			counts.Comments = value
		case "shares", "share":
			counts.Shares = value
		}
	}
	return counts
}

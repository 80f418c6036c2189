// Pull structured fields out of LinkedIn job cards.
// Every field extractor is independently fault-tolerant: a missing DOM
// node yields Missing, never an abort, so filtering can still run on
// partially extracted data.

package extract

import (
	"context"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"linkedin-radar/internal/langdetect"
)

// CardDetail is everything we can read off one job card and its detail pane.
type CardDetail struct {
	NativeID    Extracted[string]
	URL         Extracted[string]
	Title       Extracted[string]
	Company     Extracted[string]
	Location    Extracted[string]
	Description Extracted[string]
	CompanySize Extracted[string]
	Language    Extracted[string]
	EasyApply   Extracted[bool]
}

// Card is one job element of a search results page.
type Card interface {
	// NativeID is the platform's stable id for the card, readable without
	// opening the detail pane.
	NativeID() Extracted[string]

	// Open brings the card into view and clicks it so the detail pane loads.
	Open(ctx context.Context) error

	// Detail extracts all fields of the card and its detail pane.
	Detail() CardDetail
}

// Collector builds Cards from a live page.
type Collector struct {
	detector langdetect.Detector
}

func NewCollector(detector langdetect.Detector) *Collector {
	return &Collector{detector: detector}
}

// JobCards returns the job cards of the current search results page, in DOM order.
func (c *Collector) JobCards(page playwright.Page) ([]Card, error) {
	items, err := page.Locator("li.scaffold-layout__list-item").All()
	if err != nil {
		return nil, err
	}
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, &jobCard{page: page, el: item, detector: c.detector})
	}
	return cards, nil
}

type jobCard struct {
	page     playwright.Page
	el       playwright.Locator
	detector langdetect.Detector
}

func (jc *jobCard) NativeID() Extracted[string] {
	id, err := jc.el.GetAttribute("data-occludable-job-id")
	if err != nil || id == "" {
		return Missing[string]()
	}
	return Present(id)
}

func (jc *jobCard) Open(ctx context.Context) error {
	if err := jc.el.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}
	if err := jc.el.Click(); err != nil {
		return err
	}
	// Give the detail pane a moment to render.
	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (jc *jobCard) Detail() CardDetail {
	description := jc.description()
	return CardDetail{
		NativeID:    jc.NativeID(),
		URL:         jc.url(),
		Title:       jc.title(),
		Company:     jc.company(),
		Location:    jc.location(),
		Description: description,
		CompanySize: jc.companySize(),
		Language:    jc.language(description),
		EasyApply:   jc.easyApply(),
	}
}

func (jc *jobCard) url() Extracted[string] {
	href, err := jc.el.Locator("a.job-card-container__link").First().GetAttribute("href")
	if err != nil || href == "" {
		return Missing[string]()
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.linkedin.com" + href
	}
	// Strip tracking query params so the same job always yields the same URL.
	return Present(strings.SplitN(href, "?", 2)[0])
}

func (jc *jobCard) title() Extracted[string] {
	titleEl := jc.el.Locator(".artdeco-entity-lockup__title").First()
	if count, err := titleEl.Count(); err != nil || count == 0 {
		return Missing[string]()
	}
	// Search highlights wrap the plain title in a <strong> tag.
	strong := titleEl.Locator("strong").First()
	if count, err := strong.Count(); err == nil && count > 0 {
		if text, err := strong.InnerText(); err == nil {
			return Present(strings.TrimSpace(text))
		}
	}
	text, err := titleEl.InnerText()
	if err != nil {
		return Missing[string]()
	}
	return Present(strings.TrimSpace(text))
}

func (jc *jobCard) company() Extracted[string] {
	return innerText(jc.el.Locator(".artdeco-entity-lockup__subtitle").First())
}

func (jc *jobCard) location() Extracted[string] {
	loc := innerText(jc.el.Locator(".artdeco-entity-lockup__caption").First())
	return Map(loc, func(s string) string {
		return strings.ReplaceAll(s, "\n", " | ")
	})
}

func (jc *jobCard) description() Extracted[string] {
	return innerText(jc.page.Locator("#job-details").First())
}

// companySize reads the second job-insight row of the detail pane,
// e.g. "51-200 employees · Staffing and Recruiting" -> "51-200".
func (jc *jobCard) companySize() Extracted[string] {
	insights, err := jc.page.Locator(".job-details-jobs-unified-top-card__job-insight").All()
	if err != nil || len(insights) < 2 {
		return Missing[string]()
	}
	text, err := insights[1].InnerText()
	if err != nil {
		return Missing[string]()
	}
	size := strings.SplitN(text, "·", 2)[0]
	size = strings.ReplaceAll(size, "employees", "")
	return Present(strings.TrimSpace(size))
}

func (jc *jobCard) easyApply() Extracted[bool] {
	count, err := jc.el.Locator(`svg[data-test-icon="linkedin-bug-color-small"]`).Count()
	if err != nil {
		return Missing[bool]()
	}
	return Present(count > 0)
}

func (jc *jobCard) language(description Extracted[string]) Extracted[string] {
	text, ok := description.Get()
	if !ok {
		return Missing[string]()
	}
	lang, err := jc.detector.Detect(text)
	if err != nil {
		return Missing[string]()
	}
	return Present(lang)
}

// innerText reads a locator's text, Missing when the node is absent or unreadable.
func innerText(loc playwright.Locator) Extracted[string] {
	if count, err := loc.Count(); err != nil || count == 0 {
		return Missing[string]()
	}
	text, err := loc.InnerText()
	if err != nil {
		return Missing[string]()
	}
	return Present(strings.TrimSpace(text))
}

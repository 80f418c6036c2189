// Package browser owns the Playwright automation endpoint: one launched
// browser, one authenticated session per crawl.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"linkedin-radar/internal/extract"
	"linkedin-radar/internal/langdetect"
)

const LinkedInURL = "https://www.linkedin.com/"

// releaseGrace is how long a session lingers before teardown, so in-flight
// requests settle instead of being cut off.
const releaseGrace = 2 * time.Second

// ErrSessionUnavailable wraps failures to reach or start the automation
// endpoint. Fatal to the current crawl attempt; the next scheduled
// invocation retries.
var ErrSessionUnavailable = errors.New("browser session unavailable")

// Manager launches the browser once and hands out authenticated sessions.
type Manager struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	cookiesPath string
	collector   *extract.Collector
}

func NewManager(cookiesPath string, detector langdetect.Detector, headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: start playwright: %v", ErrSessionUnavailable, err)
	}

	browser, err := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("%w: launch firefox: %v", ErrSessionUnavailable, err)
	}

	return &Manager{
		pw:          pw,
		browser:     browser,
		cookiesPath: cookiesPath,
		collector:   extract.NewCollector(detector),
	}, nil
}

// Acquire opens a fresh browser context, re-applies the persisted cookie set
// and lands on linkedin.com. When the cookie file is missing or stale the
// session degrades to an unauthenticated page: extraction then yields
// missing values instead of failing the crawl.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	bctx, err := m.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: new context: %v", ErrSessionUnavailable, err)
	}

	cookies, err := LoadCookies(m.cookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing unauthenticated.", err)
	} else if err := bctx.AddCookies(cookies); err != nil {
		log.Printf("⚠️ Could not apply cookies: %v. Continuing unauthenticated.", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("%w: new page: %v", ErrSessionUnavailable, err)
	}

	session := &Session{bctx: bctx, page: page, collector: m.collector}
	if err := session.Navigate(ctx, LinkedInURL); err != nil {
		session.Release()
		return nil, fmt.Errorf("%w: open linkedin: %v", ErrSessionUnavailable, err)
	}
	return session, nil
}

// NewBlankSession opens a context without cookies. Used by the login flow.
func (m *Manager) NewBlankSession() (*Session, error) {
	bctx, err := m.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: new context: %v", ErrSessionUnavailable, err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("%w: new page: %v", ErrSessionUnavailable, err)
	}
	return &Session{bctx: bctx, page: page, collector: m.collector}, nil
}

func (m *Manager) Close() {
	if m.browser != nil {
		m.browser.Close()
	}
	if m.pw != nil {
		m.pw.Stop()
	}
}

// Session is one exclusive browser context. Release must run on every exit
// path of the calling routine.
type Session struct {
	bctx      playwright.BrowserContext
	page      playwright.Page
	collector *extract.Collector
}

// Page exposes the underlying page for flows that drive the DOM directly.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Cookies returns the context's current cookie set.
func (s *Session) Cookies() ([]playwright.Cookie, error) {
	return s.bctx.Cookies()
}

// Navigate loads url and waits for the document body.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	if _, err := s.page.WaitForSelector("body", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("wait for page body: %w", err)
	}
	return nil
}

// Scroll pages down the given number of screens, pausing between steps so
// lazy-loaded content catches up. Each pass scrolls in human-like increments
// and jiggles the mouse so the session does not read as idle automation.
func (s *Session) Scroll(times int) {
	if err := MouseJiggle(s.page); err != nil {
		log.Printf("⚠️ Mouse move failed: %v", err)
	}
	for i := 0; i < times; i++ {
		if err := HumanScroll(s.page); err != nil {
			log.Printf("⚠️ Scroll failed: %v", err)
			return
		}
		if _, err := s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
			log.Printf("⚠️ Scroll failed: %v", err)
			return
		}
		RandomDelay(1000, 2000)
	}
}

// JobCards collects the job cards of the current search results page.
func (s *Session) JobCards(ctx context.Context) ([]extract.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.collector.JobCards(s.page)
}

// ExpressionCards collects the post cards of an expression-search page.
func (s *Session) ExpressionCards(ctx context.Context) ([]extract.PostCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.collector.ExpressionCards(s.page)
}

// FeedCards collects the post cards of the feed page.
func (s *Session) FeedCards(ctx context.Context) ([]extract.PostCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.collector.FeedCards(s.page)
}

// ChannelCards collects the post cards of a channel activity page.
func (s *Session) ChannelCards(ctx context.Context) ([]extract.PostCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.collector.ChannelCards(s.page)
}

// Release waits the grace period and tears the context down.
func (s *Session) Release() {
	time.Sleep(releaseGrace)
	if s.page != nil {
		s.page.Close()
	}
	if s.bctx != nil {
		s.bctx.Close()
	}
}

package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Login signs in with the given credentials and persists the resulting
// cookie set to cookiesPath. Crawl sessions re-apply that set instead of
// logging in again.
func Login(ctx context.Context, m *Manager, email, password, cookiesPath string) error {
	session, err := m.NewBlankSession()
	if err != nil {
		return err
	}
	defer session.Release()

	if err := session.Navigate(ctx, LinkedInURL+"login"); err != nil {
		return err
	}

	page := session.Page()
	if _, err := page.WaitForSelector("#username", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(20000),
	}); err != nil {
		return fmt.Errorf("login form did not appear: %w", err)
	}

	if err := page.Fill("#username", email); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := page.Fill("#password", password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := page.Locator("#password").Press("Enter"); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}

	// The global nav search box only renders for signed-in users.
	if _, err := page.WaitForSelector("#global-nav-search", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(20000),
	}); err != nil {
		return fmt.Errorf("login not confirmed: %w", err)
	}

	cookies, err := session.Cookies()
	if err != nil {
		return fmt.Errorf("read session cookies: %w", err)
	}
	return SaveCookies(cookiesPath, cookies)
}

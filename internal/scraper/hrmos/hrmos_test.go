package hrmos

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/scraper"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:             "https://hrmos.test/agent",
		NavigationTimeoutMs: 15000,
		DefaultTimeoutMs:    15000,
		SelectorTimeoutMs:   500,
	}
}

// setupPage launches a headless browser page for route-mocked tests,
// skipping when no browser is installed on the machine running the suite.
func setupPage(t *testing.T) playwright.Page {
	t.Helper()

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright unavailable: %v", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("chromium unavailable: %v", err)
	}
	t.Cleanup(func() {
		b.Close()
		pw.Stop()
	})

	page, err := b.NewPage()
	require.NoError(t, err)
	return page
}

// serveHTML answers every request on the page with a canned HTML body
// picked by URL substring; the first matching pattern wins, the last entry
// with an empty pattern is the fallback.
type htmlRoute struct {
	pattern string
	body    string
}

func serveHTML(t *testing.T, page playwright.Page, routes []htmlRoute) {
	t.Helper()
	err := page.Route("**/*", func(route playwright.Route) {
		url := route.Request().URL()
		for _, r := range routes {
			if r.pattern == "" || strings.Contains(url, r.pattern) {
				route.Fulfill(playwright.RouteFulfillOptions{
					Status:      playwright.Int(200),
					ContentType: playwright.String("text/html"),
					Body:        "<html><body>" + r.body + "</body></html>",
				})
				return
			}
		}
		route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(404),
			Body:   "not found",
		})
	})
	require.NoError(t, err)
}

func TestListJobsWithoutSession(t *testing.T) {
	s := New(testConfig(), browser.Attach(nil), nil)
	_, err := s.ListJobs()
	require.ErrorIs(t, err, scraper.ErrNotInitialized)
}

func TestAllCandidatesWithoutSession(t *testing.T) {
	s := New(testConfig(), browser.Attach(nil), nil)
	_, err := s.AllCandidates()
	require.ErrorIs(t, err, scraper.ErrNotInitialized)
}

func TestLoginValidatesCredentialsFirst(t *testing.T) {
	s := New(testConfig(), browser.Attach(nil), nil)

	err := s.Login(config.Credentials{})
	require.ErrorIs(t, err, scraper.ErrMissingCredentials)

	// with credentials present the uninitialized session is the failure
	err = s.Login(config.Credentials{Email: "a@example.com", Password: "secret"})
	require.ErrorIs(t, err, scraper.ErrNotInitialized)
}

package hrmos

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
)

// Login navigates to the listing root and drives the login form if the
// site redirects there. The flow is deliberately soft: the target's login
// is flaky and bot-sensitive, and hard-failing here would abort otherwise
// useful partial scrapes. The only errors that propagate are missing
// credentials and an uninitialized session; everything else is logged and
// the run continues, possibly unauthenticated (extraction then simply
// finds nothing).
func (s *Scraper) Login(creds config.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	page, err := s.page()
	if err != nil {
		return err
	}

	s.tracker.Logf("🔑 ログイン処理を開始します...")
	s.tracker.Logf("📝 アクセス先: %s", s.listingURL())

	if _, err := page.Goto(s.listingURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("⚠️ ログインページへの遷移に失敗しました: %v. Continuing.", err)
		return nil
	}
	s.tracker.Logf("📍 現在のURL: %s", page.URL())

	if !strings.Contains(page.URL(), "/login") {
		s.tracker.Logf("✅ すでにログイン済みです")
		return nil
	}

	s.tracker.Logf("🔒 ログインページにリダイレクトされました。ログインを実行します...")
	if err := s.submitLoginForm(page, creds); err != nil {
		s.tracker.Logf("⚠️ ログイン処理中にエラーが発生しました: %v. 無視して続行します。", err)
		return nil
	}

	if strings.Contains(page.URL(), "/login") {
		// Wrong credentials or bot detection. Swallowed: downstream
		// extraction tolerates an unauthenticated session.
		s.tracker.Logf("❌ ログインに失敗しました。無視して続行します...")
		return nil
	}

	s.tracker.Logf("✅ ログインが完了しました (%s)", page.URL())
	return nil
}

func (s *Scraper) submitLoginForm(page playwright.Page, creds config.Credentials) error {
	emailField := page.Locator(`input[name="email"]`)
	passwordField := page.Locator(`input[name="password"]`)

	waitOpts := playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(s.loginFieldTimeout()),
	}
	if err := emailField.WaitFor(waitOpts); err != nil {
		return err
	}
	if err := passwordField.WaitFor(waitOpts); err != nil {
		return err
	}

	// Clear first, then type with a human-ish keystroke delay to stay
	// under the bot detection threshold
	if err := emailField.Fill(""); err != nil {
		return err
	}
	if err := passwordField.Fill(""); err != nil {
		return err
	}

	browser.RandomDelay(800, 1200)

	typeOpts := playwright.LocatorPressSequentiallyOptions{Delay: playwright.Float(100)}
	if err := emailField.PressSequentially(creds.Email, typeOpts); err != nil {
		return err
	}
	if err := passwordField.PressSequentially(creds.Password, typeOpts); err != nil {
		return err
	}

	browser.RandomDelay(800, 1200)

	if err := page.Locator(`button[type="submit"]`).Click(); err != nil {
		return err
	}

	return page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(s.cfg.NavigationTimeoutMs),
	})
}

func (s *Scraper) loginFieldTimeout() float64 {
	if s.cfg.SelectorTimeoutMs > 0 {
		return s.cfg.SelectorTimeoutMs * 2
	}
	return 20000
}

// Session owns one headless browser process and its single active page.
// Start is the only way to acquire one; Close must run on every exit path
// and is safe to call more than once.

package browser

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LaunchError wraps a browser startup failure. Launching is the one place
// in the scraping engine where an error is fatal and propagated.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("browser: launch failed: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

type Options struct {
	Headless            bool
	UserAgent           string
	ViewportWidth       int
	ViewportHeight      int
	NavigationTimeoutMs float64
	DefaultTimeoutMs    float64
	// Saved session cookies; a valid session skips the flaky login flow
	Cookies []playwright.OptionalCookie
}

func DefaultOptions() Options {
	return Options{
		Headless:            true,
		UserAgent:           desktopUserAgent,
		ViewportWidth:       1920,
		ViewportHeight:      1080,
		NavigationTimeoutMs: 60000,
		DefaultTimeoutMs:    90000,
	}
}

type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    playwright.Page
	closed  bool
}

// Start launches Chromium and opens the session's single page. Image and
// media requests are aborted at the context level to cut page load time.
func Start(opts Options) (*Session, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = desktopUserAgent
	}
	if opts.ViewportWidth == 0 || opts.ViewportHeight == 0 {
		opts.ViewportWidth, opts.ViewportHeight = 1920, 1080
	}

	log.Println("🚀 ブラウザを初期化しています...")

	pw, err := playwright.Run()
	if err != nil {
		return nil, &LaunchError{Err: err}
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-accelerated-2d-canvas",
			"--disable-gpu",
			fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
		},
	})
	if err != nil {
		pw.Stop()
		return nil, &LaunchError{Err: err}
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		UserAgent:         playwright.String(opts.UserAgent),
		JavaScriptEnabled: playwright.Bool(true),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, &LaunchError{Err: err}
	}

	if len(opts.Cookies) > 0 {
		if err := ctx.AddCookies(opts.Cookies); err != nil {
			log.Printf("⚠️ Cookieの設定に失敗しました: %v. Continuing.", err)
		} else {
			log.Printf("🍪 保存済みCookieを読み込みました (%d)", len(opts.Cookies))
		}
	}

	// Heavy resources only slow the scrape down
	if err := ctx.Route("**/*", func(route playwright.Route) {
		switch route.Request().ResourceType() {
		case "image", "media":
			route.Abort()
		default:
			route.Continue()
		}
	}); err != nil {
		log.Printf("⚠️ リクエストフィルタの設定に失敗しました: %v", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		pw.Stop()
		return nil, &LaunchError{Err: err}
	}

	if opts.DefaultTimeoutMs > 0 {
		page.SetDefaultTimeout(opts.DefaultTimeoutMs)
	}
	if opts.NavigationTimeoutMs > 0 {
		page.SetDefaultNavigationTimeout(opts.NavigationTimeoutMs)
	}

	log.Println("✅ ブラウザの初期化が完了しました")
	return &Session{pw: pw, browser: b, ctx: ctx, page: page}, nil
}

// Attach wraps an already-open page in a Session. Used by tests that build
// their pages through route-mocked contexts.
func Attach(page playwright.Page) *Session {
	return &Session{page: page}
}

// Page returns the session's single active page, or nil after Close.
func (s *Session) Page() playwright.Page {
	if s == nil || s.closed {
		return nil
	}
	return s.page
}

// Active reports whether extraction calls may run against the session.
func (s *Session) Active() bool {
	return s != nil && !s.closed && s.page != nil
}

// Close tears the browser down. Idempotent; close errors are logged, never
// propagated, so it is safe on every exit path including partial failures.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	log.Println("🔒 ブラウザを終了しています...")

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Printf("⚠️ ページの終了に失敗しました: %v", err)
		}
	}
	if s.ctx != nil {
		if err := s.ctx.Close(); err != nil {
			log.Printf("⚠️ コンテキストの終了に失敗しました: %v", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Printf("⚠️ ブラウザの終了に失敗しました: %v", err)
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Printf("⚠️ Playwrightの停止に失敗しました: %v", err)
		}
	}
	log.Println("✅ ブラウザを終了しました")
}

package main

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
)

func main() {
	fmt.Println("🌐 Testing browser session...")

	cfg := config.Load()

	opts := browser.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.NavigationTimeoutMs = cfg.NavigationTimeoutMs
	opts.DefaultTimeoutMs = cfg.DefaultTimeoutMs
	if cookies, err := browser.LoadCookies(cfg.CookiesPath); err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing without.", err)
	} else {
		opts.Cookies = cookies
		fmt.Printf("✅ Loaded %d cookies\n", len(cookies))
	}

	sess, err := browser.Start(opts)
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer sess.Close()

	fmt.Println("✅ Browser session started")

	page := sess.Page()
	fmt.Printf("🔍 Navigating to %s...\n", cfg.BaseURL)
	if _, err := page.Goto(cfg.BaseURL + "/corporates"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	//a redirect to /login here means the saved session has expired
	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)
	fmt.Printf("📍 Landed on: %s\n", page.URL())

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String("hrmos-test.png"),
	}); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: hrmos-test.png")
	}
	fmt.Println("✨ Test complete!")
}

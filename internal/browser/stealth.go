package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds.
// Small jitter around form input keeps the bot-sensitive login flow calmer.
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}

// Settle blocks for a fixed delay. Client-side rendering on the target site
// keeps painting after the network goes idle, so every navigation is
// followed by one of these.
func Settle(ms int) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

// ScrollToBottom scrolls the page down in small increments to trigger
// lazy-loaded content, capped so an endless feed cannot stall the run.
func ScrollToBottom(page playwright.Page) error {
	_, err := page.Evaluate(`async () => {
		await new Promise((resolve) => {
			let totalHeight = 0;
			const distance = 100;
			const timer = setInterval(() => {
				const scrollHeight = document.body.scrollHeight;
				window.scrollBy(0, distance);
				totalHeight += distance;
				if (totalHeight >= scrollHeight || totalHeight > 10000) {
					clearInterval(timer);
					resolve();
				}
			}, 100);
		});
	}`)
	return err
}

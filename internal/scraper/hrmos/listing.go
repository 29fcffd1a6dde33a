package hrmos

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/scraper"
)

// Selectors the listing page has carried at one point or another. Probed
// for presence before the cascade runs, purely to leave a markup-drift
// trail in the logs.
var listingProbeSelectors = []string{
	".ng-star-inserted",
	"table tbody tr",
	".job-list-item",
	`[data-test="job-list-item"]`,
	`a[href*="/jobs/"]`,
}

const anchorScanJS = `() => Array.from(document.querySelectorAll('a'))
	.filter(a => (a.href || '').includes('/jobs/'))
	.map(a => {
		let parentText = '';
		let parent = a.parentElement;
		for (let i = 0; i < 3 && parent; i++) {
			parentText = parent.textContent || '';
			parent = parent.parentElement;
		}
		return { href: a.href, text: a.textContent || '', parentText: parentText };
	})`

const tableScanJS = `() => {
	const results = [];
	for (const table of Array.from(document.querySelectorAll('table'))) {
		for (const row of Array.from(table.querySelectorAll('tr'))) {
			for (const anchor of Array.from(row.querySelectorAll('a[href*="/jobs/"]'))) {
				results.push({ href: anchor.href, text: anchor.textContent || row.textContent || '' });
			}
		}
	}
	return results;
}`

const companyIDScanJS = `() => Array.from(document.querySelectorAll('a'))
	.filter(a => {
		const href = a.href || '';
		return href.includes('/corporates/') && !href.includes('/jobs/');
	})
	.map(a => ({ href: a.href, text: a.textContent || '' }))`

const jobAnchorScanJS = `() => Array.from(document.querySelectorAll('a[href*="/jobs/"]'))
	.map(a => ({ href: a.href, text: a.textContent || '' }))`

// ListJobs navigates to the corporate listing root and extracts every job
// link it can find. The result is fully materialized before returning.
// Zero results is a valid outcome; the only error this returns is
// ErrNotInitialized. A total extraction failure yields an empty slice.
func (s *Scraper) ListJobs() ([]scraper.JobListing, error) {
	page, err := s.page()
	if err != nil {
		return nil, err
	}

	s.tracker.SetStatus("求人一覧を取得中...")
	s.tracker.Logf("🔍 求人情報のスクレイピングを開始します...")
	s.tracker.Logf("📝 アクセス先: %s", s.listingURL())

	if _, err := page.Goto(s.listingURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("❌ 求人一覧ページへの遷移に失敗しました: %v", err)
		return []scraper.JobListing{}, nil
	}
	s.tracker.Logf("📍 現在のURL: %s", page.URL())

	// Angular keeps painting well past network idle
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("⚠️ ページの読み込み待機がタイムアウトしました: %v", err)
	}
	browser.Settle(s.cfg.RenderDelayMs)

	s.probeListingSelectors(page)

	if err := browser.ScrollToBottom(page); err != nil {
		s.tracker.Logf("⚠️ スクロールに失敗しました: %v", err)
	}
	browser.Settle(s.cfg.SettleDelayMs)

	listings, strategy := scraper.FirstNonEmpty(
		scraper.Strategy[scraper.JobListing]{Name: "anchor-scan", Run: func() ([]scraper.JobListing, error) {
			return s.scanAnchors(page)
		}},
		scraper.Strategy[scraper.JobListing]{Name: "table-scan", Run: func() ([]scraper.JobListing, error) {
			return s.scanTables(page)
		}},
		scraper.Strategy[scraper.JobListing]{Name: "company-crawl", Run: func() ([]scraper.JobListing, error) {
			return s.crawlCompanies(page)
		}},
	)
	if strategy == "" {
		s.tracker.Logf("⚠️ いずれの方法でも求人リンクが見つかりませんでした。")
		s.debugShot(page, "listing-empty", "🚨 求人一覧: 全ての抽出戦略が失敗しました")
		return []scraper.JobListing{}, nil
	}

	s.tracker.Logf("📊 合計 %d 件の求人情報を取得しました (戦略: %s)", len(listings), strategy)
	return listings, nil
}

func (s *Scraper) probeListingSelectors(page playwright.Page) {
	for _, sel := range listingProbeSelectors {
		count, err := page.Locator(sel).Count()
		if err != nil {
			continue
		}
		if count > 0 {
			s.tracker.Logf("📌 セレクタ「%s」で %d 件の要素が見つかりました", sel, count)
			return
		}
	}
	s.tracker.Logf("⚠️ 既知のセレクタでは要素が見つかりませんでした。ページ構造が変更されている可能性があります。")
}

// Stage A: scan every anchor whose resolved href contains "/jobs/",
// carrying up to three ancestors' text for inference.
func (s *Scraper) scanAnchors(page playwright.Page) ([]scraper.JobListing, error) {
	result, err := page.Evaluate(anchorScanJS)
	if err != nil {
		return nil, err
	}
	links := decodeLinks(result)
	s.tracker.Logf("📊 フィルタリング後の求人リンク数: %d件", len(links))

	var listings []scraper.JobListing
	seen := mapset.NewSet[string]()
	for _, link := range links {
		l, ok := listingFromLink(link)
		if !ok {
			continue
		}
		// first one wins on duplicate URLs
		if !seen.Add(l.URL) {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Stage B: some revisions of the page rendered the listing as a plain
// table. Row text doubles as the title fallback.
func (s *Scraper) scanTables(page playwright.Page) ([]scraper.JobListing, error) {
	result, err := page.Evaluate(tableScanJS)
	if err != nil {
		return nil, err
	}
	links := decodeLinks(result)
	s.tracker.Logf("📊 テーブルから取得した求人リンク数: %d件", len(links))

	var listings []scraper.JobListing
	seen := mapset.NewSet[string]()
	for _, link := range links {
		l, ok := listingFromLink(link)
		if !ok {
			continue
		}
		if !seen.Add(l.URL) {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Stage C: last resort. Collect distinct company ids from corporate links,
// then visit each company's jobs sub-page and extract there.
func (s *Scraper) crawlCompanies(page playwright.Page) ([]scraper.JobListing, error) {
	result, err := page.Evaluate(companyIDScanJS)
	if err != nil {
		return nil, err
	}

	var companyIDs []string
	idSet := mapset.NewSet[string]()
	for _, link := range decodeLinks(result) {
		id := scraper.SegmentAfter(link.href, "corporates")
		if id == "" || !idSet.Add(id) {
			continue
		}
		companyIDs = append(companyIDs, id)
	}
	s.tracker.Logf("📊 企業ID数: %d件", len(companyIDs))

	var listings []scraper.JobListing
	seen := mapset.NewSet[string]()
	for _, companyID := range companyIDs {
		companyURL := s.companyJobsURL(companyID)
		s.tracker.Logf("🏢 企業ID: %s の求人一覧ページにアクセス: %s", companyID, companyURL)

		if _, err := page.Goto(companyURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs / 2),
		}); err != nil {
			s.tracker.Logf("❌ 企業ID: %s の求人一覧取得中にエラーが発生しました: %v", companyID, err)
			continue
		}
		browser.Settle(s.cfg.SettleDelayMs)

		result, err := page.Evaluate(jobAnchorScanJS)
		if err != nil {
			s.tracker.Logf("⚠️ 企業ID: %s の求人リンク解析に失敗しました: %v", companyID, err)
			continue
		}
		for _, link := range decodeLinks(result) {
			l, ok := listingFromLink(link)
			if !ok {
				continue
			}
			if l.CompanyID == "" {
				l.CompanyID = companyID
			}
			if !seen.Add(l.URL) {
				continue
			}
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// listingFromLink reconstructs one JobListing from an anchor. Links whose
// path carries no job id are excluded from results.
func listingFromLink(link linkInfo) (scraper.JobListing, bool) {
	companyID, jobID := scraper.CompanyAndJobID(link.href)
	if jobID == "" {
		return scraper.JobListing{}, false
	}

	combined := link.text + " " + link.parentText
	return scraper.JobListing{
		Title:       inferTitle(link.text, link.parentText),
		URL:         link.href,
		Status:      inferStatus(combined),
		LastUpdated: inferLastUpdated(combined),
		CompanyID:   companyID,
		JobID:       jobID,
	}, true
}

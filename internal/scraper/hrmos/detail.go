package hrmos

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/scraper"
)

const fieldUnavailable = "取得できませんでした"

var detailTitleSelectors = []string{"h1", ".job-title", ".title", `[data-test="job-title"]`}

const thExactMatchJS = `(label) => {
	for (const row of Array.from(document.querySelectorAll('tr'))) {
		const th = row.querySelector('th');
		if (th && (th.textContent || '').trim() === label) {
			const td = row.querySelector('td');
			return td ? (td.textContent || '').trim() : '';
		}
	}
	return '';
}`

const dataLabelScanJS = `(label) => {
	for (const element of Array.from(document.querySelectorAll('[data-label]'))) {
		if ((element.getAttribute('data-label') || '').includes(label)) {
			return (element.textContent || '').trim();
		}
	}
	return '';
}`

// JobDetail fetches and extracts one job detail page. A navigation failure
// is returned to the caller (the bulk path substitutes a placeholder);
// individual field lookup failures degrade to empty strings.
func (s *Scraper) JobDetail(companyID, jobID string) (*scraper.JobDetail, error) {
	page, err := s.page()
	if err != nil {
		return nil, err
	}

	detailURL := s.jobDetailURL(companyID, jobID)
	s.tracker.Logf("🔍 求人詳細ページにアクセス: %s", detailURL)

	if _, err := page.Goto(detailURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		return nil, fmt.Errorf("hrmos: navigate job detail %s/%s: %w", companyID, jobID, err)
	}
	browser.Settle(s.cfg.SettleDelayMs)

	detail := &scraper.JobDetail{
		Title: s.resolveTitle(page),
		Description: scraper.FirstValue(
			s.contentStrategy(page, ".job-description"),
			s.contentStrategy(page, `[data-test="job-description"]`),
			s.tableStrategy(page, "仕事内容"),
		),
		Requirements: scraper.FirstValue(
			s.contentStrategy(page, ".job-requirements"),
			s.contentStrategy(page, `[data-test="job-requirements"]`),
			s.tableStrategy(page, "応募要件"),
		),
		WorkLocation:   s.tableValue(page, "勤務地"),
		EmploymentType: s.tableValue(page, "雇用形態"),
		Salary:         s.tableValue(page, "給与"),
		WorkingHours:   s.tableValue(page, "勤務時間"),
		Holidays:       s.tableValue(page, "休日・休暇"),
		Benefits: scraper.FirstValue(
			s.tableStrategy(page, "待遇・福利厚生"),
			s.tableStrategy(page, "福利厚生"),
		),
	}

	detail.LastUpdated = scraper.FirstValue(
		s.tableStrategy(page, "更新日"),
		s.tableStrategy(page, "最終更新日"),
	)
	if detail.LastUpdated == "" {
		detail.LastUpdated = time.Now().Format("2006/1/2")
	}

	s.tracker.Logf("✅ 求人詳細の取得が完了しました")
	return detail, nil
}

// AllJobDetails runs the listing extraction and then fetches the detail
// page of every listing that carries both ids. The result always has
// something in it: zero listings yield one clearly marked sample record,
// and a failed detail fetch yields a record built from the listing with
// explicit unavailable markers.
func (s *Scraper) AllJobDetails() ([]scraper.JobDetail, error) {
	listings, err := s.ListJobs()
	if err != nil {
		return nil, err
	}

	s.tracker.SetStatus("求人詳細を取得中...")
	s.tracker.SetTotal(progress.LevelJob, len(listings))
	s.tracker.Logf("📊 スクレイピング対象の求人数: %d件", len(listings))

	if len(listings) == 0 {
		s.tracker.Logf("⚠️ 求人が見つかりませんでした。サンプルデータを使用します。")
		return []scraper.JobDetail{sampleJobDetail()}, nil
	}

	details := make([]scraper.JobDetail, 0, len(listings))
	for i, listing := range listings {
		s.tracker.Item(progress.LevelJob, listing.Title)

		if listing.CompanyID == "" || listing.JobID == "" {
			s.tracker.Logf("⚠️ 求人 %d/%d のID情報が不足しています", i+1, len(listings))
			continue
		}

		s.tracker.Logf("🔍 求人 %d/%d の詳細を取得中... (%s)", i+1, len(listings), listing.Title)
		detail, err := s.JobDetail(listing.CompanyID, listing.JobID)
		if err != nil {
			s.tracker.Logf("⚠️ 求人詳細の取得に失敗しました。基本情報のみで追加します。(%v)", err)
			details = append(details, unavailableJobDetail(listing))
			continue
		}
		details = append(details, *detail)
	}

	s.tracker.Logf("📊 合計 %d 件の求人詳細を取得しました", len(details))
	return details, nil
}

func (s *Scraper) resolveTitle(page playwright.Page) string {
	for _, sel := range detailTitleSelectors {
		loc := page.Locator(sel).First()
		count, err := loc.Count()
		if err != nil || count == 0 {
			continue
		}
		text, err := loc.TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(s.cfg.SelectorTimeoutMs),
		})
		if err != nil {
			continue
		}
		if title := strings.TrimSpace(text); title != "" {
			return title
		}
	}
	if title, err := page.Title(); err == nil && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	return unknownTitle
}

func (s *Scraper) contentStrategy(page playwright.Page, selector string) scraper.ValueStrategy {
	return scraper.ValueStrategy{Name: selector, Run: func() (string, error) {
		loc := page.Locator(selector).First()
		count, err := loc.Count()
		if err != nil || count == 0 {
			return "", err
		}
		text, err := loc.TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(s.cfg.SelectorTimeoutMs),
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}}
}

func (s *Scraper) tableStrategy(page playwright.Page, label string) scraper.ValueStrategy {
	return scraper.ValueStrategy{Name: "table:" + label, Run: func() (string, error) {
		return s.tableValue(page, label), nil
	}}
}

// tableValue resolves one labeled field through a three-tier lookup:
// exact th match, then an XPath contains() match, then a data-label
// attribute scan. Lookup failures degrade to "".
func (s *Scraper) tableValue(page playwright.Page, label string) string {
	return scraper.FirstValue(
		scraper.ValueStrategy{Name: "th-exact", Run: func() (string, error) {
			result, err := page.Evaluate(thExactMatchJS, label)
			if err != nil {
				return "", err
			}
			return asString(result), nil
		}},
		scraper.ValueStrategy{Name: "th-xpath", Run: func() (string, error) {
			loc := page.Locator(fmt.Sprintf(`xpath=//th[contains(text(), %q)]/following-sibling::td`, label)).First()
			count, err := loc.Count()
			if err != nil || count == 0 {
				return "", err
			}
			text, err := loc.TextContent(playwright.LocatorTextContentOptions{
				Timeout: playwright.Float(s.cfg.SelectorTimeoutMs),
			})
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(text), nil
		}},
		scraper.ValueStrategy{Name: "data-label", Run: func() (string, error) {
			result, err := page.Evaluate(dataLabelScanJS, label)
			if err != nil {
				return "", err
			}
			return asString(result), nil
		}},
	)
}

// sampleJobDetail is the placeholder record returned when the listing
// extraction found nothing, so export and UI always have a row to show.
func sampleJobDetail() scraper.JobDetail {
	return scraper.JobDetail{
		Title:          "サンプル求人タイトル",
		Description:    "これはサンプルの仕事内容です。実際のデータが取得できませんでした。",
		Requirements:   "特になし",
		WorkLocation:   "東京都内",
		EmploymentType: "正社員",
		Salary:         "年収400万円〜600万円",
		WorkingHours:   "9:00-18:00（休憩1時間）",
		Holidays:       "完全週休2日制（土日）、祝日",
		Benefits:       "各種社会保険完備",
		LastUpdated:    time.Now().Format("2006/1/2"),
	}
}

func unavailableJobDetail(listing scraper.JobListing) scraper.JobDetail {
	return scraper.JobDetail{
		Title:          listing.Title,
		Description:    fieldUnavailable,
		Requirements:   fieldUnavailable,
		WorkLocation:   fieldUnavailable,
		EmploymentType: fieldUnavailable,
		Salary:         fieldUnavailable,
		WorkingHours:   fieldUnavailable,
		Holidays:       fieldUnavailable,
		Benefits:       fieldUnavailable,
		LastUpdated:    listing.LastUpdated,
	}
}

package hrmos

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/scraper"
)

// Site-specific containers expected to hold the child links at each level
// of the hierarchy. The broader anchor scans below them pick up the slack
// when the containers are renamed.
const (
	navListSelector  = ".c-navigation-list"
	userItemSelector = ".c-navigation-list .c-user-item"
	userRowSelector  = `[class*="user"]`
)

const scopedAnchorScanJS = `(sel) => Array.from(document.querySelectorAll(sel + ' a'))
	.map(a => ({ href: a.href, text: a.textContent || '' }))`

const candidateRowScanJS = `(sel) => {
	const results = [];
	for (const row of Array.from(document.querySelectorAll(sel))) {
		for (const anchor of Array.from(row.querySelectorAll('a'))) {
			if ((anchor.href || '').includes('/candidates/')) {
				results.push({ href: anchor.href, text: anchor.textContent || row.textContent || '' });
			}
		}
	}
	return results;
}`

const tableRowScanJS = `() => {
	const rows = [];
	for (const tr of Array.from(document.querySelectorAll('table tr'))) {
		const th = tr.querySelector('th');
		const td = tr.querySelector('td');
		if (th && td) {
			rows.push({ header: th.textContent || '', value: td.textContent || '' });
			continue;
		}
		const cells = tr.querySelectorAll('td');
		if (cells.length >= 2) {
			rows.push({ header: cells[0].textContent || '', value: cells[1].textContent || '' });
		}
	}
	return rows;
}`

const classRowScanJS = `() => {
	const rows = [];
	for (const row of Array.from(document.querySelectorAll('.c-table__row, dl > div'))) {
		const head = row.querySelector('.c-table__head, dt');
		const body = row.querySelector('.c-table__body, dd');
		if (head && body) {
			rows.push({ header: head.textContent || '', value: body.textContent || '' });
		}
	}
	return rows;
}`

type candidateRef struct {
	name     string
	href     string
	id       string
	detailID string
}

// AllCandidates walks the full company → job → candidate hierarchy and
// scrapes each candidate's labeled detail table. Any level that turns up
// empty or fails contributes zero records and the walk continues with the
// next sibling; the only error returned is ErrNotInitialized.
func (s *Scraper) AllCandidates() ([]scraper.CandidateInfo, error) {
	page, err := s.page()
	if err != nil {
		return nil, err
	}

	s.tracker.Begin("候補者情報を取得中...")
	s.tracker.Logf("🔍 候補者情報のスクレイピングを開始します...")

	companyIDs := s.discoverCompanies(page)
	s.tracker.SetTotal(progress.LevelCompany, len(companyIDs))
	s.tracker.Logf("📊 対象企業数: %d件", len(companyIDs))

	var candidates []scraper.CandidateInfo
	jobsTotal, candidatesTotal := 0, 0

	for _, companyID := range companyIDs {
		s.tracker.Item(progress.LevelCompany, companyID)

		jobIDs := s.discoverJobs(page, companyID)
		jobsTotal += len(jobIDs)
		s.tracker.SetTotal(progress.LevelJob, jobsTotal)

		for _, jobID := range jobIDs {
			s.tracker.Item(progress.LevelJob, jobID)

			refs := s.discoverCandidates(page, companyID, jobID)
			candidatesTotal += len(refs)
			s.tracker.SetTotal(progress.LevelCandidate, candidatesTotal)

			for _, ref := range refs {
				s.tracker.Item(progress.LevelCandidate, ref.name)
				candidates = append(candidates, s.scrapeCandidateDetail(page, ref, companyID, jobID))
			}
		}
	}

	s.tracker.SetStatus(fmt.Sprintf("候補者 %d 件を取得しました", len(candidates)))
	s.tracker.Logf("📊 合計 %d 件の候補者情報を取得しました", len(candidates))
	return candidates, nil
}

// Company level: the primary navigation list on the listing root, falling
// back to a whole-document anchor scan.
func (s *Scraper) discoverCompanies(page playwright.Page) []string {
	if _, err := page.Goto(s.listingURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("❌ 企業一覧ページへの遷移に失敗しました: %v", err)
		return nil
	}
	browser.Settle(s.cfg.SettleDelayMs)
	s.waitForNavList(page)

	links, strategy := scraper.FirstNonEmpty(
		scraper.Strategy[linkInfo]{Name: "nav-list", Run: func() ([]linkInfo, error) {
			return s.scopedAnchors(page, navListSelector)
		}},
		scraper.Strategy[linkInfo]{Name: "anchor-scan", Run: func() ([]linkInfo, error) {
			result, err := page.Evaluate(companyIDScanJS)
			if err != nil {
				return nil, err
			}
			return decodeLinks(result), nil
		}},
	)
	if strategy == "" {
		s.tracker.Logf("⚠️ 企業リンクが見つかりませんでした。")
		return nil
	}

	var ids []string
	idSet := mapset.NewSet[string]()
	for _, link := range links {
		if strings.Contains(link.href, "/jobs/") {
			continue
		}
		id := scraper.SegmentAfter(link.href, "corporates")
		if id == "" || !idSet.Add(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Job level: each company's jobs sub-page.
func (s *Scraper) discoverJobs(page playwright.Page, companyID string) []string {
	if _, err := page.Goto(s.companyJobsURL(companyID), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("❌ 企業ID: %s の求人一覧取得中にエラーが発生しました: %v", companyID, err)
		return nil
	}
	browser.Settle(s.cfg.SettleDelayMs)
	s.waitForNavList(page)

	links, strategy := scraper.FirstNonEmpty(
		scraper.Strategy[linkInfo]{Name: "nav-list", Run: func() ([]linkInfo, error) {
			return s.scopedAnchors(page, navListSelector)
		}},
		scraper.Strategy[linkInfo]{Name: "anchor-scan", Run: func() ([]linkInfo, error) {
			result, err := page.Evaluate(jobAnchorScanJS)
			if err != nil {
				return nil, err
			}
			return decodeLinks(result), nil
		}},
	)
	if strategy == "" {
		s.tracker.Logf("⚠️ 企業ID: %s の求人リンクが見つかりませんでした。", companyID)
		return nil
	}

	var ids []string
	idSet := mapset.NewSet[string]()
	for _, link := range links {
		id := scraper.SegmentAfter(link.href, "jobs")
		if id == "" || id == "detail" || !idSet.Add(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Candidate level: candidate anchors on the job detail page, via the
// navigation-list user items first, then a component-scoped class scan
// that descends into nested anchors.
func (s *Scraper) discoverCandidates(page playwright.Page, companyID, jobID string) []candidateRef {
	if _, err := page.Goto(s.jobDetailURL(companyID, jobID), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("❌ 求人ID: %s の詳細ページ取得中にエラーが発生しました: %v", jobID, err)
		return nil
	}
	browser.Settle(s.cfg.SettleDelayMs)

	links, strategy := scraper.FirstNonEmpty(
		scraper.Strategy[linkInfo]{Name: "nav-user-item", Run: func() ([]linkInfo, error) {
			result, err := page.Evaluate(candidateRowScanJS, userItemSelector)
			if err != nil {
				return nil, err
			}
			return decodeLinks(result), nil
		}},
		scraper.Strategy[linkInfo]{Name: "user-row", Run: func() ([]linkInfo, error) {
			result, err := page.Evaluate(candidateRowScanJS, userRowSelector)
			if err != nil {
				return nil, err
			}
			return decodeLinks(result), nil
		}},
	)
	if strategy == "" {
		return nil
	}

	var refs []candidateRef
	seen := mapset.NewSet[string]()
	for _, link := range links {
		candidateID, detailID := scraper.SegmentPairAfter(link.href, "candidates")
		if candidateID == "" || !seen.Add(link.href) {
			continue
		}
		name := strings.TrimSpace(link.text)
		if name == "" {
			name = unknownName
		}
		refs = append(refs, candidateRef{
			name:     name,
			href:     link.href,
			id:       candidateID,
			detailID: detailID,
		})
	}
	s.tracker.Logf("📊 求人ID: %s から %d 件の候補者リンクを取得しました (戦略: %s)", jobID, len(refs), strategy)
	return refs
}

// scrapeCandidateDetail fills the labeled fields from the candidate's
// detail table. Failures leave the structural fields populated and the
// free-text fields empty; the record is still complete for export.
func (s *Scraper) scrapeCandidateDetail(page playwright.Page, ref candidateRef, companyID, jobID string) scraper.CandidateInfo {
	info := scraper.CandidateInfo{
		Name:              ref.name,
		URL:               ref.href,
		CompanyID:         companyID,
		JobID:             jobID,
		CandidateID:       ref.id,
		CandidateDetailID: ref.detailID,
	}

	if _, err := page.Goto(ref.href, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(s.cfg.NavigationTimeoutMs),
	}); err != nil {
		s.tracker.Logf("⚠️ 候補者ID: %s の詳細ページ取得に失敗しました: %v", ref.id, err)
		return info
	}
	browser.Settle(s.cfg.SettleDelayMs)

	rows, strategy := scraper.FirstNonEmpty(
		scraper.Strategy[tableRow]{Name: "table-rows", Run: func() ([]tableRow, error) {
			result, err := page.Evaluate(tableRowScanJS)
			if err != nil {
				return nil, err
			}
			return decodeRows(result), nil
		}},
		scraper.Strategy[tableRow]{Name: "class-rows", Run: func() ([]tableRow, error) {
			result, err := page.Evaluate(classRowScanJS)
			if err != nil {
				return nil, err
			}
			return decodeRows(result), nil
		}},
	)
	if strategy == "" {
		s.tracker.Logf("⚠️ 候補者ID: %s のデータテーブルが見つかりませんでした。", ref.id)
		return info
	}

	for _, row := range rows {
		applyCandidateRow(&info, row.header, row.value)
	}
	return info
}

func (s *Scraper) waitForNavList(page playwright.Page) {
	err := page.Locator(navListSelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(s.cfg.SelectorTimeoutMs),
	})
	if err != nil {
		// not fatal, the fallback scans do not need the container
		s.tracker.Logf("⚠️ ナビゲーションリストが見つかりませんでした: %v", err)
	}
}

func (s *Scraper) scopedAnchors(page playwright.Page, selector string) ([]linkInfo, error) {
	result, err := page.Evaluate(scopedAnchorScanJS, selector)
	if err != nil {
		return nil, err
	}
	return decodeLinks(result), nil
}

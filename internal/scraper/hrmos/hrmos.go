// Package hrmos drives the HRMOS agent screens: login, the corporate
// listing page, job detail pages and the candidate hierarchy underneath
// them. Extraction is tightly coupled to the target site's markup on
// purpose; when the markup changes, the selector cascades here are the
// place to revise.
package hrmos

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/scraper"
)

type Scraper struct {
	cfg     *config.Config
	session *browser.Session
	tracker *progress.Tracker
	shots   *browser.ScreenshotDebugger
}

// New wires a scraper to an already-started session. The tracker may be
// nil when no UI is listening.
func New(cfg *config.Config, session *browser.Session, tracker *progress.Tracker) *Scraper {
	return &Scraper{cfg: cfg, session: session, tracker: tracker}
}

// page returns the session's active page, or ErrNotInitialized when the
// session was never started or is already closed.
func (s *Scraper) page() (playwright.Page, error) {
	if !s.session.Active() {
		return nil, scraper.ErrNotInitialized
	}
	return s.session.Page(), nil
}

func (s *Scraper) listingURL() string {
	return s.cfg.BaseURL + "/corporates"
}

func (s *Scraper) companyJobsURL(companyID string) string {
	return fmt.Sprintf("%s/corporates/%s/jobs", s.cfg.BaseURL, companyID)
}

func (s *Scraper) jobDetailURL(companyID, jobID string) string {
	return fmt.Sprintf("%s/corporates/%s/jobs/%s/detail", s.cfg.BaseURL, companyID, jobID)
}

func (s *Scraper) debugShot(page playwright.Page, name, message string) {
	if s.shots == nil {
		s.shots = browser.NewScreenshotDebugger()
	}
	s.shots.CaptureAndLog(page, name, message)
}

// linkInfo is one anchor captured during a page scan, together with the
// text of its enclosing elements for title/status/date inference.
type linkInfo struct {
	href       string
	text       string
	parentText string
}

// tableRow is one header/value pair scraped out of a labeled table.
type tableRow struct {
	header string
	value  string
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func decodeLinks(v any) []linkInfo {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	links := make([]linkInfo, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		links = append(links, linkInfo{
			href:       asString(m["href"]),
			text:       asString(m["text"]),
			parentText: asString(m["parentText"]),
		})
	}
	return links
}

func decodeRows(v any) []tableRow {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	rows := make([]tableRow, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, tableRow{
			header: asString(m["header"]),
			value:  asString(m["value"]),
		})
	}
	return rows
}

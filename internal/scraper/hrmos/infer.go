package hrmos

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-hrmos-automation/internal/scraper"
)

const unknownTitle = "タイトル不明"
const unknownName = "名前不明"

// Date patterns seen next to listing links: 2024/5/1, 2024-05-01, 5/1, 5月1日.
var dateRe = regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2}|\d{4}-\d{1,2}-\d{1,2}|\d{1,2}/\d{1,2}|\d{1,2}月\d{1,2}日`)

// normalizeText folds full-width characters to their compatibility forms
// (NFKC) and lowercases, so "ＣＬＯＳＥ" and "close" compare equal.
func normalizeText(str string) string {
	result, _, err := transform.String(norm.NFKC, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(result)
}

// inferStatus scans the link and ancestor text for closed keywords.
// Everything that is not explicitly closed counts as open.
func inferStatus(text string) scraper.Status {
	normalized := normalizeText(text)
	if strings.Contains(normalized, "終了") || strings.Contains(normalized, "close") {
		return scraper.StatusClose
	}
	return scraper.StatusOpen
}

// inferLastUpdated returns the first date-looking fragment verbatim, or
// today's date when the surrounding text carries none.
func inferLastUpdated(text string) string {
	if m := dateRe.FindString(text); m != "" {
		return m
	}
	return time.Now().Format("2006/1/2")
}

// inferTitle prefers the link's own text, then the (truncated) ancestor
// text, then an explicit unknown marker.
func inferTitle(linkText, ancestorText string) string {
	if title := strings.TrimSpace(linkText); title != "" {
		return title
	}
	if title := truncateRunes(strings.TrimSpace(ancestorText), 100); title != "" {
		return title
	}
	return unknownTitle
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// applyCandidateRow maps one scraped table row onto a candidate record.
// The site has used several synonymous header labels over time; all of
// them land on the same field. Unrecognized headers are dropped.
func applyCandidateRow(info *scraper.CandidateInfo, header, value string) bool {
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(header) {
	case "職種分類", "職種":
		info.JobCategory = value
	case "業務内容", "仕事内容":
		info.JobDescription = value
	case "応募要件", "必要スキル":
		info.Requirements = value
	case "最終更新日", "更新日":
		info.LastUpdated = value
	default:
		return false
	}
	return true
}

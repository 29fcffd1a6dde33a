package hrmos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-hrmos-automation/internal/scraper"
)

func TestInferStatus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want scraper.Status
	}{
		{"plain text", "バックエンドエンジニア", scraper.StatusOpen},
		{"accepting with date", "応募受付中 2024/5/1", scraper.StatusOpen},
		{"shuuryou keyword", "この求人は終了しました", scraper.StatusClose},
		{"english close", "CLOSE", scraper.StatusClose},
		{"english closed", "closed", scraper.StatusClose},
		{"full-width close", "ＣＬＯＳＥ", scraper.StatusClose},
		{"empty", "", scraper.StatusOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferStatus(tt.text))
		})
	}
}

func TestInferLastUpdated(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash full date", "更新日 2024/5/1 です", "2024/5/1"},
		{"hyphen full date", "2024-05-01", "2024-05-01"},
		{"short date", "5/1 更新", "5/1"},
		{"japanese date", "5月1日に更新", "5月1日"},
		{"first match wins", "2024/5/1 と 2024/6/2", "2024/5/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferLastUpdated(tt.text))
		})
	}
}

func TestInferLastUpdatedFallsBackToToday(t *testing.T) {
	assert.Equal(t, time.Now().Format("2006/1/2"), inferLastUpdated("日付なし"))
}

func TestInferTitle(t *testing.T) {
	assert.Equal(t, "エンジニア", inferTitle("エンジニア", "無視されるテキスト"))
	assert.Equal(t, "周辺テキスト", inferTitle("  ", "周辺テキスト"))
	assert.Equal(t, unknownTitle, inferTitle("", "  "))
}

func TestInferTitleTruncatesAncestorText(t *testing.T) {
	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'あ')
	}
	got := inferTitle("", string(long))
	assert.Len(t, []rune(got), 100)
}

func TestApplyCandidateRow(t *testing.T) {
	tests := []struct {
		header string
		value  string
		want   func(info scraper.CandidateInfo) string
	}{
		{"職種分類", "エンジニア", func(i scraper.CandidateInfo) string { return i.JobCategory }},
		{"職種", "営業", func(i scraper.CandidateInfo) string { return i.JobCategory }},
		{"業務内容", "開発業務", func(i scraper.CandidateInfo) string { return i.JobDescription }},
		{"仕事内容", "運用業務", func(i scraper.CandidateInfo) string { return i.JobDescription }},
		{"応募要件", "Go経験3年", func(i scraper.CandidateInfo) string { return i.Requirements }},
		{"必要スキル", "SQL", func(i scraper.CandidateInfo) string { return i.Requirements }},
		{"最終更新日", "2024/5/1", func(i scraper.CandidateInfo) string { return i.LastUpdated }},
		{"更新日", "2024/6/2", func(i scraper.CandidateInfo) string { return i.LastUpdated }},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			var info scraper.CandidateInfo
			assert.True(t, applyCandidateRow(&info, " "+tt.header+" ", tt.value+" "))
			assert.Equal(t, tt.value, tt.want(info))
		})
	}
}

func TestApplyCandidateRowDropsUnknownHeaders(t *testing.T) {
	var info scraper.CandidateInfo
	assert.False(t, applyCandidateRow(&info, "年齢", "30"))
	assert.Equal(t, scraper.CandidateInfo{}, info)
}

func TestListingFromLink(t *testing.T) {
	l, ok := listingFromLink(linkInfo{
		href:       "https://hrmos.co/agent/corporates/C1/jobs/J9",
		text:       "バックエンドエンジニア",
		parentText: "バックエンドエンジニア 2024/5/1 CLOSE",
	})
	assert.True(t, ok)
	assert.Equal(t, "C1", l.CompanyID)
	assert.Equal(t, "J9", l.JobID)
	assert.Equal(t, "バックエンドエンジニア", l.Title)
	assert.Equal(t, scraper.StatusClose, l.Status)
	assert.Equal(t, "2024/5/1", l.LastUpdated)
}

func TestListingFromLinkRejectsMissingJobID(t *testing.T) {
	_, ok := listingFromLink(linkInfo{href: "https://hrmos.co/agent/corporates/C1"})
	assert.False(t, ok)
}

func TestDecodeLinks(t *testing.T) {
	raw := []any{
		map[string]any{"href": "https://example.com/a", "text": "A", "parentText": "PA"},
		"garbage",
		map[string]any{"href": "https://example.com/b"},
	}
	links := decodeLinks(raw)
	assert.Len(t, links, 2)
	assert.Equal(t, linkInfo{href: "https://example.com/a", text: "A", parentText: "PA"}, links[0])
	assert.Equal(t, "https://example.com/b", links[1].href)

	assert.Nil(t, decodeLinks("not a slice"))
}

func TestDecodeRows(t *testing.T) {
	raw := []any{
		map[string]any{"header": "勤務地", "value": "東京都"},
		42,
	}
	rows := decodeRows(raw)
	assert.Len(t, rows, 1)
	assert.Equal(t, tableRow{header: "勤務地", value: "東京都"}, rows[0])
}

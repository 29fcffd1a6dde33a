package hrmos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/scraper"
)

const detailPageHTML = `
<h1>シニアバックエンドエンジニア</h1>
<table>
  <tr><th>仕事内容</th><td>自社サービスの開発業務</td></tr>
  <tr><th>応募要件</th><td>Go経験3年以上</td></tr>
  <tr><th>勤務地</th><td>東京都港区</td></tr>
  <tr><th>雇用形態</th><td>正社員</td></tr>
  <tr><th>給与</th><td>年収600万円〜800万円</td></tr>
  <tr><th>勤務時間</th><td>9:00-18:00</td></tr>
  <tr><th>休日・休暇</th><td>完全週休2日制</td></tr>
  <tr><th>待遇・福利厚生</th><td>各種社会保険完備</td></tr>
  <tr><th>更新日</th><td>2024/4/1</td></tr>
</table>
`

func TestJobDetailReadsLabeledTable(t *testing.T) {
	page := setupPage(t)
	serveHTML(t, page, []htmlRoute{{pattern: "", body: detailPageHTML}})

	s := New(testConfig(), browser.Attach(page), nil)
	detail, err := s.JobDetail("C1", "J1")
	require.NoError(t, err)

	assert.Equal(t, "シニアバックエンドエンジニア", detail.Title)
	assert.Equal(t, "自社サービスの開発業務", detail.Description)
	assert.Equal(t, "Go経験3年以上", detail.Requirements)
	assert.Equal(t, "東京都港区", detail.WorkLocation)
	assert.Equal(t, "正社員", detail.EmploymentType)
	assert.Equal(t, "年収600万円〜800万円", detail.Salary)
	assert.Equal(t, "9:00-18:00", detail.WorkingHours)
	assert.Equal(t, "完全週休2日制", detail.Holidays)
	assert.Equal(t, "各種社会保険完備", detail.Benefits)
	assert.Equal(t, "2024/4/1", detail.LastUpdated)
}

func TestJobDetailDataLabelFallback(t *testing.T) {
	page := setupPage(t)
	serveHTML(t, page, []htmlRoute{{pattern: "", body: `
		<div data-label="勤務地">大阪府</div>
		<div data-label="福利厚生">交通費支給</div>
	`}})

	s := New(testConfig(), browser.Attach(page), nil)
	detail, err := s.JobDetail("C1", "J1")
	require.NoError(t, err)

	assert.Equal(t, "大阪府", detail.WorkLocation)
	assert.Equal(t, "交通費支給", detail.Benefits)
	assert.Empty(t, detail.Salary)
	// no date on the page, today substitutes
	assert.Equal(t, time.Now().Format("2006/1/2"), detail.LastUpdated)
}

func TestAllJobDetailsUsesSampleWhenNoListings(t *testing.T) {
	page := setupPage(t)
	serveHTML(t, page, []htmlRoute{{pattern: "", body: "<p>空のページ</p>"}})

	s := New(testConfig(), browser.Attach(page), nil)
	details, err := s.AllJobDetails()
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "サンプル求人タイトル", details[0].Title)
	assert.Equal(t, "正社員", details[0].EmploymentType)
}

func TestUnavailableJobDetailKeepsListingFields(t *testing.T) {
	detail := unavailableJobDetail(scraper.JobListing{Title: "テスト求人", LastUpdated: "2024/5/1"})
	assert.Equal(t, "テスト求人", detail.Title)
	assert.Equal(t, "2024/5/1", detail.LastUpdated)
	assert.Equal(t, fieldUnavailable, detail.Description)
	assert.Equal(t, fieldUnavailable, detail.Benefits)
}

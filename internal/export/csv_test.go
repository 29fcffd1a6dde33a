package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrmos-automation/internal/scraper"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteJobListings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harmos_jobs.csv")
	listings := []scraper.JobListing{
		{Title: "バックエンドエンジニア", URL: "https://hrmos.co/agent/corporates/C1/jobs/J1", Status: scraper.StatusOpen, LastUpdated: "2024/5/1", CompanyID: "C1", JobID: "J1"},
		{Title: "営業, マネージャー", URL: "https://hrmos.co/agent/corporates/C1/jobs/J2", Status: scraper.StatusClose, LastUpdated: "5月1日", CompanyID: "C1", JobID: "J2"},
	}

	require.NoError(t, WriteJobListings(path, listings))

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"求人タイトル", "URL", "ステータス", "最終更新日", "企業ID", "求人ID"}, rows[0])
	assert.Equal(t, []string{"バックエンドエンジニア", "https://hrmos.co/agent/corporates/C1/jobs/J1", "OPEN", "2024/5/1", "C1", "J1"}, rows[1])
	assert.Equal(t, []string{"営業, マネージャー", "https://hrmos.co/agent/corporates/C1/jobs/J2", "CLOSE", "5月1日", "C1", "J2"}, rows[2])
}

func TestWriteJobListings_EmptyStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteJobListings(path, nil))

	rows := readAll(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"求人タイトル", "URL", "ステータス", "最終更新日", "企業ID", "求人ID"}, rows[0])
}

func TestWriteJobDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job-details.csv")
	details := []scraper.JobDetail{{
		Title:          "サンプル求人タイトル",
		Description:    "これはサンプルの仕事内容です。",
		Requirements:   "特になし",
		WorkLocation:   "東京都内",
		EmploymentType: "正社員",
		Salary:         "年収400万円〜600万円",
		WorkingHours:   "9:00-18:00",
		Holidays:       "完全週休2日制",
		Benefits:       "各種社会保険完備",
		LastUpdated:    "2024/5/1",
	}}

	require.NoError(t, WriteJobDetails(path, details))

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"求人タイトル", "仕事内容", "応募要件", "勤務地", "雇用形態", "給与", "勤務時間", "休日・休暇", "福利厚生", "最終更新日"}, rows[0])
	assert.Equal(t, "サンプル求人タイトル", rows[1][0])
	assert.Equal(t, "2024/5/1", rows[1][9])
}

func TestWriteCandidates_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "candidate-info.csv")
	candidates := []scraper.CandidateInfo{{
		Name: "山田太郎", URL: "https://hrmos.co/agent/candidates/55/777",
		JobCategory: "エンジニア", JobDescription: "開発", Requirements: "Go",
		LastUpdated: "2024-05-01", CompanyID: "C1", JobID: "J1",
		CandidateID: "55", CandidateDetailID: "777",
	}}

	require.NoError(t, WriteCandidates(path, candidates))

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"候補者名", "URL", "職種分類", "業務内容", "応募要件", "最終更新日", "企業ID", "求人ID", "候補者ID", "候補者詳細ID"}, rows[0])
	assert.Equal(t, []string{"山田太郎", "https://hrmos.co/agent/candidates/55/777", "エンジニア", "開発", "Go", "2024-05-01", "C1", "J1", "55", "777"}, rows[1])
}

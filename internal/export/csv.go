// CSV serialization of scraped records. Column order is fixed per record
// type because the files are read by humans in spreadsheet tools. Writing
// zero records still produces a valid file containing only the header row.

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go-hrmos-automation/internal/scraper"
)

var (
	jobListingHeader = []string{"求人タイトル", "URL", "ステータス", "最終更新日", "企業ID", "求人ID"}
	jobDetailHeader  = []string{"求人タイトル", "仕事内容", "応募要件", "勤務地", "雇用形態", "給与", "勤務時間", "休日・休暇", "福利厚生", "最終更新日"}
	candidateHeader  = []string{"候補者名", "URL", "職種分類", "業務内容", "応募要件", "最終更新日", "企業ID", "求人ID", "候補者ID", "候補者詳細ID"}
)

// WriteJobListings serializes listings to path in header order.
func WriteJobListings(path string, listings []scraper.JobListing) error {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{l.Title, l.URL, string(l.Status), l.LastUpdated, l.CompanyID, l.JobID})
	}
	return writeCSV(path, jobListingHeader, rows)
}

// WriteJobDetails serializes job details to path in header order.
func WriteJobDetails(path string, details []scraper.JobDetail) error {
	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{
			d.Title, d.Description, d.Requirements, d.WorkLocation, d.EmploymentType,
			d.Salary, d.WorkingHours, d.Holidays, d.Benefits, d.LastUpdated,
		})
	}
	return writeCSV(path, jobDetailHeader, rows)
}

// WriteCandidates serializes candidate records to path in header order.
func WriteCandidates(path string, candidates []scraper.CandidateInfo) error {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			c.Name, c.URL, c.JobCategory, c.JobDescription, c.Requirements,
			c.LastUpdated, c.CompanyID, c.JobID, c.CandidateID, c.CandidateDetailID,
		})
	}
	return writeCSV(path, candidateHeader, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("export: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

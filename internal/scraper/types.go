// Shared record types produced by the HRMOS extractors.
// All free-text fields default to an explicit placeholder or "" so that
// every record is structurally complete for CSV export.

package scraper

// Status of a job listing on the agent listing page.
type Status string

const (
	StatusOpen  Status = "OPEN"
	StatusClose Status = "CLOSE"
)

// JobListing is one row of the corporate listing page. CompanyID and JobID
// are parsed out of the URL path (".../corporates/{companyId}/jobs/{jobId}")
// and may be empty when the path does not carry them.
type JobListing struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Status      Status `json:"status"`
	LastUpdated string `json:"lastUpdated"`
	CompanyID   string `json:"companyId,omitempty"`
	JobID       string `json:"jobId,omitempty"`
}

// JobDetail is the labeled field set of one job detail page. It has no id of
// its own; it is keyed by the (companyId, jobId) pair used to build its URL.
type JobDetail struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	WorkLocation   string `json:"workLocation"`
	EmploymentType string `json:"employmentType"`
	Salary         string `json:"salary"`
	WorkingHours   string `json:"workingHours"`
	Holidays       string `json:"holidays"`
	Benefits       string `json:"benefits"`
	LastUpdated    string `json:"lastUpdated"`
}

// CandidateInfo is one candidate discovered under a (company, job) pair.
type CandidateInfo struct {
	Name              string `json:"name"`
	URL               string `json:"url"`
	JobCategory       string `json:"jobCategory"`
	JobDescription    string `json:"jobDescription"`
	Requirements      string `json:"requirements"`
	LastUpdated       string `json:"lastUpdated"`
	CompanyID         string `json:"companyId"`
	JobID             string `json:"jobId"`
	CandidateID       string `json:"candidateId"`
	CandidateDetailID string `json:"candidateDetailId"`
}

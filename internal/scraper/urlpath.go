// Relationships between companies, jobs and candidates are reconstructed
// purely from URL path segments. Ids are located by finding a literal
// segment ("corporates", "jobs", "candidates") in the slash-split URL and
// reading the adjacent segment(s); a missing segment yields "".

package scraper

import "strings"

// SegmentAfter returns the path segment immediately following the first
// occurrence of name in the slash-split rawURL, or "" when name is absent
// or is the last segment.
func SegmentAfter(rawURL, name string) string {
	parts := strings.Split(rawURL, "/")
	for i, p := range parts {
		if p == name && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// SegmentPairAfter returns the two path segments following the first
// occurrence of name. The second value is "" when only one segment follows.
func SegmentPairAfter(rawURL, name string) (string, string) {
	parts := strings.Split(rawURL, "/")
	for i, p := range parts {
		if p == name && i+1 < len(parts) {
			if i+2 < len(parts) {
				return parts[i+1], parts[i+2]
			}
			return parts[i+1], ""
		}
	}
	return "", ""
}

// CompanyAndJobID reads the company id (segment before "jobs") and job id
// (segment after "jobs") out of a listing URL of the form
// ".../corporates/{companyId}/jobs/{jobId}". Both are "" when the URL does
// not contain a usable "jobs" segment.
func CompanyAndJobID(rawURL string) (companyID, jobID string) {
	parts := strings.Split(rawURL, "/")
	for i, p := range parts {
		if p != "jobs" {
			continue
		}
		if i > 0 {
			companyID = parts[i-1]
		}
		if i+1 < len(parts) {
			jobID = parts[i+1]
		}
		return companyID, jobID
	}
	return "", ""
}

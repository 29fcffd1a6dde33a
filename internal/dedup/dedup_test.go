package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrmos-automation/internal/scraper"
)

func listing(url string) scraper.JobListing {
	return scraper.JobListing{Title: "t", URL: url, Status: scraper.StatusOpen}
}

func TestListingCache_UnseenAndMarkSeen(t *testing.T) {
	dir := t.TempDir()
	cache := NewListingCache(dir)

	all := []scraper.JobListing{listing("https://x/jobs/1"), listing("https://x/jobs/2")}
	fresh := cache.Unseen(all)
	assert.Len(t, fresh, 2)

	cache.MarkSeen([]string{"https://x/jobs/1"})
	fresh = cache.Unseen(all)
	require.Len(t, fresh, 1)
	assert.Equal(t, "https://x/jobs/2", fresh[0].URL)
}

func TestListingCache_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	first := NewListingCache(dir)
	first.MarkSeen([]string{"https://x/jobs/1"})

	second := NewListingCache(dir)
	fresh := second.Unseen([]scraper.JobListing{listing("https://x/jobs/1"), listing("https://x/jobs/9")})
	require.Len(t, fresh, 1)
	assert.Equal(t, "https://x/jobs/9", fresh[0].URL)
}

func TestListingCache_ExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	old := []seenEntry{{URL: "https://x/jobs/old", Timestamp: time.Now().Add(-31 * 24 * time.Hour).UnixMilli()}}
	data, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_listings.json"), data, 0644))

	cache := NewListingCache(dir)
	fresh := cache.Unseen([]scraper.JobListing{listing("https://x/jobs/old")})
	assert.Len(t, fresh, 1, "expired entries must count as unseen again")
}

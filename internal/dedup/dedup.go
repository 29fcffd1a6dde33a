// Cross-run novelty tracking for listings. Within one listing pass dedup is
// plain URL equality inside the extractor; this cache answers the separate
// question "have we already announced this listing in an earlier run".

package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-hrmos-automation/internal/scraper"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// ListingCache persists seen listing URLs to a JSON file. Entries expire
// after 30 days so closed-and-reopened jobs surface again.
type ListingCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

const expiryMs = int64(30 * 24 * 60 * 60 * 1000)

// NewListingCache creates or loads the cache under cacheDir.
func NewListingCache(cacheDir string) *ListingCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &ListingCache{
		filePath: filepath.Join(cacheDir, "seen_listings.json"),
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// Unseen filters listings down to the ones never marked seen before.
func (c *ListingCache) Unseen(listings []scraper.JobListing) []scraper.JobListing {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fresh []scraper.JobListing
	for _, l := range listings {
		if _, exists := c.seen[l.URL]; !exists {
			fresh = append(fresh, l)
		}
	}
	return fresh
}

// MarkSeen records the URLs and persists the cache when anything changed.
func (c *ListingCache) MarkSeen(urls []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := c.seen[url]; !exists {
			c.seen[url] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *ListingCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_listings.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_listings.json: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - expiryMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen listings (%d expired and removed)", loaded, len(entries)-loaded)
}

func (c *ListingCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for url, ts := range c.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen listings: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_listings.json: %v", err)
	}
}

// HTTP trigger surface: every scrape runs synchronously inside the request
// that started it, against a browser session scoped to that request. A
// mutex serializes runs because there is only ever one browser at a time.
package server

import (
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"go-hrmos-automation/internal/browser"
	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/export"
	"go-hrmos-automation/internal/progress"
	"go-hrmos-automation/internal/scraper"
	"go-hrmos-automation/internal/scraper/hrmos"
)

const (
	jobsCSV       = "hrmos_jobs.csv"
	detailsCSV    = "hrmos_job_details.csv"
	candidatesCSV = "hrmos_candidates.csv"
)

const missingCredentialsMessage = "ログイン情報が設定されていません。環境変数 HRMOS_EMAIL と HRMOS_PASSWORD を設定してください。"

type Server struct {
	cfg     *config.Config
	tracker *progress.Tracker
	runMu   sync.Mutex
}

func New(cfg *config.Config, tracker *progress.Tracker) *Server {
	return &Server{cfg: cfg, tracker: tracker}
}

// Router builds the gin engine with all trigger and progress routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.health)
	r.GET("/api/progress", s.progressSnapshot)
	r.POST("/api/scrape-jobs", s.scrapeJobs)
	r.POST("/api/scrape-job-details", s.scrapeJobDetails)
	r.POST("/api/scrape-candidates", s.scrapeCandidates)
	r.POST("/api/scrape", s.scrapeWithCredentials)
	r.Static("/files", s.cfg.OutputDir)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "hrmos-scraper"})
}

func (s *Server) progressSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Snapshot())
}

// POST /api/scrape-jobs: listing scrape with env credentials. Missing
// credentials are the caller's configuration problem (500); a scrape that
// finds nothing or fails downstream still answers 200 with empty data.
func (s *Server) scrapeJobs(c *gin.Context) {
	creds := s.cfg.Credentials()
	if err := creds.Validate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": missingCredentialsMessage,
		})
		return
	}
	s.runListingScrape(c, creds)
}

// POST /api/scrape: same listing scrape but with credentials taken from the
// request body instead of the environment.
func (s *Server) scrapeWithCredentials(c *gin.Context) {
	var creds config.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": missingCredentialsMessage,
		})
		return
	}
	if err := creds.Validate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": missingCredentialsMessage,
		})
		return
	}
	s.runListingScrape(c, creds)
}

// ScrapeListings runs one full login-plus-listing pass in a fresh session
// and writes the listing CSV. The CSV is written even when the pass fails
// so /files always serves a valid file. Also the entry point for scheduled
// runs.
func (s *Server) ScrapeListings(creds config.Credentials) ([]scraper.JobListing, error) {
	var listings []scraper.JobListing
	err := s.withSession(func(h *hrmos.Scraper) error {
		if err := h.Login(creds); err != nil {
			return err
		}
		var err error
		listings, err = h.ListJobs()
		return err
	})

	if listings == nil {
		listings = []scraper.JobListing{}
	}
	csvPath := filepath.Join(s.cfg.OutputDir, jobsCSV)
	if werr := export.WriteJobListings(csvPath, listings); werr != nil {
		log.Printf("⚠️ CSVの書き出しに失敗しました: %v", werr)
	}
	return listings, err
}

func (s *Server) runListingScrape(c *gin.Context, creds config.Credentials) {
	listings, err := s.ScrapeListings(creds)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"data":    []scraper.JobListing{},
			"count":   0,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listings,
		"count":   len(listings),
		"csv":     "/files/" + jobsCSV,
	})
}

// POST /api/scrape-job-details: listing scrape plus one detail fetch per
// listing. Unlike the listing endpoint, a run failure here is a 500.
func (s *Server) scrapeJobDetails(c *gin.Context) {
	creds := s.cfg.Credentials()
	if err := creds.Validate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": missingCredentialsMessage,
		})
		return
	}

	var details []scraper.JobDetail
	err := s.withSession(func(h *hrmos.Scraper) error {
		if err := h.Login(creds); err != nil {
			return err
		}
		var err error
		details, err = h.AllJobDetails()
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	csvPath := filepath.Join(s.cfg.OutputDir, detailsCSV)
	if werr := export.WriteJobDetails(csvPath, details); werr != nil {
		log.Printf("⚠️ CSVの書き出しに失敗しました: %v", werr)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    details,
		"count":   len(details),
		"csv":     "/files/" + detailsCSV,
	})
}

// POST /api/scrape-candidates: the full hierarchy walk.
func (s *Server) scrapeCandidates(c *gin.Context) {
	creds := s.cfg.Credentials()
	if err := creds.Validate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": missingCredentialsMessage,
		})
		return
	}

	var candidates []scraper.CandidateInfo
	err := s.withSession(func(h *hrmos.Scraper) error {
		if err := h.Login(creds); err != nil {
			return err
		}
		var err error
		candidates, err = h.AllCandidates()
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	csvPath := filepath.Join(s.cfg.OutputDir, candidatesCSV)
	if werr := export.WriteCandidates(csvPath, candidates); werr != nil {
		log.Printf("⚠️ CSVの書き出しに失敗しました: %v", werr)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    candidates,
		"count":   len(candidates),
		"csv":     "/files/" + candidatesCSV,
	})
}

// withSession serializes scrape runs and scopes one browser session to the
// callback. Close runs on every exit path.
func (s *Server) withSession(fn func(*hrmos.Scraper) error) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	opts := browser.DefaultOptions()
	opts.Headless = s.cfg.Headless
	opts.NavigationTimeoutMs = s.cfg.NavigationTimeoutMs
	opts.DefaultTimeoutMs = s.cfg.DefaultTimeoutMs
	if cookies, err := browser.LoadCookies(s.cfg.CookiesPath); err == nil {
		opts.Cookies = cookies
	}

	sess, err := browser.Start(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	return fn(hrmos.New(s.cfg, sess, s.tracker))
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrmos-automation/internal/config"
	"go-hrmos-automation/internal/progress"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{OutputDir: t.TempDir(), CookiesPath: ".cookies"}
	s := New(cfg, progress.NewTracker())
	return s, s.Router()
}

func TestHealthEndpoint(t *testing.T) {
	_, r := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestScrapeJobsRejectsMissingCredentials(t *testing.T) {
	_, r := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scrape-jobs", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "ログイン情報")
}

func TestScrapeJobDetailsRejectsMissingCredentials(t *testing.T) {
	_, r := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scrape-job-details", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestScrapeCandidatesRejectsMissingCredentials(t *testing.T) {
	_, r := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scrape-candidates", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestScrapeWithBodyCredentialsValidation(t *testing.T) {
	_, r := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"empty object", "{}"},
		{"missing password", `{"email":"a@example.com"}`},
		{"missing email", `{"password":"secret"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/scrape", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "ログイン情報")
		})
	}
}

func TestProgressEndpoint(t *testing.T) {
	s, r := newTestServer(t)
	s.tracker.Begin("テスト実行中")
	s.tracker.SetTotal(progress.LevelCompany, 3)
	s.tracker.Item(progress.LevelCompany, "C1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var snap progress.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "テスト実行中", snap.Status)
	assert.Equal(t, 3, snap.Companies.Total)
	assert.Equal(t, 1, snap.Companies.Processed)
	assert.Equal(t, "C1", snap.CurrentCompany)
}

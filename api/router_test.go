package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
)

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(traversal.NewTracker(), time.Now(), gin.TestMode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q, want %q", body.Status, "healthy")
	}
}

func TestStatusEndpoint(t *testing.T) {
	tracker := traversal.NewTracker()
	tracker.StartPass(2, 5)
	tracker.StartSeed("https://en.wikipedia.org/wiki/Stoicism")
	tracker.Visit("https://en.wikipedia.org/wiki/Ethics", 1)
	tracker.SeedDone(traversal.ReachedTarget)

	router := NewRouter(tracker, time.Now(), gin.TestMode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body models.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Pass != 2 || body.SeedsTotal != 5 || body.SeedsDone != 1 {
		t.Errorf("pass/total/done = %d/%d/%d, want 2/5/1", body.Pass, body.SeedsTotal, body.SeedsDone)
	}
	if body.CurrentPage != "https://en.wikipedia.org/wiki/Ethics" || body.Hops != 1 {
		t.Errorf("current page/hops = %q/%d", body.CurrentPage, body.Hops)
	}
	if body.Outcomes.ReachedTarget != 1 {
		t.Errorf("outcomes = %+v", body.Outcomes)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := NewRouter(traversal.NewTracker(), time.Now(), gin.TestMode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

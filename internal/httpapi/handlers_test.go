package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ChiChi812/course-recommendation-bot/internal/catalog"
	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
	"github.com/ChiChi812/course-recommendation-bot/internal/events"
	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
)

func testDeps(t *testing.T) Deps {
	t.Helper()

	courses := []domain.Course{
		{Title: "Python for Beginners", Rating: 4.5, StudentsEnrolled: 10000},
		{Title: "Advanced Python", Rating: 4.8, StudentsEnrolled: 2000},
		{Title: "Excel Basics", Rating: 4.0, StudentsEnrolled: 50000},
	}
	cat := catalog.New(courses, catalog.Stats{Loaded: len(courses)})

	cfg := config.ApplyDefaults(config.Config{})
	eng, err := recommend.New(cat, cfg.Scoring)
	if err != nil {
		t.Fatal(err)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	return Deps{
		Engine: eng,
		Hub:    events.NewHub(),
		CfgVal: &cfgVal,
	}
}

type resultsResp struct {
	Results []struct {
		Title            string  `json:"title"`
		StudentsEnrolled float64 `json:"students_enrolled"`
	} `json:"results"`
}

func TestRecommendEndpoint(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/recommend?q=python&k=2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp resultsResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.Title == "Excel Basics" {
			t.Error("Excel Basics should not match python")
		}
	}
}

func TestRecommendEndpointEmptyQuery(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/recommend?q=&k=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// empty query is a normal empty result, not an error
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp resultsResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("got %d results, want 0", len(resp.Results))
	}
}

func TestTrendingEndpoint(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/trending?k=2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp resultsResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Title != "Excel Basics" || resp.Results[1].Title != "Python for Beginners" {
		t.Errorf("trending order wrong: %+v", resp.Results)
	}
}

func TestTrendingEndpointBadK(t *testing.T) {
	mux := NewMux(testDeps(t))

	// garbage k falls back to the default rather than erroring
	req := httptest.NewRequest(http.MethodGet, "/trending?k=banana", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// explicit k=0 is the documented empty result
	req = httptest.NewRequest(http.MethodGet, "/trending?k=0", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var resp resultsResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("k=0: got %d results, want 0", len(resp.Results))
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ok"] != true {
		t.Errorf("health = %v", body)
	}
	if body["courses"].(float64) != 3 {
		t.Errorf("courses = %v, want 3", body["courses"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/recommend", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCatalogStatsEndpoint(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/catalog/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var body struct {
		Courses int `json:"courses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Courses != 3 {
		t.Errorf("courses = %d, want 3", body.Courses)
	}
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"viralscout/internal/tracking"
)

func newTestServer(t *testing.T) (*httptest.Server, *tracking.Tracker) {
	t.Helper()
	tracker := tracking.NewTracker()
	s := New(0, tracker, nil)
	ts := httptest.NewServer(s.srv.Handler)
	t.Cleanup(ts.Close)
	return ts, tracker
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, ts.URL+"/api/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if body["status"] != "ok" || body["botRunning"] != true {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRoot(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected root response %d %v", resp.StatusCode, body)
	}

	resp = getJSON(t, ts.URL+"/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path should 404, got %d", resp.StatusCode)
	}
}

func TestStats(t *testing.T) {
	ts, tracker := newTestServer(t)
	tracker.Track(tracking.Request{UserID: 1, Platform: "instagram", Category: "cat_serum", Language: "fa", ResultsCount: 10, Status: tracking.StatusSuccess})
	tracker.Track(tracking.Request{UserID: 2, Platform: "tiktok", Category: "cat_serum", Language: "en", Status: tracking.StatusNoResults})

	var body struct {
		TotalSearches  int                 `json:"totalSearches"`
		TotalUsers     int                 `json:"totalUsers"`
		ActiveChannels int                 `json:"activeChannels"`
		Platforms      map[string]int      `json:"platforms"`
		Daily          []tracking.DayStats `json:"daily"`
	}
	resp := getJSON(t, ts.URL+"/api/stats", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if body.TotalSearches != 2 || body.TotalUsers != 2 || body.ActiveChannels != 2 {
		t.Errorf("unexpected totals %+v", body)
	}
	if body.Platforms["instagram"] != 1 || body.Platforms["tiktok"] != 1 {
		t.Errorf("unexpected platforms %v", body.Platforms)
	}
	if len(body.Daily) != 7 {
		t.Errorf("expected 7 daily buckets, got %d", len(body.Daily))
	}
}

func TestContent_EmptyIsArray(t *testing.T) {
	ts, _ := newTestServer(t)

	var body []tracking.Request
	resp := getJSON(t, ts.URL+"/api/content", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if body == nil || len(body) != 0 {
		t.Errorf("expected an empty array, got %v", body)
	}
}

func TestLogs(t *testing.T) {
	ts, tracker := newTestServer(t)
	tracker.Track(tracking.Request{UserID: 9, Platform: "youtube", Category: "cat_toothpaste", Language: "en", Status: tracking.StatusSuccess})

	var body []tracking.Log
	getJSON(t, ts.URL+"/api/logs", &body)
	if len(body) != 1 || body[0].Language != "English" || body[0].Category != "toothpaste" {
		t.Fatalf("unexpected logs %+v", body)
	}
}

func TestCORS(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/health", nil)
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header on GET")
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/stats", nil)
	preflight, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer preflight.Body.Close()
	if preflight.StatusCode != http.StatusNoContent {
		t.Errorf("preflight should 204, got %d", preflight.StatusCode)
	}
	if preflight.Header.Get("Access-Control-Allow-Methods") == "" {
		t.Error("missing allowed methods on preflight")
	}
}

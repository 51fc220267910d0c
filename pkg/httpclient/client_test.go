package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := New(Config{Timeout: 10 * time.Millisecond})

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	_, err := client.Do(context.Background(), req)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClient_Redirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1":
			http.Redirect(w, r, "/2", http.StatusFound)
		case "/2":
			http.Redirect(w, r, "/3", http.StatusFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer ts.Close()

	// Redirect limit applies
	client := New(Config{MaxRedirects: 1})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/1", nil)
	if _, err := client.Do(context.Background(), req); err == nil {
		t.Fatal("expected redirect limit error")
	}

	// No redirects followed at all
	clientNoRedir := New(Config{MaxRedirects: -1})
	req2, _ := http.NewRequest(http.MethodGet, ts.URL+"/1", nil)
	resp, err := clientNoRedir.Do(context.Background(), req2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected 302 StatusFound, got %d", resp.StatusCode)
	}
}

func TestClient_PostJSON(t *testing.T) {
	type payload struct {
		Keyword string `json:"keyword"`
		Limit   int    `json:"limit"`
	}

	var gotContentType string
	var got payload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := New(Config{})
	resp, err := client.PostJSON(context.Background(), ts.URL, payload{Keyword: "serum", Limit: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %q", gotContentType)
	}
	if got.Keyword != "serum" || got.Limit != 60 {
		t.Errorf("payload round trip failed: %+v", got)
	}
}

func TestClient_NilContext(t *testing.T) {
	client := New(Config{})
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	//nolint:staticcheck // exercising the guard on purpose
	if _, err := client.Do(nil, req); err == nil {
		t.Fatal("expected error for nil context")
	}
}

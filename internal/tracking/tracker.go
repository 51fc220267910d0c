// Package tracking keeps an in-memory log of search requests and the
// aggregate views the stats API serves. The log is capped; it is an
// operational window, not a durable record.
package tracking

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status classifies one tracked search.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusNoResults Status = "no_results"
)

// maxRequests bounds the in-memory log; the oldest entry is dropped
// beyond it.
const maxRequests = 1000

// Request is one tracked search.
type Request struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	Platform     string    `json:"platform"`
	Category     string    `json:"category"`
	Language     string    `json:"language"`
	MinViews     int64     `json:"minViews"`
	ResultsCount int       `json:"resultsCount"`
	Timestamp    time.Time `json:"timestamp"`
	Status       Status    `json:"status"`
}

// Log is a Request shaped for the logs endpoint: readable category and
// language, RFC 3339 timestamp.
type Log struct {
	ID           string `json:"id"`
	UserID       int64  `json:"userId"`
	Platform     string `json:"platform"`
	Category     string `json:"category"`
	Language     string `json:"language"`
	MinViews     int64  `json:"minViews"`
	ResultsCount int    `json:"resultsCount"`
	Timestamp    string `json:"timestamp"`
	Status       string `json:"status"`
}

// DayStats is one day of aggregated search activity.
type DayStats struct {
	Day        string `json:"day"`
	Searches   int    `json:"searches"`
	Engagement int    `json:"engagement"`
	Virality   int    `json:"virality"`
}

// Tracker records requests and answers aggregate queries. Safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	requests []Request
	users    map[int64]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{users: make(map[int64]struct{})}
}

// Track assigns the request an ID and timestamp (when unset) and
// appends it, evicting the oldest entry past the cap.
func (t *Tracker) Track(req Request) Request {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, req)
	if len(t.requests) > maxRequests {
		t.requests = t.requests[len(t.requests)-maxRequests:]
	}
	t.users[req.UserID] = struct{}{}
	return req
}

// Total reports how many requests are currently in the window.
func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// UniqueUsers reports the number of distinct requesters seen.
func (t *Tracker) UniqueUsers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.users)
}

// ActivePlatforms reports how many distinct platforms were searched.
func (t *Tracker) ActivePlatforms() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	platforms := make(map[string]struct{})
	for _, req := range t.requests {
		platforms[req.Platform] = struct{}{}
	}
	return len(platforms)
}

// Recent returns the most recent requests, newest first.
func (t *Tracker) Recent(limit int) []Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	recent := make([]Request, len(t.requests))
	copy(recent, t.requests)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// ViralScore combines the last day's success rate and average result
// count into a single dashboard figure.
func (t *Tracker) ViralScore() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dayAgo := time.Now().Add(-24 * time.Hour)
	var count, results, successes int
	for _, req := range t.requests {
		if req.Timestamp.Before(dayAgo) {
			continue
		}
		count++
		results += req.ResultsCount
		if req.Status == StatusSuccess {
			successes++
		}
	}
	if count == 0 {
		return 0
	}

	successRate := float64(successes) / float64(count)
	avgResults := float64(results) / float64(count)
	return int(successRate*50 + avgResults/10 + 0.5)
}

// PlatformDistribution counts requests per platform.
func (t *Tracker) PlatformDistribution() map[string]int {
	return t.distribution(func(r Request) string { return r.Platform })
}

// CategoryDistribution counts requests per readable category.
func (t *Tracker) CategoryDistribution() map[string]int {
	return t.distribution(func(r Request) string { return readableCategory(r.Category) })
}

// LanguageDistribution counts requests per language code.
func (t *Tracker) LanguageDistribution() map[string]int {
	return t.distribution(func(r Request) string { return r.Language })
}

func (t *Tracker) distribution(key func(Request) string) map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dist := make(map[string]int)
	for _, req := range t.requests {
		dist[key(req)]++
	}
	return dist
}

// Daily aggregates the last days of activity into per-day stats, oldest
// day first. Days with no requests appear with zeroes.
func (t *Tracker) Daily(days int) []DayStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if days <= 0 {
		days = 7
	}

	type bucket struct{ searches, engagement, virality int }
	buckets := make(map[string]*bucket, days)
	dates := make([]string, 0, days)
	now := time.Now().UTC()
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[date] = &bucket{}
		dates = append(dates, date)
	}

	cutoff := now.AddDate(0, 0, -days)
	for _, req := range t.requests {
		if req.Timestamp.Before(cutoff) {
			continue
		}
		b, ok := buckets[req.Timestamp.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		b.searches++
		b.engagement += req.ResultsCount
		if req.Status == StatusSuccess {
			b.virality += req.ResultsCount
		}
	}

	stats := make([]DayStats, 0, days)
	for _, date := range dates {
		b := buckets[date]
		div := b.searches
		if div == 0 {
			div = 1
		}
		day, _ := time.Parse("2006-01-02", date)
		stats = append(stats, DayStats{
			Day:        day.Format("Mon"),
			Searches:   b.searches,
			Engagement: (b.engagement + div/2) / div,
			Virality:   (b.virality + div/2) / div,
		})
	}
	return stats
}

// Logs returns every tracked request formatted for display, newest first.
func (t *Tracker) Logs() []Log {
	recent := t.Recent(0)

	logs := make([]Log, 0, len(recent))
	for _, req := range recent {
		language := req.Language
		switch language {
		case "fa":
			language = "Persian"
		case "en":
			language = "English"
		}
		logs = append(logs, Log{
			ID:           req.ID,
			UserID:       req.UserID,
			Platform:     req.Platform,
			Category:     readableCategory(req.Category),
			Language:     language,
			MinViews:     req.MinViews,
			ResultsCount: req.ResultsCount,
			Timestamp:    req.Timestamp.Format(time.RFC3339),
			Status:       string(req.Status),
		})
	}
	return logs
}

func readableCategory(category string) string {
	for _, prefix := range []string{"cat_", "sub_"} {
		if strings.HasPrefix(strings.ToLower(category), prefix) {
			category = category[len(prefix):]
			break
		}
	}
	return strings.ReplaceAll(category, "_", " ")
}

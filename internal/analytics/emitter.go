// Package analytics emits usage events to an external dashboard. The
// emitter must never interfere with the conversation flow: it never
// blocks the caller, never returns errors, and is silently disabled
// when unconfigured.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"viralscout/pkg/httpclient"
)

// EventType names the lifecycle moments worth reporting.
type EventType string

const (
	EventSearchStarted   EventType = "search_started"
	EventResultsReady    EventType = "search_results_ready"
	EventBatchSent       EventType = "batch_sent"
	EventSearchFinished  EventType = "search_finished"
	EventSearchCancelled EventType = "search_cancelled"
)

// Event is one dashboard payload.
type Event struct {
	Source       string    `json:"source"`
	EventType    EventType `json:"event_type"`
	Platform     string    `json:"platform"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username,omitempty"`
	Keyword      string    `json:"keyword"`
	Language     string    `json:"language"`
	MinViews     int64     `json:"minViews"`
	TotalResults int       `json:"totalResults,omitempty"`
	SentSoFar    int       `json:"sentSoFar,omitempty"`
	Remaining    int       `json:"remaining,omitempty"`
	Timestamp    string    `json:"timestamp"`
}

const emitTimeout = 10 * time.Second

// Emitter posts events to the dashboard endpoint.
type Emitter struct {
	url    string
	key    string
	client *httpclient.Client
	log    *zap.Logger
}

// NewEmitter creates an emitter. An empty url or key disables it.
func NewEmitter(url, key string, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		url:    url,
		key:    key,
		client: httpclient.New(httpclient.Config{Timeout: emitTimeout}),
		log:    log,
	}
}

// Enabled reports whether events will actually be sent.
func (e *Emitter) Enabled() bool {
	return e.url != "" && e.key != ""
}

// Emit fires the event on its own goroutine and returns immediately.
// Delivery failures are logged at debug level and otherwise ignored.
func (e *Emitter) Emit(event Event) {
	if !e.Enabled() {
		return
	}
	event.Source = "vb-telegram"
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	go e.send(event)
}

func (e *Emitter) send(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		e.log.Debug("analytics event marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/api/events", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.key)

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		e.log.Debug("analytics event delivery failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}

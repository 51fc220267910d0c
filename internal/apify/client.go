// Package apify is the client for the asynchronous job-execution
// provider. A search is submitted as an actor run; the run progresses
// through RUNNING to a terminal status and materializes its results
// into a dataset fetched by a separate identifier.
package apify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/metrics"
	"viralscout/pkg/httpclient"
)

// DefaultBaseURL is the production provider endpoint.
const DefaultBaseURL = "https://api.apify.com/v2"

// ErrMissingToken is returned by New when no API token is configured.
// It is a configuration error: nothing is retried and no network call
// is ever issued without a credential.
var ErrMissingToken = errors.New("apify: APIFY_API_TOKEN is not set")

// Run statuses in the provider's vocabulary.
const (
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

// Item is one raw dataset record. The schema varies per actor and even
// per actor revision, so fields stay opaque until normalization.
type Item map[string]any

// RunInfo describes an accepted actor run.
type RunInfo struct {
	ID               string `json:"id"`
	DefaultDatasetID string `json:"defaultDatasetId"`
	Status           string `json:"status"`
}

// Terminal reports whether the run can make no further progress.
func (r RunInfo) Terminal() bool {
	return r.Status != "" && r.Status != StatusRunning
}

// Failed reports whether the run ended without producing a dataset.
func (r RunInfo) Failed() bool {
	switch r.Status {
	case StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

type runEnvelope struct {
	Data RunInfo `json:"data"`
}

// Client talks to the provider REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *httpclient.Client
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a provider client. An empty token fails immediately.
func New(token string, log *zap.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    httpclient.New(httpclient.Config{Timeout: 30 * time.Second}),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s%s?token=%s", c.baseURL, path, url.QueryEscape(c.token))
}

// StartRun submits an actor run and returns its handle. The dataset ID
// may already be assigned on acceptance.
func (c *Client) StartRun(ctx context.Context, actorID string, input any) (RunInfo, error) {
	resp, err := c.http.PostJSON(ctx, c.endpoint("/acts/"+actorID+"/runs"), input)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("run", "error").Inc()
		return RunInfo{}, fmt.Errorf("apify: start run: %w", err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequestsTotal.WithLabelValues("run", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return RunInfo{}, fmt.Errorf("apify: start run: status %d: %s", resp.StatusCode, body)
	}

	var env runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return RunInfo{}, fmt.Errorf("apify: start run: decode: %w", err)
	}
	if env.Data.ID == "" {
		return RunInfo{}, errors.New("apify: start run: response carries no run ID")
	}

	c.log.Debug("actor run accepted",
		zap.String("actor", actorID),
		zap.String("run", env.Data.ID),
		zap.String("dataset", env.Data.DefaultDatasetID),
		zap.String("status", env.Data.Status))
	return env.Data, nil
}

// RunStatus fetches the current status of a run.
func (c *Client) RunStatus(ctx context.Context, runID string) (RunInfo, error) {
	resp, err := c.http.Get(ctx, c.endpoint("/actor-runs/"+runID))
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("status", "error").Inc()
		return RunInfo{}, fmt.Errorf("apify: run status: %w", err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequestsTotal.WithLabelValues("status", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return RunInfo{}, fmt.Errorf("apify: run status: status %d", resp.StatusCode)
	}

	var env runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return RunInfo{}, fmt.Errorf("apify: run status: decode: %w", err)
	}
	return env.Data, nil
}

// DatasetItems fetches the raw records of a dataset. An empty slice is
// a legitimate response while the dataset is still populating.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]Item, error) {
	resp, err := c.http.Get(ctx, c.endpoint("/datasets/"+datasetID+"/items"))
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("dataset", "error").Inc()
		return nil, fmt.Errorf("apify: dataset items: %w", err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequestsTotal.WithLabelValues("dataset", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apify: dataset items: status %d", resp.StatusCode)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify: dataset items: decode: %w", err)
	}
	return items, nil
}

// RunSync submits an actor run through the synchronous endpoint, which
// blocks until the run finishes and returns its dataset directly.
func (c *Client) RunSync(ctx context.Context, actorID string, input any) ([]Item, error) {
	resp, err := c.http.PostJSON(ctx, c.endpoint("/acts/"+actorID+"/run-sync-get-dataset-items"), input)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("run-sync", "error").Inc()
		return nil, fmt.Errorf("apify: run sync: %w", err)
	}
	defer resp.Body.Close()
	metrics.ProviderRequestsTotal.WithLabelValues("run-sync", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("apify: run sync: status %d: %s", resp.StatusCode, body)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify: run sync: decode: %w", err)
	}
	return items, nil
}

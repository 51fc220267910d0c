package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
	"viralscout/internal/metrics"
)

// jobClient is one platform's submit/poll/fetch chain. Implementations
// never return errors; every failure mode degrades to an empty slice.
type jobClient interface {
	search(ctx context.Context, q Query) []Post
}

// Orchestrator is the platform-agnostic facade over the job clients.
// It owns no mutable state and is safe for concurrent use.
type Orchestrator struct {
	clients map[Platform]jobClient
	log     *zap.Logger
}

// NewOrchestrator wires one job client per supported platform.
func NewOrchestrator(api *apify.Client, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		clients: map[Platform]jobClient{
			PlatformInstagram: &instagramClient{api: api, log: log.Named("instagram")},
			PlatformTikTok:    &tiktokClient{api: api, log: log.Named("tiktok")},
			PlatformYouTube:   &youtubeClient{api: api, log: log.Named("youtube")},
		},
		log: log,
	}
}

// Search runs one orchestration: it dispatches to the job client for
// the query's platform, defaulting to Instagram when the platform is
// unset so request shapes that predate platform selection keep working.
// The returned slice is sorted non-increasing by views and capped.
func (o *Orchestrator) Search(ctx context.Context, q Query) []Post {
	platform := q.Platform
	client, ok := o.clients[platform]
	if !ok {
		platform = PlatformInstagram
		client = o.clients[platform]
	}

	start := time.Now()
	o.log.Info("search started",
		zap.String("platform", string(platform)),
		zap.String("category", q.Category),
		zap.Int64("min_views", q.MinViews))

	posts := client.search(ctx, q)

	metrics.RecordSearch(string(platform), len(posts), time.Since(start))
	o.log.Info("search finished",
		zap.String("platform", string(platform)),
		zap.Int("results", len(posts)),
		zap.Duration("elapsed", time.Since(start)))
	return posts
}

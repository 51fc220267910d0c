package search

import (
	"context"
	"time"
)

// ProgressSink receives coarse progress milestones for the requester's
// transcript, typically by editing a placeholder message in place.
// Sinks should honor ctx; one in-flight call may land after the search
// completes.
type ProgressSink func(ctx context.Context, stage string)

const progressInterval = 5 * time.Second

// joinGrace bounds how long a finished search waits for the reporter,
// so a stuck sink can never block the orchestrator.
const joinGrace = 2 * time.Second

// DefaultProgressStages are the milestone labels emitted while the
// submit/poll/fetch chain is in flight.
var DefaultProgressStages = []string{
	"10%", "25%", "50%", "75%", "90%",
}

// SearchWithProgress runs Search while an independent reporter emits
// milestones through sink on its own timer. The reporter has no effect
// on the search outcome; it is cancelled and joined once the search
// returns, success or failure.
func (o *Orchestrator) SearchWithProgress(ctx context.Context, q Query, sink ProgressSink) []Post {
	if sink == nil {
		return o.Search(ctx, q)
	}

	rctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reportProgress(rctx, sink, progressInterval, DefaultProgressStages)
	}()

	posts := o.Search(ctx, q)

	cancel()
	select {
	case <-done:
	case <-time.After(joinGrace):
		o.log.Warn("progress reporter did not stop in time")
	}
	return posts
}

func reportProgress(ctx context.Context, sink ProgressSink, interval time.Duration, stages []string) {
	for _, stage := range stages {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
		if ctx.Err() != nil {
			return
		}
		sink(ctx, stage)
	}
}

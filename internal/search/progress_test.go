package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
)

func TestReportProgress_EmitsStagesInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string
	sink := func(ctx context.Context, stage string) {
		mu.Lock()
		got = append(got, stage)
		mu.Unlock()
	}

	reportProgress(context.Background(), sink, time.Millisecond, []string{"10%", "50%", "90%"})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[0] != "10%" || got[1] != "50%" || got[2] != "90%" {
		t.Fatalf("unexpected stages %v", got)
	}
}

func TestReportProgress_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	reportProgress(ctx, func(ctx context.Context, stage string) { calls++ }, time.Millisecond, DefaultProgressStages)
	if calls != 0 {
		t.Fatalf("expected no emissions after cancel, got %d", calls)
	}
}

func TestSearchWithProgress_NilSink(t *testing.T) {
	p := newMockProvider(t)
	p.datasetScript = [][]apify.Item{{instagramItem("a", 5000)}}

	orch := NewOrchestrator(p.client(t), zap.NewNop())
	posts := orch.SearchWithProgress(context.Background(), Query{Platform: PlatformInstagram, Category: "serum"}, nil)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
}

func TestSearchWithProgress_ReporterJoins(t *testing.T) {
	p := newMockProvider(t)
	p.datasetScript = [][]apify.Item{{instagramItem("a", 5000)}}

	var mu sync.Mutex
	emitted := 0
	sink := func(ctx context.Context, stage string) {
		mu.Lock()
		emitted++
		mu.Unlock()
	}

	orch := NewOrchestrator(p.client(t), zap.NewNop())
	posts := orch.SearchWithProgress(context.Background(), Query{Platform: PlatformInstagram, Category: "serum"}, sink)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}

	// The reporter is joined before SearchWithProgress returns; the
	// count must be stable from here on.
	mu.Lock()
	before := emitted
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	after := emitted
	mu.Unlock()
	if before != after {
		t.Fatalf("reporter still emitting after join: %d -> %d", before, after)
	}
}

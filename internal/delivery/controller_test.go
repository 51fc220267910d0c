package delivery

import (
	"fmt"
	"testing"

	"viralscout/internal/search"
	"viralscout/internal/session"
)

func posts(n int) []search.Post {
	out := make([]search.Post, n)
	for i := range out {
		out[i] = search.Post{ID: fmt.Sprintf("p%02d", i), Views: int64(1000 - i)}
	}
	return out
}

func TestFirstPage_FullBatch(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	page := c.FirstPage(1, posts(12))

	if len(page.Posts) != 5 || page.Start != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Sent != 5 || page.Total != 12 || !page.HasMore {
		t.Errorf("unexpected progress %+v", page)
	}
}

func TestFirstPage_ShortSet(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	page := c.FirstPage(1, posts(3))

	if len(page.Posts) != 3 || page.Sent != 3 || page.Total != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.HasMore {
		t.Error("a fully delivered set must not prompt for more")
	}
}

func TestFirstPage_Empty(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	page := c.FirstPage(1, nil)
	if len(page.Posts) != 0 || page.HasMore || page.Total != 0 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestNextPage_NoSession(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	if _, ok := c.NextPage(99); ok {
		t.Fatal("expected no page without a session")
	}
}

// Paging through a set must reproduce it exactly: no gaps, no repeats,
// in rank order.
func TestPaging_RoundTrip(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	all := posts(12)

	var delivered []search.Post
	page := c.FirstPage(1, all)
	delivered = append(delivered, page.Posts...)

	for page.HasMore {
		next, ok := c.NextPage(1)
		if !ok {
			t.Fatal("expected another page while HasMore")
		}
		if next.Start != len(delivered)+1 {
			t.Fatalf("expected start %d, got %d", len(delivered)+1, next.Start)
		}
		delivered = append(delivered, next.Posts...)
		page = next
	}

	if len(delivered) != len(all) {
		t.Fatalf("delivered %d of %d", len(delivered), len(all))
	}
	for i, p := range delivered {
		if p.ID != all[i].ID {
			t.Fatalf("post %d out of order: %s", i, p.ID)
		}
	}
	if page.Sent != 12 || page.Total != 12 {
		t.Errorf("final progress %d/%d", page.Sent, page.Total)
	}
}

func TestPaging_SixResults(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	first := c.FirstPage(1, posts(6))
	if len(first.Posts) != 5 || !first.HasMore {
		t.Fatalf("unexpected first page %+v", first)
	}

	second, ok := c.NextPage(1)
	if !ok || len(second.Posts) != 1 || second.Start != 6 {
		t.Fatalf("unexpected second page %+v", second)
	}
	if second.HasMore || second.Sent != 6 || second.Total != 6 {
		t.Errorf("unexpected progress %+v", second)
	}
}

func TestNextPage_ExhaustedIsIdempotent(t *testing.T) {
	store := session.NewStore(0)
	c := NewController(store, 5)
	c.FirstPage(1, posts(5))

	for i := 0; i < 3; i++ {
		page, ok := c.NextPage(1)
		if ok {
			t.Fatalf("call %d: expected exhaustion", i)
		}
		if page.Sent != 5 || page.Total != 5 {
			t.Fatalf("call %d: progress mutated to %d/%d", i, page.Sent, page.Total)
		}
	}

	state, _ := store.Get(1)
	if state.Offset != 5 || state.Sent != 5 {
		t.Fatalf("exhausted calls mutated the cursor: %+v", state)
	}
}

func TestFirstPage_ResetsPriorCursor(t *testing.T) {
	c := NewController(session.NewStore(0), 5)
	c.FirstPage(1, posts(12))
	c.NextPage(1)

	page := c.FirstPage(1, posts(7))
	if page.Start != 1 || page.Sent != 5 || page.Total != 7 {
		t.Fatalf("fresh search did not reset the cursor: %+v", page)
	}
	next, ok := c.NextPage(1)
	if !ok || len(next.Posts) != 2 || next.Start != 6 {
		t.Fatalf("unexpected continuation %+v", next)
	}
}

func TestNewController_DefaultsBatchSize(t *testing.T) {
	c := NewController(session.NewStore(0), 0)
	page := c.FirstPage(1, posts(9))
	if len(page.Posts) != DefaultBatchSize {
		t.Fatalf("expected default batch size %d, got %d", DefaultBatchSize, len(page.Posts))
	}
}

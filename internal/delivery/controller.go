// Package delivery drives the batched-delivery protocol: it slices the
// ranked result set captured at search time into fixed-size pages and
// tracks, per chat, how much has been shown. Pagination never re-ranks
// or re-fetches.
package delivery

import (
	"viralscout/internal/search"
	"viralscout/internal/session"
)

// DefaultBatchSize is the fixed page size for a fresh session.
const DefaultBatchSize = 5

// Page is one emitted slice of the ranked result set.
type Page struct {
	Posts []search.Post
	// Start is the 1-based rank of the first post in this page.
	Start int
	// Sent and Total describe delivery progress after this page.
	Sent  int
	Total int
	// HasMore prompts the continuation question when true.
	HasMore bool
}

// Controller consumes orchestrator output plus the session store to
// emit pages and decide continuation vs. completion.
type Controller struct {
	store     *session.Store
	batchSize int
}

// NewController creates a controller over the given store.
func NewController(store *session.Store, batchSize int) *Controller {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Controller{store: store, batchSize: batchSize}
}

// FirstPage records a fresh result set for the chat and emits the
// opening page. The cursor is reset: offset and sent both become the
// emitted page length.
func (c *Controller) FirstPage(chatID int64, results []search.Post) Page {
	total := len(results)
	sent := total
	if sent > c.batchSize {
		sent = c.batchSize
	}

	c.store.RecordResults(chatID, results)
	batch := c.batchSize
	c.store.Upsert(chatID, session.Patch{
		Offset:    &sent,
		BatchSize: &batch,
		Sent:      &sent,
		Total:     &total,
	})

	return Page{
		Posts:   results[:sent],
		Start:   1,
		Sent:    sent,
		Total:   total,
		HasMore: sent < total,
	}
}

// NextPage emits the next slice for the chat. ok is false when there is
// no session or the set is already exhausted; repeated calls after
// exhaustion are idempotent and mutate nothing.
func (c *Controller) NextPage(chatID int64) (Page, bool) {
	state, found := c.store.Get(chatID)
	if !found {
		return Page{}, false
	}

	results := state.LastResults
	total := state.Total
	if total > len(results) {
		total = len(results)
	}
	if state.Offset >= len(results) {
		return Page{Sent: state.Sent, Total: total}, false
	}

	batch := state.BatchSize
	if batch <= 0 {
		batch = c.batchSize
	}
	end := state.Offset + batch
	if end > len(results) {
		end = len(results)
	}
	posts := results[state.Offset:end]

	newOffset := state.Offset + len(posts)
	newSent := state.Sent + len(posts)
	c.store.Upsert(chatID, session.Patch{Offset: &newOffset, Sent: &newSent})

	return Page{
		Posts:   posts,
		Start:   state.Offset + 1,
		Sent:    newSent,
		Total:   total,
		HasMore: newOffset < len(results),
	}, true
}

// Package session holds the per-requester conversation state: the last
// ranked result set and the pagination cursor over it. State lives in
// memory only; it is superseded by the next search for the same chat
// and need not survive a restart.
package session

import (
	"container/list"
	"sync"

	"viralscout/internal/search"
)

// State is one chat's session. A fresh search overwrites the result
// fields wholesale; pagination advances Offset and Sent only.
type State struct {
	ChatID      int64
	Category    string
	Platform    string
	Language    string
	MinViews    int64
	LastResults []search.Post
	Offset      int
	BatchSize   int
	Sent        int
	Total       int
}

// Patch is a partial State. Nil fields are left untouched by Upsert;
// set fields win wholesale (last-write-wins per field).
type Patch struct {
	Category    *string
	Platform    *string
	Language    *string
	MinViews    *int64
	LastResults *[]search.Post
	Offset      *int
	BatchSize   *int
	Sent        *int
	Total       *int
}

func (s *State) apply(p Patch) {
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Platform != nil {
		s.Platform = *p.Platform
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.MinViews != nil {
		s.MinViews = *p.MinViews
	}
	if p.LastResults != nil {
		s.LastResults = *p.LastResults
	}
	if p.Offset != nil {
		s.Offset = *p.Offset
	}
	if p.BatchSize != nil {
		s.BatchSize = *p.BatchSize
	}
	if p.Sent != nil {
		s.Sent = *p.Sent
	}
	if p.Total != nil {
		s.Total = *p.Total
	}
}

type entry struct {
	state State
	elem  *list.Element
}

// Store maps chat IDs to session state. Calls are individually atomic;
// concurrent calls for the same chat race last-write-wins, which is
// acceptable because a chat issues one logical action at a time.
// Least-recently-used sessions are evicted beyond the capacity to keep
// memory bounded.
type Store struct {
	mu       sync.Mutex
	entries  map[int64]*entry
	order    *list.List // front = most recently used, values are chat IDs
	capacity int
}

// DefaultCapacity bounds the number of live sessions.
const DefaultCapacity = 10000

// NewStore creates a store evicting least-recently-used sessions past
// capacity. A non-positive capacity falls back to the default.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make(map[int64]*entry),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the chat's state. It does not create one.
func (s *Store) Get(chatID int64) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[chatID]
	if !ok {
		return State{}, false
	}
	s.order.MoveToFront(e.elem)
	return e.state, true
}

// Upsert merges the patch into the chat's state, creating it if needed,
// and returns the result.
func (s *Store) Upsert(chatID int64, p Patch) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[chatID]
	if !ok {
		e = &entry{state: State{ChatID: chatID}}
		e.elem = s.order.PushFront(chatID)
		s.entries[chatID] = e
		s.evict()
	} else {
		s.order.MoveToFront(e.elem)
	}

	e.state.apply(p)
	return e.state
}

// RecordResults is a convenience Upsert setting the last result set.
func (s *Store) RecordResults(chatID int64, results []search.Post) State {
	return s.Upsert(chatID, Patch{LastResults: &results})
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) evict() {
	for len(s.entries) > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			return
		}
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(int64))
	}
}

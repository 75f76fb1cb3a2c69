package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"argminer/internal/graph"
	"argminer/internal/strategy"
)

var (
	ErrBusy      = errors.New("session: analysis already in progress")
	ErrMissingID = errors.New("session: session_id is required")
)

// Entry is the last graph computed for one session slot.
type Entry struct {
	SessionID string
	Strategy  strategy.Kind
	Graph     *graph.Graph
	// Version counts replacements of the slot, starting at 1.
	Version   int64
	UpdatedAt time.Time
}

// Store holds the last-computed graph per session between render cycles.
// Slots expire after a TTL and the least recently used slots are evicted
// when the store is full. Nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	entries  *expirable.LRU[string, Entry]
	inflight map[string]struct{}
	now      func() time.Time
}

func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		entries:  expirable.NewLRU[string, Entry](maxEntries, nil, ttl),
		inflight: make(map[string]struct{}),
		now:      time.Now,
	}
}

func (s *Store) Get(sessionID string) (Entry, bool) {
	key := normalizeID(sessionID)
	if key == "" {
		return Entry{}, false
	}
	return s.entries.Get(key)
}

// Put replaces the slot's graph and returns the stored entry.
func (s *Store) Put(sessionID string, kind strategy.Kind, g *graph.Graph) (Entry, error) {
	key := normalizeID(sessionID)
	if key == "" {
		return Entry{}, ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, _ := s.entries.Peek(key)
	e := Entry{
		SessionID: key,
		Strategy:  kind,
		Graph:     g,
		Version:   prev.Version + 1,
		UpdatedAt: s.now(),
	}
	s.entries.Add(key, e)
	return e, nil
}

func (s *Store) Delete(sessionID string) {
	if key := normalizeID(sessionID); key != "" {
		s.entries.Remove(key)
	}
}

func (s *Store) Len() int {
	return s.entries.Len()
}

// Acquire reserves the slot for one analysis. It fails with ErrBusy while
// another analysis holds the same slot. release is idempotent.
func (s *Store) Acquire(sessionID string) (release func(), err error) {
	key := normalizeID(sessionID)
	if key == "" {
		return nil, ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, ErrBusy
	}
	s.inflight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inflight, key)
			s.mu.Unlock()
		})
	}, nil
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

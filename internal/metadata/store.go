// Package metadata caches the most recent capture description per subject.
package metadata

import (
	"sync"
	"time"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// DefaultTTL is how long a capture stays valid for coordinate resolution.
const DefaultTTL = 5 * time.Minute

// Status is the freshness of a lookup.
type Status int

const (
	NotFound Status = iota
	Fresh
	Stale
)

func (s Status) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "not-found"
	}
}

// Store is a TTL-aware map of capture metadata keyed by subject.
// A put replaces the previous record for the subject atomically.
type Store struct {
	mu      sync.RWMutex
	entries map[model.Subject]model.CaptureMetadata
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store. A non-positive ttl uses DefaultTTL.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[model.Subject]model.CaptureMetadata),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TTL returns the configured validity window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}

// Put records md for md.Subject, replacing any earlier record.
func (s *Store) Put(md model.CaptureMetadata) {
	s.mu.Lock()
	s.entries[md.Subject] = md
	s.mu.Unlock()
}

// Get returns the record for subject regardless of age.
func (s *Store) Get(subject model.Subject) (model.CaptureMetadata, bool) {
	s.mu.RLock()
	md, ok := s.entries[subject]
	s.mu.RUnlock()
	return md, ok
}

// GetFresh returns the record for subject with its freshness.
func (s *Store) GetFresh(subject model.Subject) (model.CaptureMetadata, Status) {
	md, ok := s.Get(subject)
	if !ok {
		return model.CaptureMetadata{}, NotFound
	}
	if s.now().Sub(md.CapturedAt) > s.ttl {
		return md, Stale
	}
	return md, Fresh
}

// Delete removes the record for subject.
func (s *Store) Delete(subject model.Subject) {
	s.mu.Lock()
	delete(s.entries, subject)
	s.mu.Unlock()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Prune drops stale records and returns how many were removed.
func (s *Store) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, md := range s.entries {
		if now.Sub(md.CapturedAt) > s.ttl {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

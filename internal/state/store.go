package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/showcase/internal/site"
)

// Content is everything the home page shows.
type Content struct {
	Heroes     []site.Hero
	Promotions []site.PromotionBanner
	Company    site.Company
	HasCompany bool
	Featured   []site.CardItem
	News       []site.CardItem
}

func (c Content) clone() Content {
	c.Heroes = slices.Clone(c.Heroes)
	c.Promotions = slices.Clone(c.Promotions)
	c.Featured = slices.Clone(c.Featured)
	c.News = slices.Clone(c.News)
	return c
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Content             Content
	HasContent          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the backend has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
}

// Update replaces the stored content. When err is non-nil the previous content
// is kept but the error is recorded for visibility.
func (s *Store) Update(content *Content, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if content != nil {
		s.snapshot.Content = content.clone()
		s.snapshot.HasContent = true
	} else {
		s.snapshot.Content = Content{}
		s.snapshot.HasContent = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Version increases on every Update so readers can skip unchanged snapshots.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Content = s.snapshot.Content.clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Package visibility reports when laid-out regions enter or leave the
// viewport. It drives carousel autoplay gating and infinite-scroll sentinels.
package visibility

import (
	"sync"
)

// Rect is a vertical span in content coordinates.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the first row past the span.
func (r Rect) Bottom() int { return r.Top + r.Height }

// IntersectionRatio returns the fraction of r that lies inside viewport,
// between 0 and 1. A zero-height rect is fully visible when its top is inside
// the viewport.
func (r Rect) IntersectionRatio(viewport Rect) float64 {
	if r.Height <= 0 {
		if r.Top >= viewport.Top && r.Top < viewport.Bottom() {
			return 1
		}
		return 0
	}
	top := max(r.Top, viewport.Top)
	bottom := min(r.Bottom(), viewport.Bottom())
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(r.Height)
}

// Intersecting reports whether ratio meets threshold. A threshold of zero or
// less means any overlap at all.
func Intersecting(ratio, threshold float64) bool {
	if threshold <= 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

// Callback receives the new visibility state of a subscription.
type Callback func(visible bool)

// Tracker holds a viewport and the regions observed against it.
// Callbacks run synchronously on the goroutine that changed the geometry,
// after the tracker's lock is released.
type Tracker struct {
	mu       sync.Mutex
	viewport Rect
	hasView  bool
	nextID   int
	subs     map[int]*Subscription
}

// NewTracker returns a tracker with no viewport.
func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]*Subscription)}
}

// Subscription is a single observed region.
type Subscription struct {
	tracker   *Tracker
	id        int
	bounds    Rect
	threshold float64
	fn        Callback
	visible   bool
	reported  bool
	detached  bool
}

type emission struct {
	fn      Callback
	visible bool
}

// Observe registers a region. When a viewport is already known the callback
// fires immediately with the initial state.
func (t *Tracker) Observe(bounds Rect, threshold float64, fn Callback) *Subscription {
	t.mu.Lock()
	t.nextID++
	sub := &Subscription{
		tracker:   t,
		id:        t.nextID,
		bounds:    bounds,
		threshold: threshold,
		fn:        fn,
	}
	t.subs[sub.id] = sub
	var out []emission
	if t.hasView {
		out = sub.evaluate(t.viewport, out)
	}
	t.mu.Unlock()
	emit(out)
	return sub
}

// SetViewport moves the viewport and notifies every subscription whose state
// changed.
func (t *Tracker) SetViewport(viewport Rect) {
	t.mu.Lock()
	t.viewport = viewport
	t.hasView = true
	var out []emission
	for _, sub := range t.sorted() {
		out = sub.evaluate(viewport, out)
	}
	t.mu.Unlock()
	emit(out)
}

// Viewport returns the current viewport and whether one has been set.
func (t *Tracker) Viewport() (Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewport, t.hasView
}

// Len returns the number of live subscriptions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// sorted returns subscriptions in registration order. Callers hold t.mu.
func (t *Tracker) sorted() []*Subscription {
	out := make([]*Subscription, 0, len(t.subs))
	for id := 1; id <= t.nextID && len(out) < len(t.subs); id++ {
		if sub, ok := t.subs[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

// Move updates the observed region after a relayout.
func (s *Subscription) Move(bounds Rect) {
	t := s.tracker
	t.mu.Lock()
	if s.detached {
		t.mu.Unlock()
		return
	}
	s.bounds = bounds
	var out []emission
	if t.hasView {
		out = s.evaluate(t.viewport, out)
	}
	t.mu.Unlock()
	emit(out)
}

// Visible returns the last reported state.
func (s *Subscription) Visible() bool {
	s.tracker.mu.Lock()
	defer s.tracker.mu.Unlock()
	return s.visible
}

// Detach stops observation. The region is never evaluated again once Detach
// returns, and calling it again is a no-op.
func (s *Subscription) Detach() {
	t := s.tracker
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.detached {
		return
	}
	s.detached = true
	delete(t.subs, s.id)
}

// evaluate appends an emission when the state changed. Callers hold the lock.
func (s *Subscription) evaluate(viewport Rect, out []emission) []emission {
	visible := Intersecting(s.bounds.IntersectionRatio(viewport), s.threshold)
	if s.reported && visible == s.visible {
		return out
	}
	s.visible = visible
	s.reported = true
	if s.fn == nil {
		return out
	}
	return append(out, emission{fn: s.fn, visible: visible})
}

func emit(out []emission) {
	for _, e := range out {
		e.fn(e.visible)
	}
}

// Package pagination accumulates the pages of an infinite-scroll list.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/five82/showcase/internal/site"
)

// Status is the engine's coarse lifecycle state.
type Status int

const (
	// Idle means nothing has been requested since the last reset.
	Idle Status = iota
	// Loading means a fetch is outstanding.
	Loading
	// Loaded means the last fetch succeeded and more pages remain.
	Loaded
	// Exhausted means the last page has been merged.
	Exhausted
	// Errored means the last fetch failed. The same page is requested next.
	Errored
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrClosed is returned by LoadNext after Close.
var ErrClosed = errors.New("pagination: engine closed")

// Ticket identifies one outstanding fetch. It is handed out by Begin and must
// be passed back to Complete.
type Ticket struct {
	session  uint64
	Resource site.Resource
	Page     int
	PageSize int
}

// Snapshot is a point-in-time copy of the engine state.
type Snapshot struct {
	Resource site.Resource
	Page     int
	Items    []site.CardItem
	HasMore  bool
	Loading  bool
	Err      string
	Status   Status
}

// Empty reports whether a finished listing has nothing to show.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0 && !s.HasMore
}

// Engine merges fetched pages into one ordered, id-unique collection.
//
// LoadNext drives a full fetch synchronously. Event-loop callers split it into
// Begin, which claims the next page, and Complete, which merges the result.
// Either way at most one fetch is outstanding; a trigger that arrives while
// loading is dropped.
type Engine struct {
	mu       sync.Mutex
	fetcher  site.PageFetcher
	resource site.Resource
	pageSize int

	page    int
	items   []site.CardItem
	seen    map[int64]struct{}
	hasMore bool
	loading bool
	err     string
	status  Status
	session uint64
	closed  bool
}

// New returns a reset engine for resource.
func New(fetcher site.PageFetcher, resource site.Resource, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = 1
	}
	e := &Engine{
		fetcher:  fetcher,
		resource: resource,
		pageSize: pageSize,
	}
	e.Reset()
	return e
}

// Resource returns the listed resource.
func (e *Engine) Resource() site.Resource { return e.resource }

// PageSize returns the fixed page size.
func (e *Engine) PageSize() int { return e.pageSize }

// Reset starts a new session. A fetch still outstanding from the previous
// session is ignored when it completes.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.page = 1
	e.items = nil
	e.seen = make(map[int64]struct{})
	e.hasMore = true
	e.loading = false
	e.err = ""
	e.status = Idle
	e.closed = false
}

// Begin claims the next page. It reports false when a fetch is already
// outstanding, the listing is exhausted or the engine is closed.
func (e *Engine) Begin() (Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.loading || !e.hasMore {
		return Ticket{}, false
	}
	e.loading = true
	e.status = Loading
	return Ticket{
		session:  e.session,
		Resource: e.resource,
		Page:     e.page,
		PageSize: e.pageSize,
	}, true
}

// Complete merges the outcome of the fetch identified by t. It reports false
// when the ticket belongs to a retired session or the engine is closed, in
// which case nothing changes.
func (e *Engine) Complete(t Ticket, page site.Page, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || t.session != e.session || !e.loading || t.Page != e.page {
		return false
	}
	e.loading = false
	if err != nil {
		e.err = err.Error()
		e.status = Errored
		return true
	}

	for _, item := range page.Items {
		if _, dup := e.seen[item.ID]; dup {
			continue
		}
		e.seen[item.ID] = struct{}{}
		e.items = append(e.items, item)
	}
	total := max(page.TotalPages, 1)
	e.hasMore = e.page < total
	e.page++
	e.err = ""
	if e.hasMore {
		e.status = Loaded
	} else {
		e.status = Exhausted
	}
	return true
}

// Fetch performs the request described by t against the engine's fetcher.
// It does not touch engine state.
func (e *Engine) Fetch(ctx context.Context, t Ticket) (site.Page, error) {
	return e.fetcher.FetchPage(ctx, t.Resource, t.Page, t.PageSize)
}

// LoadNext fetches and merges the next page. It returns nil without fetching
// when another load is outstanding or the listing is exhausted. The fetch
// error, if any, is returned after being recorded.
func (e *Engine) LoadNext(ctx context.Context) error {
	t, ok := e.Begin()
	if !ok {
		e.mu.Lock()
		closed := e.closed
		e.mu.Unlock()
		if closed {
			return ErrClosed
		}
		return nil
	}
	page, err := e.Fetch(ctx, t)
	e.Complete(t, page, err)
	return err
}

// Retry re-requests the failed page. It is a no-op unless the last fetch
// failed.
func (e *Engine) Retry(ctx context.Context) error {
	e.mu.Lock()
	errored := e.status == Errored
	e.mu.Unlock()
	if !errored {
		return nil
	}
	return e.LoadNext(ctx)
}

// Close retires the engine. Later completions are ignored and Begin refuses
// new work until Reset.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.loading = false
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := make([]site.CardItem, len(e.items))
	copy(items, e.items)
	return Snapshot{
		Resource: e.resource,
		Page:     e.page,
		Items:    items,
		HasMore:  e.hasMore,
		Loading:  e.loading,
		Err:      e.err,
		Status:   e.status,
	}
}

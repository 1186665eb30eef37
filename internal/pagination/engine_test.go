package pagination

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/five82/showcase/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type response struct {
	ids   []int64
	total int
	err   error
}

// scripted serves canned pages keyed by page number and records every call.
type scripted struct {
	mu    sync.Mutex
	pages map[int]response
	calls []int
	gate  chan struct{}
	start chan struct{}
}

func (s *scripted) FetchPage(ctx context.Context, resource site.Resource, page, pageSize int) (site.Page, error) {
	s.mu.Lock()
	s.calls = append(s.calls, page)
	resp := s.pages[page]
	s.mu.Unlock()

	if s.start != nil {
		s.start <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if resp.err != nil {
		return site.Page{}, resp.err
	}
	items := make([]site.CardItem, len(resp.ids))
	for i, id := range resp.ids {
		items[i] = site.CardItem{ID: id}
	}
	return site.Page{Items: items, TotalPages: resp.total}, nil
}

func (s *scripted) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func seq(from, n int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = from + int64(i)
	}
	return out
}

func ids(items []site.CardItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestResetState(t *testing.T) {
	e := New(&scripted{}, site.ResourceGames, 12)
	snap := e.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.True(t, snap.HasMore)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Err)
	assert.Equal(t, Idle, snap.Status)
}

func TestLoadNextDeduplicates(t *testing.T) {
	f := &scripted{pages: map[int]response{
		1: {ids: []int64{1, 2, 3}, total: 3},
		2: {ids: []int64{3, 4, 5}, total: 3},
	}}
	e := New(f, site.ResourceNews, 3)
	ctx := context.Background()

	require.NoError(t, e.LoadNext(ctx))
	require.NoError(t, e.LoadNext(ctx))

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(e.Snapshot().Items))
}

func TestLoadNextWalksAllPages(t *testing.T) {
	f := &scripted{pages: map[int]response{
		1: {ids: seq(1, 12), total: 3},
		2: {ids: seq(13, 12), total: 3},
		3: {ids: seq(25, 12), total: 3},
	}}
	e := New(f, site.ResourceGames, 12)
	ctx := context.Background()

	require.NoError(t, e.LoadNext(ctx))
	snap := e.Snapshot()
	assert.Len(t, snap.Items, 12)
	assert.True(t, snap.HasMore)
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, Loaded, snap.Status)

	require.NoError(t, e.LoadNext(ctx))
	snap = e.Snapshot()
	assert.Len(t, snap.Items, 24)
	assert.Equal(t, 3, snap.Page)
	assert.True(t, snap.HasMore, "page 2 of 3 leaves one more")

	require.NoError(t, e.LoadNext(ctx))
	snap = e.Snapshot()
	assert.Len(t, snap.Items, 36)
	assert.False(t, snap.HasMore)
	assert.Equal(t, Exhausted, snap.Status)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.LoadNext(ctx))
	}
	assert.Equal(t, []int{1, 2, 3}, f.calls)
	assert.False(t, e.Snapshot().HasMore)
}

func TestEmptyResultIsTerminal(t *testing.T) {
	f := &scripted{pages: map[int]response{1: {total: 0}}}
	e := New(f, site.ResourceNews, 12)

	require.NoError(t, e.LoadNext(context.Background()))
	snap := e.Snapshot()
	assert.True(t, snap.Empty())
	assert.Equal(t, Exhausted, snap.Status)
	assert.Empty(t, snap.Err)
}

func TestFailureKeepsPage(t *testing.T) {
	boom := errors.New("status 502")
	f := &scripted{pages: map[int]response{
		1: {ids: seq(1, 2), total: 2},
		2: {err: boom},
	}}
	e := New(f, site.ResourceGames, 2)
	ctx := context.Background()

	require.NoError(t, e.LoadNext(ctx))
	err := e.LoadNext(ctx)
	require.ErrorIs(t, err, boom)

	snap := e.Snapshot()
	assert.Equal(t, Errored, snap.Status)
	assert.Equal(t, "status 502", snap.Err)
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, []int64{1, 2}, ids(snap.Items))
	assert.True(t, snap.HasMore)

	f.mu.Lock()
	f.pages[2] = response{ids: seq(3, 2), total: 2}
	f.mu.Unlock()

	require.NoError(t, e.Retry(ctx))
	snap = e.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(snap.Items))
	assert.Equal(t, []int{1, 2, 2}, f.calls)
}

func TestRetryOnlyAfterFailure(t *testing.T) {
	f := &scripted{pages: map[int]response{1: {ids: seq(1, 2), total: 2}}}
	e := New(f, site.ResourceGames, 2)
	require.NoError(t, e.Retry(context.Background()))
	assert.Zero(t, f.callCount())
}

func TestConcurrentTriggersIssueOneFetch(t *testing.T) {
	f := &scripted{
		pages: map[int]response{1: {ids: seq(1, 4), total: 2}},
		gate:  make(chan struct{}),
		start: make(chan struct{}, 1),
	}
	e := New(f, site.ResourceGames, 4)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- e.LoadNext(ctx) }()
	<-f.start

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error { return e.LoadNext(ctx) })
	}
	require.NoError(t, g.Wait())
	assert.True(t, e.Snapshot().Loading)

	close(f.gate)
	require.NoError(t, <-first)
	assert.Equal(t, 1, f.callCount())
	assert.Len(t, e.Snapshot().Items, 4)
}

func TestResetDropsInFlightCompletion(t *testing.T) {
	e := New(&scripted{}, site.ResourceGames, 3)
	stale, ok := e.Begin()
	require.True(t, ok)

	e.Reset()
	applied := e.Complete(stale, site.Page{Items: []site.CardItem{{ID: 9}}, TotalPages: 1}, nil)
	assert.False(t, applied)

	snap := e.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loading)
	assert.True(t, snap.HasMore)
}

func TestCloseDropsCompletion(t *testing.T) {
	e := New(&scripted{}, site.ResourceNews, 3)
	ticket, ok := e.Begin()
	require.True(t, ok)

	e.Close()
	assert.False(t, e.Complete(ticket, site.Page{Items: []site.CardItem{{ID: 1}}, TotalPages: 1}, nil))
	assert.Empty(t, e.Snapshot().Items)

	_, ok = e.Begin()
	assert.False(t, ok)
	assert.ErrorIs(t, e.LoadNext(context.Background()), ErrClosed)
}

func TestBeginWhileLoadingRefuses(t *testing.T) {
	e := New(&scripted{}, site.ResourceNews, 3)
	_, ok := e.Begin()
	require.True(t, ok)
	_, ok = e.Begin()
	assert.False(t, ok)
}

package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tick returns the message the currently armed interval timer would deliver.
func tick(s Scheduler) TickMsg { return TickMsg{ID: s.id, tag: s.tag} }

func done(s Scheduler) TransitionDoneMsg { return TransitionDoneMsg{ID: s.id, tag: s.tag} }

func visibleCards(t *testing.T, n int) Scheduler {
	t.Helper()
	s := NewScheduler(CardOptions())
	s, _ = s.SetVisible(true)
	s, _ = s.SetCount(n)
	return s
}

// step delivers one full tick and transition cycle.
func step(t *testing.T, s Scheduler) Scheduler {
	t.Helper()
	require.Equal(t, Waiting, s.State())
	s, cmd := s.Update(tick(s))
	require.NotNil(t, cmd)
	require.Equal(t, Transitioning, s.State())
	s, cmd = s.Update(done(s))
	require.NotNil(t, cmd)
	return s
}

func TestSchedulerStartsStopped(t *testing.T) {
	s := NewScheduler(CardOptions())
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 0, s.Cursor())
}

func TestSchedulerOnlySlidingAutoplays(t *testing.T) {
	s := NewScheduler(CardOptions())
	s, cmd := s.SetVisible(true)
	assert.Nil(t, cmd)

	s, cmd = s.SetCount(3)
	assert.Nil(t, cmd)
	assert.Equal(t, Stopped, s.State())

	s, cmd = s.SetCount(4)
	assert.Nil(t, cmd)
	assert.Equal(t, Stopped, s.State())

	s, cmd = s.SetCount(7)
	assert.NotNil(t, cmd)
	assert.Equal(t, Waiting, s.State())
}

func TestSchedulerAdvancesAfterTransition(t *testing.T) {
	s := visibleCards(t, 7)

	s, _ = s.Update(tick(s))
	assert.Equal(t, Transitioning, s.State())
	assert.Equal(t, 0, s.Cursor(), "cursor moves only when the slide finishes")

	s, cmd := s.Update(done(s))
	assert.NotNil(t, cmd)
	assert.Equal(t, Waiting, s.State())
	assert.Equal(t, 1, s.Cursor())
}

func TestSchedulerWrapsAround(t *testing.T) {
	s := visibleCards(t, 6)
	for i := 0; i < 6; i++ {
		s = step(t, s)
	}
	assert.Equal(t, 0, s.Cursor())
	s = step(t, s)
	assert.Equal(t, 1, s.Cursor())
}

func TestSchedulerDropsTickDuringTransition(t *testing.T) {
	s := visibleCards(t, 7)
	first := tick(s)

	s, _ = s.Update(first)
	s, cmd := s.Update(first)
	assert.Nil(t, cmd)
	assert.Equal(t, Transitioning, s.State())

	s, _ = s.Update(done(s))
	assert.Equal(t, 1, s.Cursor())

	// The duplicate belongs to a retired timer.
	s, cmd = s.Update(first)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.Cursor())
}

func TestSchedulerIgnoresOtherSchedulers(t *testing.T) {
	a := visibleCards(t, 7)
	b := visibleCards(t, 7)

	a, cmd := a.Update(tick(b))
	assert.Nil(t, cmd)
	assert.Equal(t, Waiting, a.State())
}

func TestSchedulerStopDropsPendingTimers(t *testing.T) {
	s := visibleCards(t, 7)
	s, _ = s.Update(tick(s))
	pending := done(s)

	s = s.Stop()
	assert.Equal(t, Stopped, s.State())

	s, cmd := s.Update(pending)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, s.Cursor())
}

func TestSchedulerPausesWhenHidden(t *testing.T) {
	s := visibleCards(t, 7)
	s = step(t, s)
	s = step(t, s)
	stale := tick(s)

	s, cmd := s.SetVisible(false)
	assert.Nil(t, cmd)
	assert.Equal(t, Stopped, s.State())

	s, cmd = s.Update(stale)
	assert.Nil(t, cmd)

	s, cmd = s.SetVisible(true)
	assert.NotNil(t, cmd)
	assert.Equal(t, Waiting, s.State())
	assert.Equal(t, 2, s.Cursor(), "resume keeps the cursor")
}

func TestSchedulerVisibleTwiceKeepsTimer(t *testing.T) {
	s := visibleCards(t, 7)
	armed := tick(s)
	s, cmd := s.SetVisible(true)
	assert.Nil(t, cmd)
	s, cmd = s.Update(armed)
	assert.NotNil(t, cmd)
}

func TestSchedulerShrinkingListStops(t *testing.T) {
	s := visibleCards(t, 7)
	for i := 0; i < 5; i++ {
		s = step(t, s)
	}
	require.Equal(t, 5, s.Cursor())

	s, _ = s.SetCount(3)
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 2, s.Cursor())

	s, _ = s.SetCount(0)
	assert.Equal(t, 0, s.Cursor())
}

func TestBannerAdvancesWithoutTransition(t *testing.T) {
	s := NewScheduler(BannerOptions())
	s, _ = s.SetVisible(true)
	s, cmd := s.SetCount(1)
	assert.Nil(t, cmd)

	s, cmd = s.SetCount(2)
	require.NotNil(t, cmd)

	s, cmd = s.Update(tick(s))
	assert.NotNil(t, cmd)
	assert.Equal(t, Waiting, s.State())
	assert.Equal(t, 1, s.Cursor())

	s, _ = s.Update(tick(s))
	assert.Equal(t, 0, s.Cursor())
}

func TestSchedulerTickCommandCarriesID(t *testing.T) {
	s := NewScheduler(Options{
		Interval: time.Millisecond,
		Eligible: func(int) bool { return true },
	})
	s, _ = s.SetVisible(true)
	s, cmd := s.SetCount(1)
	require.NotNil(t, cmd)

	msg := cmd()
	got, ok := msg.(TickMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, s.ID(), got.ID)

	s, next := s.Update(got)
	assert.NotNil(t, next)
	assert.Equal(t, 0, s.Cursor())
}

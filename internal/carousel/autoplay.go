package carousel

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Reference timings for the card slider and the promotion banner.
const (
	CardInterval   = 2500 * time.Millisecond
	CardTransition = 500 * time.Millisecond
	BannerInterval = 10 * time.Second
)

// State is the autoplay lifecycle state.
type State int

const (
	// Stopped means no timer is armed.
	Stopped State = iota
	// Waiting means the interval timer is armed.
	Waiting
	// Transitioning means an advance is animating and the timer is disarmed.
	Transitioning
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Waiting:
		return "waiting"
	case Transitioning:
		return "transitioning"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configure a Scheduler.
type Options struct {
	// Interval between advances while visible.
	Interval time.Duration
	// Transition is the animation length. The cursor moves when it ends.
	// Zero advances on the tick itself.
	Transition time.Duration
	// Eligible reports whether a list of n items should autoplay.
	Eligible func(n int) bool
}

// CardOptions drive the featured games slider: only lists in Sliding mode
// rotate.
func CardOptions() Options {
	return Options{
		Interval:   CardInterval,
		Transition: CardTransition,
		Eligible:   func(n int) bool { return SelectMode(n) == Sliding },
	}
}

// BannerOptions drive the promotion banner, which rotates whenever there is
// more than one banner.
func BannerOptions() Options {
	return Options{
		Interval: BannerInterval,
		Eligible: func(n int) bool { return n >= 2 },
	}
}

var lastSchedulerID int64

// TickMsg fires when the interval elapses.
type TickMsg struct {
	ID  int
	tag int
}

// TransitionDoneMsg fires when the slide animation has finished.
type TransitionDoneMsg struct {
	ID  int
	tag int
}

// Scheduler drives a circular cursor over a list on a fixed interval. It is a
// value type in the style of bubbles components: every method returns the new
// scheduler plus the command that arms its next timer.
//
// Every armed timer carries a tag. Changing state bumps the tag, so a timer
// armed before Stop, a visibility loss or a completed advance is dropped when
// it fires. A tick arriving mid-transition is lost rather than queued.
type Scheduler struct {
	id      int
	opts    Options
	state   State
	cursor  int
	count   int
	visible bool
	tag     int
}

// NewScheduler returns a stopped scheduler.
func NewScheduler(opts Options) Scheduler {
	if opts.Eligible == nil {
		opts.Eligible = func(n int) bool { return SelectMode(n) == Sliding }
	}
	return Scheduler{
		id:   int(atomic.AddInt64(&lastSchedulerID, 1)),
		opts: opts,
	}
}

// ID returns the scheduler's unique id.
func (s Scheduler) ID() int { return s.id }

// Cursor returns the index of the leading item.
func (s Scheduler) Cursor() int { return s.cursor }

// State returns the lifecycle state.
func (s Scheduler) State() State { return s.state }

// Count returns the length of the list being rotated.
func (s Scheduler) Count() int { return s.count }

// Visible reports the last visibility signal.
func (s Scheduler) Visible() bool { return s.visible }

// SetCount records a new list length. The cursor is wrapped so it stays valid.
func (s Scheduler) SetCount(n int) (Scheduler, tea.Cmd) {
	if n < 0 {
		n = 0
	}
	s.count = n
	if n == 0 {
		s.cursor = 0
	} else {
		s.cursor %= n
	}
	return s.sync()
}

// SetVisible records the visibility signal.
func (s Scheduler) SetVisible(visible bool) (Scheduler, tea.Cmd) {
	s.visible = visible
	return s.sync()
}

// Stop tears the scheduler down. Timers already in flight become no-ops.
func (s Scheduler) Stop() Scheduler {
	s.state = Stopped
	s.tag++
	return s
}

// Update handles the scheduler's own timer messages.
func (s Scheduler) Update(msg tea.Msg) (Scheduler, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != s.id || msg.tag != s.tag || s.state != Waiting {
			return s, nil
		}
		if s.opts.Transition <= 0 {
			s.advance()
			return s, s.arm()
		}
		s.state = Transitioning
		id, tag := s.id, s.tag
		return s, tea.Tick(s.opts.Transition, func(time.Time) tea.Msg {
			return TransitionDoneMsg{ID: id, tag: tag}
		})

	case TransitionDoneMsg:
		if msg.ID != s.id || msg.tag != s.tag || s.state != Transitioning {
			return s, nil
		}
		s.advance()
		return s, s.arm()
	}
	return s, nil
}

func (s Scheduler) active() bool {
	return s.visible && s.count > 0 && s.opts.Eligible(s.count)
}

func (s Scheduler) sync() (Scheduler, tea.Cmd) {
	if !s.active() {
		if s.state != Stopped {
			s = s.Stop()
		}
		return s, nil
	}
	if s.state == Stopped {
		return s, s.arm()
	}
	return s, nil
}

func (s *Scheduler) advance() {
	if s.count > 0 {
		s.cursor = (s.cursor + 1) % s.count
	}
}

// arm enters Waiting with a fresh tag and returns the interval timer.
func (s *Scheduler) arm() tea.Cmd {
	s.state = Waiting
	s.tag++
	id, tag := s.id, s.tag
	return tea.Tick(s.opts.Interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}

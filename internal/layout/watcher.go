package layout

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSettle is how long a resize burst must be quiet before the new width
// is classified.
const DefaultSettle = 120 * time.Millisecond

var lastWatcherID int64

// SettledMsg is delivered when a resize burst has been quiet for the settle
// window. Only the most recent one for a watcher is honoured.
type SettledMsg struct {
	id  int
	seq int
}

// Watcher tracks the viewport width and the size class derived from it.
// The first size is classified immediately; later resizes are coalesced so a
// drag-resize produces one reclassification for the width it settles on.
type Watcher struct {
	id      int
	settle  time.Duration
	mounted bool

	width   int
	pending int
	seq     int

	class  SizeClass
	config Config
}

// NewWatcher returns a watcher that waits settle before classifying a resize.
// A non-positive settle classifies every resize immediately.
func NewWatcher(settle time.Duration) Watcher {
	class := Desktop
	return Watcher{
		id:     int(atomic.AddInt64(&lastWatcherID, 1)),
		settle: settle,
		class:  class,
		config: Resolve(class),
	}
}

// Update handles tea.WindowSizeMsg and the watcher's own SettledMsg.
func (w Watcher) Update(msg tea.Msg) (Watcher, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return w.Resize(ColumnsToPixels(msg.Width))
	case SettledMsg:
		if msg.id != w.id || msg.seq != w.seq {
			return w, nil
		}
		w.apply(w.pending)
	}
	return w, nil
}

// Resize records a new width in pixels.
func (w Watcher) Resize(width int) (Watcher, tea.Cmd) {
	if !w.mounted || w.settle <= 0 {
		w.mounted = true
		w.seq++
		w.apply(width)
		return w, nil
	}
	w.pending = width
	w.seq++
	id, seq := w.id, w.seq
	return w, tea.Tick(w.settle, func(time.Time) tea.Msg {
		return SettledMsg{id: id, seq: seq}
	})
}

func (w *Watcher) apply(width int) {
	w.width = width
	w.class, w.config = ForWidth(width)
}

// Mounted reports whether a width has been observed.
func (w Watcher) Mounted() bool { return w.mounted }

// Width returns the last settled width in pixels.
func (w Watcher) Width() int { return w.width }

// Class returns the size class of the settled width.
func (w Watcher) Class() SizeClass { return w.class }

// Config returns the card geometry of the settled width.
func (w Watcher) Config() Config { return w.config }

package backdrop

import (
	"errors"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultColor is the background outside any scroll-driven view.
	DefaultColor = "#fffdfa"

	// DefaultTransition is how long the background takes to reach a new
	// colour.
	DefaultTransition = 450 * time.Millisecond
)

// ErrHeld is returned by Acquire while another lease is live.
var ErrHeld = errors.New("backdrop: already held")

// Backdrop is the shared page background. Only the holder of its lease may
// change it, and releasing the lease restores the default.
type Backdrop struct {
	mu         sync.Mutex
	def        colorful.Color
	transition time.Duration
	now        func() time.Time

	from    colorful.Color
	target  colorful.Color
	started time.Time
	holder  *Lease
}

// NewBackdrop returns a backdrop resting at defaultHex.
func NewBackdrop(defaultHex string, transition time.Duration) (*Backdrop, error) {
	def, err := colorful.Hex(defaultHex)
	if err != nil {
		return nil, err
	}
	return &Backdrop{
		def:        def,
		transition: transition,
		now:        time.Now,
		from:       def,
		target:     def,
	}, nil
}

// Lease grants exclusive control of a Backdrop.
type Lease struct {
	b *Backdrop
}

// Acquire claims the backdrop.
func (b *Backdrop) Acquire() (*Lease, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.holder != nil {
		return nil, ErrHeld
	}
	b.holder = &Lease{b: b}
	return b.holder, nil
}

// Held reports whether a lease is live.
func (b *Backdrop) Held() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holder != nil
}

// Target returns the colour the backdrop is heading towards.
func (b *Backdrop) Target() colorful.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// ColorAt returns the displayed colour at now, part way through any
// transition in progress.
func (b *Backdrop) ColorAt(now time.Time) colorful.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.colorAt(now)
}

// Settled reports whether the transition has finished at now.
func (b *Backdrop) Settled(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transition <= 0 || !now.Before(b.started.Add(b.transition))
}

func (b *Backdrop) colorAt(now time.Time) colorful.Color {
	if b.transition <= 0 || b.started.IsZero() {
		return b.target
	}
	elapsed := now.Sub(b.started)
	if elapsed >= b.transition {
		return b.target
	}
	if elapsed <= 0 {
		return b.from
	}
	t := float64(elapsed) / float64(b.transition)
	return b.from.BlendLinearRgb(b.target, t).Clamped()
}

// retarget starts a transition from the current colour. Callers hold b.mu.
func (b *Backdrop) retarget(c colorful.Color) {
	if c == b.target {
		return
	}
	now := b.now()
	b.from = b.colorAt(now)
	b.target = c
	b.started = now
}

// Apply moves the backdrop towards c. It reports false once the lease has
// been released.
func (l *Lease) Apply(c colorful.Color) bool {
	b := l.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.holder != l {
		return false
	}
	b.retarget(c)
	return true
}

// Release restores the default colour and frees the backdrop. Releasing
// twice is a no-op.
func (l *Lease) Release() {
	b := l.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.holder != l {
		return
	}
	b.holder = nil
	b.retarget(b.def)
}

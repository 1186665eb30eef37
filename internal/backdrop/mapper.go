// Package backdrop maps scroll position to a page background colour and owns
// the single shared background that views apply it to.
package backdrop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// SectionColors are the home page section colours, top to bottom.
var SectionColors = []string{"#fffdfa", "#fffdfa", "#181818", "#fffdfa"}

// Interpolate returns the colour at scroll by blending the two colours that
// bracket it in offsets. Offsets must be non-decreasing and the same length
// as colors. Positions outside the range clamp to the first or last colour.
func Interpolate(scroll float64, offsets []float64, colors []colorful.Color) colorful.Color {
	n := min(len(offsets), len(colors))
	switch {
	case n == 0:
		return colorful.Color{}
	case scroll <= offsets[0]:
		return colors[0]
	case scroll >= offsets[n-1]:
		return colors[n-1]
	}
	for i := 1; i < n; i++ {
		if scroll > offsets[i] {
			continue
		}
		if scroll == offsets[i] {
			return colors[i]
		}
		t := (scroll - offsets[i-1]) / (offsets[i] - offsets[i-1])
		return colors[i-1].BlendLinearRgb(colors[i], t).Clamped()
	}
	return colors[n-1]
}

// Mapper holds measured section offsets alongside their colours.
type Mapper struct {
	mu      sync.RWMutex
	colors  []colorful.Color
	offsets []float64
}

// NewMapper parses hex colours, one per section.
func NewMapper(hexColors ...string) (*Mapper, error) {
	if len(hexColors) == 0 {
		return nil, errors.New("backdrop: no section colours")
	}
	colors := make([]colorful.Color, len(hexColors))
	for i, h := range hexColors {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("backdrop: section %d colour %q: %w", i, h, err)
		}
		colors[i] = c
	}
	return &Mapper{colors: colors}, nil
}

// Remeasure replaces the section offsets after a layout change.
func (m *Mapper) Remeasure(offsets []float64) error {
	if len(offsets) != len(m.colors) {
		return fmt.Errorf("backdrop: %d offsets for %d sections", len(offsets), len(m.colors))
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("backdrop: offset %d (%v) precedes offset %d (%v)", i, offsets[i], i-1, offsets[i-1])
		}
	}
	m.mu.Lock()
	m.offsets = append(m.offsets[:0], offsets...)
	m.mu.Unlock()
	return nil
}

// Measured reports whether offsets have been recorded.
func (m *Mapper) Measured() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.offsets) > 0
}

// ColorAt returns the colour for scroll. Before the first measurement it
// returns the first section's colour.
func (m *Mapper) ColorAt(scroll float64) colorful.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.offsets) == 0 {
		return m.colors[0]
	}
	return Interpolate(scroll, m.offsets, m.colors)
}

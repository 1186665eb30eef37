// Package carousel selects how a row of cards is displayed and drives the
// autoplay cursor for the sliding display.
package carousel

import (
	"fmt"

	"github.com/five82/showcase/internal/layout"
)

// Count thresholds separating the display modes.
const (
	// BounceMax is the largest item count shown as a bouncing row.
	BounceMax = 3

	// SlidingMin is the smallest item count shown as an autoplaying slider.
	SlidingMin = 6
)

// DisplayMode is the rendering strategy for a row of cards.
type DisplayMode int

const (
	// Bounce centres every card and animates them vertically.
	Bounce DisplayMode = iota
	// StaticRow lays every card out in a single still row.
	StaticRow
	// Sliding shows a window of cards that autoplay advances.
	Sliding
)

// String returns the string representation of the display mode.
func (m DisplayMode) String() string {
	switch m {
	case Bounce:
		return "bounce"
	case StaticRow:
		return "static-row"
	case Sliding:
		return "sliding"
	default:
		panic(fmt.Sprintf("carousel: unknown display mode %d", int(m)))
	}
}

// SelectMode maps an item count to its display mode.
func SelectMode(count int) DisplayMode {
	switch {
	case count <= BounceMax:
		return Bounce
	case count < SlidingMin:
		return StaticRow
	default:
		return Sliding
	}
}

// Offset is the horizontal translation in pixels of the card strip when the
// cursor leads.
func Offset(cfg layout.Config, cursor int) int {
	return -(cfg.CardWidth + cfg.CardGap) * cursor
}

// Window returns the indices of the visible cards starting at cursor,
// wrapping past the end of the list. It never returns more than count indices.
func Window(count, cursor, visible int) []int {
	if count <= 0 || visible <= 0 {
		return nil
	}
	if visible > count {
		visible = count
	}
	cursor = ((cursor % count) + count) % count
	out := make([]int, visible)
	for i := range out {
		out[i] = (cursor + i) % count
	}
	return out
}

package ui

import "time"

// Home page section geometry in terminal rows.
const (
	// sectionTitleRows is the heading line plus the blank line under it.
	sectionTitleRows = 2

	// newsRows is the height of the latest news section body.
	newsRows = 3

	// footerRows is the company footer height.
	footerRows = 5

	// cardRowThreshold is the share of the card row that must be on screen
	// for its carousel to autoplay.
	cardRowThreshold = 0.5

	// bounceAmplitude is how many rows bouncing cards travel.
	bounceAmplitude = 1
)

// List page geometry.
const (
	// itemRows is the height of one list entry including its spacer.
	itemRows = 4

	// sentinelThreshold requires the whole sentinel row on screen.
	sentinelThreshold = 1.0
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// BackdropFrame is the redraw cadence while the backdrop is blending.
	BackdropFrame = 50 * time.Millisecond

	// FetchTimeout bounds a single page or detail request from the UI.
	FetchTimeout = 15 * time.Second
)

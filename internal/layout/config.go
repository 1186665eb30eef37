package layout

import "fmt"

// Config is the card geometry for one size class. Sizes are in pixels.
type Config struct {
	CardWidth    int
	CardHeight   int
	CardGap      int
	VisibleCount int

	// BannerHeight is the promotion image height.
	BannerHeight int
	// HeroHeightPercent is the hero's minimum height as a share of the viewport.
	HeroHeightPercent int
}

var configs = map[SizeClass]Config{
	Mobile:  {CardWidth: 110, CardHeight: 160, CardGap: 8, VisibleCount: 3, BannerHeight: 120, HeroHeightPercent: 40},
	Tablet:  {CardWidth: 160, CardHeight: 210, CardGap: 12, VisibleCount: 3, BannerHeight: 180, HeroHeightPercent: 55},
	Desktop: {CardWidth: 220, CardHeight: 300, CardGap: 16, VisibleCount: 3, BannerHeight: 260, HeroHeightPercent: 70},
}

// Resolve returns the fixed geometry for a size class. A class without an
// entry is a programming error and panics.
func Resolve(c SizeClass) Config {
	cfg, ok := configs[c]
	if !ok {
		panic(fmt.Sprintf("layout: no card config for size class %v", c))
	}
	return cfg
}

// ForWidth classifies width and resolves its geometry.
func ForWidth(width int) (SizeClass, Config) {
	class := Classify(width)
	return class, Resolve(class)
}

// CardCells returns the card size in terminal cells, never smaller than 1x1.
func (c Config) CardCells() (width, height int) {
	return atLeastOne(c.CardWidth / PixelsPerCell), atLeastOne(c.CardHeight / PixelsPerRow)
}

// GapCells returns the card gap in terminal columns.
func (c Config) GapCells() int {
	return atLeastOne(c.CardGap / PixelsPerCell)
}

// BannerRows returns the promotion height in terminal rows.
func (c Config) BannerRows() int {
	return atLeastOne(c.BannerHeight / PixelsPerRow)
}

// HeroRows returns the hero height for a viewport of the given row count.
func (c Config) HeroRows(viewportRows int) int {
	return atLeastOne(viewportRows * c.HeroHeightPercent / 100)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Package layout classifies viewport widths into size classes and maps each
// class to fixed card geometry.
package layout

import "fmt"

// Width breakpoints in pixels.
const (
	// TabletMinWidth is the narrowest width classified as Tablet.
	TabletMinWidth = 640

	// DesktopMinWidth is the narrowest width classified as Desktop.
	DesktopMinWidth = 1024
)

// PixelsPerCell converts terminal columns into the pixel widths the
// breakpoints are expressed in.
const PixelsPerCell = 8

// PixelsPerRow converts card heights back into terminal rows.
const PixelsPerRow = 16

// SizeClass is a discrete viewport size bucket.
type SizeClass int

const (
	Mobile SizeClass = iota
	Tablet
	Desktop
)

// String returns the string representation of the size class.
func (c SizeClass) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return fmt.Sprintf("SizeClass(%d)", int(c))
	}
}

// Classify maps a viewport width in pixels to its size class. Negative widths
// are treated as zero.
func Classify(width int) SizeClass {
	switch {
	case width >= DesktopMinWidth:
		return Desktop
	case width >= TabletMinWidth:
		return Tablet
	default:
		return Mobile
	}
}

// ColumnsToPixels converts a terminal width to pixels.
func ColumnsToPixels(cols int) int {
	if cols < 0 {
		return 0
	}
	return cols * PixelsPerCell
}

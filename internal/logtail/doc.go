// Package logtail reads and formats the showcase log for `showcase logs`.
//
// Read extracts the last N lines of a file with a ring buffer, so memory use
// is bounded by N rather than by the size of the log. Parse decodes the
// logfmt lines the application logger writes; Filter drops entries below a
// level; Format renders an entry on one line with lipgloss colours.
//
// Lines that are not logfmt (a panic trace, for instance) survive Filter and
// are printed verbatim.
package logtail

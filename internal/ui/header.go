package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/showcase/internal/site"
)

// renderHeader renders the status bar: page tabs, the size class and the
// backend connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := hexPaint(m.theme.Surface)

	parts := []string{bg.text("SHOWCASE", styles.Logo)}

	tabs := []struct {
		label  string
		active bool
	}{
		{"1 Home", m.current == PageHome},
		{"2 Games", m.currentResource() == site.ResourceGames},
		{"3 News", m.currentResource() == site.ResourceNews},
	}
	for _, tab := range tabs {
		style := styles.MutedText
		if tab.active {
			style = styles.AccentText.Bold(true)
		}
		parts = append(parts, bg.text(tab.label, style))
	}

	left := bg.join(parts, 2)
	right := m.connectionStatus(styles, bg)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return styles.Header.Width(m.width).MaxHeight(1).Render(left + bg.gap(gap) + right)
}

// connectionStatus summarises the home content refresh state.
func (m Model) connectionStatus(styles Styles, bg paint) string {
	var parts []string
	parts = append(parts, bg.text(m.watcher.Class().String(), styles.FaintText))
	if !m.autoplay {
		parts = append(parts, bg.text("autoplay off", styles.FaintText))
	}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, styles.BadgeStyle("offline").Render(classifyConnectionError(m.snapshot.LastError)))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.text(classifyConnectionError(m.snapshot.LastError), styles.WarningText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		age := humanizeDuration(time.Since(m.snapshot.LastUpdated))
		parts = append(parts, bg.text("updated "+age, styles.MutedText))
	} else if m.snapshot.LastError == nil {
		parts = append(parts, bg.text("connecting "+truncateMiddle(m.config.APIURL, 32), styles.MutedText))
	}
	return bg.join(parts, 2)
}

func (m Model) currentResource() site.Resource {
	switch m.current {
	case PageList:
		if m.list != nil {
			return m.list.resource
		}
	case PageDetail:
		if m.detail != nil && m.previous == PageList {
			return m.detail.resource
		}
	}
	return ""
}

// classifyConnectionError turns a refresh error into a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *site.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP %d", statusErr.StatusCode)
	}
	var apiErr *site.APIError
	if errors.As(err, &apiErr) {
		return "API " + apiErr.Code
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderFooter renders the command hints bar for the current page.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := hexPaint(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.current {
	case PageHome:
		commands = []cmd{{"j/k", "Scroll"}, {"h/l", "Card"}, {"enter", "Open"}, {"p", "Autoplay"}}
	case PageList:
		commands = []cmd{{"j/k", "Move"}, {"enter", "Open"}, {"r", "Retry"}, {"esc", "Home"}}
	case PageDetail:
		commands = []cmd{{"j/k", "Scroll"}, {"esc", "Back"}}
	}
	commands = append(commands, cmd{"T", "Theme"}, cmd{"?", "Help"}, cmd{"q", "Quit"})

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	parts := make([]string, 0, len(commands))
	for _, c := range commands {
		parts = append(parts, bg.text(c.key, keyStyle)+bg.gap(1)+bg.text(c.desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).MaxHeight(1).Render(bg.join(parts, 2))
}

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/showcase/internal/pagination"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/visibility"
)

// pageLoadedMsg carries the outcome of one page fetch back to the engine that
// issued it.
type pageLoadedMsg struct {
	engine *pagination.Engine
	ticket pagination.Ticket
	page   site.Page
	err    error
}

// listView is the infinite scrolling games or news listing. A sentinel row
// below the last item loads the next page when it scrolls fully into view.
type listView struct {
	ctx      context.Context
	logger   *log.Logger
	resource site.Resource
	engine   *pagination.Engine

	tracker         *visibility.Tracker
	sentinel        *visibility.Subscription
	sentinelVisible bool
	sentinelEntered bool

	viewport viewport.Model
	snapshot pagination.Snapshot
	selected int
	width    int
	height   int
	theme    Theme
}

func newListView(ctx context.Context, pages site.PageFetcher, resource site.Resource, pageSize int, logger *log.Logger) *listView {
	l := &listView{
		ctx:      ctx,
		logger:   logger.With("resource", string(resource)),
		resource: resource,
		engine:   pagination.New(pages, resource, pageSize),
		tracker:  visibility.NewTracker(),
		viewport: viewport.New(0, 0),
	}
	l.snapshot = l.engine.Snapshot()
	return l
}

// mount observes the sentinel. An empty list shows the sentinel at once, which
// loads the first page.
func (l *listView) mount() tea.Cmd {
	l.sentinel = l.tracker.Observe(l.sentinelBounds(), sentinelThreshold, func(visible bool) {
		if visible && !l.sentinelVisible {
			l.sentinelEntered = true
		}
		l.sentinelVisible = visible
	})
	return l.maybeLoad()
}

func (l *listView) unmount() {
	l.engine.Close()
	if l.sentinel != nil {
		l.sentinel.Detach()
		l.sentinel = nil
	}
	l.sentinelVisible = false
	l.sentinelEntered = false
}

func (l *listView) resize(width, height int, theme Theme) tea.Cmd {
	l.width = width
	l.height = max(height-1, 1)
	l.theme = theme
	l.viewport.Width = width
	l.viewport.Height = l.height
	l.refresh()
	return l.afterScroll()
}

// sentinelBounds is the row directly under the last item.
func (l *listView) sentinelBounds() visibility.Rect {
	return visibility.Rect{Top: len(l.snapshot.Items) * itemRows, Height: 1}
}

// loadCmd claims the next page and fetches it off the event loop.
func (l *listView) loadCmd() tea.Cmd {
	ticket, ok := l.engine.Begin()
	if !ok {
		return nil
	}
	l.snapshot = l.engine.Snapshot()
	l.refresh()
	l.logger.Debug("loading page", "page", ticket.Page, "page_size", ticket.PageSize)
	engine := l.engine
	ctx := l.ctx
	return func() tea.Msg {
		fetchCtx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		page, err := engine.Fetch(fetchCtx, ticket)
		return pageLoadedMsg{engine: engine, ticket: ticket, page: page, err: err}
	}
}

// loaded merges a fetched page. While the sentinel stays in view after the
// merge, the next page is requested straight away.
func (l *listView) loaded(msg pageLoadedMsg) tea.Cmd {
	if msg.engine != l.engine || !l.engine.Complete(msg.ticket, msg.page, msg.err) {
		return nil
	}
	if msg.err != nil {
		l.logger.Warn("page load failed", "page", msg.ticket.Page, "error", msg.err)
	} else {
		l.logger.Debug("page loaded", "page", msg.ticket.Page, "items", len(msg.page.Items), "total_pages", msg.page.TotalPages)
	}
	l.snapshot = l.engine.Snapshot()
	l.refresh()
	return l.afterScroll()
}

func (l *listView) retry() tea.Cmd {
	if l.snapshot.Status != pagination.Errored {
		return nil
	}
	return l.loadCmd()
}

// maybeLoad fetches the next page when the sentinel is in view. A failed page
// is retried only when the sentinel scrolls back into view or on r.
func (l *listView) maybeLoad() tea.Cmd {
	entered := l.sentinelEntered
	l.sentinelEntered = false
	if !l.sentinelVisible || !l.snapshot.HasMore || l.snapshot.Loading {
		return nil
	}
	if l.snapshot.Status == pagination.Errored && !entered {
		return nil
	}
	return l.loadCmd()
}

func (l *listView) afterScroll() tea.Cmd {
	if l.sentinel != nil {
		l.sentinel.Move(l.sentinelBounds())
	}
	l.tracker.SetViewport(visibility.Rect{Top: l.viewport.YOffset, Height: l.height})
	return l.maybeLoad()
}

func (l *listView) items() []site.CardItem { return l.snapshot.Items }

func (l *listView) selectedItem() (site.CardItem, bool) {
	if l.selected < 0 || l.selected >= len(l.snapshot.Items) {
		return site.CardItem{}, false
	}
	return l.snapshot.Items[l.selected], true
}

func (l *listView) moveSelection(delta int) tea.Cmd {
	n := len(l.snapshot.Items)
	if n == 0 {
		return nil
	}
	l.selected = clamp(l.selected+delta, 0, n-1)
	top := l.selected * itemRows
	switch {
	case top < l.viewport.YOffset:
		l.viewport.SetYOffset(top)
	case top+itemRows > l.viewport.YOffset+l.height:
		l.viewport.SetYOffset(top + itemRows - l.height)
	}
	// Bottom of the list brings the sentinel row into view.
	if l.selected == n-1 {
		l.viewport.GotoBottom()
	}
	l.refresh()
	return l.afterScroll()
}

func (l *listView) scrollBy(delta int) tea.Cmd {
	if delta > 0 {
		l.viewport.ScrollDown(delta)
	} else {
		l.viewport.ScrollUp(-delta)
	}
	return l.afterScroll()
}

// refresh re-renders the viewport content, keeping the scroll offset.
func (l *listView) refresh() {
	offset := l.viewport.YOffset
	l.viewport.SetContent(l.render(l.theme.Styles()))
	l.viewport.SetYOffset(offset)
}

func (l *listView) render(styles Styles) string {
	width := max(l.width-2, 1)
	var b strings.Builder
	for i, item := range l.snapshot.Items {
		title := truncateText(item.Title, width-2)
		if i == l.selected {
			b.WriteString(styles.Selected.Width(width).Render("▌ " + title))
		} else {
			b.WriteString(styles.Text.Bold(true).Render("  " + title))
		}
		b.WriteString("\n")

		meta := item.Published
		if excerpt := truncateText(strings.Join(strings.Fields(item.Content), " "), width-14); excerpt != "" {
			if meta != "" {
				meta += "  "
			}
			meta += excerpt
		}
		b.WriteString(styles.MutedText.Render("  " + meta))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("  " + truncateMiddle(item.ImageURL, width-2)))
		b.WriteString("\n\n")
	}
	b.WriteString(l.footer(styles))
	return b.String()
}

// footer is the sentinel row.
func (l *listView) footer(styles Styles) string {
	noun := strings.ToLower(l.resource.Label())
	s := l.snapshot
	switch {
	case s.Loading:
		if len(s.Items) == 0 {
			return styles.MutedText.Render(fmt.Sprintf("  Loading %s…", noun))
		}
		return styles.MutedText.Render(fmt.Sprintf("  Loading more %s…", noun))
	case s.Status == pagination.Errored:
		return styles.DangerText.Render("  Couldn't load more "+noun+": "+truncateText(s.Err, max(l.width-40, 10))) +
			styles.MutedText.Render("  r to retry")
	case s.Empty():
		return styles.MutedText.Render("  Nothing to show yet.")
	case !s.HasMore:
		return styles.FaintText.Render(fmt.Sprintf("  All %s loaded.", noun))
	}
	return ""
}

func (l *listView) view(styles Styles, spinner string) string {
	s := l.snapshot
	label := l.resource.Label()
	header := styles.Text.Bold(true).Render(" "+label) +
		styles.MutedText.Render(fmt.Sprintf("  %d loaded", len(s.Items)))
	if badge := listBadge(s); badge != "" {
		header += "  " + styles.BadgeStyle(badge).Render(badge)
	}

	var body string
	switch {
	case len(s.Items) == 0 && s.Status == pagination.Errored:
		msg := styles.DangerText.Render("Couldn't load "+strings.ToLower(label)) + "\n" +
			styles.MutedText.Render(truncateText(s.Err, max(l.width-4, 10))) + "\n\n" +
			styles.FaintText.Render("Press r to retry")
		body = lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, msg))
	case len(s.Items) == 0 && s.Loading:
		body = lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center,
			spinner+" "+styles.MutedText.Render("Loading "+strings.ToLower(label)+"…"))
	default:
		body = l.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func listBadge(s pagination.Snapshot) string {
	switch s.Status {
	case pagination.Loading:
		return "loading"
	case pagination.Exhausted:
		return "exhausted"
	case pagination.Errored:
		return "errored"
	}
	return ""
}

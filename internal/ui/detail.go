package ui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/showcase/internal/site"
)

var lastDetailSeq int64

// detailLoadedMsg carries a fetched item. seq ties it to the request that
// produced it so a slow answer for a page already left is ignored.
type detailLoadedMsg struct {
	seq  int64
	item site.Item
	err  error
}

// detailView shows one game or news item rendered as markdown.
type detailView struct {
	resource site.Resource
	id       int64
	seq      int64

	loading  bool
	err      error
	item     site.Item
	viewport viewport.Model
	width    int
	height   int
}

func newDetailView(resource site.Resource, id int64) *detailView {
	return &detailView{
		resource: resource,
		id:       id,
		viewport: viewport.New(0, 0),
	}
}

func (d *detailView) load(ctx context.Context, details site.DetailFetcher) tea.Cmd {
	d.seq = atomic.AddInt64(&lastDetailSeq, 1)
	d.loading = true
	d.err = nil
	seq, resource, id := d.seq, d.resource, d.id
	return func() tea.Msg {
		fetchCtx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		item, err := details.FetchDetail(fetchCtx, resource, id)
		return detailLoadedMsg{seq: seq, item: item, err: err}
	}
}

func (d *detailView) loaded(msg detailLoadedMsg, theme Theme, width int) {
	if msg.seq != d.seq {
		return
	}
	d.loading = false
	d.err = msg.err
	if msg.err == nil {
		d.item = msg.item
	}
	d.width = width
	d.render(theme)
}

func (d *detailView) resize(width, height int, theme Theme) {
	d.width = width
	d.height = max(height, 1)
	d.viewport.Width = width
	d.viewport.Height = d.height
	d.render(theme)
}

func (d *detailView) update(msg tea.KeyMsg) tea.Cmd {
	keys := DefaultKeyMap()
	switch {
	case key.Matches(msg, keys.Down):
		d.viewport.ScrollDown(1)
	case key.Matches(msg, keys.Up):
		d.viewport.ScrollUp(1)
	case key.Matches(msg, keys.PageDown):
		d.viewport.HalfPageDown()
	case key.Matches(msg, keys.PageUp):
		d.viewport.HalfPageUp()
	case key.Matches(msg, keys.Top):
		d.viewport.GotoTop()
	case key.Matches(msg, keys.Bottom):
		d.viewport.GotoBottom()
	}
	return nil
}

func (d *detailView) scrollBy(delta int) {
	if delta > 0 {
		d.viewport.ScrollDown(delta)
	} else {
		d.viewport.ScrollUp(-delta)
	}
}

func (d *detailView) render(theme Theme) {
	if d.loading || d.err != nil || d.item.ID == 0 {
		return
	}
	md := itemMarkdown(d.item)
	out, err := renderMarkdown(md, glamourStyle(theme), max(d.width-4, 20))
	if err != nil {
		out = md
	}
	d.viewport.SetContent(out)
}

func (d *detailView) view(styles Styles, spinner string) string {
	switch {
	case d.loading:
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center,
			spinner+" "+styles.MutedText.Render(fmt.Sprintf("Loading %s #%d…", strings.ToLower(d.resource.Label()), d.id)))
	case d.err != nil:
		msg := styles.DangerText.Render("Couldn't load this page") + "\n" +
			styles.MutedText.Render(truncateText(d.err.Error(), max(d.width-4, 10))) + "\n\n" +
			styles.FaintText.Render("esc to go back")
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, msg)
	}
	return d.viewport.View()
}

// itemMarkdown lays an item out as a markdown document.
func itemMarkdown(item site.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(item.Title))
	if date := item.PublishedDate(); date != "" {
		fmt.Fprintf(&b, "*%s*\n\n", date)
	}
	if content := strings.TrimSpace(item.Content); content != "" {
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if len(item.PlatformLinks) > 0 {
		b.WriteString("## Available on\n\n")
		for _, link := range item.PlatformLinks {
			fmt.Fprintf(&b, "- [%s](%s)\n", link.Platform, link.Link)
		}
		b.WriteString("\n")
	}
	if len(item.Files) > 0 {
		b.WriteString("## Media\n\n")
		for _, f := range item.Files {
			fmt.Fprintf(&b, "- %s `%s`\n", f.URL, f.Type)
		}
	}
	return b.String()
}

// glamourStyle picks the light or dark markdown style to suit the theme
// background.
func glamourStyle(theme Theme) string {
	bg, err := colorful.Hex(theme.Background)
	if err != nil {
		return "dark"
	}
	if l, _, _ := bg.Lab(); l >= 0.5 {
		return "light"
	}
	return "dark"
}

func renderMarkdown(md, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// RenderItem renders an item as a markdown document with the named glamour
// style ("light", "dark", "auto", "notty").
func RenderItem(item site.Item, style string, width int) (string, error) {
	return renderMarkdown(itemMarkdown(item), style, width)
}

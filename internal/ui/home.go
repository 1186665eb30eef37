package ui

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/showcase/internal/backdrop"
	"github.com/five82/showcase/internal/carousel"
	"github.com/five82/showcase/internal/layout"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/state"
	"github.com/five82/showcase/internal/visibility"
)

// Home page sections, top to bottom. Each owns one entry of
// backdrop.SectionColors.
const (
	sectionHero = iota
	sectionPromotions
	sectionGames
	sectionNews
	sectionCount
)

// homeView is the scrolling landing page. It holds the backdrop lease while
// mounted and drives both carousels.
type homeView struct {
	logger   *log.Logger
	backdrop *backdrop.Backdrop
	lease    *backdrop.Lease
	mapper   *backdrop.Mapper

	tracker      *visibility.Tracker
	cardSub      *visibility.Subscription
	cardsVisible bool

	cards  carousel.Scheduler
	banner carousel.Scheduler
	mode   carousel.DisplayMode

	content    state.Content
	hasContent bool
	newsCount  int
	hero       int
	heroID     int64
	pick       func(n int) int

	width  int
	height int
	cfg    layout.Config
	theme  Theme

	scroll  int
	offsets [sectionCount]int
	total   int

	focus    int
	phase    int
	mounted  bool
	autoplay bool
	framing  bool
}

func newHomeView(bd *backdrop.Backdrop, logger *log.Logger) *homeView {
	mapper, err := backdrop.NewMapper(backdrop.SectionColors...)
	if err != nil {
		panic(err)
	}
	return &homeView{
		logger:   logger,
		backdrop: bd,
		mapper:   mapper,
		tracker:  visibility.NewTracker(),
		cards:    carousel.NewScheduler(carousel.CardOptions()),
		banner:   carousel.NewScheduler(carousel.BannerOptions()),
		mode:     carousel.SelectMode(0),
		pick:     rand.IntN,
	}
}

// mount claims the backdrop and starts observing the card row.
func (h *homeView) mount(autoplay bool) error {
	if h.mounted {
		return nil
	}
	lease, err := h.backdrop.Acquire()
	if err != nil {
		return err
	}
	h.lease = lease
	h.autoplay = autoplay
	h.cardsVisible = false
	h.cardSub = h.tracker.Observe(h.cardBounds(), cardRowThreshold, func(visible bool) {
		h.cardsVisible = visible
	})
	h.mounted = true
	h.logger.Debug("home mounted", "autoplay", autoplay)
	return nil
}

// unmount stops both carousels, drops the card row subscription and hands the
// backdrop back.
func (h *homeView) unmount() {
	if !h.mounted {
		return
	}
	h.cards = h.cards.Stop()
	h.banner = h.banner.Stop()
	if h.cardSub != nil {
		h.cardSub.Detach()
		h.cardSub = nil
	}
	h.cardsVisible = false
	if h.lease != nil {
		h.lease.Release()
		h.lease = nil
	}
	h.mounted = false
	h.logger.Debug("home unmounted")
}

// update routes carousel timers. Each scheduler drops messages that carry
// another scheduler's id.
func (h *homeView) update(msg tea.Msg) tea.Cmd {
	if !h.mounted {
		return nil
	}
	var cardCmd, bannerCmd tea.Cmd
	h.cards, cardCmd = h.cards.Update(msg)
	h.banner, bannerCmd = h.banner.Update(msg)
	h.clampFocus()
	return tea.Batch(cardCmd, bannerCmd)
}

func (h *homeView) setContent(content state.Content, theme Theme) tea.Cmd {
	h.content = content
	h.hasContent = true
	h.theme = theme
	h.chooseHero()
	var cardCmd, bannerCmd tea.Cmd
	h.mode = carousel.SelectMode(len(content.Featured))
	h.cards, cardCmd = h.cards.SetCount(len(content.Featured))
	h.banner, bannerCmd = h.banner.SetCount(len(content.Promotions))
	h.clampFocus()
	return tea.Batch(cardCmd, bannerCmd, h.relayout())
}

// chooseHero keeps the shown hero across refreshes while it stays active and
// otherwise picks one of the active heroes at random.
func (h *homeView) chooseHero() {
	heroes := h.content.Heroes
	for i, hero := range heroes {
		if hero.ID == h.heroID {
			h.hero = i
			return
		}
	}
	if len(heroes) == 0 {
		h.hero, h.heroID = 0, 0
		return
	}
	h.hero = h.pick(len(heroes))
	h.heroID = heroes[h.hero].ID
}

func (h *homeView) setAutoplay(on bool) tea.Cmd {
	h.autoplay = on
	return h.syncSchedulers()
}

func (h *homeView) resize(width, height int, cfg layout.Config, theme Theme) tea.Cmd {
	h.width = width
	h.height = height
	h.cfg = cfg
	h.theme = theme
	return h.relayout()
}

// relayout recomputes section offsets, feeds them to the colour mapper and
// re-evaluates card row visibility.
func (h *homeView) relayout() tea.Cmd {
	if h.width <= 0 || h.height <= 0 {
		return nil
	}
	rows := h.sectionRows()
	top := 0
	for i, r := range rows {
		h.offsets[i] = top
		top += r
	}
	h.total = top + footerRows

	measured := make([]float64, sectionCount)
	for i, off := range h.offsets {
		measured[i] = float64(off)
	}
	if err := h.mapper.Remeasure(measured); err != nil {
		h.logger.Warn("section offsets rejected", "error", err)
	}

	h.scroll = clamp(h.scroll, 0, h.maxScroll())
	if h.cardSub != nil {
		h.cardSub.Move(h.cardBounds())
	}
	return h.afterScroll()
}

func (h *homeView) sectionRows() [sectionCount]int {
	_, cardH := h.cfg.CardCells()
	news := max(min(len(h.content.News), h.newsLimit()), 1)
	return [sectionCount]int{
		sectionHero:       h.cfg.HeroRows(h.height),
		sectionPromotions: sectionTitleRows + h.cfg.BannerRows() + 1,
		sectionGames:      sectionTitleRows + cardH + 2 + bounceAmplitude + 1,
		sectionNews:       sectionTitleRows + max(news, newsRows) + 1,
	}
}

func (h *homeView) newsLimit() int {
	if h.newsCount > 0 {
		return h.newsCount
	}
	return len(h.content.News)
}

// cardBounds is the card row in page rows.
func (h *homeView) cardBounds() visibility.Rect {
	_, cardH := h.cfg.CardCells()
	return visibility.Rect{
		Top:    h.offsets[sectionGames] + sectionTitleRows,
		Height: cardH + 2 + bounceAmplitude,
	}
}

func (h *homeView) maxScroll() int {
	return max(h.total-h.height, 0)
}

func (h *homeView) scrollBy(delta int) tea.Cmd {
	return h.scrollTo(h.scroll + delta)
}

func (h *homeView) scrollTo(row int) tea.Cmd {
	row = clamp(row, 0, h.maxScroll())
	if row == h.scroll {
		return nil
	}
	h.scroll = row
	return h.afterScroll()
}

// afterScroll pushes the new viewport to the tracker and the section colour
// to the backdrop.
func (h *homeView) afterScroll() tea.Cmd {
	h.tracker.SetViewport(visibility.Rect{Top: h.scroll, Height: h.height})
	if h.lease != nil {
		h.lease.Apply(h.mapper.ColorAt(float64(h.scroll)))
	}
	return tea.Batch(h.syncSchedulers(), h.frameCmd())
}

func (h *homeView) syncSchedulers() tea.Cmd {
	var cardCmd, bannerCmd tea.Cmd
	h.cards, cardCmd = h.cards.SetVisible(h.mounted && h.autoplay && h.cardsVisible)
	h.banner, bannerCmd = h.banner.SetVisible(h.mounted && h.autoplay)
	return tea.Batch(cardCmd, bannerCmd)
}

// frameCmd starts the redraw loop while the backdrop blends. Only one loop
// runs at a time.
func (h *homeView) frameCmd() tea.Cmd {
	if h.framing || h.backdrop.Settled(time.Now()) {
		return nil
	}
	h.framing = true
	return backdropFrameCmd()
}

// bounce advances the vertical bob of a short card row.
func (h *homeView) bounce() {
	if h.mode == carousel.Bounce {
		h.phase++
	}
}

// visibleCards returns indices into Featured in display order.
func (h *homeView) visibleCards() []int {
	n := len(h.content.Featured)
	if h.mode == carousel.Sliding {
		return carousel.Window(n, h.cards.Cursor(), h.cfg.VisibleCount)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (h *homeView) moveFocus(delta int) {
	h.focus += delta
	h.clampFocus()
}

func (h *homeView) clampFocus() {
	h.focus = clamp(h.focus, 0, max(len(h.visibleCards())-1, 0))
}

func (h *homeView) focusedCard() (site.CardItem, bool) {
	idx := h.visibleCards()
	if h.focus < 0 || h.focus >= len(idx) {
		return site.CardItem{}, false
	}
	return h.content.Featured[idx[h.focus]], true
}

// Rendering

func (h *homeView) view(styles Styles, bg paint, snapshot state.Snapshot, spinner string) string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	if !h.hasContent {
		msg := spinner + " Loading home page..."
		if snapshot.LastError != nil {
			msg = styles.DangerText.Render(classifyConnectionError(snapshot.LastError)) + "  " +
				styles.MutedText.Render("Retrying...")
		}
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, msg,
			lipgloss.WithWhitespaceBackground(bg.bg()))
	}

	rows := h.sectionRows()
	blocks := []string{
		bg.block(h.renderHero(styles), h.width, rows[sectionHero], lipgloss.Center),
		bg.block(h.renderPromotions(styles), h.width, rows[sectionPromotions], lipgloss.Top),
		bg.block(h.renderGames(styles), h.width, rows[sectionGames], lipgloss.Top),
		bg.block(h.renderNews(styles), h.width, rows[sectionNews], lipgloss.Top),
		bg.block(h.renderFooter(styles), h.width, footerRows, lipgloss.Top),
	}
	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	start := clamp(h.scroll, 0, max(len(lines)-1, 0))
	end := min(start+h.height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (h *homeView) sectionTitle(styles Styles, title, badge, label string) string {
	line := styles.Text.Bold(true).Render(title)
	if badge != "" {
		line += styles.Text.Render(" ") + styles.BadgeStyle(badge).Render(label)
	}
	return styles.Text.Render(" ") + line + "\n"
}

func (h *homeView) renderHero(styles Styles) string {
	if len(h.content.Heroes) == 0 {
		return lipgloss.PlaceHorizontal(h.width, lipgloss.Center,
			styles.Logo.Render("SHOWCASE"))
	}
	hero := h.content.Heroes[h.hero]
	var b strings.Builder
	b.WriteString(styles.Logo.Render(truncateText(hero.Title, h.width-4)))
	if kind, url, ok := hero.Media(); ok {
		icon := "▣"
		if kind == site.MediaVideo {
			icon = "▶"
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(icon + " " + truncateMiddle(url, h.width-6)))
	}
	return lipgloss.PlaceHorizontal(h.width, lipgloss.Center, b.String())
}

func (h *homeView) renderPromotions(styles Styles) string {
	promos := h.content.Promotions
	var b strings.Builder
	b.WriteString(h.sectionTitle(styles, "Promotions", "", ""))
	if len(promos) == 0 {
		b.WriteString(styles.MutedText.Render("  No promotions running."))
		return b.String()
	}
	cur := h.banner.Cursor() % len(promos)
	promo := promos[cur]
	inner := max(h.width-4, 1)
	body := styles.Text.Bold(true).Render(truncateText(promo.Title, inner)) + "\n" +
		styles.MutedText.Render(truncateMiddle(promo.ImageURL(), inner))
	box := styles.Card.
		Width(inner).
		Height(max(h.cfg.BannerRows()-2, 1)).
		Render(body)
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(h.width, lipgloss.Center, dots(styles, len(promos), cur)))
	return b.String()
}

func (h *homeView) renderGames(styles Styles) string {
	featured := h.content.Featured
	mode := h.mode
	badge := mode.String()
	label := badge
	if mode == carousel.Sliding && h.cards.State() == carousel.Transitioning {
		label += " ›"
	}

	var b strings.Builder
	b.WriteString(h.sectionTitle(styles, "Featured Games", badge, label))
	if len(featured) == 0 {
		b.WriteString(styles.MutedText.Render("  No games yet."))
		return b.String()
	}

	cardW, cardH := h.cfg.CardCells()
	gap := strings.Repeat(" ", h.cfg.GapCells())
	idx := h.visibleCards()
	cells := make([]string, 0, len(idx)*2)
	for pos, i := range idx {
		card := h.renderCard(styles, featured[i], cardW, cardH, pos == h.focus)
		if mode == carousel.Bounce && (h.phase+pos)%2 == 0 {
			card = strings.Repeat("\n", bounceAmplitude) + card
		}
		if pos > 0 {
			cells = append(cells, styles.Text.Render(gap))
		}
		cells = append(cells, card)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	switch mode {
	case carousel.Bounce:
		row = lipgloss.PlaceHorizontal(h.width, lipgloss.Center, row)
	case carousel.Sliding:
		row = lipgloss.PlaceHorizontal(h.width, lipgloss.Center, row) + "\n" +
			lipgloss.PlaceHorizontal(h.width, lipgloss.Center, dots(styles, len(featured), h.cards.Cursor()))
	default:
		row = lipgloss.NewStyle().PaddingLeft(1).Render(row)
	}
	b.WriteString(row)
	return b.String()
}

func (h *homeView) renderCard(styles Styles, item site.CardItem, width, height int, focused bool) string {
	inner := max(width-2, 1)
	lines := wrapLines(item.Title, inner, max(height-3, 1))
	body := styles.Text.Bold(true).Render(strings.Join(lines, "\n"))
	if item.Published != "" {
		body += "\n" + styles.MutedText.Render(item.Published)
	}
	body += "\n" + styles.FaintText.Render(truncateMiddle(item.ImageURL, inner))
	style := styles.Card.Width(inner).Height(max(height-2, 1)).MaxHeight(height + 2)
	if focused {
		style = style.BorderForeground(lipgloss.Color(h.theme.BorderFocus))
	}
	return style.Render(body)
}

func (h *homeView) renderNews(styles Styles) string {
	var b strings.Builder
	b.WriteString(h.sectionTitle(styles, "Latest News", "", ""))
	news := h.content.News
	if len(news) == 0 {
		b.WriteString(styles.MutedText.Render("  No news yet."))
		return b.String()
	}
	limit := min(len(news), h.newsLimit())
	for i, item := range news[:limit] {
		if i > 0 {
			b.WriteString("\n")
		}
		date := padRight(item.Published, 10)
		title := truncateText(item.Title, max(h.width-16, 1))
		b.WriteString(styles.MutedText.Render("  "+date+"  ") + styles.Text.Render(title))
	}
	return b.String()
}

func (h *homeView) renderFooter(styles Styles) string {
	if !h.content.HasCompany {
		return styles.FaintText.Render("  Showcase")
	}
	c := h.content.Company
	lines := []string{
		styles.Text.Bold(true).Render("  " + c.Name),
		styles.MutedText.Render("  " + truncateText(c.FullAddress(), h.width-4)),
	}
	var contact []string
	if c.Phone != "" {
		contact = append(contact, "Tel "+c.Phone)
	}
	if c.Email != "" {
		contact = append(contact, c.Email)
	}
	if len(contact) > 0 {
		lines = append(lines, styles.MutedText.Render("  "+strings.Join(contact, " · ")))
	}
	return strings.Join(lines, "\n")
}

func dots(styles Styles, n, cur int) string {
	if n <= 1 {
		return ""
	}
	parts := make([]string, n)
	for i := range parts {
		if i == cur {
			parts[i] = styles.Text.Render("●")
		} else {
			parts[i] = styles.FaintText.Render("○")
		}
	}
	return strings.Join(parts, styles.Text.Render(" "))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/showcase/internal/backdrop"
	"github.com/five82/showcase/internal/carousel"
	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/layout"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/state"
)

// Page is the screen currently shown.
type Page int

const (
	PageHome Page = iota
	PageList
	PageDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Pages     site.PageFetcher
	Details   site.DetailFetcher
	Store     *state.Store
	Config    config.Config
	Logger    *log.Logger
	ThemeName string
	Autoplay  bool
	PrefsPath string
	Start     site.Resource // empty opens the home page
	PollTick  time.Duration
	Settle    time.Duration // resize coalescing window; zero uses layout.DefaultSettle
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	pages     site.PageFetcher
	details   site.DetailFetcher
	store     *state.Store
	config    config.Config
	logger    *log.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	watcher  layout.Watcher
	width    int
	height   int
	ready    bool
	showHelp bool
	autoplay bool

	// Data state
	snapshot state.Snapshot
	version  uint64

	// Pages
	current  Page
	previous Page
	backdrop *backdrop.Backdrop
	home     *homeView
	list     *listView
	detail   *detailView
	start    site.Resource
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	settle := opts.Settle
	if settle == 0 {
		settle = layout.DefaultSettle
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	bd, err := backdrop.NewBackdrop(backdrop.DefaultColor, backdrop.DefaultTransition)
	if err != nil {
		panic(err)
	}

	cfg := opts.Config
	if cfg.PageSize <= 0 {
		cfg.PageSize = 12
	}

	home := newHomeView(bd, logger)
	home.newsCount = cfg.HomeNewsCount

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		pages:     opts.Pages,
		details:   opts.Details,
		store:     opts.Store,
		config:    cfg,
		logger:    logger,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		watcher:   layout.NewWatcher(settle),
		autoplay:  opts.Autoplay,
		backdrop:  bd,
		home:      home,
		start:     opts.Start,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.watcher, cmd = m.watcher.Update(msg)
		cmds = append(cmds, cmd)
		if !m.ready {
			m.ready = true
			cmds = append(cmds, m.mountInitial())
		} else {
			cmds = append(cmds, m.relayout())
		}
		return m, tea.Batch(cmds...)

	case layout.SettledMsg:
		before := m.watcher.Class()
		var cmd tea.Cmd
		m.watcher, cmd = m.watcher.Update(msg)
		if m.watcher.Class() != before {
			m.logger.Debug("size class changed", "from", before, "to", m.watcher.Class(), "width_px", m.watcher.Width())
		}
		return m, tea.Batch(cmd, m.relayout())

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.applySnapshot(msg)

	case carousel.TickMsg, carousel.TransitionDoneMsg:
		if m.current != PageHome {
			return m, nil
		}
		return m, m.home.update(msg)

	case backdropFrameMsg:
		if m.current != PageHome || m.backdrop.Settled(time.Now()) {
			m.home.framing = false
			return m, nil
		}
		return m, backdropFrameCmd()

	case pageLoadedMsg:
		if m.list == nil {
			return m, nil
		}
		return m, m.list.loaded(msg)

	case detailLoadedMsg:
		if m.detail == nil {
			return m, nil
		}
		m.detail.loaded(msg, m.theme, m.bodyWidth())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

func (m Model) bodyWidth() int { return max(m.width, 1) }

// bodyHeight is the terminal height minus the header and footer rows.
func (m Model) bodyHeight() int { return max(m.height-2, 1) }

func (m *Model) mountInitial() tea.Cmd {
	if m.start != "" {
		return m.openList(m.start)
	}
	return m.openHome()
}

// relayout pushes the current geometry into the active page.
func (m *Model) relayout() tea.Cmd {
	cfg := m.watcher.Config()
	switch m.current {
	case PageHome:
		return m.home.resize(m.bodyWidth(), m.bodyHeight(), cfg, m.theme)
	case PageList:
		if m.list != nil {
			return m.list.resize(m.bodyWidth(), m.bodyHeight(), m.theme)
		}
	case PageDetail:
		if m.detail != nil {
			m.detail.resize(m.bodyWidth(), m.bodyHeight(), m.theme)
		}
	}
	return nil
}

// leave tears down the active page. A list kept alive under a detail page is
// torn down with it.
func (m *Model) leave() {
	switch m.current {
	case PageHome:
		m.home.unmount()
	case PageList, PageDetail:
		if m.list != nil {
			m.list.unmount()
		}
	}
}

func (m *Model) openHome() tea.Cmd {
	if m.current == PageHome && m.home.mounted {
		return nil
	}
	m.leave()
	m.previous = m.current
	m.current = PageHome
	m.list = nil
	m.detail = nil
	if err := m.home.mount(m.autoplay); err != nil {
		m.logger.Error("home mount failed", "error", err)
	}
	cmd := m.home.resize(m.bodyWidth(), m.bodyHeight(), m.watcher.Config(), m.theme)
	if m.snapshot.HasContent {
		cmd = tea.Batch(cmd, m.home.setContent(m.snapshot.Content, m.theme))
	}
	return cmd
}

func (m *Model) openList(resource site.Resource) tea.Cmd {
	if m.current == PageList && m.list != nil && m.list.resource == resource {
		return nil
	}
	m.leave()
	m.previous = m.current
	m.current = PageList
	m.detail = nil
	m.list = newListView(m.ctx, m.pages, resource, m.config.PageSize, m.logger)
	m.list.resize(m.bodyWidth(), m.bodyHeight(), m.theme)
	return m.list.mount()
}

// openDetail shows one item. A list stays mounted underneath so going back
// returns to the same scroll position.
func (m *Model) openDetail(resource site.Resource, id int64) tea.Cmd {
	if m.details == nil {
		return nil
	}
	switch m.current {
	case PageHome:
		m.home.unmount()
		m.previous = PageHome
	case PageList:
		m.previous = PageList
	}
	m.current = PageDetail
	m.detail = newDetailView(resource, id)
	m.detail.resize(m.bodyWidth(), m.bodyHeight(), m.theme)
	return m.detail.load(m.ctx, m.details)
}

// back returns from a detail page to where it was opened, and from a list to
// the home page.
func (m *Model) back() tea.Cmd {
	switch m.current {
	case PageDetail:
		m.detail = nil
		if m.previous == PageList && m.list != nil {
			m.current = PageList
			m.previous = PageDetail
			return m.list.resize(m.bodyWidth(), m.bodyHeight(), m.theme)
		}
		return m.openHome()
	case PageList:
		return m.openHome()
	}
	return nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, m.relayout()

	case key.Matches(msg, m.keys.Autoplay):
		m.autoplay = !m.autoplay
		m.savePrefs()
		if m.current == PageHome {
			return m, m.home.setAutoplay(m.autoplay)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m, m.back()

	case key.Matches(msg, m.keys.Home):
		return m, m.openHome()

	case key.Matches(msg, m.keys.Games):
		return m, m.openList(site.ResourceGames)

	case key.Matches(msg, m.keys.News):
		return m, m.openList(site.ResourceNews)
	}

	switch m.current {
	case PageHome:
		return m.handleHomeKey(msg)
	case PageList:
		return m.handleListKey(msg)
	case PageDetail:
		if m.detail != nil {
			return m, m.detail.update(msg)
		}
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.home
	switch {
	case key.Matches(msg, m.keys.Down):
		return m, h.scrollBy(1)
	case key.Matches(msg, m.keys.Up):
		return m, h.scrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		return m, h.scrollBy(h.height / 2)
	case key.Matches(msg, m.keys.PageUp):
		return m, h.scrollBy(-h.height / 2)
	case key.Matches(msg, m.keys.Top):
		return m, h.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m, h.scrollTo(h.maxScroll())
	case key.Matches(msg, m.keys.Right):
		h.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		h.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if card, ok := h.focusedCard(); ok {
			return m, m.openDetail(site.ResourceGames, card.ID)
		}
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.list
	if l == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		return m, l.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		return m, l.moveSelection(-1)
	case key.Matches(msg, m.keys.PageDown):
		return m, l.moveSelection(max(l.height/itemRows, 1))
	case key.Matches(msg, m.keys.PageUp):
		return m, l.moveSelection(-max(l.height/itemRows, 1))
	case key.Matches(msg, m.keys.Top):
		return m, l.moveSelection(-l.selected)
	case key.Matches(msg, m.keys.Bottom):
		return m, l.moveSelection(len(l.items()) - 1 - l.selected)
	case key.Matches(msg, m.keys.Retry):
		return m, l.retry()
	case key.Matches(msg, m.keys.Open):
		if item, ok := l.selectedItem(); ok {
			return m, m.openDetail(l.resource, item.ID)
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		delta = 3
	case tea.MouseButtonWheelUp:
		delta = -3
	default:
		return m, nil
	}
	switch m.current {
	case PageHome:
		return m, m.home.scrollBy(delta)
	case PageList:
		if m.list != nil {
			return m, m.list.scrollBy(delta)
		}
	case PageDetail:
		if m.detail != nil {
			m.detail.scrollBy(delta)
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.current == PageHome {
		m.home.bounce()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.version == m.version && m.version != 0 {
		m.snapshot.LastUpdated = msg.snapshot.LastUpdated
		return m, nil
	}
	m.version = msg.version
	m.snapshot = msg.snapshot
	if m.current != PageHome || !m.snapshot.HasContent {
		return m, nil
	}
	return m, m.home.setContent(m.snapshot.Content, m.theme)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Autoplay: m.autoplay}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	version  uint64
}

type backdropFrameMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{version: store.Version(), snapshot: store.Snapshot()}
	}
}

func backdropFrameCmd() tea.Cmd {
	return tea.Tick(BackdropFrame, func(time.Time) tea.Msg {
		return backdropFrameMsg{}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if m.home != nil {
		m.home.unmount()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// renderBody renders the active page between the header and footer.
func (m Model) renderBody() string {
	spin := m.spinner.View()
	switch m.current {
	case PageHome:
		bg := m.backdrop.ColorAt(time.Now())
		styles := m.theme.Styles().OnBackdrop(bg)
		return m.home.view(styles, newPaint(bg), m.snapshot, spin)
	case PageList:
		if m.list != nil {
			return m.fill(m.list.view(m.theme.Styles(), spin))
		}
	case PageDetail:
		if m.detail != nil {
			return m.fill(m.detail.view(m.theme.Styles(), spin))
		}
	}
	return m.fill("")
}

// fill sizes page content to the body area on the theme background.
func (m Model) fill(content string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.bodyWidth()).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(content)
}

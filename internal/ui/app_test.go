package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/state"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Pages:     &fakePages{totalPages: 3},
		Details:   &fakeDetails{},
		Store:     &state.Store{},
		Config:    config.Defaults(),
		Logger:    quietLogger(),
		ThemeName: "Paper",
		Autoplay:  true,
		PrefsPath: path,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, path
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsOnHome(t *testing.T) {
	m, _ := newTestModel(t)
	if m.current != PageHome {
		t.Fatalf("current = %v, want home", m.current)
	}
	if !m.backdrop.Held() {
		t.Fatalf("home should hold the backdrop")
	}
	if view := m.View(); !strings.Contains(view, "SHOWCASE") {
		t.Fatalf("view should include the header")
	}
}

func TestModelListDetailRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := updateCmd(t, m, runes("2"))
	if m.current != PageList || m.list == nil || m.list.resource != site.ResourceGames {
		t.Fatalf("pressing 2 should open the games list")
	}
	if m.backdrop.Held() {
		t.Fatalf("leaving home should release the backdrop")
	}
	if cmd == nil {
		t.Fatalf("opening a list should load its first page")
	}
	m = update(t, m, cmd())
	if got := len(m.list.items()); got != 12 {
		t.Fatalf("list items = %d, want 12", got)
	}

	m = update(t, m, runes("j"))
	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != PageDetail || m.detail == nil || m.detail.id != 2 {
		t.Fatalf("enter should open the selected item")
	}
	m = update(t, m, cmd())
	if m.detail.item.ID != 2 {
		t.Fatalf("detail item = %d, want 2", m.detail.item.ID)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != PageList || m.list == nil {
		t.Fatalf("esc from a detail opened from the list should return to it")
	}
	if got := len(m.list.items()); got != 12 || m.list.selected != 1 {
		t.Fatalf("list state lost: items=%d selected=%d", got, m.list.selected)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != PageHome || m.list != nil {
		t.Fatalf("esc from the list should return home")
	}
	if !m.backdrop.Held() {
		t.Fatalf("returning home should reacquire the backdrop")
	}
}

func TestModelSavesPreferences(t *testing.T) {
	m, path := newTestModel(t)

	m = update(t, m, runes("T"))
	if m.theme.Name != "Ink" {
		t.Fatalf("theme = %q, want Ink", m.theme.Name)
	}
	m = update(t, m, runes("p"))
	if m.autoplay {
		t.Fatalf("p should toggle autoplay off")
	}

	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Ink" || p.Autoplay {
		t.Fatalf("saved prefs = %+v, want Ink with autoplay off", p)
	}
}

func TestModelAppliesSnapshots(t *testing.T) {
	m, _ := newTestModel(t)

	var store state.Store
	content := testContent(7, 2)
	store.Update(&content, nil)
	m = update(t, m, fetchSnapshotCmd(&store)())
	if !m.home.hasContent || len(m.home.content.Featured) != 7 {
		t.Fatalf("snapshot content not applied to home")
	}

	store.Update(nil, errors.New("dial tcp: connection refused"))
	store.Update(nil, errors.New("dial tcp: connection refused"))
	m = update(t, m, fetchSnapshotCmd(&store)())
	if !m.snapshot.IsOffline() {
		t.Fatalf("two failures should mark the snapshot offline")
	}
	if !m.home.hasContent {
		t.Fatalf("failed refreshes must keep the last content")
	}
	if header := m.renderHeader(); !strings.Contains(header, "OFFLINE") {
		t.Fatalf("header = %q, want OFFLINE badge", header)
	}
}

func TestModelQuitReleasesBackdrop(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := updateCmd(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q returned %T, want tea.QuitMsg", cmd())
	}
	if m.backdrop.Held() {
		t.Fatalf("quitting should release the backdrop")
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("dial tcp 127.0.0.1:4000: connect: connection refused"), "OFFLINE"},
		{errors.New("dial tcp: lookup api.invalid: no such host"), "HOST NOT FOUND"},
		{errors.New("context deadline exceeded"), "TIMEOUT"},
		{&site.StatusError{Path: "/games", StatusCode: 502}, "HTTP 502"},
		{&site.APIError{Code: "NOT_FOUND"}, "API NOT_FOUND"},
		{errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyConnectionError(tc.err); got != tc.want {
			t.Fatalf("classifyConnectionError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

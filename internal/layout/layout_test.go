package layout

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  SizeClass
	}{
		{name: "zero", width: 0, want: Mobile},
		{name: "negative treated as zero", width: -10, want: Mobile},
		{name: "phone", width: 500, want: Mobile},
		{name: "just below tablet", width: 639, want: Mobile},
		{name: "tablet threshold", width: 640, want: Tablet},
		{name: "just below desktop", width: 1023, want: Tablet},
		{name: "desktop threshold", width: 1024, want: Desktop},
		{name: "wide", width: 4000, want: Desktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.width))
		})
	}
}

func TestResolveMobileEntry(t *testing.T) {
	class, cfg := ForWidth(500)
	require.Equal(t, Mobile, class)
	assert.Equal(t, Config{
		CardWidth: 110, CardHeight: 160, CardGap: 8, VisibleCount: 3,
		BannerHeight: 120, HeroHeightPercent: 40,
	}, cfg)
}

func TestResolveIsTotal(t *testing.T) {
	for _, c := range []SizeClass{Mobile, Tablet, Desktop} {
		cfg := Resolve(c)
		assert.GreaterOrEqual(t, cfg.VisibleCount, 1, "class %v", c)
		assert.Positive(t, cfg.CardWidth, "class %v", c)
	}
}

func TestResolvePanicsOnUnknownClass(t *testing.T) {
	assert.Panics(t, func() { Resolve(SizeClass(42)) })
}

func TestSizeClassString(t *testing.T) {
	assert.Equal(t, "mobile", Mobile.String())
	assert.Equal(t, "tablet", Tablet.String())
	assert.Equal(t, "desktop", Desktop.String())
	assert.Equal(t, "SizeClass(9)", SizeClass(9).String())
}

func TestConfigCells(t *testing.T) {
	w, h := Resolve(Desktop).CardCells()
	assert.Equal(t, 27, w)
	assert.Equal(t, 18, h)
	assert.Equal(t, 2, Resolve(Desktop).GapCells())
	assert.Equal(t, 1, Resolve(Mobile).GapCells())
	assert.Equal(t, 16, Resolve(Desktop).BannerRows())
	assert.Equal(t, 28, Resolve(Desktop).HeroRows(40))
}

func TestWatcherClassifiesFirstSizeImmediately(t *testing.T) {
	w := NewWatcher(DefaultSettle)
	w, cmd := w.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	assert.Nil(t, cmd)
	assert.True(t, w.Mounted())
	assert.Equal(t, 560, w.Width())
	assert.Equal(t, Mobile, w.Class())
	assert.Equal(t, Resolve(Mobile), w.Config())
}

func TestWatcherCoalescesResizeBurst(t *testing.T) {
	w := NewWatcher(DefaultSettle)
	w, _ = w.Update(tea.WindowSizeMsg{Width: 70})

	var cmds []tea.Cmd
	for _, cols := range []int{90, 110, 140} {
		var cmd tea.Cmd
		w, cmd = w.Update(tea.WindowSizeMsg{Width: cols})
		require.NotNil(t, cmd)
		cmds = append(cmds, cmd)
	}
	assert.Equal(t, Mobile, w.Class(), "class must not change before the burst settles")

	// Deliver settle messages out of order; only the last one applies.
	last := cmds[len(cmds)-1]()
	for _, cmd := range cmds[:len(cmds)-1] {
		w, _ = w.Update(cmd())
		assert.Equal(t, Mobile, w.Class())
	}
	w, _ = w.Update(last)
	assert.Equal(t, Desktop, w.Class())
	assert.Equal(t, 1120, w.Width())
}

func TestWatcherIgnoresOtherWatchersMessages(t *testing.T) {
	a := NewWatcher(DefaultSettle)
	b := NewWatcher(DefaultSettle)
	a, _ = a.Update(tea.WindowSizeMsg{Width: 70})
	b, _ = b.Update(tea.WindowSizeMsg{Width: 70})

	_, cmd := b.Update(tea.WindowSizeMsg{Width: 200})
	a, _ = a.Update(cmd())
	assert.Equal(t, Mobile, a.Class())
}

func TestWatcherWithoutSettleAppliesEveryResize(t *testing.T) {
	w := NewWatcher(0)
	w, _ = w.Resize(500)
	w, cmd := w.Resize(800)
	assert.Nil(t, cmd)
	assert.Equal(t, Tablet, w.Class())

	w = NewWatcher(-time.Second)
	w, _ = w.Resize(2000)
	assert.Equal(t, Desktop, w.Class())
}

package backdrop

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := colorful.Hex(s)
	require.NoError(t, err)
	return c
}

func TestInterpolateClamps(t *testing.T) {
	colors := []colorful.Color{hex(t, "#ff0000"), hex(t, "#00ff00"), hex(t, "#0000ff")}
	offsets := []float64{100, 200, 300}

	for _, scroll := range []float64{-50, 0, 99.9, 100} {
		assert.Equal(t, "#ff0000", Interpolate(scroll, offsets, colors).Hex(), scroll)
	}
	for _, scroll := range []float64{300, 301, 1e9} {
		assert.Equal(t, "#0000ff", Interpolate(scroll, offsets, colors).Hex(), scroll)
	}
}

func TestInterpolateBlendsBetweenBrackets(t *testing.T) {
	a, b := hex(t, "#fffdfa"), hex(t, "#181818")
	colors := []colorful.Color{a, a, b, a}
	offsets := []float64{0, 400, 800, 1200}

	assert.Equal(t, a.Hex(), Interpolate(200, offsets, colors).Hex())
	assert.Equal(t, b.Hex(), Interpolate(800, offsets, colors).Hex())

	mid := Interpolate(600, offsets, colors)
	assert.True(t, mid.AlmostEqualRgb(a.BlendLinearRgb(b, 0.5)))
	assert.NotEqual(t, a.Hex(), mid.Hex())
	assert.NotEqual(t, b.Hex(), mid.Hex())
}

func TestInterpolateCoincidentOffsets(t *testing.T) {
	colors := []colorful.Color{hex(t, "#000000"), hex(t, "#ffffff"), hex(t, "#ff0000"), hex(t, "#0000ff")}
	offsets := []float64{0, 50, 50, 100}
	assert.Equal(t, "#ffffff", Interpolate(50, offsets, colors).Hex())
	assert.True(t, Interpolate(75, offsets, colors).AlmostEqualRgb(colors[2].BlendLinearRgb(colors[3], 0.5)))
}

func TestMapperRemeasure(t *testing.T) {
	m, err := NewMapper(SectionColors...)
	require.NoError(t, err)
	assert.False(t, m.Measured())
	assert.Equal(t, "#fffdfa", m.ColorAt(5000).Hex())

	require.Error(t, m.Remeasure([]float64{0, 10}))
	require.Error(t, m.Remeasure([]float64{0, 30, 20, 40}))

	require.NoError(t, m.Remeasure([]float64{0, 30, 60, 90}))
	assert.Equal(t, "#181818", m.ColorAt(60).Hex())

	require.NoError(t, m.Remeasure([]float64{0, 10, 20, 30}))
	assert.Equal(t, "#fffdfa", m.ColorAt(60).Hex())
}

func TestNewMapperRejectsBadHex(t *testing.T) {
	_, err := NewMapper("#fffdfa", "nope")
	assert.Error(t, err)
	_, err = NewMapper()
	assert.Error(t, err)
}

func TestBackdropLeaseLifecycle(t *testing.T) {
	b, err := NewBackdrop(DefaultColor, DefaultTransition)
	require.NoError(t, err)
	clock := time.Unix(1000, 0)
	b.now = func() time.Time { return clock }

	lease, err := b.Acquire()
	require.NoError(t, err)
	_, err = b.Acquire()
	require.ErrorIs(t, err, ErrHeld)

	dark := hex(t, "#181818")
	require.True(t, lease.Apply(dark))
	assert.Equal(t, DefaultColor, b.ColorAt(clock).Hex())
	half := b.ColorAt(clock.Add(DefaultTransition / 2))
	assert.NotEqual(t, DefaultColor, half.Hex())
	assert.NotEqual(t, "#181818", half.Hex())
	assert.Equal(t, "#181818", b.ColorAt(clock.Add(DefaultTransition)).Hex())
	assert.True(t, b.Settled(clock.Add(DefaultTransition)))

	clock = clock.Add(time.Second)
	lease.Release()
	lease.Release()
	assert.False(t, b.Held())
	assert.False(t, lease.Apply(dark), "released lease is inert")
	assert.Equal(t, DefaultColor, b.Target().Hex())
	assert.Equal(t, DefaultColor, b.ColorAt(clock.Add(DefaultTransition)).Hex())

	next, err := b.Acquire()
	require.NoError(t, err)
	next.Release()
}

func TestBackdropWithoutTransition(t *testing.T) {
	b, err := NewBackdrop("#000000", 0)
	require.NoError(t, err)
	lease, err := b.Acquire()
	require.NoError(t, err)
	lease.Apply(hex(t, "#ffffff"))
	assert.Equal(t, "#ffffff", b.ColorAt(time.Now()).Hex())
	lease.Release()
	assert.Equal(t, "#000000", b.ColorAt(time.Now()).Hex())
}

package pixel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPalette() *Palette {
	return NewPalette([]Color{
		RGBA(0, 0, 0, 1),
		RGBA(1, 1, 1, 1),
		RGBA(1, 0, 0, 1),
		RGBA(0, 0, 0, 0),
	})
}

func TestQuantizeExactMatch(t *testing.T) {
	p := testPalette()
	for i, c := range p.Colors() {
		got, err := p.Quantize(c)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}

func TestQuantizeFirstMinimumWins(t *testing.T) {
	p := NewPalette([]Color{RGBA(0, 0, 0, 1), RGBA(1, 1, 1, 1), RGBA(0, 0, 0, 1)})
	got, err := p.Quantize(RGBA(0.1, 0.1, 0.1, 1))
	require.NoError(t, err)
	require.Equal(t, 0, got)

	// equidistant from both ends
	got, err = p.Quantize(RGBA(0.5, 0.5, 0.5, 1))
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestQuantizeAlphaDominates(t *testing.T) {
	p := NewPalette([]Color{RGBA(1, 1, 1, 1), RGBA(0, 0, 0, 0)})
	// red distance to white is sqrt(2), to transparent black is sqrt(1+4)
	got, err := p.Quantize(RGBA(1, 0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 0, got)

	// unweighted alpha would pick white here
	got, err = p.Quantize(RGBA(1, 1, 1, 0.1))
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestQuantizeSkipsExcluded(t *testing.T) {
	p := testPalette()
	require.NoError(t, p.Exclude(0, true))
	got, err := p.Quantize(RGBA(0, 0, 0, 1))
	require.NoError(t, err)
	require.NotEqual(t, 0, got)
	require.Equal(t, 4, p.Len())

	for i := 1; i < p.Len(); i++ {
		require.NoError(t, p.Exclude(i, true))
	}
	_, err = p.Quantize(RGBA(0, 0, 0, 1))
	require.ErrorIs(t, err, ErrEmptyPalette)
}

func TestEmptyPalette(t *testing.T) {
	_, err := NewPalette(nil).Quantize(RGBA(0, 0, 0, 1))
	if !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("got %v, want ErrEmptyPalette", err)
	}
}

func TestPaletteAccessors(t *testing.T) {
	p := NewSizedPalette(2)
	c, err := p.Get(1)
	require.NoError(t, err)
	require.Equal(t, RGBA(0, 0, 0, 1), c)

	require.NoError(t, p.Set(1, RGBA(1, 0, 0, 0.5)))
	p.ClearAlpha()
	c, _ = p.Get(1)
	require.Equal(t, RGBA(1, 0, 0, 1), c)

	_, err = p.Get(2)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.ErrorIs(t, p.Set(-1, c), ErrOutOfBounds)
}

func TestLabMetric(t *testing.T) {
	p := NewPalette([]Color{RGBA(0, 0, 0, 1), RGBA(1, 1, 1, 1)}).WithMetric(MetricLab)
	got, err := p.Quantize(RGBA(0.9, 0.9, 0.9, 1))
	require.NoError(t, err)
	require.Equal(t, 1, got)

	_, err = MetricByName("hsv")
	require.Error(t, err)
	m, err := MetricByName("lab")
	require.NoError(t, err)
	require.Zero(t, m(RGBA(0.2, 0.3, 0.4, 1), RGBA(0.2, 0.3, 0.4, 1)))
}

func TestWithMetricCopies(t *testing.T) {
	base := NewPalette([]Color{RGBA(0, 0, 0, 1), RGBA(1, 1, 1, 1)})
	lab := base.WithMetric(MetricLab)

	require.NoError(t, lab.Set(0, RGBA(1, 0, 0, 1)))
	require.NoError(t, lab.Exclude(1, true))

	c, err := base.Get(0)
	require.NoError(t, err)
	require.Equal(t, RGBA(0, 0, 0, 1), c)
	require.False(t, base.Excluded(1))
	require.True(t, lab.Excluded(1))
}

package rates

import (
	"benritz/bonds/internal/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVasicek(t *testing.T, seed uint64) *VasicekDiscountRate {
	t.Helper()
	m, err := NewVasicekDiscountRate(0.1, 0.05, 0.02, 0.03, 5, 0.25, NewSeededSource(seed))
	require.NoError(t, err)
	return m
}

func TestDiscountRates_EmptyAndSingleton(t *testing.T) {
	models := map[string]DiscountRateModel{
		"constant": ConstantDiscountRate{Rate: 0.05},
		"linear":   LinearDiscountRate{InitialRate: 0.03, RateChangePerYear: 0.01},
		"vasicek":  newVasicek(t, 1),
	}

	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, m.DiscountRates(nil))
			assert.Empty(t, m.DiscountRates([]float64{}))
			assert.Len(t, m.DiscountRates([]float64{2.5}), 1)
		})
	}
}

func TestConstantDiscountRate(t *testing.T) {
	m := ConstantDiscountRate{Rate: 0.05}
	assert.Equal(t, []float64{0.05, 0.05, 0.05, 0.05}, m.DiscountRates([]float64{0, 1, 2, 3}))
}

func TestLinearDiscountRate(t *testing.T) {
	m := LinearDiscountRate{InitialRate: 0.03, RateChangePerYear: 0.01}
	times := []float64{0, 1, 2, 3, 7.5}

	got := m.DiscountRates(times)
	for i, tm := range times {
		assert.Equal(t, 0.03+0.01*tm, got[i])
	}
}

func TestVasicek_PathShape(t *testing.T) {
	m := newVasicek(t, 7)

	times, path := m.Path()
	require.Len(t, times, 21)
	require.Len(t, path, 21)
	assert.Equal(t, 0.0, times[0])
	assert.InDelta(t, 5.0, times[20], 1e-12)
	assert.Equal(t, 0.03, path[0])
}

func TestVasicek_InterpolatesKnotsExactly(t *testing.T) {
	m := newVasicek(t, 7)
	times, path := m.Path()

	got := m.DiscountRates(times)
	for i := range times {
		assert.InDelta(t, path[i], got[i], 1e-15)
	}

	mid := m.DiscountRates([]float64{0.125})[0]
	assert.InDelta(t, (path[0]+path[1])/2, mid, 1e-12)
}

func TestVasicek_ClampsOutsideRange(t *testing.T) {
	m := newVasicek(t, 11)

	assert.Equal(t, m.DiscountRates([]float64{0})[0], m.DiscountRates([]float64{-3})[0])
	assert.Equal(t, m.DiscountRates([]float64{5})[0], m.DiscountRates([]float64{12})[0])
}

func TestVasicek_SeededIsRepeatable(t *testing.T) {
	a := newVasicek(t, 42)
	b := newVasicek(t, 42)
	c := newVasicek(t, 43)

	times := []float64{0.5, 1.3, 2, 4.9}
	assert.Equal(t, a.DiscountRates(times), b.DiscountRates(times))
	assert.NotEqual(t, a.DiscountRates(times), c.DiscountRates(times))
}

func TestVasicek_DoesNotResimulate(t *testing.T) {
	m := newVasicek(t, 3)
	times := []float64{1, 2, 3}
	assert.Equal(t, m.DiscountRates(times), m.DiscountRates(times))
}

func TestVasicek_ShortHorizonSingleKnot(t *testing.T) {
	m, err := NewVasicekDiscountRate(0.1, 0.05, 0.02, 0.03, 0.1, 0.25, NewSeededSource(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.03, 0.03}, m.DiscountRates([]float64{0, 2}))
}

func TestVasicek_InvalidStep(t *testing.T) {
	_, err := NewVasicekDiscountRate(0.1, 0.05, 0.02, 0.03, 5, 0, nil)
	assert.ErrorIs(t, err, types.ErrInvalidTimeStep)

	_, err = NewVasicekDiscountRate(0.1, 0.05, 0.02, 0.03, -1, 0.25, nil)
	assert.ErrorIs(t, err, types.ErrInvalidMaturity)
}

func TestInterestRateModels(t *testing.T) {
	c := ConstantRate{AnnualRate: 0.03}
	assert.Equal(t, 0.03, c.Rate(0))
	assert.Equal(t, 0.03, c.Rate(10))

	v := TimeVaryingRate{InitialRate: 0.03, RateChangePerYear: 0.01}
	assert.Equal(t, 0.03, v.Rate(0))
	assert.Equal(t, 0.03+0.01, v.Rate(1))
	assert.Equal(t, 0.03+5*0.01, v.Rate(5))
}

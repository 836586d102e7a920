package rates

import (
	"benritz/bonds/internal/types"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// DiscountRateModel supplies an annualised discount (inflation) rate for each
// requested time. The returned slice has the same length as times.
type DiscountRateModel interface {
	DiscountRates(times []float64) []float64
}

// ConstantDiscountRate returns the same rate at every time.
type ConstantDiscountRate struct {
	Rate float64
}

func (m ConstantDiscountRate) DiscountRates(times []float64) []float64 {
	out := make([]float64, len(times))
	for i := range times {
		out[i] = m.Rate
	}
	return out
}

// LinearDiscountRate moves the rate by a fixed amount per year:
//
//	rate(t) = InitialRate + RateChangePerYear * t
type LinearDiscountRate struct {
	InitialRate       float64
	RateChangePerYear float64
}

func (m LinearDiscountRate) DiscountRates(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = m.InitialRate + m.RateChangePerYear*t
	}
	return out
}

// NormalSource draws standard normal variates. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// NewSeededSource returns a deterministic normal source for reproducible
// Vasicek paths.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// VasicekDiscountRate is a mean-reverting discount rate model. A single rate
// path is simulated once at construction and later queries interpolate
// linearly against it, clamping outside [0, MaxTime].
type VasicekDiscountRate struct {
	A       float64 // speed of mean reversion
	B       float64 // long-term mean rate
	Sigma   float64
	R0      float64
	MaxTime float64
	Dt      float64

	times []float64
	path  []float64
}

// NewVasicekDiscountRate simulates the rate path using Euler steps:
//
//	r[k] = r[k-1] + a*(b - r[k-1])*dt + sigma*sqrt(dt)*Z
//
// Parameters:
//
//	a:       Speed of mean reversion.
//	b:       Long-term mean rate.
//	sigma:   Volatility of the rate.
//	r0:      Rate at time 0.
//	maxTime: Last simulated time in years.
//	dt:      Simulation step in years.
//	src:     Normal variate source, seed it for a repeatable path.
func NewVasicekDiscountRate(a, b, sigma, r0, maxTime, dt float64, src NormalSource) (*VasicekDiscountRate, error) {
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("%w: dt=%v", types.ErrInvalidTimeStep, dt)
	}
	if maxTime < 0 || math.IsNaN(maxTime) {
		return nil, fmt.Errorf("%w: max time=%v", types.ErrInvalidMaturity, maxTime)
	}
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	steps := int(math.Floor(maxTime / dt))
	times := make([]float64, steps+1)
	path := make([]float64, steps+1)
	path[0] = r0

	sqrtDt := math.Sqrt(dt)
	for k := 1; k <= steps; k++ {
		times[k] = float64(k) * dt
		prev := path[k-1]
		path[k] = prev + a*(b-prev)*dt + sigma*sqrtDt*src.NormFloat64()
	}

	return &VasicekDiscountRate{
		A:       a,
		B:       b,
		Sigma:   sigma,
		R0:      r0,
		MaxTime: maxTime,
		Dt:      dt,
		times:   times,
		path:    path,
	}, nil
}

// Path returns copies of the simulated knot times and rates.
func (m *VasicekDiscountRate) Path() ([]float64, []float64) {
	return append([]float64(nil), m.times...), append([]float64(nil), m.path...)
}

func (m *VasicekDiscountRate) DiscountRates(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = m.interpolate(t)
	}
	return out
}

func (m *VasicekDiscountRate) interpolate(t float64) float64 {
	last := len(m.times) - 1

	if t <= m.times[0] {
		return m.path[0]
	}
	if t >= m.times[last] {
		return m.path[last]
	}

	// first knot strictly after t; t lies in [times[j-1], times[j])
	j := sort.Search(len(m.times), func(i int) bool { return m.times[i] > t })
	t0, t1 := m.times[j-1], m.times[j]
	r0, r1 := m.path[j-1], m.path[j]

	return r0 + (r1-r0)*(t-t0)/(t1-t0)
}

package rates

// InterestRateModel supplies the nominal annual rate used by the pricing
// formulas. It is separate from the discount model used for real values.
type InterestRateModel interface {
	Rate(t float64) float64
}

// ConstantRate is a flat nominal rate.
type ConstantRate struct {
	AnnualRate float64
}

func (r ConstantRate) Rate(float64) float64 {
	return r.AnnualRate
}

// TimeVaryingRate is a nominal rate that changes linearly with time.
type TimeVaryingRate struct {
	InitialRate       float64
	RateChangePerYear float64
}

func (r TimeVaryingRate) Rate(t float64) float64 {
	return r.InitialRate + r.RateChangePerYear*t
}

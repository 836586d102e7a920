package types

import (
	"fmt"
	"slices"
)

type BondType string

var (
	FixedRate           BondType = "fixed-rate"
	ZeroCoupon          BondType = "zero-coupon"
	FloatingRate        BondType = "floating-rate"
	PartiallyAmortizing BondType = "partially-amortizing"
)

// ParseBondType maps a CLI or event name onto one of the known bond types.
func ParseBondType(s string) (BondType, error) {
	for _, t := range []BondType{FixedRate, ZeroCoupon, FloatingRate, PartiallyAmortizing} {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedBond, s)
}

// CashFlow is a single payment (positive) or outlay (negative) at Time years
// from purchase.
type CashFlow struct {
	Time   float64
	Amount float64
}

// Schedule is a sequence of cash flows ordered by strictly increasing time.
// A purchase, when tracked, is the negative entry at time 0.
type Schedule []CashFlow

func (s Schedule) Times() []float64 {
	times := make([]float64, len(s))
	for i, cf := range s {
		times[i] = cf.Time
	}
	return times
}

func (s Schedule) Amounts() []float64 {
	amounts := make([]float64, len(s))
	for i, cf := range s {
		amounts[i] = cf.Amount
	}
	return amounts
}

// Sum adds up every amount in the schedule, outlays included.
func (s Schedule) Sum() float64 {
	total := 0.0
	for _, cf := range s {
		total += cf.Amount
	}
	return total
}

// Merge combines two schedules, adding together the amounts of entries that
// fall on the same time. The result is ordered by time.
func Merge(a, b Schedule) Schedule {
	byTime := make(map[float64]float64, len(a)+len(b))
	for _, cf := range a {
		byTime[cf.Time] += cf.Amount
	}
	for _, cf := range b {
		byTime[cf.Time] += cf.Amount
	}

	merged := make(Schedule, 0, len(byTime))
	for t, amount := range byTime {
		merged = append(merged, CashFlow{Time: t, Amount: amount})
	}
	slices.SortFunc(merged, func(x, y CashFlow) int {
		switch {
		case x.Time < y.Time:
			return -1
		case x.Time > y.Time:
			return 1
		}
		return 0
	})

	return merged
}

var (
	ErrInvalidFaceValue                  = fmt.Errorf("invalid face value")
	ErrInvalidMaturity                   = fmt.Errorf("invalid maturity")
	ErrInvalidPaymentFrequency           = fmt.Errorf("invalid payment frequency")
	ErrInvalidPrice                      = fmt.Errorf("invalid price")
	ErrInvalidTimeStep                   = fmt.Errorf("invalid simulation time step")
	ErrMissingDiscountModel              = fmt.Errorf("missing discount rate model")
	ErrMissingInterestRateModel          = fmt.Errorf("missing interest rate model")
	ErrDegenerateRate                    = fmt.Errorf("periodic rate outside the valid domain")
	ErrYieldToMaturityNoConvergence      = fmt.Errorf("Newton-Raphson failed to converge within max iterations")
	ErrYieldToMaturityDerivativeTooSmall = fmt.Errorf("Newton-Raphson failed (derivative is too small)")
	ErrUnsupportedBond                   = fmt.Errorf("unsupported bond")
	ErrUnsupportedParameter              = fmt.Errorf("unsupported sweep parameter")
	ErrDataUnavailable                   = fmt.Errorf("data unavailable")
)

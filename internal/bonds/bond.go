package bonds

import (
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

// Bond is implemented by each bond variant. Every variant generates its own
// cash-flow schedule and derives price and yield from it.
//
// Nothing derived from the terms is cached, so sweeps may rewrite coupon,
// tax, balloon or model fields between calls. The zero-coupon yield is the
// one exception, see NewZeroCoupon.
type Bond interface {
	Type() types.BondType
	Base() *Terms
	CashFlows() (types.Schedule, error)
	Price() (float64, error)
	Yield(marketPrice float64) (YieldResult, error)

	defaultConvention() Convention
}

// Terms are the attributes shared by every bond variant.
type Terms struct {
	FaceValue        float64
	Maturity         float64 // years
	PaymentFrequency int     // payments per year
	PurchasePrice    float64 // market price paid, 0 when no purchase is tracked

	// DiscountModel deflates cash flows to present value. Nil means nominal
	// cash flows are used unchanged.
	DiscountModel rates.DiscountRateModel
	// InterestRates is the nominal rate used by Price.
	InterestRates rates.InterestRateModel
	// Convention overrides the variant's present value convention.
	Convention Convention
}

func (t *Terms) Base() *Terms {
	return t
}

// Periods is the number of payment periods to maturity.
func (t *Terms) Periods() int {
	return int(t.Maturity * float64(t.PaymentFrequency))
}

// PeriodTime is the time in years of the k-th payment.
func (t *Terms) PeriodTime(k int) float64 {
	return float64(k) / float64(t.PaymentFrequency)
}

func (t *Terms) validate() error {
	if t.FaceValue <= 0 || math.IsNaN(t.FaceValue) {
		return fmt.Errorf("%w: %v", types.ErrInvalidFaceValue, t.FaceValue)
	}
	if t.PaymentFrequency <= 0 {
		return fmt.Errorf("%w: %d", types.ErrInvalidPaymentFrequency, t.PaymentFrequency)
	}
	if t.Maturity <= 0 || math.IsNaN(t.Maturity) || t.Periods() < 1 {
		return fmt.Errorf("%w: %v years at %d payments per year", types.ErrInvalidMaturity, t.Maturity, t.PaymentFrequency)
	}
	if t.PurchasePrice < 0 || math.IsNaN(t.PurchasePrice) {
		return fmt.Errorf("%w: %v", types.ErrInvalidPrice, t.PurchasePrice)
	}
	return nil
}

// withPurchase prefixes payments with the purchase outlay when a price is
// tracked.
func (t *Terms) withPurchase(payments types.Schedule) types.Schedule {
	if t.PurchasePrice <= 0 {
		return payments
	}
	s := make(types.Schedule, 0, len(payments)+1)
	s = append(s, types.CashFlow{Time: 0, Amount: -t.PurchasePrice})
	return append(s, payments...)
}

// price discounts the receivable flows of s at the nominal rate model,
// compounding at the payment frequency.
func (t *Terms) price(s types.Schedule) (float64, error) {
	if t.InterestRates == nil {
		return 0, types.ErrMissingInterestRateModel
	}

	f := float64(t.PaymentFrequency)
	price := 0.0
	for _, cf := range s {
		if cf.Time <= 0 {
			continue
		}
		r := t.InterestRates.Rate(cf.Time) / f
		if 1+r <= 0 {
			return 0, fmt.Errorf("%w: nominal rate %v at t=%v", types.ErrDegenerateRate, r*f, cf.Time)
		}
		price += cf.Amount / math.Pow(1+r, cf.Time*f)
	}

	return price, nil
}

// scheduleYield solves for the flat nominal annual rate at which the
// receivable flows of s are worth marketPrice.
func (t *Terms) scheduleYield(s types.Schedule, marketPrice, guess float64) (YieldResult, error) {
	f := float64(t.PaymentFrequency)
	return solveYield(marketPrice, guess, func(y float64) (float64, error) {
		r := y / f
		if 1+r <= 0 {
			return 0, fmt.Errorf("%w: yield %v", types.ErrDegenerateRate, y)
		}
		p := 0.0
		for _, cf := range s {
			if cf.Time > 0 {
				p += cf.Amount / math.Pow(1+r, cf.Time*f)
			}
		}
		return p, nil
	})
}

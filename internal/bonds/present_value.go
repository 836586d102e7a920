package bonds

import (
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

// Convention selects how discount rates are applied to a schedule.
type Convention int

const (
	// DefaultConvention defers to the bond variant.
	DefaultConvention Convention = iota
	// SimplePerPeriod discounts each flow from time zero at its own rate:
	//
	//	pv(t) = cf(t) * (1 + rate(t))^-t
	SimplePerPeriod
	// CumulativeProduct compounds period over period, each period at its own
	// short rate:
	//
	//	factor[i] = factor[i-1] / (1 + rate(t_i)/f),  pv(t_i) = cf(t_i) * factor[i]
	//
	// It matches SimplePerPeriod only for a flat rate.
	CumulativeProduct
)

func (c Convention) String() string {
	switch c {
	case SimplePerPeriod:
		return "simple"
	case CumulativeProduct:
		return "cumulative"
	}
	return "default"
}

// PresentValue deflates a schedule with a discount rate model. A nil model
// returns a copy of the schedule unchanged. DefaultConvention is treated as
// SimplePerPeriod.
//
// Under CumulativeProduct flows at time zero are not discounted, so a leading
// purchase outlay keeps a factor of 1.
func PresentValue(s types.Schedule, model rates.DiscountRateModel, frequency int, c Convention) types.Schedule {
	out := make(types.Schedule, len(s))
	copy(out, s)

	if model == nil || len(s) == 0 {
		return out
	}

	discountRates := model.DiscountRates(s.Times())

	switch c {
	case CumulativeProduct:
		f := float64(frequency)
		factor := 1.0
		for i := range out {
			if out[i].Time > 0 {
				factor /= 1 + discountRates[i]/f
			}
			out[i].Amount *= factor
		}
	default:
		for i := range out {
			out[i].Amount *= math.Pow(1+discountRates[i], -out[i].Time)
		}
	}

	return out
}

// ConventionFor resolves the present value convention used for a bond.
func ConventionFor(b Bond) Convention {
	if c := b.Base().Convention; c != DefaultConvention {
		return c
	}
	return b.defaultConvention()
}

// PresentValues is the bond's cash-flow schedule deflated by its own discount
// model.
func PresentValues(b Bond) (types.Schedule, error) {
	s, err := b.CashFlows()
	if err != nil {
		return nil, err
	}
	t := b.Base()
	return PresentValue(s, t.DiscountModel, t.PaymentFrequency, ConventionFor(b)), nil
}

// Profit sums the cash flows, purchase included, either nominal or deflated
// by the bond's discount model.
func Profit(b Bond, presentValue bool) (float64, error) {
	if !presentValue {
		s, err := b.CashFlows()
		if err != nil {
			return 0, err
		}
		return s.Sum(), nil
	}

	s, err := PresentValues(b)
	if err != nil {
		return 0, err
	}
	return s.Sum(), nil
}

// AfterTaxProfit is Profit for a zero-coupon bond net of tax on its phantom
// income.
func AfterTaxProfit(b *ZeroCoupon, presentValue bool) (float64, error) {
	s, err := b.AfterTaxCashFlows()
	if err != nil {
		return 0, err
	}
	if presentValue {
		s = PresentValue(s, b.DiscountModel, b.PaymentFrequency, ConventionFor(b))
	}
	return s.Sum(), nil
}

// AdjustForInflation deflates the bond's nominal value by
// (1 + inflationRate)^maturity. The nominal value is the computed price, or
// the face value when the bond has no interest rate model to price with.
func AdjustForInflation(b Bond, inflationRate float64) (float64, error) {
	if 1+inflationRate <= 0 {
		return 0, fmt.Errorf("%w: inflation rate %v", types.ErrDegenerateRate, inflationRate)
	}

	t := b.Base()
	nominal := t.FaceValue
	if t.InterestRates != nil {
		p, err := b.Price()
		if err != nil {
			return 0, err
		}
		nominal = p
	}

	return nominal / math.Pow(1+inflationRate, t.Maturity), nil
}

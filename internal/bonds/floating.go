package bonds

import (
	"benritz/bonds/internal/types"
)

// FloatingRate pays a coupon that resets each period to the reference rate
// plus a spread. The bond's discount model doubles as the reference rate.
type FloatingRate struct {
	Terms
	Spread float64 // decimal, e.g. 0.013 for 130bp
}

func NewFloatingRate(terms Terms, spread float64) (*FloatingRate, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	return &FloatingRate{Terms: terms, Spread: spread}, nil
}

// SpreadFromBasisPoints converts a quoted spread in basis points to a decimal.
func SpreadFromBasisPoints(bps float64) float64 {
	return bps / 10_000
}

func (b *FloatingRate) Type() types.BondType {
	return types.FloatingRate
}

func (b *FloatingRate) defaultConvention() Convention {
	return CumulativeProduct
}

// CouponRates are the annual coupon rates fixed at each payment time.
func (b *FloatingRate) CouponRates() ([]float64, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if b.DiscountModel == nil {
		return nil, types.ErrMissingDiscountModel
	}

	n := b.Periods()
	times := make([]float64, n)
	for k := 1; k <= n; k++ {
		times[k-1] = b.PeriodTime(k)
	}

	rates := b.DiscountModel.DiscountRates(times)
	for i := range rates {
		rates[i] += b.Spread
	}
	return rates, nil
}

func (b *FloatingRate) CashFlows() (types.Schedule, error) {
	couponRates, err := b.CouponRates()
	if err != nil {
		return nil, err
	}

	n := len(couponRates)
	f := float64(b.PaymentFrequency)

	payments := make(types.Schedule, 0, n)
	for k := 1; k <= n; k++ {
		amount := couponRates[k-1] / f * b.FaceValue
		if k == n {
			amount += b.FaceValue
		}
		payments = append(payments, types.CashFlow{Time: b.PeriodTime(k), Amount: amount})
	}

	return b.withPurchase(payments), nil
}

func (b *FloatingRate) Price() (float64, error) {
	s, err := b.CashFlows()
	if err != nil {
		return 0, err
	}
	return b.price(s)
}

func (b *FloatingRate) Yield(marketPrice float64) (YieldResult, error) {
	couponRates, err := b.CouponRates()
	if err != nil {
		return YieldResult{}, err
	}
	s, err := b.CashFlows()
	if err != nil {
		return YieldResult{}, err
	}
	guess := EstimatedYield(couponRates[0], b.FaceValue, marketPrice, b.Maturity)
	return b.scheduleYield(s, marketPrice, guess)
}

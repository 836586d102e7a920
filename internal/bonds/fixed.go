package bonds

import (
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

// FixedRate pays a level coupon every period and the face value with the
// final coupon.
type FixedRate struct {
	Terms
	CouponRate float64 // annual, e.g. 0.05 for 5%
}

func NewFixedRate(terms Terms, couponRate float64) (*FixedRate, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	return &FixedRate{Terms: terms, CouponRate: couponRate}, nil
}

func (b *FixedRate) Type() types.BondType {
	return types.FixedRate
}

func (b *FixedRate) defaultConvention() Convention {
	return CumulativeProduct
}

// Coupon is the payment made each period.
func (b *FixedRate) Coupon() float64 {
	return b.CouponRate / float64(b.PaymentFrequency) * b.FaceValue
}

func (b *FixedRate) CashFlows() (types.Schedule, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	n := b.Periods()
	coupon := b.Coupon()

	payments := make(types.Schedule, 0, n)
	for k := 1; k < n; k++ {
		payments = append(payments, types.CashFlow{Time: b.PeriodTime(k), Amount: coupon})
	}
	payments = append(payments, types.CashFlow{Time: b.PeriodTime(n), Amount: b.FaceValue + coupon})

	return b.withPurchase(payments), nil
}

func (b *FixedRate) Price() (float64, error) {
	s, err := b.CashFlows()
	if err != nil {
		return 0, err
	}
	return b.price(s)
}

// PriceAtYield prices the bond at a flat nominal annual yield using the
// annuity and lump-sum closed forms:
//
//	P = C * (1 - (1+r)^-n) / r + F / (1+r)^n,  r = y / f
//
// With r == 0 it is the straight sum C*n + F.
func (b *FixedRate) PriceAtYield(y float64) (float64, error) {
	n := float64(b.Periods())
	coupon := b.Coupon()
	r := y / float64(b.PaymentFrequency)

	if r == 0 {
		return coupon*n + b.FaceValue, nil
	}
	if 1+r <= 0 {
		return 0, fmt.Errorf("%w: yield %v", types.ErrDegenerateRate, y)
	}

	return coupon*(1-math.Pow(1+r, -n))/r + b.FaceValue/math.Pow(1+r, n), nil
}

// Yield solves for the nominal annual yield at which the bond is worth
// marketPrice, starting from the coupon rate.
func (b *FixedRate) Yield(marketPrice float64) (YieldResult, error) {
	if err := b.validate(); err != nil {
		return YieldResult{}, err
	}
	return solveYield(marketPrice, b.CouponRate, b.PriceAtYield)
}

package bonds

import (
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

// PartiallyAmortizing pays a level amount each period that amortizes part of
// the principal, leaving a balloon payment due at maturity.
type PartiallyAmortizing struct {
	Terms
	CouponRate     float64
	BalloonPayment float64
}

func NewPartiallyAmortizing(terms Terms, couponRate, balloonPayment float64) (*PartiallyAmortizing, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	return &PartiallyAmortizing{Terms: terms, CouponRate: couponRate, BalloonPayment: balloonPayment}, nil
}

func (b *PartiallyAmortizing) Type() types.BondType {
	return types.PartiallyAmortizing
}

func (b *PartiallyAmortizing) defaultConvention() Convention {
	return CumulativeProduct
}

// PeriodicPayment is the level payment P such that the payments plus the
// balloon, discounted at the periodic coupon rate r, are worth the face value:
//
//	P = r * (F - B/(1+r)^n) / (1 - (1+r)^-n)
//
// At r == 0 it is the limit (F - B) / n. Negative rates are rejected.
func (b *PartiallyAmortizing) PeriodicPayment() (float64, error) {
	if err := b.validate(); err != nil {
		return 0, err
	}

	n := float64(b.Periods())
	r := b.CouponRate / float64(b.PaymentFrequency)

	switch {
	case r < 0 || math.IsNaN(r):
		return 0, fmt.Errorf("%w: coupon rate %v", types.ErrDegenerateRate, b.CouponRate)
	case r == 0:
		return (b.FaceValue - b.BalloonPayment) / n, nil
	}

	pvBalloon := b.BalloonPayment / math.Pow(1+r, n)
	return r * (b.FaceValue - pvBalloon) / (1 - math.Pow(1+r, -n)), nil
}

func (b *PartiallyAmortizing) CashFlows() (types.Schedule, error) {
	payment, err := b.PeriodicPayment()
	if err != nil {
		return nil, err
	}

	n := b.Periods()
	payments := make(types.Schedule, 0, n)
	for k := 1; k < n; k++ {
		payments = append(payments, types.CashFlow{Time: b.PeriodTime(k), Amount: payment})
	}
	payments = append(payments, types.CashFlow{Time: b.PeriodTime(n), Amount: b.BalloonPayment + payment})

	return b.withPurchase(payments), nil
}

func (b *PartiallyAmortizing) Price() (float64, error) {
	s, err := b.CashFlows()
	if err != nil {
		return 0, err
	}
	return b.price(s)
}

func (b *PartiallyAmortizing) Yield(marketPrice float64) (YieldResult, error) {
	s, err := b.CashFlows()
	if err != nil {
		return YieldResult{}, err
	}
	return b.scheduleYield(s, marketPrice, b.CouponRate)
}

package bonds

import (
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

// ZeroCoupon pays the face value at maturity and nothing before. Interest
// still accrues for tax purposes as phantom payments.
type ZeroCoupon struct {
	Terms
	TaxRate float64 // applied to phantom payments

	ytm float64
}

// NewZeroCoupon computes the periodic yield to maturity once:
//
//	ytm = (F / P)^(1/n) - 1
//
// It is not recomputed if the face value, price or maturity are changed
// afterwards. Build a new bond when those change.
func NewZeroCoupon(terms Terms, taxRate float64) (*ZeroCoupon, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	if terms.PurchasePrice <= 0 {
		return nil, fmt.Errorf("%w: zero-coupon bond needs a positive price, got %v", types.ErrInvalidPrice, terms.PurchasePrice)
	}

	n := float64(terms.Periods())
	ytm := math.Pow(terms.FaceValue/terms.PurchasePrice, 1/n) - 1

	return &ZeroCoupon{Terms: terms, TaxRate: taxRate, ytm: ytm}, nil
}

func (b *ZeroCoupon) Type() types.BondType {
	return types.ZeroCoupon
}

func (b *ZeroCoupon) defaultConvention() Convention {
	return SimplePerPeriod
}

// PeriodicYield is the per-period yield fixed at construction.
func (b *ZeroCoupon) PeriodicYield() float64 {
	return b.ytm
}

func (b *ZeroCoupon) CashFlows() (types.Schedule, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b.withPurchase(types.Schedule{{Time: b.Maturity, Amount: b.FaceValue}}), nil
}

// PhantomPayments is the imputed interest accrued each period:
//
//	phantom_k = ytm * P * (1+ytm)^(k-1),  k = 1..n
//
// No cash changes hands, so these are never part of CashFlows.
func (b *ZeroCoupon) PhantomPayments() types.Schedule {
	n := b.Periods()
	s := make(types.Schedule, 0, n)
	for k := 1; k <= n; k++ {
		s = append(s, types.CashFlow{
			Time:   b.PeriodTime(k),
			Amount: b.ytm * b.PurchasePrice * math.Pow(1+b.ytm, float64(k-1)),
		})
	}
	return s
}

// TaxSchedule is the tax owed on each phantom payment, as outlays.
func (b *ZeroCoupon) TaxSchedule() types.Schedule {
	s := b.PhantomPayments()
	for i := range s {
		s[i].Amount = -b.TaxRate * s[i].Amount
	}
	return s
}

// AfterTaxCashFlows merges the tax owed on phantom income into the cash
// flows.
func (b *ZeroCoupon) AfterTaxCashFlows() (types.Schedule, error) {
	s, err := b.CashFlows()
	if err != nil {
		return nil, err
	}
	return types.Merge(s, b.TaxSchedule()), nil
}

func (b *ZeroCoupon) Price() (float64, error) {
	s, err := b.CashFlows()
	if err != nil {
		return 0, err
	}
	return b.price(s)
}

func (b *ZeroCoupon) Yield(marketPrice float64) (YieldResult, error) {
	s, err := b.CashFlows()
	if err != nil {
		return YieldResult{}, err
	}
	guess := EstimatedYield(0, b.FaceValue, marketPrice, b.Maturity)
	return b.scheduleYield(s, marketPrice, guess)
}

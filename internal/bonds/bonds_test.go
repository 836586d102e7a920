package bonds

import (
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func semiAnnual(price float64) Terms {
	return Terms{
		FaceValue:        1000,
		Maturity:         5,
		PaymentFrequency: 2,
		PurchasePrice:    price,
	}
}

func TestNewFixedRate_Validation(t *testing.T) {
	cases := []struct {
		name  string
		terms Terms
		err   error
	}{
		{"zero face value", Terms{FaceValue: 0, Maturity: 5, PaymentFrequency: 2}, types.ErrInvalidFaceValue},
		{"zero frequency", Terms{FaceValue: 1000, Maturity: 5, PaymentFrequency: 0}, types.ErrInvalidPaymentFrequency},
		{"negative maturity", Terms{FaceValue: 1000, Maturity: -1, PaymentFrequency: 2}, types.ErrInvalidMaturity},
		{"maturity shorter than a period", Terms{FaceValue: 1000, Maturity: 0.25, PaymentFrequency: 2}, types.ErrInvalidMaturity},
		{"negative price", Terms{FaceValue: 1000, Maturity: 5, PaymentFrequency: 2, PurchasePrice: -1}, types.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFixedRate(tc.terms, 0.05)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestFixedRate_Price(t *testing.T) {
	terms := semiAnnual(0)
	terms.InterestRates = rates.ConstantRate{AnnualRate: 0.03}
	b, err := NewFixedRate(terms, 0.05)
	require.NoError(t, err)

	price, err := b.Price()
	require.NoError(t, err)
	assert.InDelta(t, 1092.22, price, 0.01)

	closed, err := b.PriceAtYield(0.03)
	require.NoError(t, err)
	assert.InDelta(t, price, closed, 1e-9)
}

func TestFixedRate_YieldRoundTrip(t *testing.T) {
	terms := semiAnnual(0)
	terms.InterestRates = rates.ConstantRate{AnnualRate: 0.03}
	b, err := NewFixedRate(terms, 0.05)
	require.NoError(t, err)

	res, err := b.Yield(1092.22)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.03, res.Yield, 0.001)
	assert.Less(t, math.Abs(res.Residual), 1e-6)

	price, err := b.Price()
	require.NoError(t, err)
	res, err = b.Yield(price)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, res.Yield, 1e-6)
}

func TestFixedRate_YieldAtPar(t *testing.T) {
	b, err := NewFixedRate(semiAnnual(0), 0.05)
	require.NoError(t, err)

	res, err := b.Yield(1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, res.Yield, 1e-6)
}

func TestFixedRate_ZeroYieldIsStraightSum(t *testing.T) {
	b, err := NewFixedRate(semiAnnual(0), 0.05)
	require.NoError(t, err)

	p, err := b.PriceAtYield(0)
	require.NoError(t, err)
	assert.InDelta(t, 25.0*10+1000, p, 1e-9)
}

func TestFixedRate_CashFlows(t *testing.T) {
	terms := semiAnnual(950)
	terms.DiscountModel = rates.ConstantDiscountRate{Rate: 0.05}
	b, err := NewFixedRate(terms, 0.05)
	require.NoError(t, err)

	s, err := b.CashFlows()
	require.NoError(t, err)
	require.Len(t, s, 11)
	assert.Equal(t, types.CashFlow{Time: 0, Amount: -950}, s[0])
	assert.Equal(t, 5.0, s[10].Time)
	assert.InDelta(t, 1025, s[10].Amount, 1e-9)

	for i := 1; i < len(s); i++ {
		assert.Greater(t, s[i].Time, s[i-1].Time)
	}
}

func TestFixedRate_NoPurchaseWithoutPrice(t *testing.T) {
	b, err := NewFixedRate(semiAnnual(0), 0.05)
	require.NoError(t, err)

	s, err := b.CashFlows()
	require.NoError(t, err)
	require.Len(t, s, 10)
	assert.Equal(t, 0.5, s[0].Time)
}

func TestFixedRate_PriceNeedsInterestRateModel(t *testing.T) {
	b, err := NewFixedRate(semiAnnual(0), 0.05)
	require.NoError(t, err)

	_, err = b.Price()
	assert.ErrorIs(t, err, types.ErrMissingInterestRateModel)
}

func TestFixedRate_TimeVaryingPrice(t *testing.T) {
	terms := semiAnnual(0)
	terms.InterestRates = rates.TimeVaryingRate{InitialRate: 0.03, RateChangePerYear: 0.01}
	b, err := NewFixedRate(terms, 0.05)
	require.NoError(t, err)

	price, err := b.Price()
	require.NoError(t, err)

	want := 0.0
	for k := 1; k <= 10; k++ {
		tm := float64(k) / 2
		r := (0.03 + 0.01*tm) / 2
		amount := 25.0
		if k == 10 {
			amount += 1000
		}
		want += amount / math.Pow(1+r, float64(k))
	}
	assert.InDelta(t, want, price, 1e-9)
}

func TestZeroCoupon_CashFlowsAndYield(t *testing.T) {
	terms := Terms{FaceValue: 4000, Maturity: 5, PaymentFrequency: 2, PurchasePrice: 3600}
	b, err := NewZeroCoupon(terms, 0.3)
	require.NoError(t, err)

	s, err := b.CashFlows()
	require.NoError(t, err)
	assert.Equal(t, types.Schedule{{Time: 0, Amount: -3600}, {Time: 5, Amount: 4000}}, s)

	ytm := math.Pow(4000.0/3600.0, 1.0/10) - 1
	assert.Equal(t, ytm, b.PeriodicYield())

	b.PurchasePrice = 3000
	assert.Equal(t, ytm, b.PeriodicYield())
}

func TestZeroCoupon_NeedsPrice(t *testing.T) {
	_, err := NewZeroCoupon(Terms{FaceValue: 4000, Maturity: 5, PaymentFrequency: 2}, 0)
	assert.ErrorIs(t, err, types.ErrInvalidPrice)
}

func TestZeroCoupon_PhantomPayments(t *testing.T) {
	terms := Terms{FaceValue: 4000, Maturity: 5, PaymentFrequency: 2, PurchasePrice: 3600}
	b, err := NewZeroCoupon(terms, 0.3)
	require.NoError(t, err)

	phantom := b.PhantomPayments()
	require.Len(t, phantom, 10)
	assert.Equal(t, 0.5, phantom[0].Time)
	assert.Equal(t, 5.0, phantom[9].Time)
	assert.InDelta(t, b.PeriodicYield()*3600, phantom[0].Amount, 1e-9)

	// accrued interest adds up to the discount to face value
	assert.InDelta(t, 400, phantom.Sum(), 1e-9)
	assert.InDelta(t, -120, b.TaxSchedule().Sum(), 1e-9)

	s, err := b.CashFlows()
	require.NoError(t, err)
	assert.Len(t, s, 2)
}

func TestZeroCoupon_AfterTaxProfit(t *testing.T) {
	terms := Terms{FaceValue: 4000, Maturity: 5, PaymentFrequency: 2, PurchasePrice: 3600}
	b, err := NewZeroCoupon(terms, 0.3)
	require.NoError(t, err)

	after, err := b.AfterTaxCashFlows()
	require.NoError(t, err)
	require.Len(t, after, 11)
	assert.Equal(t, 0.0, after[0].Time)

	profit, err := AfterTaxProfit(b, false)
	require.NoError(t, err)
	assert.InDelta(t, 280, profit, 1e-9)

	b.TaxRate = 0
	profit, err = AfterTaxProfit(b, false)
	require.NoError(t, err)
	assert.InDelta(t, 400, profit, 1e-9)

	nominal, err := Profit(b, false)
	require.NoError(t, err)
	assert.InDelta(t, 400, nominal, 1e-9)
}

func TestZeroCoupon_Yield(t *testing.T) {
	terms := Terms{FaceValue: 4000, Maturity: 5, PaymentFrequency: 2, PurchasePrice: 3600}
	b, err := NewZeroCoupon(terms, 0)
	require.NoError(t, err)

	res, err := b.Yield(3600)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 2*b.PeriodicYield(), res.Yield, 1e-8)
}

func TestFloatingRate_NeedsDiscountModel(t *testing.T) {
	b, err := NewFloatingRate(semiAnnual(900), 0.02)
	require.NoError(t, err)

	_, err = b.CashFlows()
	assert.ErrorIs(t, err, types.ErrMissingDiscountModel)

	_, err = b.Yield(900)
	assert.ErrorIs(t, err, types.ErrMissingDiscountModel)
}

func TestFloatingRate_CashFlows(t *testing.T) {
	terms := semiAnnual(900)
	terms.DiscountModel = rates.LinearDiscountRate{InitialRate: 0.01, RateChangePerYear: 0.004}
	b, err := NewFloatingRate(terms, SpreadFromBasisPoints(200))
	require.NoError(t, err)

	s, err := b.CashFlows()
	require.NoError(t, err)
	require.Len(t, s, 11)
	assert.Equal(t, types.CashFlow{Time: 0, Amount: -900}, s[0])

	for k := 1; k <= 10; k++ {
		tm := float64(k) / 2
		want := (0.02 + 0.01 + 0.004*tm) / 2 * 1000
		if k == 10 {
			want += 1000
		}
		assert.InDelta(t, want, s[k].Amount, 1e-9)
		assert.Equal(t, tm, s[k].Time)
	}
}

func TestFloatingRate_YieldRoundTrip(t *testing.T) {
	terms := semiAnnual(0)
	terms.DiscountModel = rates.ConstantDiscountRate{Rate: 0.03}
	terms.InterestRates = rates.ConstantRate{AnnualRate: 0.04}
	b, err := NewFloatingRate(terms, 0.01)
	require.NoError(t, err)

	price, err := b.Price()
	require.NoError(t, err)
	// a 4% coupon priced at 4% is at par
	assert.InDelta(t, 1000, price, 1e-9)

	res, err := b.Yield(price)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, res.Yield, 1e-6)
}

func TestPartiallyAmortizing_AnnuityIdentity(t *testing.T) {
	b, err := NewPartiallyAmortizing(semiAnnual(900), 0.05, 500)
	require.NoError(t, err)

	s, err := b.CashFlows()
	require.NoError(t, err)
	require.Len(t, s, 11)
	assert.Equal(t, types.CashFlow{Time: 0, Amount: -900}, s[0])

	payment, err := b.PeriodicPayment()
	require.NoError(t, err)
	assert.InDelta(t, 500+payment, s[10].Amount, 1e-9)

	r := 0.05 / 2
	pv := 0.0
	for k := 1; k <= 10; k++ {
		pv += s[k].Amount / math.Pow(1+r, float64(k))
	}
	assert.InDelta(t, 1000, pv, 1e-9)
}

func TestPartiallyAmortizing_ZeroRateLimit(t *testing.T) {
	b, err := NewPartiallyAmortizing(semiAnnual(900), 0, 500)
	require.NoError(t, err)

	payment, err := b.PeriodicPayment()
	require.NoError(t, err)
	assert.Equal(t, 50.0, payment)

	s, err := b.CashFlows()
	require.NoError(t, err)
	assert.InDelta(t, 1000-900, s.Sum(), 1e-9)
}

func TestPartiallyAmortizing_NegativeRate(t *testing.T) {
	b, err := NewPartiallyAmortizing(semiAnnual(900), -0.01, 500)
	require.NoError(t, err)

	_, err = b.CashFlows()
	assert.ErrorIs(t, err, types.ErrDegenerateRate)
}

func TestPartiallyAmortizing_YieldAtCouponRate(t *testing.T) {
	b, err := NewPartiallyAmortizing(semiAnnual(0), 0.05, 500)
	require.NoError(t, err)

	res, err := b.Yield(1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, res.Yield, 1e-6)
}

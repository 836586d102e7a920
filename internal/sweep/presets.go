package sweep

import (
	"benritz/bonds/internal/bonds"
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"fmt"

	"github.com/sirupsen/logrus"
)

// PresetTerms are the common terms of the preset bonds: 1000 face value
// bought at 900, five years, semi-annual payments.
func PresetTerms() bonds.Terms {
	return bonds.Terms{
		FaceValue:        1000,
		Maturity:         5,
		PaymentFrequency: 2,
		PurchasePrice:    900,
	}
}

func PresetBond(t types.BondType) (bonds.Bond, error) {
	terms := PresetTerms()

	switch t {
	case types.FixedRate:
		return bonds.NewFixedRate(terms, 0.05)
	case types.ZeroCoupon:
		return bonds.NewZeroCoupon(terms, 0.3)
	case types.FloatingRate:
		return bonds.NewFloatingRate(terms, 0.02)
	case types.PartiallyAmortizing:
		return bonds.NewPartiallyAmortizing(terms, 0.05, 500)
	}

	return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedBond, t)
}

// PresetScenarios are no adjustment, a constant 2% rate and a linear rate
// starting at 1% and rising 0.4% a year. Floating-rate bonds take their
// coupon from the discount model so they skip the unadjusted scenario.
func PresetScenarios(t types.BondType) []Scenario {
	scenarios := []Scenario{
		{Name: "none"},
		{Name: "constant", Model: rates.ConstantDiscountRate{Rate: 0.02}},
		{Name: "linear", Model: rates.LinearDiscountRate{InitialRate: 0.01, RateChangePerYear: 0.004}},
	}
	if t == types.FloatingRate {
		return scenarios[1:]
	}
	return scenarios
}

// VasicekScenario simulates a mean-reverting path long enough for the preset
// bonds.
func VasicekScenario(seed uint64) (Scenario, error) {
	m, err := rates.NewVasicekDiscountRate(0.1, 0.03, 0.01, 0.02, 10, 0.25, rates.NewSeededSource(seed))
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{Name: fmt.Sprintf("vasicek-%d", seed), Model: m}, nil
}

// PresetAxes sweeps the parameter each bond type is most sensitive to.
// Balloon payments are swept as fractions of the purchase price.
func PresetAxes(b bonds.Bond) []Axis {
	switch b.Type() {
	case types.FixedRate:
		return []Axis{{Parameter: CouponRate, Values: Range(0, 0.005, 8)}}
	case types.ZeroCoupon:
		return []Axis{{Parameter: TaxRate, Values: Range(0, 0.005, 8)}}
	case types.FloatingRate:
		return []Axis{{Parameter: Spread, Values: Range(0, 0.005, 8)}}
	case types.PartiallyAmortizing:
		fractions := Range(0, 0.1, 8)
		balloons := make([]float64, len(fractions))
		for i, f := range fractions {
			balloons[i] = f * b.Base().PurchasePrice
		}
		return []Axis{
			{Parameter: CouponRate, Values: Range(0.005, 0.005, 7)},
			{Parameter: BalloonPayment, Values: balloons},
		}
	}
	return nil
}

// PresetSweeper builds the sweep for one bond type with present-valued
// profits.
func PresetSweeper(t types.BondType, logger logrus.FieldLogger) (*Sweeper, error) {
	b, err := PresetBond(t)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		Bond:         b,
		Scenarios:    PresetScenarios(t),
		Axes:         PresetAxes(b),
		PresentValue: true,
		Logger:       logger,
	}, nil
}

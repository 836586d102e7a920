package sweep

import (
	"benritz/bonds/internal/bonds"
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type Parameter string

var (
	CouponRate     Parameter = "coupon_rate"
	TaxRate        Parameter = "tax_rate"
	BalloonPayment Parameter = "balloon_payment"
	Spread         Parameter = "spread"
)

// Axis is one dimension of a sweep grid.
type Axis struct {
	Parameter Parameter
	Values    []float64
}

// Range returns steps values start, start+step, ...
func Range(start, step float64, steps int) []float64 {
	values := make([]float64, 0, steps)
	for k := range steps {
		values = append(values, start+float64(k)*step)
	}
	return values
}

// Scenario is a named discount rate model. A nil Model runs the sweep on
// nominal cash flows.
type Scenario struct {
	Name  string
	Model rates.DiscountRateModel
}

// ProfitRow is the profit of one grid point under one scenario.
type ProfitRow struct {
	Bond           string  `parquet:"bond"`
	Scenario       string  `parquet:"scenario"`
	CouponRate     float64 `parquet:"coupon_rate"`
	TaxRate        float64 `parquet:"tax_rate"`
	BalloonPayment float64 `parquet:"balloon_payment"`
	Spread         float64 `parquet:"spread"`
	Profit         float64 `parquet:"profit"`
}

type FailedPoint struct {
	Scenario string
	Point    map[Parameter]float64
	Err      error
}

type Result struct {
	Bond     types.BondType
	RunDate  time.Time
	Rows     []ProfitRow
	Failures []*FailedPoint
}

func (r *Result) addRow(row ProfitRow) {
	r.Rows = append(r.Rows, row)
}

func (r *Result) addFailure(f *FailedPoint) {
	r.Failures = append(r.Failures, f)
}

// Sweeper records a bond's profit across the cartesian product of its axes
// for each scenario. The bond is mutated in place while the sweep runs and
// restored afterwards.
type Sweeper struct {
	Bond         bonds.Bond
	Scenarios    []Scenario
	Axes         []Axis
	PresentValue bool
	Logger       logrus.FieldLogger
}

func (s *Sweeper) Run(ctx context.Context, date time.Time) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	base := s.Bond.Base()
	restore, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer restore()

	points := grid(s.Axes)
	result := &Result{Bond: s.Bond.Type(), RunDate: date}

	for _, sc := range s.Scenarios {
		base.DiscountModel = sc.Model

		log := logger.WithFields(logrus.Fields{
			"bond":     s.Bond.Type(),
			"scenario": sc.Name,
			"points":   len(points),
		})
		log.Info("sweeping scenario")

		for _, point := range points {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			values := make(map[Parameter]float64, len(s.Axes))
			for i, axis := range s.Axes {
				if err := setParam(s.Bond, axis.Parameter, point[i]); err != nil {
					return nil, err
				}
				values[axis.Parameter] = point[i]
			}

			profit, err := profitOf(s.Bond, s.PresentValue)
			if err != nil {
				log.WithError(err).WithField("point", values).Warn("grid point failed")
				result.addFailure(&FailedPoint{Scenario: sc.Name, Point: values, Err: err})
				continue
			}

			result.addRow(s.row(sc.Name, profit))
		}
	}

	if len(result.Rows) == 0 {
		return nil, types.ErrDataUnavailable
	}

	return result, nil
}

// snapshot records the swept fields and returns a func that puts them back.
func (s *Sweeper) snapshot() (func(), error) {
	base := s.Bond.Base()
	model := base.DiscountModel

	saved := make(map[Parameter]float64, len(s.Axes))
	for _, axis := range s.Axes {
		v, err := getParam(s.Bond, axis.Parameter)
		if err != nil {
			return nil, err
		}
		saved[axis.Parameter] = v
	}

	return func() {
		base.DiscountModel = model
		for p, v := range saved {
			_ = setParam(s.Bond, p, v)
		}
	}, nil
}

func (s *Sweeper) row(scenario string, profit float64) ProfitRow {
	row := ProfitRow{
		Bond:     string(s.Bond.Type()),
		Scenario: scenario,
		Profit:   profit,
	}
	row.CouponRate, _ = getParam(s.Bond, CouponRate)
	row.TaxRate, _ = getParam(s.Bond, TaxRate)
	row.BalloonPayment, _ = getParam(s.Bond, BalloonPayment)
	row.Spread, _ = getParam(s.Bond, Spread)
	return row
}

// grid is the cartesian product of the axis values, first axis outermost.
func grid(axes []Axis) [][]float64 {
	points := [][]float64{{}}
	for _, axis := range axes {
		next := make([][]float64, 0, len(points)*len(axis.Values))
		for _, p := range points {
			for _, v := range axis.Values {
				point := append(append(make([]float64, 0, len(p)+1), p...), v)
				next = append(next, point)
			}
		}
		points = next
	}
	return points
}

func profitOf(b bonds.Bond, presentValue bool) (float64, error) {
	if z, ok := b.(*bonds.ZeroCoupon); ok {
		return bonds.AfterTaxProfit(z, presentValue)
	}
	return bonds.Profit(b, presentValue)
}

func getParam(b bonds.Bond, p Parameter) (float64, error) {
	switch x := b.(type) {
	case *bonds.FixedRate:
		if p == CouponRate {
			return x.CouponRate, nil
		}
	case *bonds.ZeroCoupon:
		if p == TaxRate {
			return x.TaxRate, nil
		}
	case *bonds.FloatingRate:
		if p == Spread {
			return x.Spread, nil
		}
	case *bonds.PartiallyAmortizing:
		switch p {
		case CouponRate:
			return x.CouponRate, nil
		case BalloonPayment:
			return x.BalloonPayment, nil
		}
	}
	return 0, fmt.Errorf("%w: %s on %s bond", types.ErrUnsupportedParameter, p, b.Type())
}

func setParam(b bonds.Bond, p Parameter, v float64) error {
	switch x := b.(type) {
	case *bonds.FixedRate:
		if p == CouponRate {
			x.CouponRate = v
			return nil
		}
	case *bonds.ZeroCoupon:
		if p == TaxRate {
			x.TaxRate = v
			return nil
		}
	case *bonds.FloatingRate:
		if p == Spread {
			x.Spread = v
			return nil
		}
	case *bonds.PartiallyAmortizing:
		switch p {
		case CouponRate:
			x.CouponRate = v
			return nil
		case BalloonPayment:
			x.BalloonPayment = v
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s bond", types.ErrUnsupportedParameter, p, b.Type())
}

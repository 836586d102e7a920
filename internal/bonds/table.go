package bonds

// TableRow is one period of a bond's cash-flow table.
type TableRow struct {
	Time                   float64 `parquet:"time"`
	NominalCashFlow        float64 `parquet:"nominal_cash_flow"`
	RealCashFlow           float64 `parquet:"real_cash_flow"`
	CumulativeRealCashFlow float64 `parquet:"cumulative_real_cash_flow"`
	DiscountRate           float64 `parquet:"discount_rate"`
}

// Table lays the nominal and present-valued schedules side by side. The
// discount rate column is zero when the bond has no discount model.
func Table(b Bond) ([]TableRow, error) {
	nominal, err := b.CashFlows()
	if err != nil {
		return nil, err
	}

	t := b.Base()
	deflated := PresentValue(nominal, t.DiscountModel, t.PaymentFrequency, ConventionFor(b))

	var discountRates []float64
	if t.DiscountModel != nil {
		discountRates = t.DiscountModel.DiscountRates(nominal.Times())
	}

	rows := make([]TableRow, len(nominal))
	cumulative := 0.0
	for i, cf := range nominal {
		cumulative += deflated[i].Amount
		rows[i] = TableRow{
			Time:                   cf.Time,
			NominalCashFlow:        cf.Amount,
			RealCashFlow:           deflated[i].Amount,
			CumulativeRealCashFlow: cumulative,
		}
		if discountRates != nil {
			rows[i].DiscountRate = discountRates[i]
		}
	}

	return rows, nil
}

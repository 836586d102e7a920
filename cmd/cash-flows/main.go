package main

import (
	"benritz/bonds/internal/bonds"
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/sweep"
	"benritz/bonds/internal/types"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func discountModel(name string, seed uint64) (rates.DiscountRateModel, error) {
	switch name {
	case "none":
		return nil, nil
	case "constant":
		return rates.ConstantDiscountRate{Rate: 0.02}, nil
	case "linear":
		return rates.LinearDiscountRate{InitialRate: 0.01, RateChangePerYear: 0.004}, nil
	case "vasicek":
		sc, err := sweep.VasicekScenario(seed)
		if err != nil {
			return nil, err
		}
		return sc.Model, nil
	}
	return nil, fmt.Errorf("unknown discount model: %s", name)
}

func printTable(b bonds.Bond, rows []bonds.TableRow) {
	fmt.Printf("%s (%s)\n", b.Type(), bonds.ConventionFor(b))
	fmt.Printf("%8s %14s %14s %14s %10s\n", "Time", "Nominal", "Real", "Cumulative", "Rate")
	for _, r := range rows {
		fmt.Printf("%8.2f %14.3f %14.3f %14.3f %10.4f\n",
			r.Time, r.NominalCashFlow, r.RealCashFlow, r.CumulativeRealCashFlow, r.DiscountRate)
	}
}

func main() {
	model := flag.String("model", "constant", "discount model: none, constant, linear, vasicek")
	seed := flag.Uint64("seed", 1, "seed for the vasicek model")
	outDir := flag.String("out", "", "directory to write parquet cash-flow tables to")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	dm, err := discountModel(*model, *seed)
	if err != nil {
		logger.WithError(err).Error("invalid discount model")
		os.Exit(2)
	}

	for _, bondType := range []types.BondType{
		types.FixedRate,
		types.ZeroCoupon,
		types.FloatingRate,
		types.PartiallyAmortizing,
	} {
		log := logger.WithField("bond", bondType)

		b, err := sweep.PresetBond(bondType)
		if err != nil {
			log.WithError(err).Error("failed to build bond")
			os.Exit(1)
		}
		b.Base().DiscountModel = dm

		rows, err := bonds.Table(b)
		if err != nil {
			// floating-rate coupons need a discount model
			log.WithError(err).Warn("skipping bond")
			continue
		}

		printTable(b, rows)

		nominal, err := bonds.Profit(b, false)
		if err != nil {
			log.WithError(err).Error("failed to compute profit")
			os.Exit(1)
		}
		pv, err := bonds.Profit(b, true)
		if err != nil {
			log.WithError(err).Error("failed to compute profit")
			os.Exit(1)
		}
		fmt.Printf("Nominal Profit: %.3f\n", nominal)
		fmt.Printf("Present Value Profit: %.3f\n", pv)

		if zero, ok := b.(*bonds.ZeroCoupon); ok {
			afterTax, err := bonds.AfterTaxProfit(zero, true)
			if err != nil {
				log.WithError(err).Error("failed to compute after-tax profit")
				os.Exit(1)
			}
			fmt.Printf("After-Tax Present Value Profit: %.3f\n", afterTax)
		}
		fmt.Println()

		if *outDir != "" {
			outPath := filepath.Join(*outDir, string(bondType)+".parquet")
			if err := sweep.StoreTable(rows, outPath); err != nil {
				log.WithError(err).Error("failed to store cash-flow table")
				os.Exit(1)
			}
			log.WithField("path", outPath).Info("stored cash-flow table")
		}
	}
}

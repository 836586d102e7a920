package main

import (
	"benritz/bonds/internal/bonds"
	"benritz/bonds/internal/rates"
	"benritz/bonds/internal/types"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	coupon := flag.Float64("coupon", 0.0, "Coupon rate (%) of the bond")
	faceValue := flag.Float64("facevalue", 1000, "Face value of the bond")
	price := flag.Float64("price", 0.0, "Market price of the bond")
	rate := flag.Float64("rate", 0.0, "Flat nominal interest rate (%) to price the bond at")
	maturity := flag.Float64("maturity", 0.0, "Years to maturity")
	frequency := flag.Int("frequency", 2, "Coupon payments per year")

	flag.Parse()

	logger := logrus.New()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["coupon"] {
		logger.Error("-coupon flag is required")
		os.Exit(2)
	}

	if !flagsSet["price"] && !flagsSet["rate"] {
		logger.Error("-price or -rate flag is required")
		os.Exit(2)
	}

	if !flagsSet["maturity"] {
		logger.Error("-maturity flag is required")
		os.Exit(2)
	}

	if *coupon < 0.0 || *coupon > 100.0 {
		logger.Error("coupon rate must be between 0.0 and 100.0")
		os.Exit(2)
	}

	if *price < 0.0 {
		logger.Error("price must be greater than or equal to 0.0")
		os.Exit(2)
	}

	terms := bonds.Terms{
		FaceValue:        *faceValue,
		Maturity:         *maturity,
		PaymentFrequency: *frequency,
	}
	if flagsSet["rate"] {
		terms.InterestRates = rates.ConstantRate{AnnualRate: *rate / 100}
	}

	bond, err := bonds.NewFixedRate(terms, *coupon/100)
	if err != nil {
		logger.WithError(err).Error("invalid bond")
		os.Exit(1)
	}

	fmt.Printf("Bond Details:\n")
	fmt.Printf("\tType: %s\n", bond.Type())
	fmt.Printf("\tFace Value: %.3f\n", bond.FaceValue)
	fmt.Printf("\tCoupon Rate: %.3f%%\n", bond.CouponRate*100)
	fmt.Printf("\tCoupon: %.3f\n", bond.Coupon())
	fmt.Printf("\tMaturity Years: %.2f\n", bond.Maturity)
	fmt.Printf("\tCoupon Periods: %d\n", bond.Periods())

	if flagsSet["rate"] {
		p, err := bond.Price()
		if err != nil {
			logger.WithError(err).Error("failed to price bond")
			os.Exit(1)
		}
		fmt.Printf("\tPrice at %.3f%%: %.3f\n", *rate, p)
	}

	if flagsSet["price"] {
		res, err := bond.Yield(*price)
		if err != nil && !errors.Is(err, types.ErrYieldToMaturityNoConvergence) {
			logger.WithError(err).Error("failed to solve yield to maturity")
			os.Exit(1)
		}
		if !res.Converged {
			logger.WithFields(logrus.Fields{
				"iterations": res.Iterations,
				"residual":   res.Residual,
			}).Warn("yield to maturity did not converge, showing last iterate")
		}
		fmt.Printf("\tPrice: %.3f\n", *price)
		fmt.Printf("\tYield to Maturity: %.6f%%\n", res.Yield*100)
		fmt.Printf("\tIterations: %d\n", res.Iterations)
	}
}

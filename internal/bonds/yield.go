package bonds

import (
	"benritz/bonds/internal/types"
	"fmt"
	"math"
)

const (
	yieldTolerance = 1e-6
	yieldStep      = 1e-6
	yieldMaxIter   = 1_000
)

// YieldResult is the outcome of a yield to maturity solve. When Converged is
// false Yield holds the last iterate and Residual its pricing error.
type YieldResult struct {
	Yield      float64
	Iterations int
	Residual   float64
	Converged  bool
}

// solveYield finds y such that price(y) == target using Newton-Raphson with
// a forward finite-difference derivative.
//
// Parameters:
//
//	target: Market price to reconcile.
//	y:      Initial guess.
//	price:  Prices the bond at a flat nominal annual yield.
//
// Returns:
//
//	The result and ErrYieldToMaturityNoConvergence when the iteration cap is
//	reached without the residual falling below tolerance.
func solveYield(target, y float64, price func(float64) (float64, error)) (YieldResult, error) {
	var res YieldResult

	for i := range yieldMaxIter {
		p, err := price(y)
		if err != nil {
			return res, err
		}

		dp := p - target
		res = YieldResult{Yield: y, Iterations: i + 1, Residual: dp}

		if math.Abs(dp) < yieldTolerance {
			res.Converged = true
			return res, nil
		}

		up, err := price(y + yieldStep)
		if err != nil {
			return res, err
		}

		d := (up - p) / yieldStep
		if math.Abs(d) < 1e-12 || math.IsNaN(d) {
			return res, types.ErrYieldToMaturityDerivativeTooSmall
		}

		y = y - dp/d
	}

	return res, fmt.Errorf("%w: %d iterations, residual %g", types.ErrYieldToMaturityNoConvergence, yieldMaxIter, res.Residual)
}

// EstimatedYield is a rough yield to maturity, useful as a starting point
// for the solver.
//
//	c: Annual coupon rate.
//	F: Face value of the bond.
//	P: Market price of the bond.
//	n: Years to maturity.
func EstimatedYield(c, F, P, n float64) float64 {
	return (c*F + (F-P)/n) / ((F + P) / 2)
}

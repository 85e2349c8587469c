package calculator

import (
	"errors"
	"math"
)

// DomainPadding is the fraction of the price range added on each side of the Y axis.
const DomainPadding = 0.1

// flatPadding is used instead when every price is equal.
const flatPadding = 0.01

// CalculateYDomain returns the chart's Y-axis bounds: the min/max of prices
// padded by 10% of the range on both sides. A flat series is padded by 1% of
// its value (or by 1 when the value is 0) so the domain never collapses.
func CalculateYDomain(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, p := range prices {
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
	}

	if high == low {
		pad := math.Abs(low) * flatPadding
		if pad == 0 {
			pad = 1
		}
		return low - pad, high + pad, nil
	}

	pad := (high - low) * DomainPadding
	return low - pad, high + pad, nil
}

// PercentChange returns (to-from)/from*100. A zero base yields a ComputationError.
func PercentChange(from, to float64) (float64, error) {
	if from == 0 {
		return 0, &ComputationError{Op: "percent change", Reason: "start value is zero"}
	}
	pct := (to - from) / from * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, &ComputationError{Op: "percent change", Reason: "result is not finite"}
	}
	return pct, nil
}

package calculator

import (
	"errors"

	"CryptoBoard/internal/model"
)

// DefaultRSIPeriod is the lookback used by the dashboard.
const DefaultRSIPeriod = 14

// RSI reference bands.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// CalculateRSISeries computes the Wilder-smoothed RSI for every index of prices.
// The result has the same length as prices. Indices below period carry 0 since
// no reading exists there; if len(prices) < period+1 every entry is 0.
func CalculateRSISeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(prices))
	if !RSIAvailable(len(prices), period) {
		return out, nil
	}

	// Seed with the simple mean of the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := splitChange(prices[i] - prices[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// Wilder smoothing for remaining points
	for i := period + 1; i < len(prices); i++ {
		gain, loss := splitChange(prices[i] - prices[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out, nil
}

// RSIAvailable reports whether n points are enough to seed an RSI of the given period.
func RSIAvailable(n, period int) bool {
	return period > 0 && n >= period+1
}

// ClassifyRSI maps a reading onto the 30/70 reference bands.
func ClassifyRSI(rsi float64) model.RSIZone {
	switch {
	case rsi < RSIOversold:
		return model.RSIZoneOversold
	case rsi > RSIOverbought:
		return model.RSIZoneOverbought
	default:
		return model.RSIZoneNeutral
	}
}

func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// Package format renders prices and percentages for display.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Price renders a quote the way the dashboard cards show it:
// grouped digits above 1000, cents above 1, six decimals below.
func Price(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$—"
	}
	d := decimal.NewFromFloat(v)
	switch {
	case v >= 1000:
		return "$" + humanize.Commaf(d.Round(3).InexactFloat64())
	case v >= 1:
		return "$" + d.StringFixed(2)
	default:
		return "$" + d.StringFixed(6)
	}
}

// Percent renders a signed percentage with two decimals.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// RSI renders an indicator reading with two decimals.
func RSI(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

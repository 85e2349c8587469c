// Package chart turns price and indicator series into render-ready points.
package chart

import "CryptoBoard/internal/model"

// Labeler produces the display label of point i out of total.
type Labeler interface {
	Label(i, total int) string
}

// LabelFunc adapts a plain function to Labeler.
type LabelFunc func(i, total int) string

func (f LabelFunc) Label(i, total int) string { return f(i, total) }

// Assemble zips prices, an optional indicator series and labels into one
// ChartPoint per price. Missing indicator values default to 0 with
// HasIndicator false. labeler may be nil.
func Assemble(prices []float64, indicator []float64, labeler Labeler) []model.ChartPoint {
	points := make([]model.ChartPoint, len(prices))
	for i, p := range prices {
		pt := model.ChartPoint{Index: i, Price: p}
		if i < len(indicator) {
			pt.Indicator = indicator[i]
			pt.HasIndicator = true
		}
		if labeler != nil {
			pt.Label = labeler.Label(i, len(prices))
		}
		points[i] = pt
	}
	return points
}

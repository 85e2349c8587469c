package dashboard

import (
	"log"
	"time"

	"CryptoBoard/internal/calculator"
	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/format"
	"CryptoBoard/internal/model"
)

type viewSettings struct {
	timeFrame model.TimeFrame
	showRSI   bool
	period    int
	now       time.Time
	location  *time.Location
}

// assembleAssetView runs the chart pipeline for one asset: Y domain, optional
// RSI overlay, labelled points and header fields. Selection and focus are
// filled in by the controller.
func assembleAssetView(a model.Asset, s viewSettings) model.AssetView {
	av := model.AssetView{
		ID:          a.ID,
		Symbol:      a.Symbol,
		Name:        a.Name,
		Price:       a.Price,
		PriceLabel:  format.Price(a.Price),
		Change24h:   a.Change24h,
		ChangeLabel: format.Percent(a.Change24h),
		ChangeUp:    a.Change24h >= 0,
	}

	if low, high, err := calculator.CalculateYDomain(a.Sparkline); err != nil {
		log.Printf("[WARN] %s: y domain: %v", a.ID, err)
	} else {
		av.YMin, av.YMax = low, high
	}

	var rsi []float64
	if s.showRSI && calculator.RSIAvailable(len(a.Sparkline), s.period) {
		series, err := calculator.CalculateRSISeries(a.Sparkline, s.period)
		if err != nil {
			log.Printf("[WARN] %s: RSI calculation failed: %v, hiding overlay", a.ID, err)
		} else {
			rsi = series
			av.ShowRSI = true
			av.LatestRSI = series[len(series)-1]
			av.RSIZone = calculator.ClassifyRSI(av.LatestRSI)
		}
	}

	labeler := chart.TimeFrameLabeler{
		Days:     s.timeFrame.Days(),
		Now:      s.now,
		Location: s.location,
	}
	av.Points = chart.Assemble(a.Sparkline, rsi, labeler)
	// Leading placeholders are not readings.
	for i := 0; i < len(av.Points) && i < s.period && rsi != nil; i++ {
		av.Points[i].HasIndicator = false
	}
	return av
}

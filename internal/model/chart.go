package model

// ChartPoint is one render-ready record of an asset chart.
type ChartPoint struct {
	Index        int     `json:"index"`
	Price        float64 `json:"price"`
	Indicator    float64 `json:"indicator"`
	HasIndicator bool    `json:"has_indicator"`
	Label        string  `json:"label"`
}

// SelectionRange is a drag-to-measure range, both ends are raw prices.
type SelectionRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// RSIZone classifies an RSI reading against the 30/70 reference bands.
type RSIZone string

const (
	RSIZoneOversold   RSIZone = "OVERSOLD"
	RSIZoneNeutral    RSIZone = "NEUTRAL"
	RSIZoneOverbought RSIZone = "OVERBOUGHT"
)

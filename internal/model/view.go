package model

import "time"

// SelectionView is the rendered state of an asset's measurement.
type SelectionView struct {
	Range           SelectionRange `json:"range"`
	Live            bool           `json:"live"` // pointer still down
	GrowthPct       float64        `json:"growth_pct"`
	GrowthLabel     string         `json:"growth_label"`
	GrowthAvailable bool           `json:"growth_available"`
}

// AssetView is everything needed to draw one asset card.
type AssetView struct {
	ID          string         `json:"id"`
	Symbol      string         `json:"symbol"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	PriceLabel  string         `json:"price_label"`
	Change24h   float64        `json:"change_24h"`
	ChangeLabel string         `json:"change_label"`
	ChangeUp    bool           `json:"change_up"`
	YMin        float64        `json:"y_min"`
	YMax        float64        `json:"y_max"`
	Points      []ChartPoint   `json:"points"`
	ShowRSI     bool           `json:"show_rsi"`
	LatestRSI   float64        `json:"latest_rsi,omitempty"`
	RSIZone     RSIZone        `json:"rsi_zone,omitempty"`
	Focused     bool           `json:"focused"`
	Selection   *SelectionView `json:"selection,omitempty"`
}

// DashboardView is the full render-ready state of the dashboard.
type DashboardView struct {
	Loading   bool        `json:"loading"` // no snapshot obtained yet
	Stale     bool        `json:"stale"`   // last refresh failed, data is older
	Error     string      `json:"error,omitempty"`
	TimeFrame TimeFrame   `json:"time_frame"`
	ShowRSI   bool        `json:"show_rsi"`
	UpdatedAt time.Time   `json:"updated_at"`
	Seq       uint64      `json:"seq"` // refresh that produced the snapshot
	Assets    []AssetView `json:"assets"`
}

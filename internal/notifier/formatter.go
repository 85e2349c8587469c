package notifier

import (
	"fmt"
	"math"
	"strings"

	"CryptoBoard/internal/format"
	"CryptoBoard/internal/model"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// FormatDashboard renders the whole dashboard as plain text.
func FormatDashboard(v model.DashboardView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Crypto Dashboard | %s | RSI %s\n", v.TimeFrame, onOff(v.ShowRSI)))
	if v.Loading {
		if v.Error != "" {
			b.WriteString(fmt.Sprintf("loading... (last error: %s)\n", v.Error))
		} else {
			b.WriteString("loading...\n")
		}
		return b.String()
	}
	b.WriteString(fmt.Sprintf("updated %s\n", v.UpdatedAt.Format("2006-01-02 15:04:05")))
	if v.Stale {
		b.WriteString(fmt.Sprintf("⚠️ refresh failed, showing last data: %s\n", v.Error))
	}
	b.WriteString("\n")

	for _, a := range v.Assets {
		b.WriteString(FormatAsset(a))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAsset renders one asset card.
func FormatAsset(a model.AssetView) string {
	var b strings.Builder

	marker := " "
	if a.Focused {
		marker = "*"
	}
	arrow := "▲"
	if !a.ChangeUp {
		arrow = "▼"
	}
	b.WriteString(fmt.Sprintf("%s %-12s %-6s %14s %s %s\n",
		marker, a.Name, strings.ToUpper(a.Symbol), a.PriceLabel, arrow, a.ChangeLabel))

	prices := make([]float64, len(a.Points))
	for i, p := range a.Points {
		prices[i] = p.Price
	}
	b.WriteString(fmt.Sprintf("  %s  [%s – %s]\n", Sparkline(prices, 48),
		format.Price(a.YMin), format.Price(a.YMax)))

	if a.ShowRSI {
		b.WriteString(fmt.Sprintf("  RSI: %s %s\n", format.RSI(a.LatestRSI), a.RSIZone))
	}
	if s := a.Selection; s != nil {
		state := "selected"
		if s.Live {
			state = "measuring"
		}
		growth := s.GrowthLabel
		if s.GrowthAvailable {
			growth += "%"
		}
		b.WriteString(fmt.Sprintf("  %s %s → %s: %s\n", state,
			format.Price(s.Range.Start), format.Price(s.Range.End), growth))
	}
	return b.String()
}

// Sparkline draws prices into at most width cells, lowest price on the
// bottom tick and highest on the top one.
func Sparkline(prices []float64, width int) string {
	if len(prices) == 0 || width <= 0 {
		return ""
	}
	step := 1
	if len(prices) > width {
		step = int(math.Ceil(float64(len(prices)) / float64(width)))
	}
	low, high := prices[0], prices[0]
	for _, p := range prices[1:] {
		low = math.Min(low, p)
		high = math.Max(high, p)
	}
	span := high - low
	var b strings.Builder
	for i := 0; i < len(prices); i += step {
		idx := 0
		if span > 0 {
			idx = int((prices[i] - low) / span * float64(len(sparkTicks)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkTicks) {
			idx = len(sparkTicks) - 1
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"CryptoBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Assets []model.Asset
	Err    error
	Points int // sparkline length for generated assets, default 168
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTopAssets(ctx context.Context, limit int, _ string, days int) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Op: "mock fetch", Err: err}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	assets := m.Assets
	if assets == nil {
		assets = m.generate(limit, days)
	}
	if limit > 0 && len(assets) > limit {
		assets = assets[:limit]
	}
	out := make([]model.Asset, len(assets))
	for i, a := range assets {
		a.Sparkline = append([]float64(nil), a.Sparkline...)
		out[i] = a
	}
	return &model.Snapshot{Assets: out, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) generate(limit, days int) []model.Asset {
	points := m.Points
	if points <= 0 {
		points = 168
		if days > 0 {
			points = days * 24
		}
	}
	if limit <= 0 {
		limit = 3
	}
	assets := make([]model.Asset, limit)
	for i := range assets {
		base := 100 * math.Pow(10, float64(i%3))
		assets[i] = model.Asset{
			ID:        fmt.Sprintf("mock-%d", i+1),
			Symbol:    fmt.Sprintf("mk%d", i+1),
			Name:      fmt.Sprintf("Mock Coin %d", i+1),
			Sparkline: generateMockSparkline(base, points, float64(i+1)),
		}
		last := assets[i].Sparkline[points-1]
		assets[i].Price = last
		assets[i].Change24h = (last - assets[i].Sparkline[0]) / assets[i].Sparkline[0] * 100
	}
	return assets
}

func generateMockSparkline(basePrice float64, count int, phase float64) []float64 {
	prices := make([]float64, count)
	for i := 0; i < count; i++ {
		wave := math.Sin(float64(i)/12+phase) * 0.02
		drift := float64(i-count/2) * 0.0005
		prices[i] = basePrice * (1 + wave + drift)
	}
	return prices
}

package collector

import (
	"context"

	"CryptoBoard/internal/model"
)

// Fetcher defines the interface for fetching market snapshots.
type Fetcher interface {
	// FetchTopAssets returns the top `limit` assets by market cap quoted in
	// vsCurrency. days > 0 asks for that many days of sparkline history.
	FetchTopAssets(ctx context.Context, limit int, vsCurrency string, days int) (*model.Snapshot, error)
	Name() string
}

package model

import (
	"errors"
	"strings"
	"time"
)

// Asset is one entry of a market snapshot.
type Asset struct {
	ID        string
	Symbol    string
	Name      string
	Price     float64
	Change24h float64 // percent, signed
	Sparkline []float64
}

// Snapshot holds the assets returned by a single fetch, in endpoint order.
type Snapshot struct {
	Assets    []Asset
	FetchedAt time.Time
	Seq       uint64
}

// Find returns the asset with the given id.
func (s *Snapshot) Find(id string) (Asset, bool) {
	if s == nil {
		return Asset{}, false
	}
	for _, a := range s.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// TimeFrame is the historical lookback window shown on the charts.
type TimeFrame string

const (
	TimeFrame1D  TimeFrame = "1D"
	TimeFrame7D  TimeFrame = "7D"
	TimeFrame30D TimeFrame = "30D"
)

// ErrUnknownTimeFrame is returned by ParseTimeFrame for unsupported values.
var ErrUnknownTimeFrame = errors.New("unknown time frame")

// TimeFrames lists the supported frames in display order.
var TimeFrames = []TimeFrame{TimeFrame1D, TimeFrame7D, TimeFrame30D}

// Days returns the lookback window in days.
func (tf TimeFrame) Days() int {
	switch tf {
	case TimeFrame1D:
		return 1
	case TimeFrame30D:
		return 30
	default:
		return 7
	}
}

// ParseTimeFrame accepts "1D", "7d", "30D" etc.
func ParseTimeFrame(s string) (TimeFrame, error) {
	tf := TimeFrame(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range TimeFrames {
		if tf == known {
			return tf, nil
		}
	}
	return "", ErrUnknownTimeFrame
}

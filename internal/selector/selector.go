// Package selector tracks drag-to-measure selections on an asset chart.
package selector

import (
	"github.com/shopspring/decimal"

	"CryptoBoard/internal/calculator"
	"CryptoBoard/internal/model"
)

// State of a RangeSelector.
type State int

const (
	Idle State = iota
	Dragging
	Selected
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Selected:
		return "selected"
	default:
		return "idle"
	}
}

// UnavailableLabel is shown when growth cannot be computed.
const UnavailableLabel = "—"

// RangeSelector is the measurement state machine of a single chart.
// It is not safe for concurrent use; the owner serializes access.
type RangeSelector struct {
	state  State
	start  float64
	end    float64
	hasEnd bool
}

// New returns an idle selector.
func New() *RangeSelector { return &RangeSelector{} }

// State returns the current state.
func (r *RangeSelector) State() State { return r.state }

// PointerDown starts a new measurement at value, discarding any previous one.
func (r *RangeSelector) PointerDown(value float64) {
	r.state = Dragging
	r.start = value
	r.end = value
	r.hasEnd = false
}

// PointerMove extends a live measurement. Ignored unless dragging.
func (r *RangeSelector) PointerMove(value float64) {
	if r.state != Dragging {
		return
	}
	r.end = value
	r.hasEnd = true
}

// PointerUp freezes the measurement. Releasing without a move selects a zero-width range.
func (r *RangeSelector) PointerUp() {
	if r.state != Dragging {
		return
	}
	r.state = Selected
	r.hasEnd = true
}

// Range returns the displayed range. A drag shows its provisional end once the pointer has moved.
func (r *RangeSelector) Range() (model.SelectionRange, bool) {
	if r.state == Idle || !r.hasEnd {
		return model.SelectionRange{}, false
	}
	return model.SelectionRange{Start: r.start, End: r.end}, true
}

// Growth returns the percentage change from start to end.
func (r *RangeSelector) Growth() (float64, error) {
	rng, ok := r.Range()
	if !ok {
		return 0, &calculator.ComputationError{Op: "growth", Reason: "no selection"}
	}
	return calculator.PercentChange(rng.Start, rng.End)
}

// View renders the selection, or nil when nothing is displayed.
func (r *RangeSelector) View() *model.SelectionView {
	rng, ok := r.Range()
	if !ok {
		return nil
	}
	v := &model.SelectionView{
		Range:       rng,
		Live:        r.state == Dragging,
		GrowthLabel: UnavailableLabel,
	}
	if pct, err := r.Growth(); err == nil {
		v.GrowthPct = pct
		v.GrowthLabel = FormatGrowth(pct)
		v.GrowthAvailable = true
	}
	return v
}

// FormatGrowth renders a percentage with two decimals, rounding half away from zero.
func FormatGrowth(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(2)
}

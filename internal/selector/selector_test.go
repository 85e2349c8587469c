package selector

import (
	"errors"
	"testing"

	"CryptoBoard/internal/calculator"
)

func TestRangeSelector_DragAndRelease(t *testing.T) {
	r := New()
	r.PointerDown(100)
	if r.State() != Dragging {
		t.Fatalf("expected dragging, got %s", r.State())
	}
	if _, ok := r.Range(); ok {
		t.Error("range should not be displayed before the pointer moves")
	}

	r.PointerMove(105)
	rng, ok := r.Range()
	if !ok || rng.Start != 100 || rng.End != 105 {
		t.Fatalf("expected provisional range 100→105, got %+v (ok=%v)", rng, ok)
	}
	if v := r.View(); v == nil || !v.Live {
		t.Error("view should be live while dragging")
	}

	r.PointerMove(110)
	r.PointerUp()
	if r.State() != Selected {
		t.Fatalf("expected selected, got %s", r.State())
	}
	v := r.View()
	if v == nil || v.Live {
		t.Fatalf("expected frozen view, got %+v", v)
	}
	if v.GrowthLabel != "10.00" || !v.GrowthAvailable {
		t.Errorf("expected growth 10.00, got %q (available=%v)", v.GrowthLabel, v.GrowthAvailable)
	}
}

func TestRangeSelector_FrozenIgnoresMoves(t *testing.T) {
	r := New()
	r.PointerDown(50)
	r.PointerMove(40)
	r.PointerUp()
	r.PointerMove(99)
	rng, _ := r.Range()
	if rng.End != 40 {
		t.Errorf("moves after release must not mutate, end=%.2f", rng.End)
	}
	if got := r.View().GrowthLabel; got != "-20.00" {
		t.Errorf("expected -20.00, got %q", got)
	}
}

func TestRangeSelector_NewDragDiscardsOld(t *testing.T) {
	r := New()
	r.PointerDown(10)
	r.PointerMove(20)
	r.PointerUp()

	r.PointerDown(30)
	if r.State() != Dragging {
		t.Fatalf("expected dragging, got %s", r.State())
	}
	if _, ok := r.Range(); ok {
		t.Error("old selection should be discarded on a new pointer down")
	}
}

func TestRangeSelector_ReleaseWithoutMove(t *testing.T) {
	r := New()
	r.PointerDown(42)
	r.PointerUp()
	rng, ok := r.Range()
	if !ok || rng.Start != 42 || rng.End != 42 {
		t.Fatalf("expected zero-width range at 42, got %+v", rng)
	}
	if got := r.View().GrowthLabel; got != "0.00" {
		t.Errorf("expected 0.00, got %q", got)
	}
}

func TestRangeSelector_IdleIgnoresMoveAndUp(t *testing.T) {
	r := New()
	r.PointerMove(5)
	r.PointerUp()
	if r.State() != Idle {
		t.Errorf("expected idle, got %s", r.State())
	}
	if r.View() != nil {
		t.Error("idle selector must not render")
	}
}

func TestRangeSelector_ZeroStart(t *testing.T) {
	r := New()
	r.PointerDown(0)
	r.PointerMove(10)
	r.PointerUp()

	_, err := r.Growth()
	var ce *calculator.ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ComputationError, got %v", err)
	}
	v := r.View()
	if v.GrowthAvailable || v.GrowthLabel != UnavailableLabel {
		t.Errorf("expected unavailable growth, got %+v", v)
	}
}

func TestFormatGrowth(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{10, "10.00"},
		{3.14159, "3.14"},
		{-2.005, "-2.01"},
		{0.125, "0.13"},
	}
	for _, tt := range tests {
		if got := FormatGrowth(tt.pct); got != tt.want {
			t.Errorf("FormatGrowth(%v): expected %q, got %q", tt.pct, tt.want, got)
		}
	}
}

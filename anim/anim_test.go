package anim

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

func TestTweenReachesTarget(t *testing.T) {
	tw := New(0, 100, 1000, Linear)
	tw.Tick(500)
	if tw.IsFinished() {
		t.Fatal("should not be finished halfway")
	}
	tw.Tick(500)
	if !tw.IsFinished() {
		t.Fatal("expected finished after full duration")
	}
	if v := tw.Value(); v < 99.9 || v > 100.1 {
		t.Errorf("Value = %f, want ~100", v)
	}
}

func TestTweenTicksPastEndStayAtEnd(t *testing.T) {
	tw := New(0, 10, 100, Linear)
	tw.Tick(1000)
	if !tw.IsFinished() {
		t.Fatal("expected finished")
	}
	v := tw.Value()
	tw.Tick(50)
	if tw.Value() != v {
		t.Errorf("value drifted after finish: %f -> %f", v, tw.Value())
	}
}

func TestColorTweenInterpolatesComponentwise(t *testing.T) {
	start := types.Color{R: 0, G: 0, B: 0, A: 255}
	end := types.Color{R: 255, G: 100, B: 50, A: 0}
	ct := NewColor(start, end, 1000, Linear)

	ct.Tick(1000)
	if !ct.IsFinished() {
		t.Fatal("expected finished")
	}
	got := ct.Value()
	if got.R != 255 || got.G != 100 || got.B != 50 || got.A != 0 {
		t.Errorf("Value = %+v, want %+v", got, end)
	}
}

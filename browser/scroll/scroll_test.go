package scroll

import "testing"

func TestClampsToContentRange(t *testing.T) {
	s := &State{ContentHeight: 500, ViewportH: 200}
	s.Nudge(-1000)
	if s.ScrollY != 0 {
		t.Errorf("ScrollY = %f, want 0", s.ScrollY)
	}
	s.Nudge(10000)
	if s.ScrollY != 300 {
		t.Errorf("ScrollY = %f, want 300 (max)", s.ScrollY)
	}
}

func TestShortContentMaxIsZero(t *testing.T) {
	s := &State{ContentHeight: 100, ViewportH: 200}
	s.Nudge(50)
	if s.ScrollY != 0 {
		t.Errorf("ScrollY = %f, want 0 when content is shorter than viewport", s.ScrollY)
	}
}

func TestSmoothTickDecaysVelocity(t *testing.T) {
	s := &State{ContentHeight: 10000, ViewportH: 200, Smooth: true}
	s.Nudge(100)
	s.Tick()
	if s.ScrollY == 0 {
		t.Fatal("expected position to move after a velocity tick")
	}
	for i := 0; i < 200; i++ {
		s.Tick()
	}
	if s.velocity != 0 {
		t.Errorf("velocity = %f, want 0 after decaying below epsilon", s.velocity)
	}
}

func TestScrollToVisibleNoopWhenAlreadyVisible(t *testing.T) {
	s := &State{ContentHeight: 1000, ViewportH: 200, ScrollY: 100}
	s.ScrollToVisible(150, 20)
	if s.ScrollY != 100 {
		t.Errorf("ScrollY = %f, want unchanged 100", s.ScrollY)
	}
}

func TestScrollToVisibleCentersOffscreenTarget(t *testing.T) {
	s := &State{ContentHeight: 1000, ViewportH: 200, ScrollY: 0}
	s.ScrollToVisible(900, 20)
	if s.ScrollY <= 0 {
		t.Errorf("ScrollY = %f, want scrolled down toward the target", s.ScrollY)
	}
}

package types

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	if !r.Contains(15, 15) {
		t.Error("expected (15,15) to be inside")
	}
	if r.Contains(50, 50) {
		t.Error("expected (50,50) to be outside")
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("expected an intersection")
	}
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}
}

func TestRectNoIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 20, Y: 20, W: 10, H: 10}
	if _, ok := a.Intersection(b); ok {
		t.Error("expected no intersection")
	}
}

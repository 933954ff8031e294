package sdi

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

func TestCreateIsIdempotentUpsert(t *testing.T) {
	r := NewRegistry()
	a := r.Create("box")
	a.X = 5
	b := r.Create("box")
	if a != b {
		t.Fatal("expected Create on an existing name to return the same object")
	}
	if b.X != 5 {
		t.Errorf("X = %d, want 5", b.X)
	}
}

func TestDestroyMissingIsNoop(t *testing.T) {
	r := NewRegistry()
	if obj := r.Destroy("nope"); obj != nil {
		t.Errorf("Destroy of missing name = %v, want nil", obj)
	}
}

func TestGetMissingFails(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("nope"); err == nil {
		t.Error("expected error getting a missing object")
	}
}

func TestMoveToTopBumpsAboveAll(t *testing.T) {
	r := NewRegistry()
	r.Create("a").Z = 5
	r.Create("b").Z = 10
	c := r.Create("c")
	c.Z = 1
	r.MoveToTop("c")
	if c.Z <= 10 {
		t.Errorf("Z = %d, want > 10", c.Z)
	}
}

func TestDrawOrderByZThenInsertionOverlayLast(t *testing.T) {
	r := NewRegistry()
	first := r.Create("first")
	first.Z = 0
	second := r.Create("second")
	second.Z = 0
	overlay := r.Create("overlay")
	overlay.Z = -100
	overlay.Overlay = true
	high := r.Create("high")
	high.Z = 5

	order := r.drawOrder()
	names := make([]string, len(order))
	for i, o := range order {
		names[i] = o.Name
	}
	want := []string{"first", "second", "high", "overlay"}
	if len(names) != len(want) {
		t.Fatalf("order = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (full: %v)", i, names[i], want[i], names)
		}
	}
}

func TestDrawOrderSkipsInvisible(t *testing.T) {
	r := NewRegistry()
	r.Create("a")
	hidden := r.Create("b")
	hidden.Visible = false
	order := r.drawOrder()
	if len(order) != 1 || order[0].Name != "a" {
		t.Errorf("order = %v, want just [a]", order)
	}
}

func TestDrawAllRunsEachObjectsPrimitives(t *testing.T) {
	r := NewRegistry()
	sw := backend.NewSoftware()
	if err := sw.Init(64, 64); err != nil {
		t.Fatalf("Init: %v", err)
	}
	fill := types.Color{R: 255, A: 255}
	obj := r.Create("panel")
	obj.X, obj.Y, obj.W, obj.H = 0, 0, 10, 10
	obj.Fill = &fill
	obj.Radius = 2
	obj.Stroke = &StrokeSpec{Width: 1, Color: types.Black}
	obj.Text = &TextSpec{Content: "hi", FontSize: 8}

	if err := r.DrawAll(sw); err != nil {
		t.Fatalf("DrawAll: %v", err)
	}
}

package paint

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/layout"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

func newTestBackend(t *testing.T) *backend.Software {
	t.Helper()
	be := backend.NewSoftware()
	if err := be.Init(480, 272); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return be
}

func TestPaintDrawsBackgroundAndText(t *testing.T) {
	be := newTestBackend(t)
	box := &layout.Box{
		X: 0, Y: 0, W: 100, H: 20,
		Background: types.Color{R: 10, G: 20, B: 30, A: 255},
		Text:       "hello",
		TextColor:  types.White,
	}
	if err := Paint(be, box, Viewport{W: 480, H: 272}, nil); err != nil {
		t.Fatalf("Paint: %v", err)
	}
}

func TestPaintCullsOffscreenBoxes(t *testing.T) {
	be := newTestBackend(t)
	box := &layout.Box{X: 10000, Y: 10000, W: 10, H: 10, Background: types.Black}
	if err := Paint(be, box, Viewport{W: 480, H: 272}, nil); err != nil {
		t.Fatalf("Paint: %v", err)
	}
}

func TestPaintRecordsLinks(t *testing.T) {
	be := newTestBackend(t)
	linkNode := &html.Node{Kind: html.NodeElement, Tag: "a", Attrs: map[string]string{"href": "/next"}}
	box := &layout.Box{X: 0, Y: 0, W: 50, H: 10, Node: linkNode, Text: "go"}
	var links []Link
	if err := Paint(be, box, Viewport{W: 480, H: 272}, &links); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if len(links) != 1 || links[0].URL != "/next" {
		t.Errorf("links = %+v", links)
	}
}

func TestPaintScrollOffsetShiftsY(t *testing.T) {
	be := newTestBackend(t)
	box := &layout.Box{X: 0, Y: 100, W: 10, H: 10, Background: types.Black}
	if err := Paint(be, box, Viewport{W: 480, H: 272, ScrollY: 50}, nil); err != nil {
		t.Fatalf("Paint: %v", err)
	}
}

func TestPaintNeverPanicsOnEmptyBox(t *testing.T) {
	be := newTestBackend(t)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Paint panicked: %v", r)
		}
	}()
	if err := Paint(be, &layout.Box{}, Viewport{W: 480, H: 272}, nil); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if err := Paint(be, nil, Viewport{W: 480, H: 272}, nil); err != nil {
		t.Fatalf("Paint(nil): %v", err)
	}
}

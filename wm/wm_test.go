package wm

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/sdi"
	"github.com/AndrewAltimit/oasis-os-sub003/theme"
)

func TestCreateWindowRegistersSdiObjects(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	win, err := m.CreateWindow("a", Config{Title: "A", X: 10, Y: 10, W: 100, H: 80}, reg)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if !win.Focused {
		t.Error("expected newly created window to be focused")
	}
	for _, name := range []string{"window.a.titlebar", "window.a.body", "window.a.close"} {
		if !reg.Contains(name) {
			t.Errorf("expected SDI object %q to exist", name)
		}
	}
}

func TestCreateWindowDuplicateIdFails(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	if _, err := m.CreateWindow("a", Config{W: 10, H: 10}, reg); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if _, err := m.CreateWindow("a", Config{W: 10, H: 10}, reg); err == nil {
		t.Error("expected duplicate id to fail")
	}
}

func TestDestroyWindowRemovesAllSdiObjects(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	m.CreateWindow("a", Config{W: 50, H: 50}, reg)
	if err := m.DestroyWindow("a", reg); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}
	for _, name := range []string{"window.a.titlebar", "window.a.body", "window.a.close"} {
		if reg.Contains(name) {
			t.Errorf("expected SDI object %q to be removed", name)
		}
	}
}

func TestOperationsOnMissingIdFail(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	if err := m.DestroyWindow("nope", reg); err == nil {
		t.Error("expected DestroyWindow on missing id to fail")
	}
	if err := m.Focus("nope", reg); err == nil {
		t.Error("expected Focus on missing id to fail")
	}
	if err := m.MoveWindow("nope", 1, 1, reg); err == nil {
		t.Error("expected MoveWindow on missing id to fail")
	}
	if err := m.ResizeWindow("nope", 1, 1, reg); err == nil {
		t.Error("expected ResizeWindow on missing id to fail")
	}
	if _, err := m.GetWindow("nope"); err == nil {
		t.Error("expected GetWindow on missing id to fail")
	}
}

func TestFocusOnlyRenumbersFocusedWindow(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	m.CreateWindow("a", Config{W: 50, H: 50}, reg)
	m.CreateWindow("b", Config{W: 50, H: 50}, reg)
	winA, _ := m.GetWindow("a")
	zBefore := winA.z
	winB, _ := m.GetWindow("b")
	zBBefore := winB.z

	m.Focus("a", reg)

	if winA.z == zBefore {
		t.Error("expected focusing a to change its Z")
	}
	if !winA.Focused {
		t.Error("expected a to be focused")
	}
	if winB.z != zBBefore {
		t.Errorf("expected b's Z to stay %d, got %d", zBBefore, winB.z)
	}
	if winB.Focused {
		t.Error("expected b to be unfocused after focusing a")
	}
}

func TestPopupsAlwaysAboveAppWindows(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	m.CreateWindow("app", Config{Kind: AppWindow, W: 50, H: 50}, reg)
	m.CreateWindow("popup", Config{Kind: Popup, W: 20, H: 20}, reg)

	app, _ := m.GetWindow("app")
	popup, _ := m.GetWindow("popup")
	m.Focus("app", reg) // even after re-focusing the app window...
	if popup.z <= app.z {
		t.Errorf("expected popup Z (%d) to stay above app Z (%d)", popup.z, app.z)
	}
}

func TestMoveWindowClampsToScreen(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	m.CreateWindow("a", Config{X: 0, Y: 0, W: 50, H: 50}, reg)
	m.MoveWindow("a", -1000, -1000, reg)
	win, _ := m.GetWindow("a")
	if win.X < 0 || win.Y < 0 {
		t.Errorf("expected bounds clamped to the screen, got (%d,%d)", win.X, win.Y)
	}
}

func TestIterWindowsCreationOrder(t *testing.T) {
	reg := sdi.NewRegistry()
	m := New(theme.Default())
	m.CreateWindow("a", Config{W: 10, H: 10}, reg)
	m.CreateWindow("b", Config{W: 10, H: 10}, reg)
	m.CreateWindow("c", Config{W: 10, H: 10}, reg)

	var ids []string
	m.IterWindows(func(w *Window) { ids = append(ids, w.ID) })
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IterWindows[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
